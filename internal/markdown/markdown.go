// Package markdown renders note content and extracts the [[wiki-links]] that
// feed the knowledge graph.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Render converts markdown note content to HTML.
func Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var wikiLinkRe = regexp.MustCompile(`\[\[([^\[\]]+)\]\]`)

// ExtractLinks returns the unique wiki-link targets in content, in order of
// first appearance. An alias after "|" is stripped: [[Title|shown]] links to
// "Title".
func ExtractLinks(content string) []string {
	seen := make(map[string]bool)
	var targets []string
	for _, m := range wikiLinkRe.FindAllStringSubmatch(content, -1) {
		target := m[1]
		if idx := strings.Index(target, "|"); idx >= 0 {
			target = target[:idx]
		}
		target = strings.TrimSpace(target)
		if target == "" || seen[target] {
			continue
		}
		seen[target] = true
		targets = append(targets, target)
	}
	return targets
}
