package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbruna/mindvault/internal/markdown"
)

func TestRender_BasicMarkdown(t *testing.T) {
	out, err := markdown.Render("# Heading\n\nSome *emphasis*.")
	require.NoError(t, err)

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<em>emphasis</em>")
}

func TestRender_GFMTable(t *testing.T) {
	out, err := markdown.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)

	assert.Contains(t, out, "<table>")
}

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "simple links in order",
			content:  "see [[Alpha]] and [[Beta]]",
			expected: []string{"Alpha", "Beta"},
		},
		{
			name:     "duplicates collapsed",
			content:  "[[Alpha]] then [[Alpha]] again",
			expected: []string{"Alpha"},
		},
		{
			name:     "alias stripped",
			content:  "[[Graph Theory|graphs]]",
			expected: []string{"Graph Theory"},
		},
		{
			name:     "whitespace trimmed",
			content:  "[[ Spaced Title ]]",
			expected: []string{"Spaced Title"},
		},
		{
			name:     "no links",
			content:  "plain text with [brackets] but no wiki links",
			expected: nil,
		},
		{
			name:     "empty target ignored",
			content:  "[[ ]] and [[Real]]",
			expected: []string{"Real"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, markdown.ExtractLinks(tt.content))
		})
	}
}
