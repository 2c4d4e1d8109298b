package evaluator

import (
	"context"
	"regexp"
	"strings"

	"github.com/mbruna/mindvault/internal/models"
)

// HeuristicEvaluator grades by keyword overlap with the reference answer. It
// is deliberately simple: it keeps practice usable without an API key and
// gives tests a deterministic grader.
type HeuristicEvaluator struct{}

// NewHeuristic creates a heuristic evaluator.
func NewHeuristic() *HeuristicEvaluator {
	return &HeuristicEvaluator{}
}

var wordRe = regexp.MustCompile(`[a-z0-9]+`)

func tokenize(s string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range wordRe.FindAllString(strings.ToLower(s), -1) {
		if len(w) > 2 {
			out[w] = true
		}
	}
	return out
}

// Evaluate scores the answer by the fraction of reference keywords it covers.
func (e *HeuristicEvaluator) Evaluate(ctx context.Context, prompt, reference, answer string) (models.Evaluation, error) {
	refWords := tokenize(reference)
	ansWords := tokenize(answer)

	if len(refWords) == 0 {
		// Nothing to compare against; any non-empty answer passes.
		correct := strings.TrimSpace(answer) != ""
		quality := 1
		if correct {
			quality = 3
		}
		return models.Evaluation{Correct: correct, Quality: quality, Feedback: "No reference answer to compare against."}, nil
	}

	matched := 0
	for w := range refWords {
		if ansWords[w] {
			matched++
		}
	}
	coverage := float64(matched) / float64(len(refWords))

	ev := models.Evaluation{}
	switch {
	case coverage >= 0.8:
		ev = models.Evaluation{Correct: true, Quality: 4, Feedback: "Covers the reference answer."}
	case coverage >= 0.5:
		ev = models.Evaluation{Correct: true, Quality: 3, Feedback: "Covers most of the reference answer."}
	case coverage >= 0.25:
		ev = models.Evaluation{Correct: false, Quality: 2, Feedback: "Touches on the topic but misses key points."}
	default:
		ev = models.Evaluation{Correct: false, Quality: 1, Feedback: "Does not match the reference answer."}
	}
	return ev, nil
}
