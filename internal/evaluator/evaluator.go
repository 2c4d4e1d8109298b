// Package evaluator grades free-text practice answers against a reference
// answer. The LLM-backed implementation delegates to an OpenAI-compatible
// endpoint; the heuristic one is used when no API key is configured and in
// tests.
package evaluator

import (
	"context"

	"github.com/mbruna/mindvault/internal/models"
)

// Evaluator grades one answer. Implementations must return an Evaluation with
// a correctness flag and a 1-4 quality rating.
type Evaluator interface {
	Evaluate(ctx context.Context, prompt, reference, answer string) (models.Evaluation, error)
}
