package session

import "github.com/mbruna/mindvault/internal/models"

// ConfidenceField is the late-attached field name for a post-answer
// confidence score.
const ConfidenceField = "confidence"

// EvaluationCorrect is the practice success predicate: the evaluator's
// explicit correctness flag decides.
func EvaluationCorrect(ev models.Evaluation) bool {
	return ev.Correct
}

// NewPracticeEngine creates an engine specialized for active-recall practice,
// where outcomes carry the evaluator's full judgment.
func NewPracticeEngine[P any](opts ...Option[P, models.Evaluation]) *Engine[P, models.Evaluation] {
	return New[P, models.Evaluation](EvaluationCorrect, opts...)
}
