package session

// Rating is the four-point quality scale used by flashcard review.
type Rating int

const (
	RatingAgain Rating = 1
	RatingHard  Rating = 2
	RatingGood  Rating = 3
	RatingEasy  Rating = 4
)

// RatingCorrect is the review success predicate: Good and Easy count as
// correct, Again and Hard do not.
func RatingCorrect(r Rating) bool {
	return r >= RatingGood
}

// NewReviewEngine creates an engine specialized for flashcard review.
func NewReviewEngine[P any](opts ...Option[P, Rating]) *Engine[P, Rating] {
	return New[P, Rating](RatingCorrect, opts...)
}

// RatingDistribution buckets recorded ratings into the four quality levels.
// Out-of-range ratings are excluded from every bucket so malformed data
// cannot corrupt the display.
func RatingDistribution[P any](e *Engine[P, Rating]) map[Rating]int {
	dist := map[Rating]int{
		RatingAgain: 0,
		RatingHard:  0,
		RatingGood:  0,
		RatingEasy:  0,
	}
	for _, out := range e.History() {
		if out.Result < RatingAgain || out.Result > RatingEasy {
			continue
		}
		dist[out.Result]++
	}
	return dist
}
