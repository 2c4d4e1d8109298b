package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/session"
)

func TestProgress_ZeroDivisionSafety(t *testing.T) {
	e := newEngine(newFakeClock())

	p := e.Progress()

	assert.Equal(t, 0, p.PercentComplete, "percent complete is 0 when total is 0")
	assert.Equal(t, 0, p.Accuracy, "accuracy is 0 when nothing is completed")
}

func TestProgress_LiveCounts(t *testing.T) {
	clock := newFakeClock()
	e := newEngine(clock)
	e.Initialize(items("a", "b", "c", "d"), 0)

	e.Record("a", session.RatingGood)
	e.Advance()
	e.Record("b", session.RatingAgain)
	e.Advance()
	clock.Advance(95 * time.Second)

	p := e.Progress()
	assert.Equal(t, 2, p.Completed)
	assert.Equal(t, 4, p.Total)
	assert.Equal(t, 1, p.Correct)
	assert.Equal(t, 50, p.PercentComplete)
	assert.Equal(t, 50, p.Accuracy)
	assert.Equal(t, 2, p.Remaining)
	assert.Equal(t, int64(95_000), p.ElapsedMs)
	assert.Equal(t, "1m 35s", p.Elapsed)
}

func TestProgress_AccuracyRounds(t *testing.T) {
	e := newEngine(newFakeClock())
	e.Initialize(items("a", "b", "c"), 3)

	e.Record("a", session.RatingGood)
	e.Advance()
	e.Record("b", session.RatingGood)
	e.Advance()
	e.Record("c", session.RatingAgain)
	e.Advance()

	p := e.Progress()
	assert.Equal(t, 67, p.Accuracy, "2/3 rounds to 67")
	assert.Equal(t, 100, p.PercentComplete)
}

func TestEndToEndScenario(t *testing.T) {
	clock := newFakeClock()
	e := newEngine(clock)
	e.Initialize(items("a", "b", "c"), 3)

	for i, rating := range []session.Rating{session.RatingGood, session.RatingGood, session.RatingAgain} {
		cur, ok := e.Current()
		require.True(t, ok, "item %d should be current", i)
		e.MarkActive()
		clock.Advance(time.Duration(i+1) * time.Second)
		e.Record(cur.ID, rating)
		e.Advance()
	}

	require.True(t, e.IsExhausted())

	s := e.Summary()
	assert.Equal(t, 3, s.Completed)
	assert.Equal(t, 2, s.Correct)
	assert.Equal(t, 67, s.Accuracy)
	assert.Equal(t, 2, s.AvgResponseSeconds, "(1+2+3)/3 floors to 2")
	require.Len(t, s.Outcomes, 3)
	assert.Equal(t, "a", s.Outcomes[0].ItemID)
	assert.Equal(t, "c", s.Outcomes[2].ItemID)
}

func TestAvgResponseSeconds_EmptyHistory(t *testing.T) {
	e := newEngine(newFakeClock())
	e.Initialize(items("a"), 0)

	assert.Equal(t, 0, e.AvgResponseSeconds())
}

func TestAvgResponseSeconds_FloorsDivision(t *testing.T) {
	clock := newFakeClock()
	e := newEngine(clock)
	e.Initialize(items("a", "b"), 0)

	e.MarkActive()
	clock.Advance(3 * time.Second)
	e.Record("a", session.RatingGood)
	e.Advance()

	e.MarkActive()
	clock.Advance(4 * time.Second)
	e.Record("b", session.RatingGood)
	e.Advance()

	assert.Equal(t, 3, e.AvgResponseSeconds(), "(3+4)/2 floors to 3")
}

func TestRatingDistribution_Buckets(t *testing.T) {
	e := newEngine(newFakeClock())
	e.Initialize(items("a", "b", "c", "d", "e"), 0)

	for i, r := range []session.Rating{1, 2, 3, 3, 4} {
		e.Record(items("a", "b", "c", "d", "e")[i].ID, r)
		e.Advance()
	}

	dist := session.RatingDistribution(e)
	assert.Equal(t, 1, dist[session.RatingAgain])
	assert.Equal(t, 1, dist[session.RatingHard])
	assert.Equal(t, 2, dist[session.RatingGood])
	assert.Equal(t, 1, dist[session.RatingEasy])
}

func TestRatingDistribution_OutOfRangeIgnored(t *testing.T) {
	e := newEngine(newFakeClock())
	e.Initialize(items("a", "b"), 0)

	e.Record("a", session.Rating(5))
	e.Advance()
	e.Record("b", session.Rating(0))
	e.Advance()

	dist := session.RatingDistribution(e)
	for rating, count := range dist {
		assert.Equal(t, 0, count, "bucket %d should be untouched by malformed ratings", rating)
	}
}

func TestFormatDuration_Boundaries(t *testing.T) {
	tests := []struct {
		ms       int64
		expected string
	}{
		{0, "0s"},
		{999, "0s"},
		{45_000, "45s"},
		{59_999, "59s"},
		{60_000, "1m 0s"},
		{125_000, "2m 5s"},
		{3_599_000, "59m 59s"},
		{3_600_000, "1h 0m"},
		{5_400_000, "1h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, session.FormatDuration(tt.ms))
		})
	}
}

func TestPracticeEngine_CorrectnessFlagDrivesAccuracy(t *testing.T) {
	clock := newFakeClock()
	e := session.NewPracticeEngine[string](session.WithClock[string, models.Evaluation](clock.Now))
	e.Initialize(items("x", "y"), 0)

	e.MarkActive()
	clock.Advance(2 * time.Second)
	e.Record("x", models.Evaluation{Correct: true, Quality: 4, Feedback: "spot on"})
	e.Advance()

	e.MarkActive()
	clock.Advance(6 * time.Second)
	e.Record("y", models.Evaluation{Correct: false, Quality: 1, Feedback: "missed the key idea"})
	e.Advance()

	p := e.Progress()
	assert.Equal(t, 2, p.Completed)
	assert.Equal(t, 1, p.Correct)
	assert.Equal(t, 50, p.Accuracy)
	assert.Equal(t, 4, e.AvgResponseSeconds())
}

func TestPracticeEngine_LateConfidence(t *testing.T) {
	e := session.NewPracticeEngine[string]()
	e.Initialize(items("x"), 0)

	e.Record("x", models.Evaluation{Correct: true, Quality: 3})
	e.Advance()
	e.AttachLateField("x", session.ConfidenceField, 0.9)

	history := e.History()
	require.Len(t, history, 1)
	assert.Equal(t, 0.9, history[0].Extra[session.ConfidenceField])
	assert.True(t, history[0].Result.Correct, "evaluation payload untouched by late field")
}
