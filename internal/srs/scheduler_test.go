package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/srs"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestApplyReview_Easy(t *testing.T) {
	card := models.Card{
		EaseFactor:   2.5,
		IntervalDays: 10,
		DueAt:        testNow,
	}

	updated := srs.ApplyReview(card, 4, testNow)

	assert.Greater(t, updated.IntervalDays, card.IntervalDays, "interval should increase")
	assert.Greater(t, updated.EaseFactor, card.EaseFactor, "ease factor should increase")
	assert.Equal(t, 1, updated.TimesReviewed)
	assert.Equal(t, 1, updated.TimesCorrect)
	assert.True(t, updated.DueAt.After(testNow), "due date should be in the future")
}

func TestApplyReview_Again(t *testing.T) {
	card := models.Card{
		EaseFactor:   2.5,
		IntervalDays: 10,
		TimesCorrect: 5,
		DueAt:        testNow,
	}

	updated := srs.ApplyReview(card, 1, testNow)

	assert.Equal(t, 1, updated.IntervalDays, "interval should reset to 1 for 'again'")
	assert.Less(t, updated.EaseFactor, card.EaseFactor, "ease factor should decrease")
	assert.Equal(t, 1, updated.TimesReviewed)
	assert.Equal(t, 0, updated.TimesCorrect, "correct streak resets")
}

func TestApplyReview_Hard(t *testing.T) {
	card := models.Card{
		EaseFactor:   2.5,
		IntervalDays: 10,
		DueAt:        testNow,
	}

	updated := srs.ApplyReview(card, 2, testNow)

	assert.Equal(t, 1, updated.IntervalDays, "interval should reset to 1 for 'hard'")
	assert.Less(t, updated.EaseFactor, card.EaseFactor)
	assert.Equal(t, 0, updated.TimesCorrect)
}

func TestApplyReview_FirstReview(t *testing.T) {
	card := models.Card{
		EaseFactor:   2.5,
		IntervalDays: 0,
		DueAt:        testNow,
	}

	updated := srs.ApplyReview(card, 3, testNow)

	assert.Equal(t, 1, updated.IntervalDays, "first review sets interval to 1")
	assert.Equal(t, 1, updated.TimesReviewed)
	assert.Equal(t, 1, updated.TimesCorrect)
}

func TestApplyReview_IntervalCalculation(t *testing.T) {
	tests := []struct {
		name         string
		quality      int
		intervalDays int
		easeFactor   float64
		expected     int
	}{
		{
			name:         "interval 1 with good review becomes 6",
			quality:      3,
			intervalDays: 1,
			easeFactor:   2.5,
			expected:     6,
		},
		{
			name:         "interval 6 with good review multiplies by ease factor",
			quality:      3,
			intervalDays: 6,
			easeFactor:   2.5,
			expected:     15,
		},
		{
			name:         "interval 10 with easy review multiplies by raised ease factor",
			quality:      4,
			intervalDays: 10,
			easeFactor:   2.5,
			expected:     26, // 10 * 2.6
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := models.Card{
				EaseFactor:   tt.easeFactor,
				IntervalDays: tt.intervalDays,
				DueAt:        testNow,
			}

			updated := srs.ApplyReview(card, tt.quality, testNow)

			assert.Equal(t, tt.expected, updated.IntervalDays)
		})
	}
}

func TestApplyReview_MinEaseFactor(t *testing.T) {
	card := models.Card{
		EaseFactor:   1.3,
		IntervalDays: 10,
		DueAt:        testNow,
	}

	for i := 0; i < 10; i++ {
		card = srs.ApplyReview(card, 1, testNow)
		assert.GreaterOrEqual(t, card.EaseFactor, 1.3, "ease factor should not drop below 1.3")
	}
}

func TestNewCard_Defaults(t *testing.T) {
	card := srs.NewCard(7, "front", "back", testNow)

	assert.Equal(t, int64(7), card.NoteID)
	assert.Equal(t, 0, card.IntervalDays)
	assert.Equal(t, 2.5, card.EaseFactor)
	assert.Equal(t, testNow, card.DueAt, "new cards are due immediately")
}
