// Package srs schedules flashcards with an SM-2 variant on the four-point
// Again/Hard/Good/Easy scale.
package srs

import (
	"time"

	"github.com/mbruna/mindvault/internal/models"
)

// ApplyReview updates card scheduling for one review.
// quality: 1=Again, 2=Hard, 3=Good, 4=Easy
func ApplyReview(card models.Card, quality int, now time.Time) models.Card {
	const minEase = 1.3
	ef := card.EaseFactor
	ef = ef + 0.1 - float64(4-quality)*(0.08+float64(4-quality)*0.02)
	if ef < minEase {
		ef = minEase
	}

	interval := 1
	switch {
	case quality < 3:
		interval = 1
	case card.IntervalDays == 0:
		interval = 1
	case card.IntervalDays == 1:
		interval = 6
	default:
		interval = int(float64(card.IntervalDays) * ef)
	}

	card.TimesReviewed++
	if quality >= 3 {
		card.TimesCorrect++
	} else {
		card.TimesCorrect = 0
	}
	card.IntervalDays = interval
	card.EaseFactor = ef
	card.DueAt = now.Add(time.Duration(interval) * 24 * time.Hour)
	return card
}

// NewCard returns scheduling defaults for a freshly created card: due
// immediately with the standard starting ease.
func NewCard(noteID int64, front, back string, now time.Time) models.Card {
	return models.Card{
		NoteID:       noteID,
		Front:        front,
		Back:         back,
		DueAt:        now,
		IntervalDays: 0,
		EaseFactor:   2.5,
	}
}
