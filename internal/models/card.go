package models

import "time"

type Card struct {
	ID            int64     `json:"id"`
	NoteID        int64     `json:"note_id"`
	Front         string    `json:"front"`
	Back          string    `json:"back"`
	DueAt         time.Time `json:"due_at"`
	IntervalDays  int       `json:"interval_days"`
	EaseFactor    float64   `json:"ease_factor"`
	TimesReviewed int       `json:"times_reviewed"`
	TimesCorrect  int       `json:"times_correct"`
	CreatedAt     time.Time `json:"created_at"`
}

type CardWithNote struct {
	Card
	NoteTitle string `json:"note_title"`
}

type ReviewRecord struct {
	ID          int64     `json:"id"`
	CardID      int64     `json:"card_id"`
	Quality     int       `json:"quality"`
	TimeSeconds int       `json:"time_seconds"`
	ReviewedAt  time.Time `json:"reviewed_at"`
}
