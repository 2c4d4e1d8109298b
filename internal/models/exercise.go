package models

import "time"

type Exercise struct {
	ID        int64     `json:"id"`
	NoteID    int64     `json:"note_id"`
	Prompt    string    `json:"prompt"`
	Answer    string    `json:"answer"` // reference answer used for grading
	CreatedAt time.Time `json:"created_at"`
}

type ExerciseWithNote struct {
	Exercise
	NoteTitle string `json:"note_title"`
}

// Evaluation is the graded result of one free-text practice answer.
type Evaluation struct {
	Correct  bool   `json:"correct"`
	Quality  int    `json:"quality"` // 1-4, same scale as review ratings
	Feedback string `json:"feedback"`
}

type PracticeRecord struct {
	ID          int64      `json:"id"`
	ExerciseID  int64      `json:"exercise_id"`
	Answer      string     `json:"answer"`
	Correct     bool       `json:"correct"`
	Quality     int        `json:"quality"`
	Feedback    string     `json:"feedback"`
	Confidence  *float64   `json:"confidence,omitempty"`
	TimeSeconds int        `json:"time_seconds"`
	PracticedAt time.Time  `json:"practiced_at"`
}
