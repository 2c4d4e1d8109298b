package session

import (
	"fmt"
	"math"
)

// Progress is the live view of a running session. All fields are derived; no
// calls mutate engine state.
type Progress struct {
	Completed       int    `json:"completed"`
	Total           int    `json:"total"`
	Correct         int    `json:"correct"`
	PercentComplete int    `json:"percent_complete"`
	Accuracy        int    `json:"accuracy"`
	Remaining       int    `json:"remaining"`
	ElapsedMs       int64  `json:"elapsed_ms"`
	Elapsed         string `json:"elapsed"`
}

// Summary extends Progress with the full outcome list for a completion screen.
type Summary[O any] struct {
	Progress
	AvgResponseSeconds int          `json:"avg_response_seconds"`
	Outcomes           []Outcome[O] `json:"outcomes"`
}

// Progress computes the live progress snapshot. Accuracy and percent complete
// degrade to 0 instead of dividing by zero.
func (e *Engine[P, O]) Progress() Progress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progressLocked()
}

func (e *Engine[P, O]) progressLocked() Progress {
	completed := len(e.history)
	correct := 0
	for _, out := range e.history {
		if e.correct != nil && e.correct(out.Result) {
			correct++
		}
	}

	p := Progress{
		Completed: completed,
		Total:     e.dueCount,
		Correct:   correct,
	}
	if p.Total > 0 {
		p.PercentComplete = int(math.Round(float64(completed) / float64(p.Total) * 100))
	}
	if completed > 0 {
		p.Accuracy = int(math.Round(float64(correct) / float64(completed) * 100))
	}
	if n := len(e.items) - e.cursor; n > 0 {
		p.Remaining = n
	}
	if !e.startedAt.IsZero() {
		p.ElapsedMs = e.now().Sub(e.startedAt).Milliseconds()
		if p.ElapsedMs < 0 {
			p.ElapsedMs = 0
		}
	}
	p.Elapsed = FormatDuration(p.ElapsedMs)
	return p
}

// AvgResponseSeconds returns the mean recorded response time, rounded down to
// whole seconds, or 0 when nothing has been recorded.
func (e *Engine[P, O]) AvgResponseSeconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.avgResponseLocked()
}

func (e *Engine[P, O]) avgResponseLocked() int {
	if len(e.history) == 0 {
		return 0
	}
	sum := 0
	for _, out := range e.history {
		sum += out.Seconds
	}
	return sum / len(e.history)
}

// Summary computes the end-of-session view: live progress plus average
// response time and the ordered outcome list.
func (e *Engine[P, O]) Summary() Summary[O] {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Summary[O]{
		Progress:           e.progressLocked(),
		AvgResponseSeconds: e.avgResponseLocked(),
		Outcomes:           append([]Outcome[O](nil), e.history...),
	}
}

// FormatDuration renders milliseconds as "Hh Mm" above an hour, "Mm Ss" above
// a minute, and "Ss" below that. The three-tier format is a user-facing
// contract.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	switch {
	case ms >= 3_600_000:
		h := ms / 3_600_000
		m := ms % 3_600_000 / 60_000
		return fmt.Sprintf("%dh %dm", h, m)
	case ms >= 60_000:
		m := ms / 60_000
		s := ms % 60_000 / 1000
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", ms/1000)
	}
}
