// Package session implements the in-memory queue engine shared by flashcard
// review and active-recall practice: an ordered work queue with a cursor,
// per-item response timing, an append-only outcome history with single-step
// undo, and derived statistics.
package session

import (
	"math"
	"sync"
	"time"
)

// WorkItem is one unit of review or practice. The payload is opaque to the
// engine; only the ID is inspected.
type WorkItem[P any] struct {
	ID      string
	Payload P
}

// Outcome is one immutable record of a completed item.
type Outcome[O any] struct {
	ItemID     string         `json:"item_id"`
	Result     O              `json:"result"`
	Seconds    int            `json:"seconds"`
	RecordedAt time.Time      `json:"recorded_at"`
	Extra      map[string]any `json:"extra,omitempty"`
}

// Engine owns the state of one session. All mutations are serialized behind a
// single mutex so the engine can be shared with HTTP handlers.
type Engine[P, O any] struct {
	mu        sync.Mutex
	items     []WorkItem[P]
	cursor    int
	dueCount  int
	reviewed  int
	startedAt time.Time
	activeAt  time.Time
	history   []Outcome[O]
	correct   func(O) bool
	now       func() time.Time
}

// Option configures an Engine.
type Option[P, O any] func(*Engine[P, O])

// WithClock overrides the engine's wall-clock source. Used in tests.
func WithClock[P, O any](now func() time.Time) Option[P, O] {
	return func(e *Engine[P, O]) { e.now = now }
}

// New creates an engine. The correct predicate decides whether an outcome
// counts as a success for accuracy statistics.
func New[P, O any](correct func(O) bool, opts ...Option[P, O]) *Engine[P, O] {
	e := &Engine[P, O]{
		correct: correct,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize replaces the queue with items, resets the cursor and history,
// and marks the session start. totalDue is the day's target, which may exceed
// len(items); values < 1 default to len(items).
func (e *Engine[P, O]) Initialize(items []WorkItem[P], totalDue int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = append([]WorkItem[P](nil), items...)
	e.cursor = 0
	e.reviewed = 0
	if totalDue < 1 {
		totalDue = len(items)
	}
	e.dueCount = totalDue
	e.startedAt = e.now()
	e.activeAt = time.Time{}
	e.history = nil
}

// Append extends the queue without touching the cursor or history and raises
// the due count by the number of added items.
func (e *Engine[P, O]) Append(items []WorkItem[P]) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = append(e.items, items...)
	e.dueCount += len(items)
}

// RemoveByID drops the first item with the given ID, for example when it was
// deleted server-side. The cursor shifts down when the removed item sat below
// it, so the current item stays the same, and is clamped to the new length.
func (e *Engine[P, O]) RemoveByID(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, item := range e.items {
		if item.ID != id {
			continue
		}
		e.items = append(e.items[:i], e.items[i+1:]...)
		if i < e.cursor {
			e.cursor--
		}
		if e.cursor > len(e.items) {
			e.cursor = len(e.items)
		}
		return
	}
}

// Current returns the item at the cursor. The second return is false when the
// queue is exhausted or empty; callers treat that as a normal terminal state.
func (e *Engine[P, O]) Current() (WorkItem[P], bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cursor < 0 || e.cursor >= len(e.items) {
		var zero WorkItem[P]
		return zero, false
	}
	return e.items[e.cursor], true
}

// RemainingCount returns how many items are left, never negative.
func (e *Engine[P, O]) RemainingCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if n := len(e.items) - e.cursor; n > 0 {
		return n
	}
	return 0
}

// IsExhausted reports whether the cursor has run past the last item.
func (e *Engine[P, O]) IsExhausted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor >= len(e.items)
}

// DueCount returns the session's due target.
func (e *Engine[P, O]) DueCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dueCount
}

// SetDueCount replaces the due target, floored at zero. Loaders call this
// after a mid-session refill when they recompute the day's target, since
// Append alone would count refetched items a second time.
func (e *Engine[P, O]) SetDueCount(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n < 0 {
		n = 0
	}
	e.dueCount = n
}

// QueueLength returns the number of loaded items.
func (e *Engine[P, O]) QueueLength() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items)
}

// ReviewedCount returns how many times the cursor has advanced, net of
// retreats.
func (e *Engine[P, O]) ReviewedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reviewed
}

// Advance moves the cursor forward one item, capped at the queue length, and
// clears the active timestamp so the next item starts a fresh timing window.
func (e *Engine[P, O]) Advance() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cursor < len(e.items) {
		e.cursor++
	}
	e.reviewed++
	e.activeAt = time.Time{}
}

// Retreat moves the cursor back one item, floored at zero, and clears the
// active timestamp.
func (e *Engine[P, O]) Retreat() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.retreatLocked()
}

func (e *Engine[P, O]) retreatLocked() {
	if e.cursor > 0 {
		e.cursor--
	}
	if e.reviewed > 0 {
		e.reviewed--
	}
	e.activeAt = time.Time{}
}

// MarkActive records now as the moment the current item became interactive
// (answer revealed or item surfaced). Starting a new window voids the old one.
func (e *Engine[P, O]) MarkActive() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.activeAt = e.now()
}

// ClearActive wipes the active timestamp without completing the item.
func (e *Engine[P, O]) ClearActive() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.activeAt = time.Time{}
}

// ElapsedSeconds returns whole seconds since MarkActive, or 0 when no active
// timestamp exists. Never negative.
func (e *Engine[P, O]) ElapsedSeconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elapsedSecondsLocked()
}

func (e *Engine[P, O]) elapsedSecondsLocked() int {
	if e.activeAt.IsZero() {
		return 0
	}
	secs := int(math.Round(e.now().Sub(e.activeAt).Seconds()))
	if secs < 0 {
		return 0
	}
	return secs
}

// Record appends an outcome for itemID with the elapsed time measured from
// the reveal timestamp, not from the Record call itself. It does not advance
// the cursor; callers pair it with Advance.
func (e *Engine[P, O]) Record(itemID string, result O) Outcome[O] {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := Outcome[O]{
		ItemID:     itemID,
		Result:     result,
		Seconds:    e.elapsedSecondsLocked(),
		RecordedAt: e.now(),
	}
	e.history = append(e.history, out)
	return out
}

// AttachLateField merges an extra field into the first outcome recorded for
// itemID, such as a confidence score arriving after the answer. A missing
// record is a silent no-op so stale UI events cannot wedge the session.
func (e *Engine[P, O]) AttachLateField(itemID, field string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.history {
		if e.history[i].ItemID != itemID {
			continue
		}
		if e.history[i].Extra == nil {
			e.history[i].Extra = make(map[string]any)
		}
		e.history[i].Extra[field] = value
		return
	}
}

// History returns a copy of the ordered outcome list.
func (e *Engine[P, O]) History() []Outcome[O] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Outcome[O](nil), e.history...)
}

// Undo reverses the most recent outcome: it pops the last history entry,
// retreats the cursor, and re-marks the restored item active so the UI can
// show its answer again. Returns false with no state change when there is
// nothing to undo (empty history or cursor already at zero).
func (e *Engine[P, O]) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.history) == 0 || e.cursor == 0 {
		return false
	}
	e.history = e.history[:len(e.history)-1]
	e.retreatLocked()
	e.activeAt = e.now()
	return true
}

// Reset returns the engine to its idle state, discarding all session state.
func (e *Engine[P, O]) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	e.cursor = 0
	e.dueCount = 0
	e.reviewed = 0
	e.startedAt = time.Time{}
	e.activeAt = time.Time{}
	e.history = nil
}

// StartedAt returns when the session was initialized, zero when idle.
func (e *Engine[P, O]) StartedAt() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startedAt
}
