// Package practice holds the session state machine: an immutable State
// value, a pure reducer over it, and a Store handle that owns the current
// value for one practice session. All I/O lives outside this package;
// network results arrive as actions.
package practice

import "github.com/inferahq/infera/internal/question"

// PerformanceEvent is one immutable record of a single answered question.
// Events are append-only: created once per submitted answer, never mutated
// or removed.
type PerformanceEvent struct {
	// Timestamp is epoch milliseconds at submission time. Within one
	// session timestamps are non-decreasing in insertion order.
	Timestamp int64

	Correct bool

	// Accuracy is the per-event indicator: 100 when correct, 0 when not.
	// Running averages live in the derived State counters, not here.
	Accuracy float64

	// Streak is the running streak value after this event.
	Streak int

	SubjectID string
	ChapterID string
	TopicID   string
}

// Filters is the subject/chapter/topic filter selection.
type Filters struct {
	Subjects []string
	Chapters []string
	Topics   []string
}

// State is the full session state. Treat values as immutable: the reducer
// returns fresh copies and never writes through shared slices.
type State struct {
	CurrentQuestion *question.Question
	Filters         Filters

	// Log is the performance log; insertion order is chronological order.
	Log []PerformanceEvent

	// Derived counters, recomputed on every append.
	CurrentStreak   int
	TotalAttempted  int
	TotalCorrect    int
	OverallAccuracy float64

	Loading bool
}

// Initial returns the empty session state.
func Initial() State {
	return State{}
}
