// Package gateway defines how a practice session talks to question
// sources. The engine depends only on the interfaces here; the HTTP
// client, the AI generator and the mock all plug in behind them.
package gateway

import (
	"context"
	"errors"

	"github.com/inferahq/infera/internal/question"
)

// Request carries everything a source may use to pick the next question.
type Request struct {
	// SessionID identifies the practice session to the service.
	SessionID string

	// Hint is the learner's free-text steering note, empty when unset.
	Hint string

	// Subjects, Chapters and Topics are the active filters.
	Subjects []string
	Chapters []string
	Topics   []string

	// RecentAccuracy and Streak describe current performance so adaptive
	// sources can tune difficulty. RecentAccuracy is -1 before any attempt.
	RecentAccuracy float64
	Streak         int
}

// Source produces the next question for a session.
type Source interface {
	NextQuestion(ctx context.Context, req Request) (*question.Question, error)
}

// CompletionSignaler reports journey item completion back to the service.
// Failures are logged and swallowed by callers; local progress never
// depends on the signal landing.
type CompletionSignaler interface {
	MarkComplete(ctx context.Context, sessionID, journeyItemID string) error
}

// ErrNoQuestion is returned by a source that has nothing left to serve.
var ErrNoQuestion = errors.New("gateway: no question available")
