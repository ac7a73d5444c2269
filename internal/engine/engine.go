// Package engine drives a practice session. It owns the fetch and submit
// protocols around the session store: the store stays a pure state
// container while the engine talks to question sources, the journal and
// the completion signaler.
package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/inferahq/infera/internal/gateway"
	"github.com/inferahq/infera/internal/history"
	"github.com/inferahq/infera/internal/practice"
)

// Engine coordinates one practice session.
type Engine struct {
	store    *practice.Store
	source   gateway.Source
	signaler gateway.CompletionSignaler
	journal  *history.Journal
	log      *zap.Logger
	clock    func() time.Time

	sessionID string

	mu       sync.Mutex
	fetchSeq uint64
	answered map[string]bool
}

// Options configures an Engine. Source, Store, Logger and SessionID are
// required. Signaler and Journal are optional: without a signaler journey
// completion stays local, without a journal nothing persists.
type Options struct {
	SessionID string
	Store     *practice.Store
	Source    gateway.Source
	Signaler  gateway.CompletionSignaler
	Journal   *history.Journal
	Logger    *zap.Logger
	Clock     func() time.Time
}

// New builds an Engine.
func New(opts Options) *Engine {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		store:     opts.Store,
		source:    opts.Source,
		signaler:  opts.Signaler,
		journal:   opts.Journal,
		log:       opts.Logger,
		clock:     clock,
		sessionID: opts.SessionID,
		answered:  make(map[string]bool),
	}
}

// Store exposes the session store for views.
func (e *Engine) Store() *practice.Store { return e.store }

// SessionID returns the session identifier.
func (e *Engine) SessionID() string { return e.sessionID }

// FetchNext loads the next question into the session. The current
// question is cleared up front so the view shows a loading state rather
// than a stale question, and on failure it stays nil. Loading is set for
// the duration of the fetch and always released, success or failure.
// Overlapping fetches are last-write-wins: a response arriving after a
// newer fetch started is dropped.
func (e *Engine) FetchNext(ctx context.Context, hint string) {
	e.mu.Lock()
	e.fetchSeq++
	token := e.fetchSeq
	e.mu.Unlock()

	e.store.Dispatch(practice.SetCurrentQuestion{Question: nil})
	e.store.Dispatch(practice.SetLoading{Loading: true})

	q, err := e.source.NextQuestion(ctx, e.buildRequest(hint))

	e.mu.Lock()
	stale := token != e.fetchSeq
	e.mu.Unlock()
	if stale {
		e.log.Debug("dropping stale fetch response", zap.Uint64("token", token))
		return
	}

	if err != nil {
		e.store.Dispatch(practice.SetLoading{Loading: false})
		e.log.Warn("fetch next question failed", zap.Error(err))
		return
	}

	e.store.Dispatch(practice.SetCurrentQuestion{Question: q})
	e.store.Dispatch(practice.SetLoading{Loading: false})
	e.log.Info("question loaded",
		zap.String("question_id", q.ID),
		zap.String("source", q.Source),
	)
}

// Submit records the learner's answer to the current question. It is a
// silent no-op when no question is loaded, a fetch is in flight, the
// question was already answered, or the option index is out of range.
// Journal writes and the journey completion signal are best effort and
// never affect the recorded answer.
func (e *Engine) Submit(ctx context.Context, optionIndex int) {
	s := e.store.State()
	q := s.CurrentQuestion
	if q == nil || s.Loading {
		return
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		e.log.Warn("submit with option index out of range",
			zap.String("question_id", q.ID),
			zap.Int("option_index", optionIndex),
		)
		return
	}

	e.mu.Lock()
	if e.answered[q.ID] {
		e.mu.Unlock()
		return
	}
	e.answered[q.ID] = true
	e.mu.Unlock()

	correct := optionIndex == q.CorrectIndex
	streak := 0
	accuracy := 0.0
	if correct {
		streak = s.CurrentStreak + 1
		accuracy = 100
	}

	ev := practice.PerformanceEvent{
		Timestamp: e.clock().UnixMilli(),
		Correct:   correct,
		Accuracy:  accuracy,
		Streak:    streak,
		SubjectID: q.SubjectID,
		ChapterID: q.ChapterID,
		TopicID:   q.TopicID,
	}
	e.store.Dispatch(practice.AddPerformanceEvent{Event: ev})

	if e.journal != nil {
		if err := e.journal.Append(ctx, e.sessionID, ev); err != nil {
			e.log.Warn("journal append failed", zap.Error(err))
		}
	}

	if correct && q.CanBeCompleted && q.JourneyItemID != "" && e.signaler != nil {
		if err := e.signaler.MarkComplete(ctx, e.sessionID, q.JourneyItemID); err != nil {
			e.log.Warn("journey completion signal failed",
				zap.String("journey_item_id", q.JourneyItemID),
				zap.Error(err),
			)
		}
	}

	e.log.Info("answer recorded",
		zap.String("question_id", q.ID),
		zap.Bool("correct", correct),
		zap.Int("streak", streak),
	)
}

// SetFilters updates the session filters. Nil slices leave the dimension
// unchanged.
func (e *Engine) SetFilters(subjects, chapters, topics []string) {
	e.store.Dispatch(practice.UpdateFilters{
		Subjects: subjects,
		Chapters: chapters,
		Topics:   topics,
	})
}

// Reset clears the session back to its initial state. Persisted history is
// untouched.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.answered = make(map[string]bool)
	e.mu.Unlock()
	e.store.Dispatch(practice.Reset{})
}

func (e *Engine) buildRequest(hint string) gateway.Request {
	s := e.store.State()
	acc := -1.0
	if s.TotalAttempted > 0 {
		acc = s.OverallAccuracy
	}
	return gateway.Request{
		SessionID:      e.sessionID,
		Hint:           hint,
		Subjects:       s.Filters.Subjects,
		Chapters:       s.Filters.Chapters,
		Topics:         s.Filters.Topics,
		RecentAccuracy: acc,
		Streak:         s.CurrentStreak,
	}
}
