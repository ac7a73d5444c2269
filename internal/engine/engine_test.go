package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/inferahq/infera/internal/gateway"
	"github.com/inferahq/infera/internal/logging"
	"github.com/inferahq/infera/internal/practice"
	"github.com/inferahq/infera/internal/question"
)

func testQuestion(id string, correctIndex int) *question.Question {
	opts := []question.Option{
		{ID: "a", Text: "1"},
		{ID: "b", Text: "2"},
		{ID: "c", Text: "3"},
	}
	opts[correctIndex].Correct = true
	return &question.Question{
		ID:           id,
		Text:         "pick one",
		Options:      opts,
		CorrectIndex: correctIndex,
		SubjectID:    "subj-math",
	}
}

func newTestEngine(src gateway.Source, sig gateway.CompletionSignaler) *Engine {
	return New(Options{
		SessionID: "sess-test",
		Store:     practice.NewStore(),
		Source:    src,
		Signaler:  sig,
		Logger:    logging.Nop(),
		Clock:     func() time.Time { return time.UnixMilli(1_700_000_000_000) },
	})
}

func TestFetchNext_LoadsQuestion(t *testing.T) {
	src := gateway.NewMockSource([]*question.Question{testQuestion("q1", 0)})
	e := newTestEngine(src, nil)

	e.FetchNext(context.Background(), "")

	s := e.Store().State()
	if s.Loading {
		t.Fatal("loading not released after fetch")
	}
	if s.CurrentQuestion == nil || s.CurrentQuestion.ID != "q1" {
		t.Fatalf("current question = %+v, want q1", s.CurrentQuestion)
	}
}

func TestFetchNext_FailureReleasesLoading(t *testing.T) {
	src := gateway.NewMockSource([]*question.Question{testQuestion("q1", 0)})
	e := newTestEngine(src, nil)

	// Load one question, then make the next fetch fail. The stale question
	// must not survive the failed fetch.
	e.FetchNext(context.Background(), "")
	if q := e.Store().State().CurrentQuestion; q == nil || q.ID != "q1" {
		t.Fatalf("setup fetch: current question = %+v, want q1", q)
	}

	src.NextErr = errors.New("service down")
	e.FetchNext(context.Background(), "")

	s := e.Store().State()
	if s.Loading {
		t.Fatal("loading must release on fetch failure")
	}
	if s.CurrentQuestion != nil {
		t.Fatalf("failed fetch must leave no question, got %+v", s.CurrentQuestion)
	}
}

// blockingSource parks NextQuestion calls until released, so tests can
// interleave overlapping fetches.
type blockingSource struct {
	mu      sync.Mutex
	waiting []chan *question.Question
	started chan struct{}
}

func newBlockingSource() *blockingSource {
	return &blockingSource{started: make(chan struct{}, 16)}
}

func (b *blockingSource) NextQuestion(_ context.Context, _ gateway.Request) (*question.Question, error) {
	ch := make(chan *question.Question)
	b.mu.Lock()
	b.waiting = append(b.waiting, ch)
	b.mu.Unlock()
	b.started <- struct{}{}
	return <-ch, nil
}

func (b *blockingSource) release(i int, q *question.Question) {
	b.mu.Lock()
	ch := b.waiting[i]
	b.mu.Unlock()
	ch <- q
}

func TestFetchNext_StaleResponseDropped(t *testing.T) {
	src := newBlockingSource()
	e := newTestEngine(src, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); e.FetchNext(context.Background(), "") }()
	<-src.started
	go func() { defer wg.Done(); e.FetchNext(context.Background(), "") }()
	<-src.started

	// Finish the second fetch first, then let the first one land late.
	src.release(1, testQuestion("fresh", 0))
	src.release(0, testQuestion("stale", 0))
	wg.Wait()

	s := e.Store().State()
	if s.CurrentQuestion == nil || s.CurrentQuestion.ID != "fresh" {
		t.Fatalf("current question = %+v, want the later fetch to win", s.CurrentQuestion)
	}
	if s.Loading {
		t.Fatal("loading not released")
	}
}

func TestSubmit_CorrectAnswer(t *testing.T) {
	src := gateway.NewMockSource([]*question.Question{testQuestion("q1", 1)})
	e := newTestEngine(src, nil)
	e.FetchNext(context.Background(), "")

	e.Submit(context.Background(), 1)

	s := e.Store().State()
	if s.TotalAttempted != 1 || s.TotalCorrect != 1 {
		t.Fatalf("attempted/correct = %d/%d, want 1/1", s.TotalAttempted, s.TotalCorrect)
	}
	if s.CurrentStreak != 1 {
		t.Fatalf("streak = %d, want 1", s.CurrentStreak)
	}
	if s.OverallAccuracy != 100 {
		t.Fatalf("accuracy = %v, want 100", s.OverallAccuracy)
	}
	if len(s.Log) != 1 || !s.Log[0].Correct || s.Log[0].SubjectID != "subj-math" {
		t.Fatalf("log = %+v", s.Log)
	}
	if s.Log[0].Accuracy != 100 {
		t.Fatalf("event accuracy = %v, want the per-event indicator 100", s.Log[0].Accuracy)
	}
}

func TestSubmit_IncorrectResetsStreak(t *testing.T) {
	deck := []*question.Question{
		testQuestion("q1", 0),
		testQuestion("q2", 0),
		testQuestion("q3", 0),
	}
	e := newTestEngine(gateway.NewMockSource(deck), nil)

	answers := []int{0, 0, 1} // correct, correct, incorrect
	for _, a := range answers {
		e.FetchNext(context.Background(), "")
		e.Submit(context.Background(), a)
	}

	s := e.Store().State()
	if s.CurrentStreak != 0 {
		t.Fatalf("streak = %d, want 0 after incorrect answer", s.CurrentStreak)
	}
	if s.TotalAttempted != 3 || s.TotalCorrect != 2 {
		t.Fatalf("attempted/correct = %d/%d, want 3/2", s.TotalAttempted, s.TotalCorrect)
	}
	if s.OverallAccuracy < 66 || s.OverallAccuracy > 67 {
		t.Fatalf("accuracy = %v, want ~66.7", s.OverallAccuracy)
	}

	// Each event carries the 100-or-0 indicator, never a running average.
	want := []float64{100, 100, 0}
	for i, ev := range s.Log {
		if ev.Accuracy != want[i] {
			t.Fatalf("event %d accuracy = %v, want %v", i, ev.Accuracy, want[i])
		}
	}
}

func TestSubmit_NoOpGuards(t *testing.T) {
	t.Run("no current question", func(t *testing.T) {
		e := newTestEngine(gateway.NewMockSource(nil), nil)
		e.Submit(context.Background(), 0)
		if got := e.Store().State().TotalAttempted; got != 0 {
			t.Fatalf("attempted = %d, want 0", got)
		}
	})

	t.Run("while loading", func(t *testing.T) {
		e := newTestEngine(gateway.NewMockSource([]*question.Question{testQuestion("q1", 0)}), nil)
		e.FetchNext(context.Background(), "")
		e.Store().Dispatch(practice.SetLoading{Loading: true})
		e.Submit(context.Background(), 0)
		if got := e.Store().State().TotalAttempted; got != 0 {
			t.Fatalf("attempted = %d, want 0", got)
		}
	})

	t.Run("double submit", func(t *testing.T) {
		e := newTestEngine(gateway.NewMockSource([]*question.Question{testQuestion("q1", 0)}), nil)
		e.FetchNext(context.Background(), "")
		e.Submit(context.Background(), 0)
		e.Submit(context.Background(), 1)
		s := e.Store().State()
		if s.TotalAttempted != 1 {
			t.Fatalf("attempted = %d, want 1", s.TotalAttempted)
		}
	})

	t.Run("option index out of range", func(t *testing.T) {
		e := newTestEngine(gateway.NewMockSource([]*question.Question{testQuestion("q1", 0)}), nil)
		e.FetchNext(context.Background(), "")
		e.Submit(context.Background(), 99)
		if got := e.Store().State().TotalAttempted; got != 0 {
			t.Fatalf("attempted = %d, want 0", got)
		}
	})
}

func TestSubmit_SignalsJourneyCompletion(t *testing.T) {
	q := testQuestion("q1", 0)
	q.JourneyItemID = "j1"
	q.CanBeCompleted = true
	q.Progress = &question.Progress{JourneyItems: []question.JourneyItem{{ID: "j1"}}}

	sig := gateway.NewMockSource(nil)
	e := newTestEngine(gateway.NewMockSource([]*question.Question{q}), sig)
	e.FetchNext(context.Background(), "")
	e.Submit(context.Background(), 0)

	if got := sig.Completed(); len(got) != 1 || got[0] != "j1" {
		t.Fatalf("completed = %v, want [j1]", got)
	}
}

func TestSubmit_NoSignalOnIncorrect(t *testing.T) {
	q := testQuestion("q1", 0)
	q.JourneyItemID = "j1"
	q.CanBeCompleted = true
	q.Progress = &question.Progress{JourneyItems: []question.JourneyItem{{ID: "j1"}}}

	sig := gateway.NewMockSource(nil)
	e := newTestEngine(gateway.NewMockSource([]*question.Question{q}), sig)
	e.FetchNext(context.Background(), "")
	e.Submit(context.Background(), 1)

	if got := sig.Completed(); len(got) != 0 {
		t.Fatalf("completed = %v, want none for a wrong answer", got)
	}
}

func TestSubmit_SignalFailureKeepsLocalAnswer(t *testing.T) {
	q := testQuestion("q1", 0)
	q.JourneyItemID = "j1"
	q.CanBeCompleted = true
	q.Progress = &question.Progress{JourneyItems: []question.JourneyItem{{ID: "j1"}}}

	sig := gateway.NewMockSource(nil)
	sig.CompleteErr = errors.New("service down")
	e := newTestEngine(gateway.NewMockSource([]*question.Question{q}), sig)
	e.FetchNext(context.Background(), "")
	e.Submit(context.Background(), 0)

	s := e.Store().State()
	if s.TotalAttempted != 1 || s.TotalCorrect != 1 || s.CurrentStreak != 1 {
		t.Fatalf("signal failure must not revert the answer: %+v", s)
	}
}

func TestReset_ClearsSessionAndAllowsReanswer(t *testing.T) {
	q := testQuestion("q1", 0)
	e := newTestEngine(gateway.NewMockSource([]*question.Question{q, q}), nil)
	e.FetchNext(context.Background(), "")
	e.Submit(context.Background(), 0)

	e.Reset()

	s := e.Store().State()
	if s.TotalAttempted != 0 || s.CurrentQuestion != nil || len(s.Log) != 0 {
		t.Fatalf("state after reset = %+v, want initial", s)
	}

	// The same question ID can be answered again in the fresh session.
	e.FetchNext(context.Background(), "")
	e.Submit(context.Background(), 0)
	if got := e.Store().State().TotalAttempted; got != 1 {
		t.Fatalf("attempted after reset = %d, want 1", got)
	}
}

func TestFetchNext_RequestCarriesSessionContext(t *testing.T) {
	var got gateway.Request
	src := sourceFunc(func(_ context.Context, req gateway.Request) (*question.Question, error) {
		got = req
		return testQuestion("q1", 0), nil
	})

	e := newTestEngine(src, nil)
	e.SetFilters([]string{"subj-math"}, nil, []string{"topic-algebra"})
	e.FetchNext(context.Background(), "harder please")

	if got.SessionID != "sess-test" || got.Hint != "harder please" {
		t.Fatalf("request = %+v", got)
	}
	if len(got.Subjects) != 1 || got.Subjects[0] != "subj-math" {
		t.Fatalf("subjects = %v", got.Subjects)
	}
	if got.RecentAccuracy != -1 {
		t.Fatalf("accuracy before any attempt = %v, want -1", got.RecentAccuracy)
	}
}

type sourceFunc func(ctx context.Context, req gateway.Request) (*question.Question, error)

func (f sourceFunc) NextQuestion(ctx context.Context, req gateway.Request) (*question.Question, error) {
	return f(ctx, req)
}
