// Package practice is the live question-answering screen.
package practice

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/inferahq/infera/internal/engine"
	"github.com/inferahq/infera/internal/journey"
	"github.com/inferahq/infera/internal/router"
	"github.com/inferahq/infera/internal/screen"
	"github.com/inferahq/infera/internal/screens/analytics"
	"github.com/inferahq/infera/internal/ui/components"
	"github.com/inferahq/infera/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseFeedback
	phaseFinished
)

// Screen runs a practice session against the engine.
type Screen struct {
	engine *engine.Engine

	phase      phase
	mc         components.MultiChoice
	noteInput  components.TextInput
	noteActive bool
	hint       string
	lastAnswer int
	errMsg     string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the practice screen.
func New(e *engine.Engine) *Screen {
	return &Screen{
		engine:     e,
		phase:      phaseLoading,
		noteInput:  components.NewTextInput("e.g. more geometry, easier questions...", 80),
		lastAnswer: -1,
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.fetchCmd()
}

func (s *Screen) Title() string { return "Practice" }

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.noteActive {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply note"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	switch s.phase {
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "A", Description: "Stats"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseFinished:
		return []layout.KeyHint{
			{Key: "A", Description: "Stats"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "N", Description: "Steering note"},
			{Key: "A", Description: "Stats"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		return s.handleFetchDone()
	case answerRecordedMsg:
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.noteActive {
		var cmd tea.Cmd
		s.noteInput, cmd = s.noteInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.noteActive {
		switch msg.String() {
		case "enter":
			s.hint = s.noteInput.Value()
			s.noteActive = false
			return s, nil
		case "esc":
			s.noteActive = false
			return s, nil
		}
		var cmd tea.Cmd
		s.noteInput, cmd = s.noteInput.Update(msg)
		return s, cmd
	}

	switch msg.String() {
	case "a":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: analytics.New(s.engine.Store())}
		}
	case "n":
		if s.phase == phaseAnswering {
			s.noteActive = true
			return s, s.noteInput.Init()
		}
	}

	switch s.phase {
	case phaseAnswering:
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		if s.mc.Submitted {
			s.lastAnswer = s.mc.ChosenIndex
			s.phase = phaseFeedback
			return s, tea.Batch(cmd, s.submitCmd(s.mc.ChosenIndex))
		}
		return s, cmd

	case phaseFeedback:
		if msg.String() == "enter" {
			if s.journeyFinished() {
				s.phase = phaseFinished
				return s, nil
			}
			s.phase = phaseLoading
			return s, s.fetchCmd()
		}

	case phaseLoading:
		// Ignore keys while a fetch is in flight.
	}

	return s, nil
}

func (s *Screen) handleFetchDone() (screen.Screen, tea.Cmd) {
	st := s.engine.Store().State()
	q := st.CurrentQuestion
	if q == nil {
		s.errMsg = "Could not load the next question. Press Enter to retry."
		s.phase = phaseFeedback
		return s, nil
	}

	s.errMsg = ""

	// The freshest journey snapshot decides whether the session is over,
	// not the one from before the last answer.
	if journey.Derive(q).Finished {
		s.phase = phaseFinished
		return s, nil
	}

	opts := make([]string, len(q.Options))
	for i, o := range q.Options {
		opts[i] = o.Text
	}
	s.mc = components.NewMultiChoice(q.Text, opts, q.CorrectIndex)
	s.lastAnswer = -1
	s.phase = phaseAnswering
	return s, nil
}

func (s *Screen) fetchCmd() tea.Cmd {
	hint := s.hint
	return func() tea.Msg {
		s.engine.FetchNext(context.Background(), hint)
		return fetchDoneMsg{}
	}
}

func (s *Screen) submitCmd(optionIndex int) tea.Cmd {
	return func() tea.Msg {
		s.engine.Submit(context.Background(), optionIndex)
		return answerRecordedMsg{}
	}
}

func (s *Screen) journeyFinished() bool {
	return journey.Derive(s.engine.Store().State().CurrentQuestion).Finished
}
