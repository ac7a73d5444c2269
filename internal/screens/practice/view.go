package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/inferahq/infera/internal/journey"
	"github.com/inferahq/infera/internal/question"
	"github.com/inferahq/infera/internal/ui/components"
	"github.com/inferahq/infera/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	var body string
	switch {
	case s.errMsg != "":
		body = theme.Incorrect.Render(s.errMsg)
	case s.phase == phaseLoading:
		body = theme.Hint.Render("Fetching the next question...")
	case s.phase == phaseFinished:
		body = s.renderFinished()
	default:
		body = s.renderQuestion()
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (s *Screen) renderQuestion() string {
	st := s.engine.Store().State()
	q := st.CurrentQuestion
	if q == nil {
		return theme.Hint.Render("No question loaded.")
	}

	var b strings.Builder

	b.WriteString(renderBadges(q) + "\n\n")
	b.WriteString(s.mc.View())

	if s.phase == phaseFeedback {
		b.WriteString("\n" + s.renderFeedback(q))
	}

	if bar := (components.JourneyBar{Summary: journey.Derive(q)}).View(); bar != "" {
		b.WriteString("\n\n" + bar)
	}

	if s.noteActive {
		b.WriteString("\n\n" + theme.Body.Render("Steer the next questions:") + "\n" + s.noteInput.View())
	} else if s.hint != "" {
		b.WriteString("\n\n" + theme.Hint.Render("note: "+s.hint))
	}

	return theme.Card.Render(b.String())
}

func (s *Screen) renderFeedback(q *question.Question) string {
	var b strings.Builder

	if s.mc.IsCorrect() {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
	}

	if q.Concept != "" {
		b.WriteString("\n" + theme.Hint.Render("concept: "+q.Concept))
	}
	if q.AINote != "" {
		b.WriteString("\n" + theme.Hint.Render(q.AINote))
	}

	return b.String()
}

func (s *Screen) renderFinished() string {
	st := s.engine.Store().State()

	acc := "--"
	if st.TotalAttempted > 0 {
		acc = fmt.Sprintf("%.0f%%", st.OverallAccuracy)
	}

	body := theme.Title.Render("Journey complete!") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("Answered %d questions at %s accuracy.", st.TotalAttempted, acc)) + "\n" +
		theme.Hint.Render("Press A for the full stats, or Esc to go back.")

	return theme.Card.Render(body)
}

func renderBadges(q *question.Question) string {
	parts := []string{
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("Q%d", q.Number)),
	}
	if q.Difficulty != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Accent).Render(string(q.Difficulty)))
	}
	if q.Source == question.SourceAI {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Secondary).Render("AI"))
	}
	return strings.Join(parts, "  ")
}
