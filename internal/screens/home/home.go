// Package home is the landing screen.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/inferahq/infera/internal/engine"
	"github.com/inferahq/infera/internal/router"
	"github.com/inferahq/infera/internal/screen"
	"github.com/inferahq/infera/internal/screens/analytics"
	"github.com/inferahq/infera/internal/screens/practice"
	"github.com/inferahq/infera/internal/ui/components"
	"github.com/inferahq/infera/internal/ui/theme"
)

// Screen is the main menu.
type Screen struct {
	engine *engine.Engine
	menu   components.Menu
}

var _ screen.Screen = (*Screen)(nil)

// New creates the home screen.
func New(e *engine.Engine) *Screen {
	s := &Screen{engine: e}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start practicing", Hint: "adaptive questions, one at a time", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: practice.New(e)}
			}
		}},
		{Label: "Session stats", Hint: "accuracy rollups and streaks", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: analytics.New(e.Store())}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return s
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Home" }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	st := s.engine.Store().State()

	var b strings.Builder
	b.WriteString(theme.Title.Render("Infera") + "\n")
	b.WriteString(theme.Subtitle.Render("adaptive practice in your terminal") + "\n\n")

	if st.TotalAttempted > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("this session: %d answered, %.0f%% accuracy, streak %d",
			st.TotalAttempted, st.OverallAccuracy, st.CurrentStreak)) + "\n\n")
	}
	b.WriteString(s.menu.View())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}
