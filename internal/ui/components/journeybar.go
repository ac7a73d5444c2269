package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/inferahq/infera/internal/journey"
	"github.com/inferahq/infera/internal/ui/theme"
)

// JourneyBar renders journey progress as a row of step markers with the
// active step's title underneath.
type JourneyBar struct {
	Summary journey.Summary
}

// View renders the bar. Empty string when there is no journey.
func (b JourneyBar) View() string {
	items := b.Summary.Items
	if len(items) == 0 {
		return ""
	}

	marks := make([]string, len(items))
	for i, item := range items {
		switch {
		case item.Completed:
			marks[i] = lipgloss.NewStyle().Foreground(theme.Success).Render("●")
		case i == b.Summary.ActiveIndex:
			marks[i] = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("◉")
		default:
			marks[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
		}
	}
	line := strings.Join(marks, lipgloss.NewStyle().Foreground(theme.Border).Render("──"))

	caption := ""
	if b.Summary.Finished {
		caption = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Journey complete!")
	} else if b.Summary.Active != nil {
		caption = lipgloss.NewStyle().Foreground(theme.TextDim).Render(b.Summary.Active.Title)
	}

	if caption == "" {
		return line
	}
	return line + "\n" + caption
}
