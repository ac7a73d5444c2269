package analytics

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/inferahq/infera/internal/analytics"
	"github.com/inferahq/infera/internal/practice"
	"github.com/inferahq/infera/internal/ui/components"
	"github.com/inferahq/infera/internal/ui/theme"
)

const (
	maxChartBuckets = 16
	maxTrendDays    = 30
	maxRecent       = 5
)

func (s *Screen) View(width, height int) string {
	st := s.store.State()

	var b strings.Builder
	b.WriteString(s.renderRollup(st.Log) + "\n\n")
	b.WriteString(renderTrend(s.trend) + "\n\n")
	b.WriteString(renderSubjects(st.Log) + "\n")
	b.WriteString(renderSummary(st.Log))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.Card.Render(b.String()))
}

// renderRollup draws per-bucket accuracy as a vertical bar chart for the
// selected interval.
func (s *Screen) renderRollup(log []practice.PerformanceEvent) string {
	iv := analytics.Intervals[s.interval]
	buckets := analytics.Rollup(log, iv)

	title := theme.Title.Render("Accuracy by " + iv.Label() + " bucket")
	if len(buckets) == 0 {
		return title + "\n" + theme.Hint.Render("No attempts yet.")
	}
	if len(buckets) > maxChartBuckets {
		buckets = buckets[len(buckets)-maxChartBuckets:]
	}

	const chartHeight = 6
	var rows []string
	for row := chartHeight; row >= 1; row-- {
		threshold := float64(row) * 100 / chartHeight
		var line strings.Builder
		for _, bk := range buckets {
			if bk.Accuracy >= threshold-100/float64(chartHeight)/2 {
				line.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("█ "))
			} else {
				line.WriteString("  ")
			}
		}
		rows = append(rows, line.String())
	}

	var labels strings.Builder
	for _, bk := range buckets {
		labels.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("%-2d", bk.Attempted())))
	}

	return title + "\n" + strings.Join(rows, "\n") + "\n" +
		labels.String() + "\n" +
		theme.Hint.Render("bar height = bucket accuracy, label = attempts")
}

// renderTrend draws the synthetic daily candles: filled when the day
// closed above its open, hollow otherwise.
func renderTrend(trend []analytics.CandlestickPoint) string {
	title := theme.Title.Render("30-day trend")
	if len(trend) == 0 {
		return title
	}
	if len(trend) > maxTrendDays {
		trend = trend[len(trend)-maxTrendDays:]
	}

	var line strings.Builder
	for _, p := range trend {
		if p.Close >= p.Open {
			line.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("▲"))
		} else {
			line.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("▽"))
		}
	}

	last := trend[len(trend)-1]
	caption := theme.Hint.Render(fmt.Sprintf("%s  close %.0f  vol %d  (illustrative)",
		last.Date, last.Close, last.Volume))

	return title + "\n" + line.String() + "\n" + caption
}

func renderSubjects(log []practice.PerformanceEvent) string {
	subjects := analytics.AccuracyBySubject(log)
	if len(subjects) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("By subject") + "\n")
	for _, sub := range subjects {
		name := sub.SubjectID
		if name == "" {
			name = "(none)"
		}
		bar := components.NewProgressBar(fmt.Sprintf("%-16s", name), sub.Accuracy/100, true, 44)
		b.WriteString(bar.View() +
			lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("  %d/%d", sub.Correct, sub.Attempted)) + "\n")
	}
	return b.String()
}

func renderSummary(log []practice.PerformanceEvent) string {
	var b strings.Builder
	b.WriteString(theme.Hint.Render(fmt.Sprintf("best streak %d   active days %d",
		analytics.BestStreak(log), analytics.ActiveDays(log))))

	recent := analytics.RecentActivity(log, maxRecent)
	if len(recent) > 0 {
		b.WriteString("\n\n" + theme.Title.Render("Recent") + "\n")
		for _, ev := range recent {
			mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
			if !ev.Correct {
				mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
			}
			when := time.UnixMilli(ev.Timestamp).Format("15:04")
			b.WriteString(fmt.Sprintf("%s %s  %s\n", mark,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(when),
				lipgloss.NewStyle().Foreground(theme.Text).Render(ev.SubjectID)))
		}
	}
	return b.String()
}
