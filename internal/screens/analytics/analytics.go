// Package analytics renders the stats screen over the session log.
package analytics

import (
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/inferahq/infera/internal/analytics"
	"github.com/inferahq/infera/internal/practice"
	"github.com/inferahq/infera/internal/screen"
	"github.com/inferahq/infera/internal/ui/layout"
)

// Screen shows rollups, per-subject accuracy and the synthetic trend.
type Screen struct {
	store    *practice.Store
	interval int // index into analytics.Intervals
	trend    []analytics.CandlestickPoint
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the stats screen over the given session store.
func New(store *practice.Store) *Screen {
	return &Screen{
		store:    store,
		interval: 2, // default to 1h buckets
	}
}

func (s *Screen) Init() tea.Cmd {
	// The trend is decorative and regenerated once per screen visit. It is
	// seeded with the session's accuracy so it at least rhymes with reality,
	// but it is never mixed into the real rollups.
	st := s.store.State()
	seed := 70.0
	if st.TotalAttempted > 0 {
		seed = st.OverallAccuracy
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	s.trend = analytics.SyntheticTrend(time.Now().AddDate(0, 0, -29), 30, seed, rng)
	return nil
}

func (s *Screen) Title() string { return "Stats" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Interval"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if s.interval > 0 {
			s.interval--
		}
	case "right", "l":
		if s.interval < len(analytics.Intervals)-1 {
			s.interval++
		}
	}
	return s, nil
}
