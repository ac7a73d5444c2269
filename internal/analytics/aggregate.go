// Package analytics turns the append-only performance log into the
// aggregates and chart series the stats views render. Every function here
// is pure over an event slice; nothing reaches back into session state.
package analytics

import (
	"sort"
	"time"

	"github.com/inferahq/infera/internal/practice"
)

// SubjectAccuracy is the per-subject rollup of the whole log.
type SubjectAccuracy struct {
	SubjectID string
	Attempted int
	Correct   int
	Accuracy  float64
}

// AccuracyBySubject groups the log by subject and computes accuracy per
// group. Events without a subject are grouped under the empty ID. Results
// are sorted by subject ID for stable rendering.
func AccuracyBySubject(log []practice.PerformanceEvent) []SubjectAccuracy {
	byID := make(map[string]*SubjectAccuracy)
	for _, ev := range log {
		agg := byID[ev.SubjectID]
		if agg == nil {
			agg = &SubjectAccuracy{SubjectID: ev.SubjectID}
			byID[ev.SubjectID] = agg
		}
		agg.Attempted++
		if ev.Correct {
			agg.Correct++
		}
	}

	out := make([]SubjectAccuracy, 0, len(byID))
	for _, agg := range byID {
		if agg.Attempted > 0 {
			agg.Accuracy = 100 * float64(agg.Correct) / float64(agg.Attempted)
		}
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubjectID < out[j].SubjectID })
	return out
}

// BestStreak returns the longest run of consecutive correct answers in the
// log. The log is already in append order, so a single scan suffices.
func BestStreak(log []practice.PerformanceEvent) int {
	best, run := 0, 0
	for _, ev := range log {
		if ev.Correct {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

// RecentActivity returns the last n events, newest first. It copies so the
// caller can hold the slice across later appends.
func RecentActivity(log []practice.PerformanceEvent, n int) []practice.PerformanceEvent {
	if n <= 0 || len(log) == 0 {
		return nil
	}
	if n > len(log) {
		n = len(log)
	}
	out := make([]practice.PerformanceEvent, n)
	for i := 0; i < n; i++ {
		out[i] = log[len(log)-1-i]
	}
	return out
}

// ActiveDays counts the distinct UTC calendar days that have at least one
// event.
func ActiveDays(log []practice.PerformanceEvent) int {
	days := make(map[string]struct{})
	for _, ev := range log {
		day := time.UnixMilli(ev.Timestamp).UTC().Format("2006-01-02")
		days[day] = struct{}{}
	}
	return len(days)
}
