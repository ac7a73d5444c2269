package analytics

import (
	"math/rand"
	"time"

	"github.com/inferahq/infera/internal/practice"
)

var demoSubjects = []string{"subj-math", "subj-physics", "subj-chemistry"}

// DemoEvents fabricates a month of plausible practice history for the demo
// mode. Each of the trailing `days` days gets 5 to 20 attempts spaced ten
// minutes apart, roughly three quarters correct, with streaks computed the
// same way a live session would.
func DemoEvents(now time.Time, days int, rng *rand.Rand) []practice.PerformanceEvent {
	var (
		out    []practice.PerformanceEvent
		streak int
	)

	for d := days - 1; d >= 0; d-- {
		day := now.AddDate(0, 0, -d)
		base := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, day.Location())

		n := 5 + rng.Intn(16)
		for i := 0; i < n; i++ {
			ok := rng.Float64() < 0.75
			accuracy := 0.0
			if ok {
				streak++
				accuracy = 100
			} else {
				streak = 0
			}

			out = append(out, practice.PerformanceEvent{
				Timestamp: base.Add(time.Duration(i) * 10 * time.Minute).UnixMilli(),
				Correct:   ok,
				Accuracy:  accuracy,
				Streak:    streak,
				SubjectID: demoSubjects[rng.Intn(len(demoSubjects))],
			})
		}
	}
	return out
}
