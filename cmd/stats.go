package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/inferahq/infera/internal/analytics"
	"github.com/inferahq/infera/internal/history"
	"github.com/inferahq/infera/internal/practice"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print practice statistics from the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		journal, err := history.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer journal.Close()

		log, err := journal.Events(cmd.Context())
		if err != nil {
			return fmt.Errorf("read journal: %w", err)
		}
		demo, _ := cmd.Flags().GetBool("demo")
		log = withDemoFallback(log, demo, time.Now())
		if len(log) == 0 {
			fmt.Println("No practice history yet. Run `infera practice` first.")
			return nil
		}

		correct := 0
		for _, ev := range log {
			if ev.Correct {
				correct++
			}
		}
		fmt.Printf("Attempted:    %d\n", len(log))
		fmt.Printf("Correct:      %d (%.1f%%)\n", correct, 100*float64(correct)/float64(len(log)))
		fmt.Printf("Best streak:  %d\n", analytics.BestStreak(log))
		fmt.Printf("Active days:  %d\n", analytics.ActiveDays(log))

		subjects := analytics.AccuracyBySubject(log)
		if len(subjects) > 0 {
			fmt.Println("\nBy subject:")
			for _, s := range subjects {
				name := s.SubjectID
				if name == "" {
					name = "(none)"
				}
				fmt.Printf("  %-24s %5.1f%%  (%d/%d)\n", name, s.Accuracy, s.Correct, s.Attempted)
			}
		}

		fmt.Println("\nLast 7 days:")
		for _, b := range tail(analytics.Rollup(log, analytics.Interval1d), 7) {
			day := time.Unix(b.Start, 0).UTC().Format("Mon Jan 2")
			fmt.Printf("  %-12s %5.1f%%  (%d attempts)\n", day, b.Accuracy, b.Attempted())
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("demo", false, "Show fabricated history when the journal is empty")
}

// withDemoFallback substitutes a month of fabricated events when demo mode
// is on and the journal has nothing to show. Real history always wins.
func withDemoFallback(log []practice.PerformanceEvent, demo bool, now time.Time) []practice.PerformanceEvent {
	if !demo || len(log) > 0 {
		return log
	}
	rng := rand.New(rand.NewSource(now.UnixNano()))
	return analytics.DemoEvents(now, 30, rng)
}

func tail(buckets []analytics.Bucket, n int) []analytics.Bucket {
	if len(buckets) > n {
		return buckets[len(buckets)-n:]
	}
	return buckets
}
