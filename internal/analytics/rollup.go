package analytics

import (
	"sort"

	"github.com/inferahq/infera/internal/practice"
)

// Interval is a fixed rollup bucket width in seconds. Buckets align to
// multiples of the interval in epoch time, so re-running a rollup over the
// same log always lands events in the same buckets.
type Interval int64

const (
	Interval1m Interval = 60
	Interval5m Interval = 300
	Interval1h Interval = 3600
	Interval1d Interval = 86400
)

// Intervals lists the supported widths in ascending order, for interval
// pickers in the stats views.
var Intervals = []Interval{Interval1m, Interval5m, Interval1h, Interval1d}

// Label returns the short display name for the interval.
func (iv Interval) Label() string {
	switch iv {
	case Interval1m:
		return "1m"
	case Interval5m:
		return "5m"
	case Interval1h:
		return "1h"
	case Interval1d:
		return "1d"
	}
	return "?"
}

// Bucket is one rollup cell. Start is the bucket's aligned open time in
// epoch seconds.
type Bucket struct {
	Start     int64
	Correct   int
	Incorrect int
	Accuracy  float64
}

// Attempted returns the total events in the bucket.
func (b Bucket) Attempted() int { return b.Correct + b.Incorrect }

// Rollup groups the log into fixed-width buckets and computes per-bucket
// accuracy. Event timestamps are epoch millis; bucket keys are epoch
// seconds floored to the interval. Buckets with no events are omitted and
// the result is sorted by Start ascending. Rollup is idempotent: the same
// log yields the same buckets regardless of when it runs.
func Rollup(log []practice.PerformanceEvent, iv Interval) []Bucket {
	if iv <= 0 || len(log) == 0 {
		return nil
	}

	byStart := make(map[int64]*Bucket)
	for _, ev := range log {
		sec := ev.Timestamp / 1000
		start := (sec / int64(iv)) * int64(iv)
		b := byStart[start]
		if b == nil {
			b = &Bucket{Start: start}
			byStart[start] = b
		}
		if ev.Correct {
			b.Correct++
		} else {
			b.Incorrect++
		}
	}

	out := make([]Bucket, 0, len(byStart))
	for _, b := range byStart {
		b.Accuracy = 100 * float64(b.Correct) / float64(b.Attempted())
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
