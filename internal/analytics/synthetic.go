package analytics

import (
	"math/rand"
	"time"
)

// CandlestickPoint is one synthetic daily accuracy candle. Values are
// accuracy percentages in [0, 100]. The series is display-only decoration
// for the stats screen and is never merged into real rollups.
type CandlestickPoint struct {
	Timestamp int64 // epoch millis at the day's open
	Date      string
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int
}

const (
	syntheticStep      = 10 // max per-day perturbation
	syntheticVolumeMin = 10
	syntheticVolumeMax = 59
)

// SyntheticTrend generates a bounded random walk of daily accuracy candles.
// Each day opens at the previous close, the high and low perturb the open
// by at most syntheticStep in either direction clamped to [0, 100], and the
// close falls uniformly between them. The caller supplies the rand source
// so rendering can be reproduced under test.
func SyntheticTrend(start time.Time, days int, seedAccuracy float64, rng *rand.Rand) []CandlestickPoint {
	if days <= 0 {
		return nil
	}

	out := make([]CandlestickPoint, 0, days)
	prevClose := clampAccuracy(seedAccuracy)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)

		open := prevClose
		high := clampAccuracy(open + rng.Float64()*syntheticStep)
		low := clampAccuracy(open - rng.Float64()*syntheticStep)
		close := low + rng.Float64()*(high-low)

		out = append(out, CandlestickPoint{
			Timestamp: day.UnixMilli(),
			Date:      day.Format("Jan 2"),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    syntheticVolumeMin + rng.Intn(syntheticVolumeMax-syntheticVolumeMin+1),
		})
		prevClose = close
	}
	return out
}

func clampAccuracy(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
