package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LapRecord is one completed lap.
type LapRecord struct {
	Lap     int     `csv:"lap"`
	Split   float64 `csv:"split_sec"`
	RaceSec float64 `csv:"race_sec"` // race clock when the lap closed
}

// LapBook collects lap splits for the current race.
type LapBook struct {
	laps   []LapRecord
	splits []float64
}

// NewLapBook creates an empty lap book.
func NewLapBook() *LapBook {
	return &LapBook{}
}

// Record stores a completed lap and returns it.
func (b *LapBook) Record(lap int, split, raceSec float64) LapRecord {
	rec := LapRecord{Lap: lap, Split: split, RaceSec: raceSec}
	b.laps = append(b.laps, rec)
	b.splits = append(b.splits, split)
	return rec
}

// Laps returns a copy of the recorded laps in order.
func (b *LapBook) Laps() []LapRecord {
	return slices.Clone(b.laps)
}

// Clear forgets every lap, for a new race.
func (b *LapBook) Clear() {
	b.laps = nil
	b.splits = nil
}

// LapSummary aggregates the splits of a race.
type LapSummary struct {
	Laps   int
	Best   float64
	Worst  float64
	Mean   float64
	StdDev float64
	Total  float64
}

// Summary computes split statistics. Zero laps yields a zero summary.
func (b *LapBook) Summary() LapSummary {
	n := len(b.splits)
	if n == 0 {
		return LapSummary{}
	}

	s := LapSummary{
		Laps:  n,
		Best:  floats.Min(b.splits),
		Worst: floats.Max(b.splits),
		Mean:  stat.Mean(b.splits, nil),
		Total: floats.Sum(b.splits),
	}
	// Sample deviation needs two laps
	if n > 1 {
		s.StdDev = stat.StdDev(b.splits, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s LapSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("laps", s.Laps),
		slog.Float64("best_sec", s.Best),
		slog.Float64("worst_sec", s.Worst),
		slog.Float64("mean_sec", s.Mean),
		slog.Float64("stddev_sec", s.StdDev),
		slog.Float64("total_sec", s.Total),
	)
}
