package actions

import "time"

// Temporal gate thresholds. A batch violating any of them is rejected
// whole; replay never sees it.
const (
	// MaxClockSkew is how far ahead of the server clock the newest
	// action may sit. Covers honest client clock drift.
	MaxClockSkew = 60 * time.Second
	// MaxBatchAge is how old the oldest action may be. Stale batches
	// could replay against long-gone stock and prices.
	MaxBatchAge = 5 * time.Minute
	// MaxBatchSpan bounds the wall-clock range one batch may cover.
	MaxBatchSpan = 2 * time.Minute
	// MinActionGap is the minimum spacing between consecutive actions.
	MinActionGap = 10 * time.Millisecond
	// DensityWindow and DensityMaxActions bound action bursts: no
	// action may have more than DensityMaxActions actions (itself
	// included) within DensityWindow of its timestamp.
	DensityWindow     = 300 * time.Millisecond
	DensityMaxActions = 2
)

// VerifyBatch checks the timing of a batch against the server clock
// and against itself. Checks run in a fixed order so a batch with
// several defects reports the same error every time. An empty batch
// passes vacuously.
func VerifyBatch(batch []Action, now time.Time) error {
	if len(batch) == 0 {
		return nil
	}

	for i := 1; i < len(batch); i++ {
		if batch[i].Time().Before(batch[i-1].Time()) {
			return &ErrTemporalOrder{Index: i}
		}
	}

	first := batch[0].Time()
	last := batch[len(batch)-1].Time()

	if last.After(now.Add(MaxClockSkew)) {
		return &ErrTemporalFuture{CreatedAt: last, Now: now}
	}
	if first.Before(now.Add(-MaxBatchAge)) {
		return &ErrTemporalPast{CreatedAt: first, Now: now}
	}
	if span := last.Sub(first); span > MaxBatchSpan {
		return &ErrTemporalRange{Span: span}
	}

	for i := 1; i < len(batch); i++ {
		if gap := batch[i].Time().Sub(batch[i-1].Time()); gap < MinActionGap {
			return &ErrTemporalGap{Index: i, Gap: gap}
		}
	}

	for i := range batch {
		count := 0
		for j := range batch {
			delta := batch[j].Time().Sub(batch[i].Time())
			if delta < 0 {
				delta = -delta
			}
			if delta < DensityWindow {
				count++
			}
		}
		if count > DensityMaxActions {
			return &ErrTemporalDensity{Index: i, Count: count}
		}
	}

	return nil
}
