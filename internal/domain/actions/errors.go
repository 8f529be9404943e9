package actions

import (
	"fmt"
	"time"
)

// Temporal gate errors. The messages are client contract and must
// stay byte-identical across releases.

// ErrTemporalOrder indicates the batch is not sorted by createdAt.
type ErrTemporalOrder struct {
	Index int
}

func (e *ErrTemporalOrder) Error() string {
	return "Events must be in chronological order"
}

// ErrTemporalFuture indicates the newest action is ahead of the
// server clock beyond the allowed skew.
type ErrTemporalFuture struct {
	CreatedAt time.Time
	Now       time.Time
}

func (e *ErrTemporalFuture) Error() string {
	return "Event cannot be in the future"
}

// ErrTemporalPast indicates the oldest action is older than the
// maximum batch age.
type ErrTemporalPast struct {
	CreatedAt time.Time
	Now       time.Time
}

func (e *ErrTemporalPast) Error() string {
	return "Event is too old"
}

// ErrTemporalRange indicates the batch spans more wall-clock time
// than a single save may cover.
type ErrTemporalRange struct {
	Span time.Duration
}

func (e *ErrTemporalRange) Error() string {
	return "Event range is too large"
}

// ErrTemporalGap indicates two consecutive actions are closer than
// the minimum gap.
type ErrTemporalGap struct {
	Index int
	Gap   time.Duration
}

func (e *ErrTemporalGap) Error() string {
	return "Event fired too quickly"
}

// ErrTemporalDensity indicates too many actions cluster inside the
// density window.
type ErrTemporalDensity struct {
	Index int
	Count int
}

func (e *ErrTemporalDensity) Error() string {
	return "Too many events in a short time"
}

// ErrUnknownAction indicates a batch carried an action tag outside
// the closed variant set.
type ErrUnknownAction struct {
	Tag string
}

func (e *ErrUnknownAction) Error() string {
	return fmt.Sprintf("unknown action type: %s", e.Tag)
}
