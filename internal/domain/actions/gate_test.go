package actions_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
)

var now = time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

func sellAt(at time.Time) actions.Action {
	return actions.Sell{Item: catalog.Sunflower, Amount: decimal.NewFromInt(1), CreatedAt: at}
}

func TestVerifyBatch_EmptyBatchPasses(t *testing.T) {
	assert.NoError(t, actions.VerifyBatch(nil, now))
	assert.NoError(t, actions.VerifyBatch([]actions.Action{}, now))
}

func TestVerifyBatch_AcceptsWellSpacedBatch(t *testing.T) {
	batch := []actions.Action{
		actions.Plant{Index: 4, Item: catalog.SunflowerSeed, CreatedAt: now.Add(-60 * time.Second)},
		actions.Harvest{Index: 4, CreatedAt: now},
	}

	assert.NoError(t, actions.VerifyBatch(batch, now))
}

func TestVerifyBatch_RejectsOutOfOrder(t *testing.T) {
	// Harvest stamped before the plant that precedes it in the batch.
	batch := []actions.Action{
		actions.Harvest{Index: 4, CreatedAt: now},
		actions.Plant{Index: 4, Item: catalog.SunflowerSeed, CreatedAt: now.Add(-60 * time.Second)},
	}

	err := actions.VerifyBatch(batch, now)

	var order *actions.ErrTemporalOrder
	require.ErrorAs(t, err, &order)
	assert.EqualError(t, err, "Events must be in chronological order")
}

func TestVerifyBatch_RejectsFutureActions(t *testing.T) {
	// Exactly at the skew bound passes; one second beyond fails.
	assert.NoError(t, actions.VerifyBatch([]actions.Action{sellAt(now.Add(actions.MaxClockSkew))}, now))

	err := actions.VerifyBatch([]actions.Action{sellAt(now.Add(actions.MaxClockSkew + time.Second))}, now)

	var future *actions.ErrTemporalFuture
	require.ErrorAs(t, err, &future)
	assert.EqualError(t, err, "Event cannot be in the future")
}

func TestVerifyBatch_RejectsStaleBatch(t *testing.T) {
	assert.NoError(t, actions.VerifyBatch([]actions.Action{sellAt(now.Add(-actions.MaxBatchAge))}, now))

	err := actions.VerifyBatch([]actions.Action{sellAt(now.Add(-actions.MaxBatchAge - time.Second))}, now)

	var past *actions.ErrTemporalPast
	require.ErrorAs(t, err, &past)
	assert.EqualError(t, err, "Event is too old")
}

func TestVerifyBatch_RejectsWideRange(t *testing.T) {
	// Keep both endpoints within age and skew bounds so only the
	// range check can fire.
	batch := []actions.Action{
		sellAt(now.Add(-150 * time.Second)),
		sellAt(now.Add(-10 * time.Second)),
	}

	err := actions.VerifyBatch(batch, now)

	var wide *actions.ErrTemporalRange
	require.ErrorAs(t, err, &wide)
	assert.EqualError(t, err, "Event range is too large")
}

func TestVerifyBatch_RejectsSubMillisecondGap(t *testing.T) {
	batch := []actions.Action{
		sellAt(now.Add(-time.Second)),
		sellAt(now.Add(-time.Second + 5*time.Millisecond)),
	}

	err := actions.VerifyBatch(batch, now)

	var rapid *actions.ErrTemporalGap
	require.ErrorAs(t, err, &rapid)
	assert.EqualError(t, err, "Event fired too quickly")
}

func TestVerifyBatch_RejectsDenseCluster(t *testing.T) {
	// Three sells at T-400ms, T-250ms, T-50ms: every pairwise gap
	// clears the minimum but the middle action has both neighbors
	// inside the density window.
	batch := []actions.Action{
		sellAt(now.Add(-400 * time.Millisecond)),
		sellAt(now.Add(-250 * time.Millisecond)),
		sellAt(now.Add(-50 * time.Millisecond)),
	}

	err := actions.VerifyBatch(batch, now)

	var dense *actions.ErrTemporalDensity
	require.ErrorAs(t, err, &dense)
	assert.EqualError(t, err, "Too many events in a short time")
}

func TestVerifyBatch_AllowsPairsInsideDensityWindow(t *testing.T) {
	batch := []actions.Action{
		sellAt(now.Add(-400 * time.Millisecond)),
		sellAt(now.Add(-250 * time.Millisecond)),
	}

	assert.NoError(t, actions.VerifyBatch(batch, now))
}

func TestVerifyBatch_EqualTimestampsHitGapCheck(t *testing.T) {
	at := now.Add(-time.Second)
	batch := []actions.Action{sellAt(at), sellAt(at)}

	err := actions.VerifyBatch(batch, now)

	var rapid *actions.ErrTemporalGap
	require.ErrorAs(t, err, &rapid)
}
