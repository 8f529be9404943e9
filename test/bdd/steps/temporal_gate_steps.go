package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
)

type temporalGateContext struct {
	now   time.Time
	batch []actions.Action
	err   error
}

func (tc *temporalGateContext) reset() {
	tc.now = time.Time{}
	tc.batch = nil
	tc.err = nil
}

func (tc *temporalGateContext) appendAction(at time.Time) {
	// The gate only reads timestamps, so any action variant works.
	tc.batch = append(tc.batch, actions.Harvest{Index: 0, CreatedAt: at})
}

func parseOffset(amount int, unit string) (time.Duration, error) {
	switch unit {
	case "seconds":
		return time.Duration(amount) * time.Second, nil
	case "milliseconds":
		return time.Duration(amount) * time.Millisecond, nil
	default:
		return 0, fmt.Errorf("unknown time unit %q", unit)
	}
}

// Given steps

func (tc *temporalGateContext) theServerClockReads(stamp string) error {
	now, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return fmt.Errorf("invalid clock stamp %q: %w", stamp, err)
	}
	tc.now = now
	return nil
}

func (tc *temporalGateContext) aBatchWithAnActionAgo(amount int, unit string) error {
	offset, err := parseOffset(amount, unit)
	if err != nil {
		return err
	}
	tc.appendAction(tc.now.Add(-offset))
	return nil
}

func (tc *temporalGateContext) aBatchWithAnActionInTheFuture(amount int, unit string) error {
	offset, err := parseOffset(amount, unit)
	if err != nil {
		return err
	}
	tc.appendAction(tc.now.Add(offset))
	return nil
}

// When steps

func (tc *temporalGateContext) theBatchIsVerified() error {
	tc.err = actions.VerifyBatch(tc.batch, tc.now)
	return nil
}

// Then steps

func (tc *temporalGateContext) theBatchPassesTheGate() error {
	if tc.err != nil {
		return fmt.Errorf("expected batch to pass, got error: %v", tc.err)
	}
	return nil
}

func (tc *temporalGateContext) theBatchIsRejectedWith(expected string) error {
	if tc.err == nil {
		return fmt.Errorf("expected batch to be rejected with '%s', but it passed", expected)
	}
	if tc.err.Error() != expected {
		return fmt.Errorf("expected error '%s', got '%s'", expected, tc.err.Error())
	}
	return nil
}

func InitializeTemporalGateScenario(ctx *godog.ScenarioContext) {
	tc := &temporalGateContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the server clock reads "([^"]*)"$`, tc.theServerClockReads)
	ctx.Step(`^a batch with an action (\d+) (seconds|milliseconds) ago$`, tc.aBatchWithAnActionAgo)
	ctx.Step(`^a batch with an action (\d+) (seconds|milliseconds) in the future$`, tc.aBatchWithAnActionInTheFuture)

	// When steps
	ctx.Step(`^the batch is verified$`, tc.theBatchIsVerified)

	// Then steps
	ctx.Step(`^the batch passes the gate$`, tc.theBatchPassesTheGate)
	ctx.Step(`^the batch is rejected with "([^"]*)"$`, tc.theBatchIsRejectedWith)
}
