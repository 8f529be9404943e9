package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/farmchain-go/internal/adapters/metrics"
	"github.com/andrescamacho/farmchain-go/internal/application/farm/services"
	"github.com/andrescamacho/farmchain-go/internal/application/logging"
	"github.com/andrescamacho/farmchain-go/internal/application/mediator"
	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/ports"
	"github.com/andrescamacho/farmchain-go/internal/domain/replay"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// SaveFarmCommand represents a batch of player actions to verify,
// replay and persist for one farm session
type SaveFarmCommand struct {
	FarmID    uint64
	Sender    string
	SessionID string
	Signature string
	Actions   []actions.Action
}

// SaveFarmResponse carries the committed snapshot and the session
// token the client must present on its next save
type SaveFarmResponse struct {
	Farm      farm.Snapshot
	SessionID string
}

// SaveFarmHandler handles the SaveFarm command
type SaveFarmHandler struct {
	farms      ports.FarmRepository
	events     ports.EventStore
	chain      ports.Chain
	whitelist  ports.Whitelist
	reconciler *services.Reconciler
	clock      shared.Clock
}

// NewSaveFarmHandler creates a new SaveFarmHandler. A nil whitelist
// disables the whitelist gate (testnet).
func NewSaveFarmHandler(
	farms ports.FarmRepository,
	events ports.EventStore,
	chain ports.Chain,
	whitelist ports.Whitelist,
	clock shared.Clock,
) *SaveFarmHandler {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &SaveFarmHandler{
		farms:      farms,
		events:     events,
		chain:      chain,
		whitelist:  whitelist,
		reconciler: services.NewReconciler(chain),
		clock:      clock,
	}
}

// Handle executes the SaveFarm command. Domain errors are returned
// untouched: their messages are part of the client contract.
func (h *SaveFarmHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SaveFarmCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SaveFarmCommand")
	}

	started := h.clock.Now()
	fail := func(outcome string, err error) (mediator.Response, error) {
		metrics.RecordSave(outcome, h.clock.Now().Sub(started).Seconds())
		return nil, err
	}

	farmID, err := shared.NewFarmID(cmd.FarmID)
	if err != nil {
		return fail("invalid_request", shared.NewInvalidRequestError("invalid farm ID", err))
	}

	sender, err := shared.NewAddress(cmd.Sender)
	if err != nil {
		return fail("invalid_request", shared.NewInvalidRequestError("invalid sender address", err))
	}

	session, err := shared.ParseSessionToken(cmd.SessionID)
	if err != nil {
		return fail("invalid_request", shared.NewInvalidRequestError("invalid session token", err))
	}

	// Load the farm document
	loaded, err := h.farms.GetFarmByID(ctx, farmID)
	if err != nil {
		return fail("not_found", err)
	}

	// Ownership check against the NFT registry. ErrNotOwner carries
	// the missing-farm message so callers cannot probe which farms
	// exist.
	owner, err := h.chain.OwnerOf(ctx, farmID)
	if err != nil {
		return fail("chain_error", err)
	}
	if !owner.Equals(sender) {
		return fail("not_owner", &farm.ErrNotOwner{ID: farmID, Sender: sender})
	}

	// Whitelist gate, mainnet only
	if h.whitelist != nil {
		allowed, err := h.whitelist.Contains(ctx, sender)
		if err != nil {
			return fail("chain_error", err)
		}
		if !allowed {
			return fail("not_whitelisted", &farm.ErrNotWhitelisted{Sender: sender})
		}
	}

	// Fold on-chain holdings into the working state before replay
	merged, err := h.reconciler.Reconcile(ctx, loaded.State(), sender)
	if err != nil {
		return fail("chain_error", err)
	}

	// Temporal gate over the whole batch
	if err := actions.VerifyBatch(cmd.Actions, h.clock.Now()); err != nil {
		metrics.RecordBatchRejection(rejectionReason(err))
		return fail("rejected", err)
	}

	// Replay the batch against a working copy
	next, err := replay.Run(merged, cmd.Actions)
	if err != nil {
		return fail("replay_failed", err)
	}

	// Persist with the client's session as the CAS guard; a lost race
	// surfaces as a conflict and nothing is written
	newSession, err := h.farms.UpdateGameState(ctx, farmID, session, next)
	if err != nil {
		var conflict *farm.ErrSessionConflict
		if errors.As(err, &conflict) {
			return fail("conflict", err)
		}
		return fail("persist_failed", fmt.Errorf("persisting farm %s: %w", farmID, err))
	}

	// Audit trail keyed by the session that submitted the batch
	if err := h.events.Append(ctx, farmID, session, cmd.Actions); err != nil {
		return fail("audit_failed", fmt.Errorf("appending audit events: %w", err))
	}

	for _, action := range cmd.Actions {
		metrics.RecordActionReplayed(string(action.Type()))
	}
	metrics.RecordSave("success", h.clock.Now().Sub(started).Seconds())

	logging.FromContext(ctx).Log("INFO", "farm saved", map[string]interface{}{
		"farmId":  cmd.FarmID,
		"actions": len(cmd.Actions),
	})

	return &SaveFarmResponse{
		Farm:      next.Snapshot(),
		SessionID: newSession.Value(),
	}, nil
}

// rejectionReason maps a temporal gate error to its metrics label.
func rejectionReason(err error) string {
	switch err.(type) {
	case *actions.ErrTemporalOrder:
		return "order"
	case *actions.ErrTemporalFuture:
		return "future"
	case *actions.ErrTemporalPast:
		return "past"
	case *actions.ErrTemporalRange:
		return "range"
	case *actions.ErrTemporalGap:
		return "gap"
	case *actions.ErrTemporalDensity:
		return "density"
	default:
		return "other"
	}
}
