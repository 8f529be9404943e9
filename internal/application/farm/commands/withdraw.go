package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/farmchain-go/internal/adapters/metrics"
	"github.com/andrescamacho/farmchain-go/internal/application/logging"
	"github.com/andrescamacho/farmchain-go/internal/application/mediator"
	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/ports"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// WithdrawCommand asks the signer for a withdrawal authorization. The
// engine never moves tokens itself: it validates the request, computes
// the tax, and hands the payload to the signer. The returned signature
// is what the on-chain contract trusts.
type WithdrawCommand struct {
	FarmID    uint64
	Sender    string
	SessionID string
	Signature string
	// SFL is the token amount to withdraw, as a decimal string.
	SFL string
	// IDs and Amounts are positional pairs of on-chain item IDs and
	// wei amounts. They are forwarded verbatim; the contract settles
	// them.
	IDs     []int
	Amounts []string
}

// WithdrawResponse relays the signer's authorization to the client
// untouched.
type WithdrawResponse struct {
	Signature string
	Deadline  int64
}

// WithdrawHandler handles the Withdraw command
type WithdrawHandler struct {
	farms  ports.FarmRepository
	chain  ports.Chain
	signer ports.Signer
}

// NewWithdrawHandler creates a new WithdrawHandler
func NewWithdrawHandler(farms ports.FarmRepository, chain ports.Chain, signer ports.Signer) *WithdrawHandler {
	return &WithdrawHandler{
		farms:  farms,
		chain:  chain,
		signer: signer,
	}
}

// Handle executes the Withdraw command. No farm state is mutated: the
// on-chain contract debits balances when the player submits the
// signed transaction, and the next save reconciles the result back.
func (h *WithdrawHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*WithdrawCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *WithdrawCommand")
	}

	fail := func(outcome string, err error) (mediator.Response, error) {
		metrics.RecordWithdrawal(outcome)
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

	sfl, err := shared.ParseQuantity(cmd.SFL)
	if err != nil {
		return fail("invalid_request", shared.NewInvalidRequestError("invalid SFL amount", err))
	}

	// The contract rejects mismatched pairs on its own; checking here
	// keeps the bad payload from ever reaching the signer.
	if len(cmd.IDs) != len(cmd.Amounts) {
		return fail("invalid_request", &farm.ErrMismatchedAmounts{IDs: len(cmd.IDs), Amounts: len(cmd.Amounts)})
	}

	// Empty arrays are a legal no-op withdrawal; crops and seeds must
	// never leave the farm.
	for _, id := range cmd.IDs {
		item, ok := catalog.ItemByID(id)
		if !ok {
			return fail("invalid_request", shared.NewInvalidRequestError(fmt.Sprintf("unknown item id: %d", id), nil))
		}
		if !catalog.IsWithdrawable(item.Name) {
			return fail("not_withdrawable", &farm.ErrNotWithdrawable{Item: item.Name})
		}
	}

	// The farm must exist and belong to the sender, same gate as save.
	if _, err := h.farms.GetFarmByID(ctx, farmID); err != nil {
		return fail("not_found", err)
	}
	owner, err := h.chain.OwnerOf(ctx, farmID)
	if err != nil {
		return fail("chain_error", err)
	}
	if !owner.Equals(sender) {
		return fail("not_owner", &farm.ErrNotOwner{ID: farmID, Sender: sender})
	}

	payload := ports.WithdrawPayload{
		Sender:    sender,
		FarmID:    farmID,
		SessionID: session,
		SFL:       sfl,
		IDs:       cmd.IDs,
		Amounts:   cmd.Amounts,
		TaxBps:    catalog.WithdrawalTaxBps(sfl),
	}

	signed, err := h.signer.WithdrawSignature(ctx, payload)
	if err != nil {
		return fail("signer_error", fmt.Errorf("signing withdrawal for farm %s: %w", farmID, err))
	}

	metrics.RecordWithdrawal("success")

	logging.FromContext(ctx).Log("INFO", "withdrawal signed", map[string]interface{}{
		"farmId": cmd.FarmID,
		"sfl":    sfl.String(),
		"items":  len(cmd.IDs),
		"taxBps": payload.TaxBps,
	})

	return &WithdrawResponse{
		Signature: signed.Signature,
		Deadline:  signed.Deadline,
	}, nil
}
