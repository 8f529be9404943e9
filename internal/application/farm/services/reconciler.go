package services

import (
	"context"
	"fmt"

	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/ports"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
	"github.com/andrescamacho/farmchain-go/pkg/wei"
)

// Reconciler folds a wallet's on-chain holdings into an off-chain
// game state before a session replays. Deposits made directly on
// chain become visible to the engine this way.
type Reconciler struct {
	chain ports.Chain
}

// NewReconciler creates a new reconciler service
func NewReconciler(chain ports.Chain) *Reconciler {
	return &Reconciler{chain: chain}
}

// Reconcile returns a copy of state with the wallet's on-chain
// balance and item holdings merged in. The token balance always
// overrides the stored balance. Item holdings override only when the
// chain reports a positive amount, so items the contract has never
// seen keep their off-chain quantities. The input state is not
// modified.
func (r *Reconciler) Reconcile(ctx context.Context, state *farm.State, owner shared.Address) (*farm.State, error) {
	balanceWei, err := r.chain.LoadBalance(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("loading on-chain balance: %w", err)
	}

	holdings, err := r.chain.LoadInventory(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("loading on-chain inventory: %w", err)
	}

	names := catalog.IDList()
	if len(holdings) != len(names) {
		return nil, fmt.Errorf("on-chain inventory has %d entries, catalog has %d", len(holdings), len(names))
	}

	next := state.Clone()
	next.SetBalance(wei.ToDecimal(balanceWei, shared.SFLDecimalPlaces))

	for i, name := range names {
		if holdings[i] == nil || holdings[i].Sign() <= 0 {
			continue
		}
		item := catalog.MustItem(name)
		next.SetItem(name, wei.ToDecimal(holdings[i], item.Decimals))
	}

	return next, nil
}
