package services_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/farmchain-go/internal/application/farm/services"
	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
	"github.com/andrescamacho/farmchain-go/pkg/wei"
)

type fakeChain struct {
	balance      *big.Int
	inventory    []*big.Int
	balanceErr   error
	inventoryErr error
}

func (c *fakeChain) LoadBalance(ctx context.Context, address shared.Address) (*big.Int, error) {
	if c.balanceErr != nil {
		return nil, c.balanceErr
	}
	return c.balance, nil
}

func (c *fakeChain) LoadInventory(ctx context.Context, address shared.Address) ([]*big.Int, error) {
	if c.inventoryErr != nil {
		return nil, c.inventoryErr
	}
	return c.inventory, nil
}

func (c *fakeChain) OwnerOf(ctx context.Context, farmID shared.FarmID) (shared.Address, error) {
	return shared.Address{}, nil
}

var testOwner = shared.MustNewAddress("0x71ce81cb65cbc9a04ba4d0d95b344c2cbf7dc223")

func weiOf(t *testing.T, s string) *big.Int {
	t.Helper()
	v, err := wei.Parse(s)
	require.NoError(t, err)
	return v
}

// zeroHoldings builds an all-zero positional inventory matching the
// catalog ID list.
func zeroHoldings() []*big.Int {
	holdings := make([]*big.Int, len(catalog.IDList()))
	for i := range holdings {
		holdings[i] = big.NewInt(0)
	}
	return holdings
}

func setHolding(t *testing.T, holdings []*big.Int, name catalog.ItemName, amount *big.Int) {
	t.Helper()
	item := catalog.MustItem(name)
	holdings[item.ID-1] = amount
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReconcile_BalanceAndDepositsOverrideOffChain(t *testing.T) {
	// Arrange
	holdings := zeroHoldings()
	setHolding(t, holdings, catalog.Axe, big.NewInt(1))
	setHolding(t, holdings, catalog.WoodPickaxe, big.NewInt(2))
	chain := &fakeChain{
		balance:   weiOf(t, "120000000000000000000"),
		inventory: holdings,
	}
	reconciler := services.NewReconciler(chain)

	state := farm.NewState()
	state.SetBalance(dec("20"))
	state.SetStock(catalog.PotatoSeed, dec("7"))

	// Act
	merged, err := reconciler.Reconcile(context.Background(), state, testOwner)

	// Assert
	require.NoError(t, err)
	assert.True(t, merged.Balance().Equal(dec("120")), "on-chain balance overrides, got %s", merged.Balance())
	assert.True(t, merged.InventoryOf(catalog.Axe).Equal(dec("1")))
	assert.True(t, merged.InventoryOf(catalog.WoodPickaxe).Equal(dec("2")))
	assert.True(t, merged.StockOf(catalog.PotatoSeed).Equal(dec("7")), "stock is off-chain only")

	// The input state is never modified.
	assert.True(t, state.Balance().Equal(dec("20")))
	assert.True(t, state.InventoryOf(catalog.Axe).IsZero())
}

func TestReconcile_ZeroOnChainItemsKeepOffChainValues(t *testing.T) {
	// Arrange
	chain := &fakeChain{
		balance:   weiOf(t, "5000000000000000000"),
		inventory: zeroHoldings(),
	}
	reconciler := services.NewReconciler(chain)

	state := farm.NewState()
	state.AddItem(catalog.Wood, dec("50"))
	state.AddItem(catalog.Sunflower, dec("3"))

	// Act
	merged, err := reconciler.Reconcile(context.Background(), state, testOwner)

	// Assert
	require.NoError(t, err)
	assert.True(t, merged.InventoryOf(catalog.Wood).Equal(dec("50")), "unwithdrawn items remain off-chain truth")
	assert.True(t, merged.InventoryOf(catalog.Sunflower).Equal(dec("3")))
	assert.True(t, merged.Balance().Equal(dec("5")))
}

func TestReconcile_PositiveOnChainItemOverridesOffChain(t *testing.T) {
	// Arrange
	holdings := zeroHoldings()
	setHolding(t, holdings, catalog.Wood, weiOf(t, "5000000000000000000"))
	chain := &fakeChain{
		balance:   big.NewInt(0),
		inventory: holdings,
	}
	reconciler := services.NewReconciler(chain)

	state := farm.NewState()
	state.SetBalance(dec("42"))
	state.AddItem(catalog.Wood, dec("50"))

	// Act
	merged, err := reconciler.Reconcile(context.Background(), state, testOwner)

	// Assert
	require.NoError(t, err)
	assert.True(t, merged.InventoryOf(catalog.Wood).Equal(dec("5")), "on-chain wood wins, got %s", merged.InventoryOf(catalog.Wood))
	assert.True(t, merged.Balance().IsZero(), "balance always mirrors chain, got %s", merged.Balance())
}

func TestReconcile_ZeroDecimalItemsConvertOneToOne(t *testing.T) {
	// Arrange
	holdings := zeroHoldings()
	setHolding(t, holdings, catalog.ChickenCoop, big.NewInt(3))
	chain := &fakeChain{balance: big.NewInt(0), inventory: holdings}
	reconciler := services.NewReconciler(chain)

	// Act
	merged, err := reconciler.Reconcile(context.Background(), farm.NewState(), testOwner)

	// Assert
	require.NoError(t, err)
	assert.True(t, merged.InventoryOf(catalog.ChickenCoop).Equal(dec("3")))
}

func TestReconcile_InventoryLengthMismatchFails(t *testing.T) {
	// Arrange
	chain := &fakeChain{
		balance:   big.NewInt(0),
		inventory: []*big.Int{big.NewInt(1), big.NewInt(2)},
	}
	reconciler := services.NewReconciler(chain)

	// Act
	merged, err := reconciler.Reconcile(context.Background(), farm.NewState(), testOwner)

	// Assert
	require.Error(t, err)
	assert.Nil(t, merged)
	assert.Contains(t, err.Error(), "catalog")
}

func TestReconcile_ChainFailuresPropagate(t *testing.T) {
	// Arrange
	chainErr := errors.New("rpc timeout")
	reconciler := services.NewReconciler(&fakeChain{balanceErr: chainErr})

	// Act
	_, err := reconciler.Reconcile(context.Background(), farm.NewState(), testOwner)

	// Assert
	assert.ErrorIs(t, err, chainErr)
}
