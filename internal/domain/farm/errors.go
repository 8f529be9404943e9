package farm

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// ErrFarmNotFound indicates no farm document exists for the ID.
type ErrFarmNotFound struct {
	ID shared.FarmID
}

func (e *ErrFarmNotFound) Error() string {
	return "Farm does not exist"
}

// ErrNotOwner indicates the sender does not own the farm NFT. The
// message matches ErrFarmNotFound so callers cannot probe which farms
// exist.
type ErrNotOwner struct {
	ID     shared.FarmID
	Sender shared.Address
}

func (e *ErrNotOwner) Error() string {
	return "Farm does not exist"
}

// ErrNotWhitelisted indicates the sender address is not cleared for
// mainnet sync operations.
type ErrNotWhitelisted struct {
	Sender shared.Address
}

func (e *ErrNotWhitelisted) Error() string {
	return fmt.Sprintf("address not whitelisted: %s", e.Sender)
}

// ErrSessionConflict indicates the farm was persisted by another save
// between load and persist. The client must reload and retry.
type ErrSessionConflict struct {
	ID shared.FarmID
}

func (e *ErrSessionConflict) Error() string {
	return "Concurrent save detected"
}

// ErrInsufficientInventory indicates an action needs more of an item
// than the farm holds.
type ErrInsufficientInventory struct {
	Item      catalog.ItemName
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *ErrInsufficientInventory) Error() string {
	return fmt.Sprintf("insufficient %s: need %s, have %s", e.Item, e.Required, e.Available)
}

// ErrInsufficientBalance indicates an action costs more SFL than the
// farm balance.
type ErrInsufficientBalance struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *ErrInsufficientBalance) Error() string {
	return fmt.Sprintf("insufficient balance: need %s SFL, have %s", e.Required, e.Available)
}

// ErrInsufficientStock indicates the shop stock of an item is
// exhausted for the requested amount.
type ErrInsufficientStock struct {
	Item      catalog.ItemName
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *ErrInsufficientStock) Error() string {
	return fmt.Sprintf("insufficient stock of %s: need %s, have %s", e.Item, e.Required, e.Available)
}

// ErrMismatchedAmounts indicates a withdrawal carried id and amount
// arrays of different lengths.
type ErrMismatchedAmounts struct {
	IDs     int
	Amounts int
}

func (e *ErrMismatchedAmounts) Error() string {
	return fmt.Sprintf("withdrawal ids and amounts differ in length: %d vs %d", e.IDs, e.Amounts)
}

// ErrNotWithdrawable indicates a withdrawal named an item that may
// never leave the farm.
type ErrNotWithdrawable struct {
	Item catalog.ItemName
}

func (e *ErrNotWithdrawable) Error() string {
	return fmt.Sprintf("item cannot be withdrawn: %s", e.Item)
}
