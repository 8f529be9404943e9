package replay

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
)

// ErrUnknownItem indicates an action named an item the catalog does
// not know, or one that cannot play the role the action needs.
type ErrUnknownItem struct {
	Item catalog.ItemName
}

func (e *ErrUnknownItem) Error() string {
	return fmt.Sprintf("unknown item: %s", e.Item)
}

// ErrNotCraftable indicates a craft action named an item the shop
// does not craft. Limited editions always land here: they can only be
// minted externally. The message is client contract.
type ErrNotCraftable struct {
	Item catalog.ItemName
}

func (e *ErrNotCraftable) Error() string {
	return fmt.Sprintf("This item is not craftable: %s", e.Item)
}

// ErrNotSellable indicates a sell action named an item without a
// shop sell price. Only harvested crops are sellable.
type ErrNotSellable struct {
	Item catalog.ItemName
}

func (e *ErrNotSellable) Error() string {
	return fmt.Sprintf("item cannot be sold: %s", e.Item)
}

// ErrNotRedeemable indicates a redeem action named an item outside
// the promotional set, or a farm already at the redemption cap.
type ErrNotRedeemable struct {
	Item catalog.ItemName
}

func (e *ErrNotRedeemable) Error() string {
	return fmt.Sprintf("item cannot be redeemed: %s", e.Item)
}

// ErrFieldOccupied indicates a plant action targeted a plot that is
// already growing something.
type ErrFieldOccupied struct {
	Index int
}

func (e *ErrFieldOccupied) Error() string {
	return fmt.Sprintf("field %d is already planted", e.Index)
}

// ErrFieldEmpty indicates a harvest targeted an empty plot.
type ErrFieldEmpty struct {
	Index int
}

func (e *ErrFieldEmpty) Error() string {
	return fmt.Sprintf("field %d is empty", e.Index)
}

// ErrNotGrown indicates a harvest came before the crop's grow time
// elapsed.
type ErrNotGrown struct {
	Index   int
	ReadyAt time.Time
}

func (e *ErrNotGrown) Error() string {
	return fmt.Sprintf("field %d is not ready to harvest", e.Index)
}

// ErrTreeNotRecovered indicates a chop hit a felled tree before its
// recovery period elapsed.
type ErrTreeNotRecovered struct {
	Index      int
	RecoversAt time.Time
}

func (e *ErrTreeNotRecovered) Error() string {
	return fmt.Sprintf("tree %d has not recovered", e.Index)
}

// ErrInvalidIndex indicates a plot or tree index outside the farm
// layout.
type ErrInvalidIndex struct {
	Index int
	Limit int
}

func (e *ErrInvalidIndex) Error() string {
	return fmt.Sprintf("index %d out of range (limit %d)", e.Index, e.Limit)
}

// ErrInvalidTool indicates a chop with anything but an Axe.
type ErrInvalidTool struct {
	Tool catalog.ItemName
}

func (e *ErrInvalidTool) Error() string {
	return fmt.Sprintf("invalid tool: %s", e.Tool)
}

// ErrInvalidAmount indicates a craft or sell amount that is not a
// positive whole number.
type ErrInvalidAmount struct {
	Amount decimal.Decimal
}

func (e *ErrInvalidAmount) Error() string {
	return fmt.Sprintf("invalid amount: %s", e.Amount)
}
