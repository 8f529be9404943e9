package actions

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
)

// Kind discriminates the closed set of user action variants. The
// string values are the wire tags submitted by clients.
type Kind string

const (
	KindPlant   Kind = "item.planted"
	KindHarvest Kind = "item.harvested"
	KindChop    Kind = "tree.chopped"
	KindCraft   Kind = "item.crafted"
	KindSell    Kind = "item.sell"
	KindRedeem  Kind = "item.redeemed"
)

// Action is one user-originated state change with its client
// wall-clock timestamp. The replay dispatcher switches exhaustively
// on the concrete type.
type Action interface {
	Type() Kind
	Time() time.Time
}

// Plant puts a seed from the inventory into an empty plot.
type Plant struct {
	Index     int
	Item      catalog.ItemName
	CreatedAt time.Time
}

func (a Plant) Type() Kind      { return KindPlant }
func (a Plant) Time() time.Time { return a.CreatedAt }

// Harvest clears a grown plot into the inventory.
type Harvest struct {
	Index     int
	CreatedAt time.Time
}

func (a Harvest) Type() Kind      { return KindHarvest }
func (a Harvest) Time() time.Time { return a.CreatedAt }

// Chop takes wood from a tree. Tool names the tool used; only an Axe
// fells trees.
type Chop struct {
	Index     int
	Tool      catalog.ItemName
	CreatedAt time.Time
}

func (a Chop) Type() Kind      { return KindChop }
func (a Chop) Time() time.Time { return a.CreatedAt }

// Craft buys an item from the shop: SFL price plus ingredient cost,
// limited by remaining stock.
type Craft struct {
	Item      catalog.ItemName
	Amount    decimal.Decimal
	CreatedAt time.Time
}

func (a Craft) Type() Kind      { return KindCraft }
func (a Craft) Time() time.Time { return a.CreatedAt }

// Sell trades crops for SFL at the catalog sell price.
type Sell struct {
	Item      catalog.ItemName
	Amount    decimal.Decimal
	CreatedAt time.Time
}

func (a Sell) Type() Kind      { return KindSell }
func (a Sell) Time() time.Time { return a.CreatedAt }

// Redeem claims a promotional item.
type Redeem struct {
	Item      catalog.ItemName
	CreatedAt time.Time
}

func (a Redeem) Type() Kind      { return KindRedeem }
func (a Redeem) Time() time.Time { return a.CreatedAt }
