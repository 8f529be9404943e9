package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Crop binds a seed to the crop it grows into, how long that takes,
// and the shop price of the harvested crop.
type Crop struct {
	Seed         ItemName
	HarvestsInto ItemName
	GrowSeconds  int64
	// SellPrice is SFL credited per unit of the harvested crop.
	SellPrice decimal.Decimal
}

// GrowDuration returns the grow time as a duration.
func (c Crop) GrowDuration() time.Duration {
	return time.Duration(c.GrowSeconds) * time.Second
}

// crops maps each seed to its growth parameters. Grow times and
// prices mirror the shop economy and are balance-sensitive.
var crops = map[ItemName]Crop{
	SunflowerSeed:   {Seed: SunflowerSeed, HarvestsInto: Sunflower, GrowSeconds: 60, SellPrice: decimal.RequireFromString("0.02")},
	PotatoSeed:      {Seed: PotatoSeed, HarvestsInto: Potato, GrowSeconds: 300, SellPrice: decimal.RequireFromString("0.14")},
	PumpkinSeed:     {Seed: PumpkinSeed, HarvestsInto: Pumpkin, GrowSeconds: 1800, SellPrice: decimal.RequireFromString("0.4")},
	BeetrootSeed:    {Seed: BeetrootSeed, HarvestsInto: Beetroot, GrowSeconds: 7200, SellPrice: decimal.RequireFromString("0.56")},
	CauliflowerSeed: {Seed: CauliflowerSeed, HarvestsInto: Cauliflower, GrowSeconds: 28800, SellPrice: decimal.RequireFromString("0.9")},
	ParsnipSeed:     {Seed: ParsnipSeed, HarvestsInto: Parsnip, GrowSeconds: 43200, SellPrice: decimal.RequireFromString("1.75")},
	RadishSeed:      {Seed: RadishSeed, HarvestsInto: Radish, GrowSeconds: 86400, SellPrice: decimal.RequireFromString("2.5")},
}

// cropsByName indexes crops by the harvested crop name for sell-price
// lookups.
var cropsByName = func() map[ItemName]Crop {
	m := make(map[ItemName]Crop, len(crops))
	for _, c := range crops {
		m[c.HarvestsInto] = c
	}
	return m
}()

// CropBySeed looks up growth parameters for a seed.
func CropBySeed(seed ItemName) (Crop, bool) {
	c, ok := crops[seed]
	return c, ok
}

// MustCrop looks up growth parameters and panics on a non-seed name.
func MustCrop(seed ItemName) Crop {
	c, ok := crops[seed]
	if !ok {
		panic(fmt.Sprintf("catalog: no crop grows from %q", seed))
	}
	return c
}

// SellPrice returns the SFL unit price for a sellable item. Only
// harvested crops are sellable; tools, resources and limited editions
// have no sell price.
func SellPrice(name ItemName) (decimal.Decimal, bool) {
	c, ok := cropsByName[name]
	if !ok {
		return decimal.Zero, false
	}
	return c.SellPrice, true
}
