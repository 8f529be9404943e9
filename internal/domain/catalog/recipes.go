package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Ingredient is one entry of a recipe's material cost.
type Ingredient struct {
	Item   ItemName
	Amount decimal.Decimal
}

// Recipe describes how an item is obtained through the shop. Seeds
// and tools are crafted against shop stock; limited editions are
// listed with Craftable=false and can only be minted externally.
type Recipe struct {
	Output   ItemName
	SFLPrice decimal.Decimal
	// Ingredients are consumed from inventory, scaled by the crafted
	// amount.
	Ingredients []Ingredient
	Craftable   bool
	// FromStock marks recipes sold against the farm's shop stock.
	FromStock bool
	// Supply is the informational total mint cap for limited editions.
	Supply int64
	// DefaultStock seeds the shop stock of a freshly created farm.
	DefaultStock decimal.Decimal
}

// recipes is the full shop table: seed packets, tools and the limited
// edition listings. Limited editions never pass a craft action; they
// are listed so the dispatcher can answer for them by name.
var recipes = map[ItemName]Recipe{
	// Seed packets, no material cost.
	SunflowerSeed:   {Output: SunflowerSeed, SFLPrice: decimal.RequireFromString("0.01"), Craftable: true, FromStock: true, DefaultStock: decimal.NewFromInt(400)},
	PotatoSeed:      {Output: PotatoSeed, SFLPrice: decimal.RequireFromString("0.02"), Craftable: true, FromStock: true, DefaultStock: decimal.NewFromInt(300)},
	PumpkinSeed:     {Output: PumpkinSeed, SFLPrice: decimal.RequireFromString("0.2"), Craftable: true, FromStock: true, DefaultStock: decimal.NewFromInt(200)},
	BeetrootSeed:    {Output: BeetrootSeed, SFLPrice: decimal.RequireFromString("0.3"), Craftable: true, FromStock: true, DefaultStock: decimal.NewFromInt(150)},
	CauliflowerSeed: {Output: CauliflowerSeed, SFLPrice: decimal.RequireFromString("0.5"), Craftable: true, FromStock: true, DefaultStock: decimal.NewFromInt(100)},
	ParsnipSeed:     {Output: ParsnipSeed, SFLPrice: decimal.NewFromInt(1), Craftable: true, FromStock: true, DefaultStock: decimal.NewFromInt(60)},
	RadishSeed:      {Output: RadishSeed, SFLPrice: decimal.RequireFromString("1.5"), Craftable: true, FromStock: true, DefaultStock: decimal.NewFromInt(40)},

	// Tools.
	Axe: {Output: Axe, SFLPrice: decimal.NewFromInt(1), Craftable: true, FromStock: true, DefaultStock: decimal.NewFromInt(50)},
	WoodPickaxe: {Output: WoodPickaxe, SFLPrice: decimal.NewFromInt(2), Craftable: true, FromStock: true, DefaultStock: decimal.NewFromInt(30),
		Ingredients: []Ingredient{{Item: Wood, Amount: decimal.NewFromInt(5)}}},
	StonePickaxe: {Output: StonePickaxe, SFLPrice: decimal.NewFromInt(2), Craftable: true, FromStock: true, DefaultStock: decimal.NewFromInt(30),
		Ingredients: []Ingredient{{Item: Wood, Amount: decimal.NewFromInt(3)}, {Item: Stone, Amount: decimal.NewFromInt(5)}}},
	IronPickaxe: {Output: IronPickaxe, SFLPrice: decimal.NewFromInt(5), Craftable: true, FromStock: true, DefaultStock: decimal.NewFromInt(30),
		Ingredients: []Ingredient{{Item: Wood, Amount: decimal.NewFromInt(3)}, {Item: Iron, Amount: decimal.NewFromInt(5)}}},
	Hammer: {Output: Hammer, SFLPrice: decimal.NewFromInt(5), Craftable: true, FromStock: true, DefaultStock: decimal.NewFromInt(20),
		Ingredients: []Ingredient{{Item: Wood, Amount: decimal.NewFromInt(5)}, {Item: Stone, Amount: decimal.NewFromInt(5)}}},
	Rod: {Output: Rod, SFLPrice: decimal.NewFromInt(5), Craftable: true, FromStock: true, DefaultStock: decimal.NewFromInt(20),
		Ingredients: []Ingredient{{Item: Wood, Amount: decimal.NewFromInt(5)}}},

	// Limited editions.
	ChickenCoop:       {Output: ChickenCoop, SFLPrice: decimal.NewFromInt(5), Supply: 1000},
	Scarecrow:         {Output: Scarecrow, SFLPrice: decimal.NewFromInt(10), Supply: 5000},
	GoldenCauliflower: {Output: GoldenCauliflower, SFLPrice: decimal.NewFromInt(100), Supply: 100},
	PotatoStatue:      {Output: PotatoStatue, SFLPrice: decimal.RequireFromString("0.5"), Supply: 5000},
	Gnome:             {Output: Gnome, SFLPrice: decimal.NewFromInt(10), Supply: 1000},
	Fountain:          {Output: Fountain, SFLPrice: decimal.NewFromInt(5), Supply: 1000},
}

// RecipeFor looks up the shop listing for an item.
func RecipeFor(name ItemName) (Recipe, bool) {
	r, ok := recipes[name]
	return r, ok
}

// MustRecipe looks up a shop listing and panics on an unlisted name.
func MustRecipe(name ItemName) Recipe {
	r, ok := recipes[name]
	if !ok {
		panic(fmt.Sprintf("catalog: no recipe for %q", name))
	}
	return r
}

// DefaultStock returns a fresh copy of the shop stock a new farm
// starts with.
func DefaultStock() map[ItemName]decimal.Decimal {
	out := make(map[ItemName]decimal.Decimal)
	for name, r := range recipes {
		if r.FromStock && r.DefaultStock.IsPositive() {
			out[name] = r.DefaultStock
		}
	}
	return out
}
