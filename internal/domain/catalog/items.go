package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ItemName is the symbolic name of a game item. Names are the keys of
// every farm document map and must match the client vocabulary exactly.
type ItemName string

// Category classifies an item for the economic rules: what can be
// crafted, sold, withdrawn or redeemed is decided per category.
type Category string

const (
	CategorySeed     Category = "seed"
	CategoryCrop     Category = "crop"
	CategoryTool     Category = "tool"
	CategoryResource Category = "resource"
	CategoryLimited  Category = "limited"
	CategoryCurrency Category = "currency"
)

// Item names. The string values are wire format and must never change.
const (
	SFL ItemName = "SFL"

	Axe          ItemName = "Axe"
	WoodPickaxe  ItemName = "Wood Pickaxe"
	StonePickaxe ItemName = "Stone Pickaxe"
	IronPickaxe  ItemName = "Iron Pickaxe"
	Hammer       ItemName = "Hammer"
	Rod          ItemName = "Rod"

	ChickenCoop       ItemName = "Chicken Coop"
	Scarecrow         ItemName = "Scarecrow"
	GoldenCauliflower ItemName = "Golden Cauliflower"
	PotatoStatue      ItemName = "Potato Statue"
	Gnome             ItemName = "Gnome"
	Fountain          ItemName = "Fountain"

	Wood      ItemName = "Wood"
	Stone     ItemName = "Stone"
	Iron      ItemName = "Iron"
	Gold      ItemName = "Gold"
	Egg       ItemName = "Egg"
	EasterEgg ItemName = "Easter Egg"

	SunflowerSeed   ItemName = "Sunflower Seed"
	PotatoSeed      ItemName = "Potato Seed"
	PumpkinSeed     ItemName = "Pumpkin Seed"
	BeetrootSeed    ItemName = "Beetroot Seed"
	CauliflowerSeed ItemName = "Cauliflower Seed"
	ParsnipSeed     ItemName = "Parsnip Seed"
	RadishSeed      ItemName = "Radish Seed"

	Sunflower   ItemName = "Sunflower"
	Potato      ItemName = "Potato"
	Pumpkin     ItemName = "Pumpkin"
	Beetroot    ItemName = "Beetroot"
	Cauliflower ItemName = "Cauliflower"
	Parsnip     ItemName = "Parsnip"
	Radish      ItemName = "Radish"
)

// Field and tree layout constants shared by the whole engine.
const (
	// FieldCount is the number of plantable plots per farm (indices 0..21).
	FieldCount = 22
	// TreeCount is the number of choppable trees per farm.
	TreeCount = 5
	// TreeRecovery is how long a felled tree needs before it refills.
	TreeRecovery = 120 * time.Minute
	// MaxEasterEggs caps promotional Easter Egg redemptions per farm.
	MaxEasterEggs = 10
)

// TreeWood is the yield a tree holds when fully recovered.
var TreeWood = decimal.NewFromInt(3)

// Item is one entry of the static item universe.
type Item struct {
	Name     ItemName
	Category Category
	// ID is the on-chain token ID of the item in the inventory
	// contract. The reconciler reads on-chain inventory as an array
	// positional in ascending ID order.
	ID int
	// Decimals is the on-chain fixed-point precision. Tools and
	// limited editions are unit tokens (0); resources, seeds and
	// crops are fractional 18-decimal tokens like the currency.
	Decimals int32
}

// items is the full item universe in ascending on-chain ID order.
// SFL is the currency ERC-20 and carries no inventory ID.
//
// The ID assignment is contract ABI and must never be reordered.
var items = []Item{
	{Name: Axe, Category: CategoryTool, ID: 1, Decimals: 0},
	{Name: WoodPickaxe, Category: CategoryTool, ID: 2, Decimals: 0},
	{Name: StonePickaxe, Category: CategoryTool, ID: 3, Decimals: 0},
	{Name: IronPickaxe, Category: CategoryTool, ID: 4, Decimals: 0},
	{Name: Hammer, Category: CategoryTool, ID: 5, Decimals: 0},
	{Name: Rod, Category: CategoryTool, ID: 6, Decimals: 0},

	{Name: ChickenCoop, Category: CategoryLimited, ID: 7, Decimals: 0},
	{Name: Scarecrow, Category: CategoryLimited, ID: 8, Decimals: 0},
	{Name: GoldenCauliflower, Category: CategoryLimited, ID: 9, Decimals: 0},
	{Name: PotatoStatue, Category: CategoryLimited, ID: 10, Decimals: 0},
	{Name: Gnome, Category: CategoryLimited, ID: 11, Decimals: 0},
	{Name: Fountain, Category: CategoryLimited, ID: 12, Decimals: 0},

	{Name: Wood, Category: CategoryResource, ID: 13, Decimals: 18},
	{Name: Stone, Category: CategoryResource, ID: 14, Decimals: 18},
	{Name: Iron, Category: CategoryResource, ID: 15, Decimals: 18},
	{Name: Gold, Category: CategoryResource, ID: 16, Decimals: 18},
	{Name: Egg, Category: CategoryResource, ID: 17, Decimals: 18},
	{Name: EasterEgg, Category: CategoryResource, ID: 18, Decimals: 18},

	{Name: SunflowerSeed, Category: CategorySeed, ID: 19, Decimals: 18},
	{Name: PotatoSeed, Category: CategorySeed, ID: 20, Decimals: 18},
	{Name: PumpkinSeed, Category: CategorySeed, ID: 21, Decimals: 18},
	{Name: BeetrootSeed, Category: CategorySeed, ID: 22, Decimals: 18},
	{Name: CauliflowerSeed, Category: CategorySeed, ID: 23, Decimals: 18},
	{Name: ParsnipSeed, Category: CategorySeed, ID: 24, Decimals: 18},
	{Name: RadishSeed, Category: CategorySeed, ID: 25, Decimals: 18},

	{Name: Sunflower, Category: CategoryCrop, ID: 26, Decimals: 18},
	{Name: Potato, Category: CategoryCrop, ID: 27, Decimals: 18},
	{Name: Pumpkin, Category: CategoryCrop, ID: 28, Decimals: 18},
	{Name: Beetroot, Category: CategoryCrop, ID: 29, Decimals: 18},
	{Name: Cauliflower, Category: CategoryCrop, ID: 30, Decimals: 18},
	{Name: Parsnip, Category: CategoryCrop, ID: 31, Decimals: 18},
	{Name: Radish, Category: CategoryCrop, ID: 32, Decimals: 18},
}

var (
	itemsByName map[ItemName]Item
	itemsByID   map[int]Item
	idList      []ItemName
)

func init() {
	itemsByName = make(map[ItemName]Item, len(items))
	itemsByID = make(map[int]Item, len(items))
	idList = make([]ItemName, 0, len(items))

	lastID := 0
	for _, item := range items {
		if _, dup := itemsByName[item.Name]; dup {
			panic(fmt.Sprintf("catalog: duplicate item name %q", item.Name))
		}
		if _, dup := itemsByID[item.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate item ID %d", item.ID))
		}
		if item.ID != lastID+1 {
			panic(fmt.Sprintf("catalog: item IDs must be contiguous, got %d after %d", item.ID, lastID))
		}
		lastID = item.ID
		itemsByName[item.Name] = item
		itemsByID[item.ID] = item
		idList = append(idList, item.Name)
	}
}

// ItemByName looks up an item by its symbolic name.
func ItemByName(name ItemName) (Item, bool) {
	item, ok := itemsByName[name]
	return item, ok
}

// MustItem looks up an item and panics on an unknown name. Unknown
// names reaching this point are programmer errors; wire input is
// checked with ItemByName before it gets here.
func MustItem(name ItemName) Item {
	item, ok := itemsByName[name]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown item %q", name))
	}
	return item
}

// ItemByID looks up an item by its on-chain token ID.
func ItemByID(id int) (Item, bool) {
	item, ok := itemsByID[id]
	return item, ok
}

// IDList returns all item names in ascending on-chain ID order. The
// on-chain inventory endpoint returns amounts positionally in this
// order.
func IDList() []ItemName {
	out := make([]ItemName, len(idList))
	copy(out, idList)
	return out
}

// IsWithdrawable reports whether an item may leave the farm to an
// on-chain balance. Crops and seeds stay in the game.
func IsWithdrawable(name ItemName) bool {
	item, ok := itemsByName[name]
	if !ok {
		return false
	}
	switch item.Category {
	case CategoryTool, CategoryResource, CategoryLimited:
		return true
	default:
		return false
	}
}

// IsRedeemable reports whether an item can be claimed through the
// promotional redeem action.
func IsRedeemable(name ItemName) bool {
	return name == EasterEgg
}
