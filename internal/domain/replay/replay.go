package replay

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
)

var one = decimal.NewFromInt(1)

// Run replays a batch against a working copy of the state. The first
// action error aborts the whole batch and the input state is returned
// to the caller untouched. Errors surface verbatim; their messages
// are client contract.
//
// The batch has already passed the temporal gate, so actions are
// chronologically ordered and plausibly timed; every transition below
// trusts action timestamps for its time math.
func Run(state *farm.State, batch []actions.Action) (*farm.State, error) {
	working := state.Clone()
	for _, action := range batch {
		if err := Apply(working, action); err != nil {
			return nil, err
		}
	}
	return working, nil
}

// Apply executes a single action transition on the state. All
// validations run before the first mutation, so a returned error
// means the state was not touched.
func Apply(state *farm.State, action actions.Action) error {
	switch a := action.(type) {
	case actions.Plant:
		return applyPlant(state, a)
	case actions.Harvest:
		return applyHarvest(state, a)
	case actions.Chop:
		return applyChop(state, a)
	case actions.Craft:
		return applyCraft(state, a)
	case actions.Sell:
		return applySell(state, a)
	case actions.Redeem:
		return applyRedeem(state, a)
	default:
		return &actions.ErrUnknownAction{Tag: string(action.Type())}
	}
}

func applyPlant(state *farm.State, a actions.Plant) error {
	if _, known := catalog.ItemByName(a.Item); !known {
		return &ErrUnknownItem{Item: a.Item}
	}
	// Only items the shop grows count as seeds.
	if _, isSeed := catalog.CropBySeed(a.Item); !isSeed {
		return &ErrUnknownItem{Item: a.Item}
	}
	if state.InventoryOf(a.Item).LessThan(one) {
		return &farm.ErrInsufficientInventory{Item: a.Item, Required: one, Available: state.InventoryOf(a.Item)}
	}
	if _, occupied := state.FieldAt(a.Index); occupied {
		return &ErrFieldOccupied{Index: a.Index}
	}
	if a.Index < 0 || a.Index >= catalog.FieldCount {
		return &ErrInvalidIndex{Index: a.Index, Limit: catalog.FieldCount}
	}

	if err := state.SubtractItem(a.Item, one); err != nil {
		return err
	}
	state.PlantField(a.Index, farm.Field{PlantedAt: a.CreatedAt, Item: a.Item})
	return nil
}

func applyHarvest(state *farm.State, a actions.Harvest) error {
	field, planted := state.FieldAt(a.Index)
	if !planted {
		return &ErrFieldEmpty{Index: a.Index}
	}
	crop, ok := catalog.CropBySeed(field.Item)
	if !ok {
		return &ErrUnknownItem{Item: field.Item}
	}
	readyAt := field.PlantedAt.Add(crop.GrowDuration())
	if a.CreatedAt.Before(readyAt) {
		return &ErrNotGrown{Index: a.Index, ReadyAt: readyAt}
	}

	state.ClearField(a.Index)
	state.AddItem(crop.HarvestsInto, one)
	return nil
}

func applyChop(state *farm.State, a actions.Chop) error {
	if a.Tool != catalog.Axe {
		return &ErrInvalidTool{Tool: a.Tool}
	}
	if state.InventoryOf(catalog.Axe).LessThan(one) {
		return &farm.ErrInsufficientInventory{Item: catalog.Axe, Required: one, Available: state.InventoryOf(catalog.Axe)}
	}
	tree, exists := state.TreeAt(a.Index)
	if !exists {
		return &ErrInvalidIndex{Index: a.Index, Limit: catalog.TreeCount}
	}

	// A felled tree refills to the template yield once recovered.
	if tree.Wood.IsZero() {
		recoversAt := tree.ChoppedAt.Add(catalog.TreeRecovery)
		if a.CreatedAt.Before(recoversAt) {
			return &ErrTreeNotRecovered{Index: a.Index, RecoversAt: recoversAt}
		}
		tree.Wood = catalog.TreeWood
	}

	if err := state.SubtractItem(catalog.Axe, one); err != nil {
		return err
	}
	tree.Wood = tree.Wood.Sub(one)
	if tree.Wood.IsZero() {
		tree.ChoppedAt = a.CreatedAt
	}
	state.SetTree(a.Index, tree)
	state.AddItem(catalog.Wood, one)
	return nil
}

func applyCraft(state *farm.State, a actions.Craft) error {
	if !a.Amount.IsInteger() || !a.Amount.IsPositive() {
		return &ErrInvalidAmount{Amount: a.Amount}
	}
	if _, known := catalog.ItemByName(a.Item); !known {
		return &ErrUnknownItem{Item: a.Item}
	}
	recipe, listed := catalog.RecipeFor(a.Item)
	if !listed || !recipe.Craftable {
		return &ErrNotCraftable{Item: a.Item}
	}

	// Validate the full cost before touching anything so a failed
	// craft is a no-op.
	for _, ingredient := range recipe.Ingredients {
		need := ingredient.Amount.Mul(a.Amount)
		if state.InventoryOf(ingredient.Item).LessThan(need) {
			return &farm.ErrInsufficientInventory{
				Item:      ingredient.Item,
				Required:  need,
				Available: state.InventoryOf(ingredient.Item),
			}
		}
	}
	price := recipe.SFLPrice.Mul(a.Amount)
	if state.Balance().LessThan(price) {
		return &farm.ErrInsufficientBalance{Required: price, Available: state.Balance()}
	}
	if recipe.FromStock && state.StockOf(a.Item).LessThan(a.Amount) {
		return &farm.ErrInsufficientStock{Item: a.Item, Required: a.Amount, Available: state.StockOf(a.Item)}
	}

	for _, ingredient := range recipe.Ingredients {
		if err := state.SubtractItem(ingredient.Item, ingredient.Amount.Mul(a.Amount)); err != nil {
			return err
		}
	}
	if err := state.Debit(price); err != nil {
		return err
	}
	if recipe.FromStock {
		if err := state.TakeStock(a.Item, a.Amount); err != nil {
			return err
		}
	}
	state.AddItem(a.Item, a.Amount)
	return nil
}

func applySell(state *farm.State, a actions.Sell) error {
	if !a.Amount.IsInteger() || !a.Amount.IsPositive() {
		return &ErrInvalidAmount{Amount: a.Amount}
	}
	if _, known := catalog.ItemByName(a.Item); !known {
		return &ErrUnknownItem{Item: a.Item}
	}
	price, sellable := catalog.SellPrice(a.Item)
	if !sellable {
		return &ErrNotSellable{Item: a.Item}
	}

	if err := state.SubtractItem(a.Item, a.Amount); err != nil {
		return err
	}
	state.Credit(price.Mul(a.Amount))
	return nil
}

func applyRedeem(state *farm.State, a actions.Redeem) error {
	if !catalog.IsRedeemable(a.Item) {
		return &ErrNotRedeemable{Item: a.Item}
	}
	if state.InventoryOf(a.Item).GreaterThanOrEqual(decimal.NewFromInt(catalog.MaxEasterEggs)) {
		return &ErrNotRedeemable{Item: a.Item}
	}

	state.AddItem(a.Item, one)
	return nil
}
