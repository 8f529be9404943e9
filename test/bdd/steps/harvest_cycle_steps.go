package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/replay"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

type harvestCycleContext struct {
	baseTime time.Time
	farm     *farm.Farm
	batch    []actions.Action
	result   *farm.State
	err      error
}

func (hc *harvestCycleContext) reset() {
	hc.baseTime = time.Date(2022, 3, 14, 12, 0, 0, 0, time.UTC)
	hc.farm = nil
	hc.batch = nil
	hc.result = nil
	hc.err = nil
}

// state returns the state assertions run against: the replayed state
// after a successful replay, the untouched original after a failure.
func (hc *harvestCycleContext) state() *farm.State {
	if hc.result != nil {
		return hc.result
	}
	return hc.farm.State()
}

func (hc *harvestCycleContext) at(offsetSeconds int) time.Time {
	return hc.baseTime.Add(time.Duration(offsetSeconds) * time.Second)
}

// Given steps

func (hc *harvestCycleContext) aFarmWithItemsInInventory(qty int, item string) error {
	f, err := farm.NewFarm(shared.MustNewFarmID(42), shared.MustNewAddress("0x71ce81cb65cbc9a04ba4d0d95b344c2cbf7dc223"))
	if err != nil {
		return err
	}
	f.State().SetItem(catalog.ItemName(item), decimal.NewFromInt(int64(qty)))
	hc.farm = f
	return nil
}

func (hc *harvestCycleContext) aFarmStockedWith(table *godog.Table) error {
	f, err := farm.NewFarm(shared.MustNewFarmID(42), shared.MustNewAddress("0x71ce81cb65cbc9a04ba4d0d95b344c2cbf7dc223"))
	if err != nil {
		return err
	}
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		qty, err := decimal.NewFromString(cellValue(table, row, "amount"))
		if err != nil {
			return err
		}
		f.State().SetItem(catalog.ItemName(cellValue(table, row, "item")), qty)
	}
	hc.farm = f
	return nil
}

// cellValue looks up a cell in a table row by header column name.
func cellValue(table *godog.Table, row *messages.PickleTableRow, column string) string {
	for i, header := range table.Rows[0].Cells {
		if header.Value == column {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}
	return ""
}

func (hc *harvestCycleContext) theFarmHasItemsInInventory(qty int, item string) error {
	if hc.farm == nil {
		return fmt.Errorf("no farm available")
	}
	hc.farm.State().SetItem(catalog.ItemName(item), decimal.NewFromInt(int64(qty)))
	return nil
}

func (hc *harvestCycleContext) theFarmHasABalanceOf(balance string) error {
	if hc.farm == nil {
		return fmt.Errorf("no farm available")
	}
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return err
	}
	hc.farm.State().SetBalance(amount)
	return nil
}

// When steps

func (hc *harvestCycleContext) thePlayerPlants(item string, index, offset int) error {
	hc.batch = append(hc.batch, actions.Plant{
		Index:     index,
		Item:      catalog.ItemName(item),
		CreatedAt: hc.at(offset),
	})
	return nil
}

func (hc *harvestCycleContext) thePlayerHarvests(index, offset int) error {
	hc.batch = append(hc.batch, actions.Harvest{
		Index:     index,
		CreatedAt: hc.at(offset),
	})
	return nil
}

func (hc *harvestCycleContext) thePlayerSells(amount int, item string, offset int) error {
	hc.batch = append(hc.batch, actions.Sell{
		Item:      catalog.ItemName(item),
		Amount:    decimal.NewFromInt(int64(amount)),
		CreatedAt: hc.at(offset),
	})
	return nil
}

func (hc *harvestCycleContext) thePlayerChops(index int, tool string, offset int) error {
	hc.batch = append(hc.batch, actions.Chop{
		Index:     index,
		Tool:      catalog.ItemName(tool),
		CreatedAt: hc.at(offset),
	})
	return nil
}

func (hc *harvestCycleContext) thePlayerCrafts(amount int, item string, offset int) error {
	hc.batch = append(hc.batch, actions.Craft{
		Item:      catalog.ItemName(item),
		Amount:    decimal.NewFromInt(int64(amount)),
		CreatedAt: hc.at(offset),
	})
	return nil
}

func (hc *harvestCycleContext) theBatchIsReplayed() error {
	if hc.farm == nil {
		return fmt.Errorf("no farm available")
	}
	hc.result, hc.err = replay.Run(hc.farm.State(), hc.batch)
	return nil
}

// Then steps

func (hc *harvestCycleContext) theReplaySucceeds() error {
	if hc.err != nil {
		return fmt.Errorf("expected replay to succeed, got error: %v", hc.err)
	}
	if hc.result == nil {
		return fmt.Errorf("expected a replayed state, got nil")
	}
	return nil
}

func (hc *harvestCycleContext) theReplayFailsWith(expected string) error {
	if hc.err == nil {
		return fmt.Errorf("expected replay to fail with '%s', but it succeeded", expected)
	}
	if hc.err.Error() != expected {
		return fmt.Errorf("expected error '%s', got '%s'", expected, hc.err.Error())
	}
	return nil
}

func (hc *harvestCycleContext) theInventoryHolds(qty int, item string) error {
	have := hc.state().InventoryOf(catalog.ItemName(item))
	if !have.Equal(decimal.NewFromInt(int64(qty))) {
		return fmt.Errorf("expected %d %s in inventory, got %s", qty, item, have)
	}
	return nil
}

func (hc *harvestCycleContext) theInventoryHoldsNo(item string) error {
	have := hc.state().InventoryOf(catalog.ItemName(item))
	if !have.IsZero() {
		return fmt.Errorf("expected no %s in inventory, got %s", item, have)
	}
	return nil
}

func (hc *harvestCycleContext) theBalanceIs(expected string) error {
	want, err := decimal.NewFromString(expected)
	if err != nil {
		return err
	}
	if !hc.state().Balance().Equal(want) {
		return fmt.Errorf("expected balance %s SFL, got %s", want, hc.state().Balance())
	}
	return nil
}

func (hc *harvestCycleContext) plotIsEmpty(index int) error {
	if _, planted := hc.state().FieldAt(index); planted {
		return fmt.Errorf("expected plot %d to be empty, but it is planted", index)
	}
	return nil
}

func (hc *harvestCycleContext) theShopStockIs(item string, qty int) error {
	have := hc.state().StockOf(catalog.ItemName(item))
	if !have.Equal(decimal.NewFromInt(int64(qty))) {
		return fmt.Errorf("expected stock of %d %s, got %s", qty, item, have)
	}
	return nil
}

func InitializeHarvestCycleScenario(ctx *godog.ScenarioContext) {
	hc := &harvestCycleContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		hc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a farm with (\d+) "([^"]*)" in inventory$`, hc.aFarmWithItemsInInventory)
	ctx.Step(`^a farm stocked with:$`, hc.aFarmStockedWith)
	ctx.Step(`^the farm has (\d+) "([^"]*)" in inventory$`, hc.theFarmHasItemsInInventory)
	ctx.Step(`^the farm has a balance of "([^"]*)" SFL$`, hc.theFarmHasABalanceOf)

	// When steps
	ctx.Step(`^the player plants "([^"]*)" on plot (\d+) at (\d+) seconds$`, hc.thePlayerPlants)
	ctx.Step(`^the player harvests plot (\d+) at (\d+) seconds$`, hc.thePlayerHarvests)
	ctx.Step(`^the player sells (\d+) "([^"]*)" at (\d+) seconds$`, hc.thePlayerSells)
	ctx.Step(`^the player chops tree (\d+) with an "([^"]*)" at (\d+) seconds$`, hc.thePlayerChops)
	ctx.Step(`^the player crafts (\d+) "([^"]*)" at (\d+) seconds$`, hc.thePlayerCrafts)
	ctx.Step(`^the batch is replayed$`, hc.theBatchIsReplayed)

	// Then steps
	ctx.Step(`^the replay succeeds$`, hc.theReplaySucceeds)
	ctx.Step(`^the replay fails with "([^"]*)"$`, hc.theReplayFailsWith)
	ctx.Step(`^the inventory holds (\d+) "([^"]*)"$`, hc.theInventoryHolds)
	ctx.Step(`^the inventory holds no "([^"]*)"$`, hc.theInventoryHoldsNo)
	ctx.Step(`^the balance is "([^"]*)" SFL$`, hc.theBalanceIs)
	ctx.Step(`^plot (\d+) is empty$`, hc.plotIsEmpty)
	ctx.Step(`^the shop stock of "([^"]*)" is (\d+)$`, hc.theShopStockIs)
}
