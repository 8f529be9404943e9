package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/farmchain-go/internal/application/auth"
	"github.com/andrescamacho/farmchain-go/internal/application/mediator"
	"github.com/andrescamacho/farmchain-go/internal/application/setup"
	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/ports"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
	"github.com/andrescamacho/farmchain-go/test/helpers"
)

const strangerWallet = "0x8ba1f109551bd432803012645ac136ddd64dba72"

// applicationContext carries the full application wiring for pipeline
// scenarios: mocks for every port, the seeded farm, and the last
// dispatch outcome. Save and withdrawal steps share it so both
// features use the same Background vocabulary.
type applicationContext struct {
	farms     *helpers.MockFarmRepository
	events    *helpers.MockEventStore
	chain     *helpers.MockChain
	signer    *helpers.MockSigner
	wallet    *helpers.MockWallet
	whitelist *helpers.MockWhitelist
	clock     *shared.MockClock

	farm    *farm.Farm
	session string

	response mediator.Response
	err      error
}

func (ac *applicationContext) reset() {
	ac.farms = helpers.NewMockFarmRepository()
	ac.events = helpers.NewMockEventStore()
	ac.chain = helpers.NewMockChain()
	ac.signer = helpers.NewMockSigner()
	ac.wallet = helpers.NewMockWallet()
	ac.whitelist = nil
	ac.clock = shared.NewMockClock(time.Date(2022, 3, 14, 12, 0, 0, 0, time.UTC))
	ac.farm = nil
	ac.session = ""
	ac.response = nil
	ac.err = nil
}

// dispatch builds the mediator exactly as the server entrypoint does
// and sends one request through it.
func (ac *applicationContext) dispatch(request mediator.Request) error {
	med := mediator.NewMediator()
	med.Use(auth.SignatureMiddleware(ac.wallet))

	var whitelist ports.Whitelist
	if ac.whitelist != nil {
		whitelist = ac.whitelist
	}

	registry := setup.NewHandlerRegistry(ac.farms, ac.events, ac.chain, ac.signer, whitelist, ac.clock)
	if err := registry.RegisterFarmHandlers(med); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}

	ac.response, ac.err = med.Send(context.Background(), request)
	return nil
}

// Given steps

func (ac *applicationContext) aFarmOwnedByHolding(farmID int, owner string, qty int, item string) error {
	id := shared.MustNewFarmID(uint64(farmID))
	addr, err := shared.NewAddress(owner)
	if err != nil {
		return err
	}

	f, err := farm.NewFarm(id, addr)
	if err != nil {
		return err
	}
	f.State().SetItem(catalog.ItemName(item), decimal.NewFromInt(int64(qty)))

	ac.farms.AddFarm(f)
	ac.chain.SetOwner(id, addr)
	ac.farm = f
	ac.session = f.Session().Value()
	return nil
}

func (ac *applicationContext) theWalletSignatureIsValid(signature string) error {
	ac.wallet.Allow(signature)
	return nil
}

func (ac *applicationContext) theEngineRequiresWhitelistedWallets() error {
	ac.whitelist = helpers.NewMockWhitelist()
	return nil
}

func (ac *applicationContext) theWalletIsWhitelisted(address string) error {
	if ac.whitelist == nil {
		return fmt.Errorf("the whitelist gate is not enabled")
	}
	addr, err := shared.NewAddress(address)
	if err != nil {
		return err
	}
	ac.whitelist.Allow(addr)
	return nil
}

// Shared Then steps

func (ac *applicationContext) loadFarm() (*farm.Farm, error) {
	if ac.farm == nil {
		return nil, fmt.Errorf("no farm available")
	}
	return ac.farms.GetFarmByID(context.Background(), ac.farm.ID())
}

func (ac *applicationContext) theSavedFarmHolds(qty int, item string) error {
	f, err := ac.loadFarm()
	if err != nil {
		return err
	}
	have := f.State().InventoryOf(catalog.ItemName(item))
	if !have.Equal(decimal.NewFromInt(int64(qty))) {
		return fmt.Errorf("expected the saved farm to hold %d %s, got %s", qty, item, have)
	}
	return nil
}

var appCtx = &applicationContext{}

func InitializeApplicationScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		appCtx.reset()
		return ctx, nil
	})

	// Given steps shared by the save and withdrawal features
	ctx.Step(`^a farm (\d+) owned by "([^"]*)" holding (\d+) "([^"]*)"$`, appCtx.aFarmOwnedByHolding)
	ctx.Step(`^the wallet signature "([^"]*)" is valid$`, appCtx.theWalletSignatureIsValid)
	ctx.Step(`^the engine requires whitelisted wallets$`, appCtx.theEngineRequiresWhitelistedWallets)
	ctx.Step(`^the wallet "([^"]*)" is whitelisted$`, appCtx.theWalletIsWhitelisted)

	// Shared Then steps
	ctx.Step(`^the saved farm holds (\d+) "([^"]*)"$`, appCtx.theSavedFarmHolds)
}
