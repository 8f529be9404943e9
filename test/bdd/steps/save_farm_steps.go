package steps

import (
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/farmchain-go/internal/application/farm/commands"
	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// saveSteps drives the save pipeline end to end through the mediator,
// signature middleware included, against the shared application
// context.
type saveSteps struct {
	ctx *applicationContext
}

// plantBatch is one plant 30 seconds before the mock clock's now,
// comfortably inside every temporal threshold.
func (ss *saveSteps) plantBatch(item string, index int) []actions.Action {
	return []actions.Action{
		actions.Plant{
			Index:     index,
			Item:      catalog.ItemName(item),
			CreatedAt: ss.ctx.clock.Now().Add(-30 * time.Second),
		},
	}
}

func (ss *saveSteps) save(farmID uint64, sender, session, signature string, batch []actions.Action) error {
	return ss.ctx.dispatch(&commands.SaveFarmCommand{
		FarmID:    farmID,
		Sender:    sender,
		SessionID: session,
		Signature: signature,
		Actions:   batch,
	})
}

// When steps

func (ss *saveSteps) theOwnerSavesAPlantBatch(item string, index int, signature string) error {
	if ss.ctx.farm == nil {
		return fmt.Errorf("no farm available")
	}
	return ss.save(ss.ctx.farm.ID().Value(), ss.ctx.farm.Owner().Value(), ss.ctx.session, signature, ss.plantBatch(item, index))
}

func (ss *saveSteps) theStrangerSavesAPlantBatch(item string, index int, signature string) error {
	if ss.ctx.farm == nil {
		return fmt.Errorf("no farm available")
	}
	return ss.save(ss.ctx.farm.ID().Value(), strangerWallet, ss.ctx.session, signature, ss.plantBatch(item, index))
}

func (ss *saveSteps) theOwnerSavesABatchForFarm(farmID int, signature string) error {
	if ss.ctx.farm == nil {
		return fmt.Errorf("no farm available")
	}
	return ss.save(uint64(farmID), ss.ctx.farm.Owner().Value(), ss.ctx.session, signature, nil)
}

func (ss *saveSteps) theOwnerSavesWithAStaleSession(item string, index int) error {
	if ss.ctx.farm == nil {
		return fmt.Errorf("no farm available")
	}
	stale := shared.NewSessionToken().Value()
	return ss.save(ss.ctx.farm.ID().Value(), ss.ctx.farm.Owner().Value(), stale, "0xgood", ss.plantBatch(item, index))
}

func (ss *saveSteps) theOwnerSavesABackwardsBatch(signature string) error {
	if ss.ctx.farm == nil {
		return fmt.Errorf("no farm available")
	}
	now := ss.ctx.clock.Now()
	batch := []actions.Action{
		actions.Plant{Index: 0, Item: catalog.SunflowerSeed, CreatedAt: now.Add(-10 * time.Second)},
		actions.Plant{Index: 1, Item: catalog.SunflowerSeed, CreatedAt: now.Add(-20 * time.Second)},
	}
	return ss.save(ss.ctx.farm.ID().Value(), ss.ctx.farm.Owner().Value(), ss.ctx.session, signature, batch)
}

// Then steps

func (ss *saveSteps) theSaveSucceeds() error {
	if ss.ctx.err != nil {
		return fmt.Errorf("expected save to succeed, got error: %v", ss.ctx.err)
	}
	if _, ok := ss.ctx.response.(*commands.SaveFarmResponse); !ok {
		return fmt.Errorf("expected a save response, got %T", ss.ctx.response)
	}
	return nil
}

func (ss *saveSteps) theSaveIsRejectedWith(expected string) error {
	if ss.ctx.err == nil {
		return fmt.Errorf("expected save to be rejected with '%s', but it succeeded", expected)
	}
	if ss.ctx.err.Error() != expected {
		return fmt.Errorf("expected error '%s', got '%s'", expected, ss.ctx.err.Error())
	}
	return nil
}

func (ss *saveSteps) theFarmReceivesAFreshSessionToken() error {
	response, ok := ss.ctx.response.(*commands.SaveFarmResponse)
	if !ok {
		return fmt.Errorf("expected a save response, got %T", ss.ctx.response)
	}
	if response.SessionID == ss.ctx.session {
		return fmt.Errorf("expected a fresh session token, got the old one back")
	}
	if _, err := shared.ParseSessionToken(response.SessionID); err != nil {
		return fmt.Errorf("new session token is malformed: %v", err)
	}
	return nil
}

func (ss *saveSteps) theBatchIsRecordedInTheAuditLog() error {
	if len(ss.ctx.events.Batches) != 1 {
		return fmt.Errorf("expected 1 audit batch, got %d", len(ss.ctx.events.Batches))
	}
	return nil
}

func (ss *saveSteps) theAuditLogIsEmpty() error {
	if len(ss.ctx.events.Batches) != 0 {
		return fmt.Errorf("expected an empty audit log, got %d batches", len(ss.ctx.events.Batches))
	}
	return nil
}

func InitializeSaveFarmScenario(ctx *godog.ScenarioContext) {
	ss := &saveSteps{ctx: appCtx}

	// When steps
	ctx.Step(`^the owner saves a batch planting "([^"]*)" on plot (\d+) with signature "([^"]*)"$`, ss.theOwnerSavesAPlantBatch)
	ctx.Step(`^the stranger saves a batch planting "([^"]*)" on plot (\d+) with signature "([^"]*)"$`, ss.theStrangerSavesAPlantBatch)
	ctx.Step(`^the owner saves a batch for farm (\d+) with signature "([^"]*)"$`, ss.theOwnerSavesABatchForFarm)
	ctx.Step(`^the owner saves a batch planting "([^"]*)" on plot (\d+) with a stale session$`, ss.theOwnerSavesWithAStaleSession)
	ctx.Step(`^the owner saves a batch whose actions run backwards with signature "([^"]*)"$`, ss.theOwnerSavesABackwardsBatch)

	// Then steps
	ctx.Step(`^the save succeeds$`, ss.theSaveSucceeds)
	ctx.Step(`^the save is rejected with "([^"]*)"$`, ss.theSaveIsRejectedWith)
	ctx.Step(`^the farm receives a fresh session token$`, ss.theFarmReceivesAFreshSessionToken)
	ctx.Step(`^the batch is recorded in the audit log$`, ss.theBatchIsRecordedInTheAuditLog)
	ctx.Step(`^the audit log is empty$`, ss.theAuditLogIsEmpty)
}
