package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/farmchain-go/internal/application/farm/commands"
)

// withdrawSteps drives the withdrawal pipeline through the mediator
// against the shared application context.
type withdrawSteps struct {
	ctx *applicationContext
}

func (ws *withdrawSteps) withdraw(sender, signature, sfl string, ids []int, amounts []string) error {
	if ws.ctx.farm == nil {
		return fmt.Errorf("no farm available")
	}
	return ws.ctx.dispatch(&commands.WithdrawCommand{
		FarmID:    ws.ctx.farm.ID().Value(),
		Sender:    sender,
		SessionID: ws.ctx.session,
		Signature: signature,
		SFL:       sfl,
		IDs:       ids,
		Amounts:   amounts,
	})
}

// When steps

func (ws *withdrawSteps) theOwnerWithdrawsSFL(sfl, signature string) error {
	return ws.withdraw(ws.ctx.farm.Owner().Value(), signature, sfl, nil, nil)
}

func (ws *withdrawSteps) theStrangerWithdrawsSFL(sfl, signature string) error {
	return ws.withdraw(strangerWallet, signature, sfl, nil, nil)
}

func (ws *withdrawSteps) theOwnerWithdrawsItem(id int, amount, signature string) error {
	return ws.withdraw(ws.ctx.farm.Owner().Value(), signature, "0", []int{id}, []string{amount})
}

func (ws *withdrawSteps) theOwnerWithdrawsMismatchedArrays(signature string) error {
	return ws.withdraw(ws.ctx.farm.Owner().Value(), signature, "0", []int{13, 14}, []string{"1"})
}

// Then steps

func (ws *withdrawSteps) theWithdrawalIsAuthorized() error {
	if ws.ctx.err != nil {
		return fmt.Errorf("expected withdrawal to be authorized, got error: %v", ws.ctx.err)
	}
	if _, ok := ws.ctx.response.(*commands.WithdrawResponse); !ok {
		return fmt.Errorf("expected a withdrawal response, got %T", ws.ctx.response)
	}
	return nil
}

func (ws *withdrawSteps) theWithdrawalIsRejectedWith(expected string) error {
	if ws.ctx.err == nil {
		return fmt.Errorf("expected withdrawal to be rejected with '%s', but it succeeded", expected)
	}
	if ws.ctx.err.Error() != expected {
		return fmt.Errorf("expected error '%s', got '%s'", expected, ws.ctx.err.Error())
	}
	return nil
}

func (ws *withdrawSteps) thePayloadCarriesATaxOf(bps int) error {
	if len(ws.ctx.signer.Payloads) != 1 {
		return fmt.Errorf("expected the signer to receive 1 payload, got %d", len(ws.ctx.signer.Payloads))
	}
	payload := ws.ctx.signer.Payloads[0]
	if payload.TaxBps != int64(bps) {
		return fmt.Errorf("expected tax of %d basis points, got %d", bps, payload.TaxBps)
	}
	return nil
}

func (ws *withdrawSteps) theClientReceivesSignatureWithDeadline(signature string, deadline int) error {
	response, ok := ws.ctx.response.(*commands.WithdrawResponse)
	if !ok {
		return fmt.Errorf("expected a withdrawal response, got %T", ws.ctx.response)
	}
	if response.Signature != signature {
		return fmt.Errorf("expected signature '%s', got '%s'", signature, response.Signature)
	}
	if response.Deadline != int64(deadline) {
		return fmt.Errorf("expected deadline %d, got %d", deadline, response.Deadline)
	}
	return nil
}

func InitializeWithdrawScenario(ctx *godog.ScenarioContext) {
	ws := &withdrawSteps{ctx: appCtx}

	// When steps
	ctx.Step(`^the owner withdraws "([^"]*)" SFL with signature "([^"]*)"$`, ws.theOwnerWithdrawsSFL)
	ctx.Step(`^the stranger withdraws "([^"]*)" SFL with signature "([^"]*)"$`, ws.theStrangerWithdrawsSFL)
	ctx.Step(`^the owner withdraws item (\d+) amount "([^"]*)" with signature "([^"]*)"$`, ws.theOwnerWithdrawsItem)
	ctx.Step(`^the owner withdraws mismatched item arrays with signature "([^"]*)"$`, ws.theOwnerWithdrawsMismatchedArrays)

	// Then steps
	ctx.Step(`^the withdrawal is authorized$`, ws.theWithdrawalIsAuthorized)
	ctx.Step(`^the withdrawal is rejected with "([^"]*)"$`, ws.theWithdrawalIsRejectedWith)
	ctx.Step(`^the withdrawal payload carries a tax of (\d+) basis points$`, ws.thePayloadCarriesATaxOf)
	ctx.Step(`^the client receives signature "([^"]*)" with deadline (\d+)$`, ws.theClientReceivesSignatureWithDeadline)
}
