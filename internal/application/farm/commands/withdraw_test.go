package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/farmchain-go/internal/application/farm/commands"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
	"github.com/andrescamacho/farmchain-go/test/helpers"
)

const withdrawOwner = "0x71ce81cb65cbc9a04ba4d0d95b344c2cbf7dc223"

func newWithdrawFixture(t *testing.T) (*helpers.MockFarmRepository, *helpers.MockChain, *helpers.MockSigner, *commands.WithdrawCommand) {
	t.Helper()

	farmID := shared.MustNewFarmID(7)
	owner := shared.MustNewAddress(withdrawOwner)

	f, err := farm.NewFarm(farmID, owner)
	require.NoError(t, err)

	farms := helpers.NewMockFarmRepository()
	farms.AddFarm(f)

	chain := helpers.NewMockChain()
	chain.SetOwner(farmID, owner)

	cmd := &commands.WithdrawCommand{
		FarmID:    7,
		Sender:    withdrawOwner,
		SessionID: f.Session().Value(),
		Signature: "0xclientsig",
		SFL:       "50",
		IDs:       []int{13},
		Amounts:   []string{"3000000000000000000"},
	}

	return farms, chain, helpers.NewMockSigner(), cmd
}

func TestWithdrawReturnsSignerAuthorization(t *testing.T) {
	// Arrange
	farms, chain, signer, cmd := newWithdrawFixture(t)
	handler := commands.NewWithdrawHandler(farms, chain, signer)

	// Act
	response, err := handler.Handle(context.Background(), cmd)

	// Assert
	require.NoError(t, err)
	result, ok := response.(*commands.WithdrawResponse)
	require.True(t, ok)
	assert.Equal(t, "0xsigned", result.Signature)
	assert.Equal(t, int64(1700000600), result.Deadline)

	require.Len(t, signer.Payloads, 1)
	payload := signer.Payloads[0]
	assert.Equal(t, uint64(7), payload.FarmID.Value())
	assert.Equal(t, withdrawOwner, payload.Sender.Value())
	assert.Equal(t, []int{13}, payload.IDs)
	assert.Equal(t, []string{"3000000000000000000"}, payload.Amounts)
	assert.Equal(t, "50", payload.SFL.String())
}

func TestWithdrawTaxBracketFlowsIntoPayload(t *testing.T) {
	tests := []struct {
		name string
		sfl  string
		bps  int64
	}{
		{name: "under 10 SFL pays 30 percent", sfl: "5", bps: 3000},
		{name: "under 100 SFL pays 25 percent", sfl: "50", bps: 2500},
		{name: "under 1000 SFL pays 20 percent", sfl: "500", bps: 2000},
		{name: "under 5000 SFL pays 15 percent", sfl: "2500", bps: 1500},
		{name: "under 10000 SFL pays 10 percent", sfl: "9999", bps: 1000},
		{name: "large withdrawals pay the 5 percent floor", sfl: "10000", bps: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			farms, chain, signer, cmd := newWithdrawFixture(t)
			cmd.SFL = tt.sfl
			handler := commands.NewWithdrawHandler(farms, chain, signer)

			// Act
			_, err := handler.Handle(context.Background(), cmd)

			// Assert
			require.NoError(t, err)
			require.Len(t, signer.Payloads, 1)
			assert.Equal(t, tt.bps, signer.Payloads[0].TaxBps)
		})
	}
}

func TestWithdrawEmptyArraysAreLegal(t *testing.T) {
	// Arrange
	farms, chain, signer, cmd := newWithdrawFixture(t)
	cmd.IDs = nil
	cmd.Amounts = nil
	handler := commands.NewWithdrawHandler(farms, chain, signer)

	// Act
	_, err := handler.Handle(context.Background(), cmd)

	// Assert: a no-op withdrawal still gets a signature
	require.NoError(t, err)
	require.Len(t, signer.Payloads, 1)
	assert.Empty(t, signer.Payloads[0].IDs)
}

func TestWithdrawRejectsMismatchedArrays(t *testing.T) {
	// Arrange
	farms, chain, signer, cmd := newWithdrawFixture(t)
	cmd.IDs = []int{13, 14}
	cmd.Amounts = []string{"1"}
	handler := commands.NewWithdrawHandler(farms, chain, signer)

	// Act
	_, err := handler.Handle(context.Background(), cmd)

	// Assert
	var mismatched *farm.ErrMismatchedAmounts
	require.ErrorAs(t, err, &mismatched)
	assert.Empty(t, signer.Payloads)
}

func TestWithdrawRejectsNonWithdrawableItem(t *testing.T) {
	// Arrange: seeds never leave the farm
	farms, chain, signer, cmd := newWithdrawFixture(t)
	cmd.IDs = []int{19}
	cmd.Amounts = []string{"1000000000000000000"}
	handler := commands.NewWithdrawHandler(farms, chain, signer)

	// Act
	_, err := handler.Handle(context.Background(), cmd)

	// Assert
	var notWithdrawable *farm.ErrNotWithdrawable
	require.ErrorAs(t, err, &notWithdrawable)
	assert.Equal(t, "item cannot be withdrawn: Sunflower Seed", err.Error())
	assert.Empty(t, signer.Payloads)
}

func TestWithdrawRejectsUnknownItemID(t *testing.T) {
	// Arrange
	farms, chain, signer, cmd := newWithdrawFixture(t)
	cmd.IDs = []int{99}
	cmd.Amounts = []string{"1"}
	handler := commands.NewWithdrawHandler(farms, chain, signer)

	// Act
	_, err := handler.Handle(context.Background(), cmd)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown item id")
}

func TestWithdrawRejectsForeignSender(t *testing.T) {
	// Arrange: the NFT registry names someone else as owner
	farms, chain, signer, cmd := newWithdrawFixture(t)
	cmd.Sender = "0x0000000000000000000000000000000000000bad"
	handler := commands.NewWithdrawHandler(farms, chain, signer)

	// Act
	_, err := handler.Handle(context.Background(), cmd)

	// Assert: ownership failures are indistinguishable from missing farms
	var notOwner *farm.ErrNotOwner
	require.ErrorAs(t, err, &notOwner)
	assert.Equal(t, "Farm does not exist", err.Error())
	assert.Empty(t, signer.Payloads)
}

func TestWithdrawSignerFailureSurfaces(t *testing.T) {
	// Arrange
	farms, chain, signer, cmd := newWithdrawFixture(t)
	signer.SignErr = errors.New("signer offline")
	handler := commands.NewWithdrawHandler(farms, chain, signer)

	// Act
	_, err := handler.Handle(context.Background(), cmd)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signer offline")
}

func TestWithdrawRejectsNegativeSFL(t *testing.T) {
	// Arrange
	farms, chain, signer, cmd := newWithdrawFixture(t)
	cmd.SFL = "-1"
	handler := commands.NewWithdrawHandler(farms, chain, signer)

	// Act
	_, err := handler.Handle(context.Background(), cmd)

	// Assert
	require.Error(t, err)
	assert.Empty(t, signer.Payloads)
}
