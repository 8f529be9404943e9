package ports

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// Chain reads authoritative on-chain truth. The engine never talks to
// the blockchain directly; a gateway adapter implements this port.
type Chain interface {
	// LoadBalance returns the wallet's token balance in wei.
	LoadBalance(ctx context.Context, address shared.Address) (*big.Int, error)

	// LoadInventory returns wei amounts positionally in the catalog's
	// ascending on-chain ID order.
	LoadInventory(ctx context.Context, address shared.Address) ([]*big.Int, error)

	// OwnerOf returns the current owner of a farm NFT.
	OwnerOf(ctx context.Context, farmID shared.FarmID) (shared.Address, error)
}

// WithdrawPayload is the bundle handed to the external signer. IDs
// and Amounts are positional pairs; Amounts stay in their wire wei
// form because the engine never interprets them.
type WithdrawPayload struct {
	Sender    shared.Address
	FarmID    shared.FarmID
	SessionID shared.SessionToken
	SFL       decimal.Decimal
	IDs       []int
	Amounts   []string
	TaxBps    int64
}

// WithdrawSignature is returned by the signer and forwarded to the
// client verbatim; the on-chain contract checks it.
type WithdrawSignature struct {
	Signature string
	Deadline  int64
}

// Signer produces contract-trusted signatures for withdrawals.
type Signer interface {
	WithdrawSignature(ctx context.Context, payload WithdrawPayload) (WithdrawSignature, error)
}

// Wallet verifies request signatures against a wallet address.
type Wallet interface {
	Verify(ctx context.Context, address shared.Address, signature string, message string) (bool, error)
}

// Whitelist answers whether an address is cleared for mainnet sync
// operations.
type Whitelist interface {
	Contains(ctx context.Context, address shared.Address) (bool, error)
}
