package helpers

import (
	"context"
	"math/big"
	"sync"

	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
	"github.com/andrescamacho/farmchain-go/internal/domain/ports"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// MockChain is a test double for the Chain port. Balances, holdings
// and owners are seeded per address/farm; unseeded lookups return
// zero values rather than errors so tests only configure what they
// assert on.
type MockChain struct {
	mu        sync.RWMutex
	balances  map[string]*big.Int
	holdings  map[string][]*big.Int
	owners    map[uint64]shared.Address
	ChainErr  error
	OwnerErr  error
}

// NewMockChain creates a new mock chain
func NewMockChain() *MockChain {
	return &MockChain{
		balances: make(map[string]*big.Int),
		holdings: make(map[string][]*big.Int),
		owners:   make(map[uint64]shared.Address),
	}
}

// SetBalance seeds the wei balance for an address
func (m *MockChain) SetBalance(address shared.Address, balance *big.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[address.Value()] = balance
}

// SetHoldings seeds the positional inventory for an address
func (m *MockChain) SetHoldings(address shared.Address, holdings []*big.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holdings[address.Value()] = holdings
}

// SetOwner seeds the NFT owner of a farm
func (m *MockChain) SetOwner(farmID shared.FarmID, owner shared.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[farmID.Value()] = owner
}

// LoadBalance returns the seeded balance, zero when unseeded
func (m *MockChain) LoadBalance(ctx context.Context, address shared.Address) (*big.Int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ChainErr != nil {
		return nil, m.ChainErr
	}
	if b, ok := m.balances[address.Value()]; ok {
		return b, nil
	}
	return big.NewInt(0), nil
}

// LoadInventory returns the seeded holdings, all-zero when unseeded
func (m *MockChain) LoadInventory(ctx context.Context, address shared.Address) ([]*big.Int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ChainErr != nil {
		return nil, m.ChainErr
	}
	if h, ok := m.holdings[address.Value()]; ok {
		return h, nil
	}
	holdings := make([]*big.Int, len(catalog.IDList()))
	for i := range holdings {
		holdings[i] = big.NewInt(0)
	}
	return holdings, nil
}

// OwnerOf returns the seeded owner
func (m *MockChain) OwnerOf(ctx context.Context, farmID shared.FarmID) (shared.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.OwnerErr != nil {
		return shared.Address{}, m.OwnerErr
	}
	return m.owners[farmID.Value()], nil
}

// MockSigner is a test double for the Signer port. It records the
// last payload and returns a canned signature.
type MockSigner struct {
	mu        sync.Mutex
	Payloads  []ports.WithdrawPayload
	Signature string
	Deadline  int64
	SignErr   error
}

// NewMockSigner creates a new mock signer
func NewMockSigner() *MockSigner {
	return &MockSigner{
		Signature: "0xsigned",
		Deadline:  1700000600,
	}
}

// WithdrawSignature records the payload and returns the canned result
func (m *MockSigner) WithdrawSignature(ctx context.Context, payload ports.WithdrawPayload) (ports.WithdrawSignature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SignErr != nil {
		return ports.WithdrawSignature{}, m.SignErr
	}
	m.Payloads = append(m.Payloads, payload)
	return ports.WithdrawSignature{Signature: m.Signature, Deadline: m.Deadline}, nil
}

// MockWallet is a test double for the Wallet port. Verification
// succeeds for any signature listed in Valid.
type MockWallet struct {
	mu        sync.RWMutex
	Valid     map[string]bool
	VerifyErr error
}

// NewMockWallet creates a new mock wallet
func NewMockWallet() *MockWallet {
	return &MockWallet{Valid: make(map[string]bool)}
}

// Allow marks a signature as valid
func (m *MockWallet) Allow(signature string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Valid[signature] = true
}

// Verify reports whether the signature was allowed
func (m *MockWallet) Verify(ctx context.Context, address shared.Address, signature string, message string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.VerifyErr != nil {
		return false, m.VerifyErr
	}
	return m.Valid[signature], nil
}

// MockWhitelist is a test double for the Whitelist port.
type MockWhitelist struct {
	mu          sync.RWMutex
	allowed     map[string]bool
	ContainsErr error
}

// NewMockWhitelist creates a new mock whitelist
func NewMockWhitelist() *MockWhitelist {
	return &MockWhitelist{allowed: make(map[string]bool)}
}

// Allow adds an address to the whitelist
func (m *MockWhitelist) Allow(address shared.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allowed[address.Value()] = true
}

// Contains reports whether the address was allowed
func (m *MockWhitelist) Contains(ctx context.Context, address shared.Address) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ContainsErr != nil {
		return false, m.ContainsErr
	}
	return m.allowed[address.Value()], nil
}
