package farm

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// Field is a planted plot. Empty plots carry no entry at all.
type Field struct {
	PlantedAt time.Time
	Item      catalog.ItemName
}

// Tree is one choppable tree. Wood is the remaining yield; after a
// tree hits zero it refills to the catalog default once the recovery
// period has passed.
type Tree struct {
	ChoppedAt time.Time
	Wood      decimal.Decimal
}

// State is the in-memory game state of one farm: balance, inventory,
// shop stock, planted fields and trees. It is strictly local to a
// single save invocation; it is never shared across requests. All
// quantities are half-even 18-digit decimals to match on-chain token
// precision.
//
// Invariants maintained by every mutator:
//   - balance and all quantities are never negative
//   - inventory entries are positive or absent, never zero
//   - stock entries may sit at zero (an exhausted SKU stays listed)
type State struct {
	balance   decimal.Decimal
	inventory map[catalog.ItemName]decimal.Decimal
	stock     map[catalog.ItemName]decimal.Decimal
	fields    map[int]Field
	trees     map[int]Tree
}

// NewState returns an empty state: zero balance, nothing planted, no
// stock. Tests and the reconciler build states up through mutators.
func NewState() *State {
	return &State{
		balance:   decimal.Zero,
		inventory: make(map[catalog.ItemName]decimal.Decimal),
		stock:     make(map[catalog.ItemName]decimal.Decimal),
		fields:    make(map[int]Field),
		trees:     make(map[int]Tree),
	}
}

// NewStartingState returns the state a freshly minted farm begins
// with: default shop stock and a full set of recovered trees.
func NewStartingState() *State {
	s := NewState()
	for name, qty := range catalog.DefaultStock() {
		s.stock[name] = qty
	}
	for i := 0; i < catalog.TreeCount; i++ {
		s.trees[i] = Tree{Wood: catalog.TreeWood}
	}
	return s
}

// ReconstructState rebuilds a state from persistence without
// validation. Ownership of the maps passes to the state.
func ReconstructState(
	balance decimal.Decimal,
	inventory map[catalog.ItemName]decimal.Decimal,
	stock map[catalog.ItemName]decimal.Decimal,
	fields map[int]Field,
	trees map[int]Tree,
) *State {
	if inventory == nil {
		inventory = make(map[catalog.ItemName]decimal.Decimal)
	}
	if stock == nil {
		stock = make(map[catalog.ItemName]decimal.Decimal)
	}
	if fields == nil {
		fields = make(map[int]Field)
	}
	if trees == nil {
		trees = make(map[int]Tree)
	}
	return &State{
		balance:   balance,
		inventory: inventory,
		stock:     stock,
		fields:    fields,
		trees:     trees,
	}
}

// Clone returns a deep copy. Replay always works on a clone so a
// failed batch leaves the loaded state untouched.
func (s *State) Clone() *State {
	c := &State{
		balance:   s.balance,
		inventory: make(map[catalog.ItemName]decimal.Decimal, len(s.inventory)),
		stock:     make(map[catalog.ItemName]decimal.Decimal, len(s.stock)),
		fields:    make(map[int]Field, len(s.fields)),
		trees:     make(map[int]Tree, len(s.trees)),
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.fields {
		c.fields[k] = v
	}
	for k, v := range s.trees {
		c.trees[k] = v
	}
	return c
}

// Balance returns the current SFL balance.
func (s *State) Balance() decimal.Decimal {
	return s.balance
}

// Inventory returns a copy of the inventory map.
func (s *State) Inventory() map[catalog.ItemName]decimal.Decimal {
	out := make(map[catalog.ItemName]decimal.Decimal, len(s.inventory))
	for k, v := range s.inventory {
		out[k] = v
	}
	return out
}

// InventoryOf returns the held quantity of an item, zero when absent.
func (s *State) InventoryOf(name catalog.ItemName) decimal.Decimal {
	return s.inventory[name]
}

// Stock returns a copy of the shop stock map.
func (s *State) Stock() map[catalog.ItemName]decimal.Decimal {
	out := make(map[catalog.ItemName]decimal.Decimal, len(s.stock))
	for k, v := range s.stock {
		out[k] = v
	}
	return out
}

// StockOf returns the remaining shop stock of an item, zero when the
// SKU is not listed.
func (s *State) StockOf(name catalog.ItemName) decimal.Decimal {
	return s.stock[name]
}

// Fields returns a copy of the planted plots.
func (s *State) Fields() map[int]Field {
	out := make(map[int]Field, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}

// FieldAt returns the plot at an index, if planted.
func (s *State) FieldAt(index int) (Field, bool) {
	f, ok := s.fields[index]
	return f, ok
}

// Trees returns a copy of the tree map.
func (s *State) Trees() map[int]Tree {
	out := make(map[int]Tree, len(s.trees))
	for k, v := range s.trees {
		out[k] = v
	}
	return out
}

// TreeAt returns the tree at an index, if present.
func (s *State) TreeAt(index int) (Tree, bool) {
	t, ok := s.trees[index]
	return t, ok
}

// AddItem adds a positive quantity to the inventory, creating the
// entry when absent.
func (s *State) AddItem(name catalog.ItemName, qty decimal.Decimal) {
	if !qty.IsPositive() {
		return
	}
	s.inventory[name] = shared.RoundSFL(s.inventory[name].Add(qty))
}

// SubtractItem removes a quantity from the inventory. The entry is
// deleted when it reaches exactly zero so zero quantities are never
// stored.
func (s *State) SubtractItem(name catalog.ItemName, qty decimal.Decimal) error {
	held := s.inventory[name]
	if held.LessThan(qty) {
		return &ErrInsufficientInventory{Item: name, Required: qty, Available: held}
	}
	remaining := shared.RoundSFL(held.Sub(qty))
	if remaining.IsZero() {
		delete(s.inventory, name)
		return nil
	}
	s.inventory[name] = remaining
	return nil
}

// SetItem overrides the held quantity of an item outright. Used by
// the reconciler when on-chain truth dominates. Non-positive values
// clear the entry.
func (s *State) SetItem(name catalog.ItemName, qty decimal.Decimal) {
	if !qty.IsPositive() {
		delete(s.inventory, name)
		return
	}
	s.inventory[name] = shared.RoundSFL(qty)
}

// Credit adds SFL to the balance.
func (s *State) Credit(amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	s.balance = shared.RoundSFL(s.balance.Add(amount))
}

// Debit removes SFL from the balance.
func (s *State) Debit(amount decimal.Decimal) error {
	if s.balance.LessThan(amount) {
		return &ErrInsufficientBalance{Required: amount, Available: s.balance}
	}
	s.balance = shared.RoundSFL(s.balance.Sub(amount))
	return nil
}

// SetBalance overrides the balance outright. Used by the reconciler;
// callers pass non-negative on-chain values.
func (s *State) SetBalance(amount decimal.Decimal) {
	s.balance = shared.RoundSFL(amount)
}

// SetStock lists an SKU at a given remaining supply.
func (s *State) SetStock(name catalog.ItemName, qty decimal.Decimal) {
	s.stock[name] = shared.RoundSFL(qty)
}

// TakeStock consumes shop stock. Unlike inventory, an entry that
// reaches zero stays listed at zero.
func (s *State) TakeStock(name catalog.ItemName, qty decimal.Decimal) error {
	available := s.stock[name]
	if available.LessThan(qty) {
		return &ErrInsufficientStock{Item: name, Required: qty, Available: available}
	}
	s.stock[name] = shared.RoundSFL(available.Sub(qty))
	return nil
}

// PlantField records a planted plot.
func (s *State) PlantField(index int, f Field) {
	s.fields[index] = f
}

// ClearField empties a plot.
func (s *State) ClearField(index int) {
	delete(s.fields, index)
}

// SetTree records the tree at an index.
func (s *State) SetTree(index int, t Tree) {
	s.trees[index] = t
}
