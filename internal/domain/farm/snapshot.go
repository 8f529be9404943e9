package farm

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
)

// Snapshot is the document form of a farm state: the shape persisted
// in the farm repository and returned by the save endpoint. All
// decimals are strings, plot and tree indices are stringified
// integers, timestamps RFC3339 UTC.
type Snapshot struct {
	Balance   string                `json:"balance"`
	Inventory map[string]string     `json:"inventory"`
	Stock     map[string]string     `json:"stock"`
	Fields    map[int]FieldSnapshot `json:"fields"`
	Trees     map[int]TreeSnapshot  `json:"trees"`
}

// FieldSnapshot is the document form of a planted plot.
type FieldSnapshot struct {
	PlantedAt time.Time `json:"plantedAt"`
	Item      string    `json:"item"`
}

// TreeSnapshot is the document form of a tree.
type TreeSnapshot struct {
	ChoppedAt time.Time `json:"choppedAt"`
	Wood      string    `json:"wood"`
}

// Snapshot serializes the state into its document form.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Balance:   s.balance.String(),
		Inventory: make(map[string]string, len(s.inventory)),
		Stock:     make(map[string]string, len(s.stock)),
		Fields:    make(map[int]FieldSnapshot, len(s.fields)),
		Trees:     make(map[int]TreeSnapshot, len(s.trees)),
	}
	for name, qty := range s.inventory {
		snap.Inventory[string(name)] = qty.String()
	}
	for name, qty := range s.stock {
		snap.Stock[string(name)] = qty.String()
	}
	for idx, f := range s.fields {
		snap.Fields[idx] = FieldSnapshot{
			PlantedAt: f.PlantedAt.UTC(),
			Item:      string(f.Item),
		}
	}
	for idx, t := range s.trees {
		snap.Trees[idx] = TreeSnapshot{
			ChoppedAt: t.ChoppedAt.UTC(),
			Wood:      t.Wood.String(),
		}
	}
	return snap
}

// StateFromSnapshot rebuilds a state from its document form. Item
// names are taken as stored; quantity strings must parse as
// non-negative decimals.
func StateFromSnapshot(snap Snapshot) (*State, error) {
	balance, err := decimal.NewFromString(snap.Balance)
	if err != nil {
		return nil, fmt.Errorf("farm document balance %q: %w", snap.Balance, err)
	}

	inventory := make(map[catalog.ItemName]decimal.Decimal, len(snap.Inventory))
	for name, raw := range snap.Inventory {
		qty, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("farm document inventory %q: %w", name, err)
		}
		// Zero entries never survive a persist but a hand-edited
		// document could carry them; drop rather than violate the
		// absent-vs-zero invariant.
		if qty.IsPositive() {
			inventory[catalog.ItemName(name)] = qty
		}
	}

	stock := make(map[catalog.ItemName]decimal.Decimal, len(snap.Stock))
	for name, raw := range snap.Stock {
		qty, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("farm document stock %q: %w", name, err)
		}
		stock[catalog.ItemName(name)] = qty
	}

	fields := make(map[int]Field, len(snap.Fields))
	for idx, f := range snap.Fields {
		fields[idx] = Field{
			PlantedAt: f.PlantedAt.UTC(),
			Item:      catalog.ItemName(f.Item),
		}
	}

	trees := make(map[int]Tree, len(snap.Trees))
	for idx, t := range snap.Trees {
		wood, err := decimal.NewFromString(t.Wood)
		if err != nil {
			return nil, fmt.Errorf("farm document tree %d wood %q: %w", idx, t.Wood, err)
		}
		trees[idx] = Tree{
			ChoppedAt: t.ChoppedAt.UTC(),
			Wood:      wood,
		}
	}

	return ReconstructState(balance, inventory, stock, fields, trees), nil
}
