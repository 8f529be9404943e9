package farm_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

func TestSnapshot_RoundTripIsIdentity(t *testing.T) {
	// Arrange
	plantedAt := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	original := farm.NewState()
	original.Credit(dec("119.9"))
	original.AddItem(catalog.PotatoSeed, dec("5"))
	original.AddItem(catalog.Wood, dec("0.000000000000000001"))
	original.SetStock(catalog.PotatoSeed, dec("2"))
	original.SetStock(catalog.Axe, dec("0"))
	original.PlantField(4, farm.Field{PlantedAt: plantedAt, Item: catalog.SunflowerSeed})
	original.SetTree(0, farm.Tree{ChoppedAt: plantedAt.Add(-2 * time.Hour), Wood: dec("0")})
	original.SetTree(1, farm.Tree{Wood: dec("3")})

	// Act
	snap := original.Snapshot()
	restored, err := farm.StateFromSnapshot(snap)

	// Assert
	require.NoError(t, err)
	assert.True(t, restored.Balance().Equal(original.Balance()))
	assert.Equal(t, original.Inventory(), restored.Inventory())
	assert.Equal(t, original.Stock(), restored.Stock())
	assert.Equal(t, original.Fields(), restored.Fields())
	assert.Equal(t, original.Trees(), restored.Trees())
}

func TestSnapshot_JSONShape(t *testing.T) {
	// Arrange
	state := farm.NewState()
	state.Credit(dec("119.9"))
	state.AddItem(catalog.PotatoSeed, dec("5"))
	state.SetStock(catalog.PotatoSeed, dec("2"))
	state.PlantField(4, farm.Field{
		PlantedAt: time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC),
		Item:      catalog.SunflowerSeed,
	})

	// Act
	raw, err := json.Marshal(state.Snapshot())

	// Assert
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.JSONEq(t, `"119.9"`, string(doc["balance"]), "decimals serialize as strings")
	assert.JSONEq(t, `{"Potato Seed":"5"}`, string(doc["inventory"]))
	assert.JSONEq(t, `{"Potato Seed":"2"}`, string(doc["stock"]))
	assert.JSONEq(t, `{"4":{"plantedAt":"2021-06-01T12:00:00Z","item":"Sunflower Seed"}}`, string(doc["fields"]),
		"plot indices serialize as stringified integers")
}

func TestStateFromSnapshot_DropsZeroInventoryEntries(t *testing.T) {
	snap := farm.Snapshot{
		Balance:   "0",
		Inventory: map[string]string{"Sunflower": "0", "Wood": "2"},
		Stock:     map[string]string{},
	}

	state, err := farm.StateFromSnapshot(snap)

	require.NoError(t, err)
	_, present := state.Inventory()["Sunflower"]
	assert.False(t, present)
	assert.True(t, state.InventoryOf(catalog.Wood).Equal(dec("2")))
}

func TestStateFromSnapshot_RejectsBadDecimals(t *testing.T) {
	snap := farm.Snapshot{
		Balance:   "not-a-number",
		Inventory: map[string]string{},
		Stock:     map[string]string{},
	}

	_, err := farm.StateFromSnapshot(snap)
	assert.Error(t, err)
}

func TestNewFarm_StartsWithSessionAndStartingState(t *testing.T) {
	// Arrange
	id := shared.MustNewFarmID(7)
	owner := shared.MustNewAddress("0x71ce81cb65cbc9a04ba4d0d95b344c2cbf7dc223")

	// Act
	f, err := farm.NewFarm(id, owner)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, id, f.ID())
	assert.Equal(t, owner, f.Owner())
	assert.False(t, f.Session().IsZero())
	assert.True(t, f.State().StockOf(catalog.SunflowerSeed).Equal(dec("400")))
}
