package queries_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/farmchain-go/internal/application/farm/queries"
	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
	"github.com/andrescamacho/farmchain-go/test/helpers"
)

func TestGetFarmReturnsPersistedSnapshot(t *testing.T) {
	// Arrange
	owner := shared.MustNewAddress("0x71ce81cb65cbc9a04ba4d0d95b344c2cbf7dc223")
	f, err := farm.NewFarm(shared.MustNewFarmID(3), owner)
	require.NoError(t, err)
	f.State().Credit(decimal.RequireFromString("1.5"))
	f.State().AddItem(catalog.Wood, decimal.NewFromInt(4))

	farms := helpers.NewMockFarmRepository()
	farms.AddFarm(f)
	handler := queries.NewGetFarmHandler(farms)

	// Act
	response, err := handler.Handle(context.Background(), &queries.GetFarmQuery{FarmID: 3})

	// Assert
	require.NoError(t, err)
	result, ok := response.(*queries.GetFarmResponse)
	require.True(t, ok)
	assert.Equal(t, uint64(3), result.ID)
	assert.Equal(t, owner.Value(), result.Owner)
	assert.Equal(t, f.Session().Value(), result.Session)
	assert.Equal(t, "1.5", result.Farm.Balance)
	assert.Equal(t, "4", result.Farm.Inventory["Wood"])
}

func TestGetFarmUnknownFarm(t *testing.T) {
	// Arrange
	handler := queries.NewGetFarmHandler(helpers.NewMockFarmRepository())

	// Act
	_, err := handler.Handle(context.Background(), &queries.GetFarmQuery{FarmID: 404})

	// Assert
	var notFound *farm.ErrFarmNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestGetFarmRejectsZeroID(t *testing.T) {
	// Arrange
	handler := queries.NewGetFarmHandler(helpers.NewMockFarmRepository())

	// Act
	_, err := handler.Handle(context.Background(), &queries.GetFarmQuery{FarmID: 0})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid farm ID")
}
