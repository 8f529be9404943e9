package ports

import (
	"context"

	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// FarmRepository is the farm document store. Implementations must be
// linearizable per farm key; the engine relies on the session CAS for
// all cross-save ordering.
type FarmRepository interface {
	// GetFarmByID loads a farm document. Missing farms surface
	// *farm.ErrFarmNotFound.
	GetFarmByID(ctx context.Context, id shared.FarmID) (*farm.Farm, error)

	// UpdateGameState persists a new game state if and only if the
	// stored session still equals session (compare-and-swap). On
	// success it returns the freshly generated session token; a lost
	// race surfaces *farm.ErrSessionConflict and nothing is written.
	UpdateGameState(ctx context.Context, id shared.FarmID, session shared.SessionToken, state *farm.State) (shared.SessionToken, error)

	// CreateFarm inserts a new farm document. Used when a mint is
	// observed and by fixtures.
	CreateFarm(ctx context.Context, f *farm.Farm) error
}

// EventStore is the append-only audit log of replayed actions, keyed
// by the save's farm and the session that committed it.
type EventStore interface {
	Append(ctx context.Context, farmID shared.FarmID, session shared.SessionToken, batch []actions.Action) error
}
