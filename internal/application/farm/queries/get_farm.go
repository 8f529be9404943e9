package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/farmchain-go/internal/application/mediator"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/ports"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// GetFarmQuery fetches the persisted snapshot of one farm. Reads are
// not reconciled against the chain; only saves fold chain truth in.
type GetFarmQuery struct {
	FarmID uint64
}

// GetFarmResponse carries the persisted snapshot and session token.
type GetFarmResponse struct {
	ID      uint64
	Owner   string
	Session string
	Farm    farm.Snapshot
}

// GetFarmHandler handles the GetFarm query
type GetFarmHandler struct {
	farms ports.FarmRepository
}

// NewGetFarmHandler creates a new GetFarmHandler
func NewGetFarmHandler(farms ports.FarmRepository) *GetFarmHandler {
	return &GetFarmHandler{farms: farms}
}

// Handle executes the GetFarm query
func (h *GetFarmHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetFarmQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetFarmQuery")
	}

	farmID, err := shared.NewFarmID(query.FarmID)
	if err != nil {
		return nil, shared.NewInvalidRequestError("invalid farm ID", err)
	}

	loaded, err := h.farms.GetFarmByID(ctx, farmID)
	if err != nil {
		return nil, err
	}

	return &GetFarmResponse{
		ID:      loaded.ID().Value(),
		Owner:   loaded.Owner().Value(),
		Session: loaded.Session().Value(),
		Farm:    loaded.State().Snapshot(),
	}, nil
}
