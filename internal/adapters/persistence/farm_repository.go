package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// GormFarmRepository implements FarmRepository using GORM
type GormFarmRepository struct {
	db *gorm.DB
}

// NewGormFarmRepository creates a new GORM farm repository
func NewGormFarmRepository(db *gorm.DB) *GormFarmRepository {
	return &GormFarmRepository{db: db}
}

// GetFarmByID retrieves a farm document by its token ID
func (r *GormFarmRepository) GetFarmByID(ctx context.Context, id shared.FarmID) (*farm.Farm, error) {
	var model FarmModel
	result := r.db.WithContext(ctx).
		Where("id = ?", id.Value()).
		First(&model)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, &farm.ErrFarmNotFound{ID: id}
		}
		return nil, fmt.Errorf("failed to find farm: %w", result.Error)
	}

	return r.modelToFarm(&model)
}

// UpdateGameState persists a new game state guarded by the session
// compare-and-swap: the UPDATE only matches when the stored session
// still equals the one the save loaded. Zero rows affected means the
// farm vanished or another save won the race; nothing is written
// either way.
func (r *GormFarmRepository) UpdateGameState(ctx context.Context, id shared.FarmID, session shared.SessionToken, state *farm.State) (shared.SessionToken, error) {
	payload, err := json.Marshal(state.Snapshot())
	if err != nil {
		return shared.SessionToken{}, fmt.Errorf("failed to serialize game state: %w", err)
	}

	next := shared.NewSessionToken()
	result := r.db.WithContext(ctx).
		Model(&FarmModel{}).
		Where("id = ? AND session = ?", id.Value(), session.Value()).
		Updates(map[string]interface{}{
			"session":    next.Value(),
			"game_state": string(payload),
		})

	if result.Error != nil {
		return shared.SessionToken{}, fmt.Errorf("failed to update farm: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&FarmModel{}).
			Where("id = ?", id.Value()).
			Count(&count).Error; err != nil {
			return shared.SessionToken{}, fmt.Errorf("failed to check farm existence: %w", err)
		}
		if count == 0 {
			return shared.SessionToken{}, &farm.ErrFarmNotFound{ID: id}
		}
		return shared.SessionToken{}, &farm.ErrSessionConflict{ID: id}
	}

	return next, nil
}

// CreateFarm inserts a new farm document
func (r *GormFarmRepository) CreateFarm(ctx context.Context, f *farm.Farm) error {
	model, err := r.farmToModel(f)
	if err != nil {
		return fmt.Errorf("failed to convert farm to model: %w", err)
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to create farm: %w", result.Error)
	}

	return nil
}

// farmToModel converts a domain farm to its database model
func (r *GormFarmRepository) farmToModel(f *farm.Farm) (*FarmModel, error) {
	payload, err := json.Marshal(f.State().Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize game state: %w", err)
	}

	return &FarmModel{
		ID:        f.ID().Value(),
		Owner:     f.Owner().Value(),
		Session:   f.Session().Value(),
		GameState: string(payload),
	}, nil
}

// modelToFarm converts a database model to a domain farm
func (r *GormFarmRepository) modelToFarm(model *FarmModel) (*farm.Farm, error) {
	id, err := shared.NewFarmID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid farm ID in database: %w", err)
	}

	owner, err := shared.NewAddress(model.Owner)
	if err != nil {
		return nil, fmt.Errorf("invalid owner address in database: %w", err)
	}

	session, err := shared.ParseSessionToken(model.Session)
	if err != nil {
		return nil, fmt.Errorf("invalid session token in database: %w", err)
	}

	var snap farm.Snapshot
	if err := json.Unmarshal([]byte(model.GameState), &snap); err != nil {
		return nil, fmt.Errorf("failed to parse game state: %w", err)
	}

	state, err := farm.StateFromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild game state: %w", err)
	}

	return farm.ReconstructFarm(id, owner, session, state), nil
}
