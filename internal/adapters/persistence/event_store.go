package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// GormEventStore implements EventStore using GORM. Every committed
// batch lands as one row per action so the audit trail can replay a
// farm's history action by action.
type GormEventStore struct {
	db *gorm.DB
}

// NewGormEventStore creates a new GORM event store
func NewGormEventStore(db *gorm.DB) *GormEventStore {
	return &GormEventStore{db: db}
}

// Append writes the batch in a single transaction. An empty batch is
// a no-op.
func (s *GormEventStore) Append(ctx context.Context, farmID shared.FarmID, session shared.SessionToken, batch []actions.Action) error {
	if len(batch) == 0 {
		return nil
	}

	models := make([]AuditEventModel, 0, len(batch))
	for seq, action := range batch {
		payload, err := actions.Encode(action)
		if err != nil {
			return fmt.Errorf("failed to encode audit event: %w", err)
		}
		models = append(models, AuditEventModel{
			ID:         shared.NewEventID().Value(),
			FarmID:     farmID.Value(),
			Session:    session.Value(),
			Seq:        seq,
			Kind:       string(action.Type()),
			Payload:    string(payload),
			OccurredAt: action.Time().UTC(),
		})
	}

	result := s.db.WithContext(ctx).Create(&models)
	if result.Error != nil {
		return fmt.Errorf("failed to append audit events: %w", result.Error)
	}

	return nil
}

// History returns a farm's audit trail in action time order. Used by
// farmctl for offline inspection and replay.
func (s *GormEventStore) History(ctx context.Context, farmID shared.FarmID, limit int) ([]actions.Action, error) {
	query := s.db.WithContext(ctx).
		Where("farm_id = ?", farmID.Value()).
		Order("occurred_at ASC, seq ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []AuditEventModel
	result := query.Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load audit events: %w", result.Error)
	}

	history := make([]actions.Action, 0, len(models))
	for _, model := range models {
		action, err := actions.Decode([]byte(model.Payload))
		if err != nil {
			return nil, fmt.Errorf("failed to decode audit event %s: %w", model.ID, err)
		}
		history = append(history, action)
	}

	return history, nil
}
