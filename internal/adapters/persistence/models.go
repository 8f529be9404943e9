package persistence

import (
	"time"
)

// FarmModel represents the farms table. The game state is stored as
// the snapshot document JSON; the session column is the fencing token
// every save must compare-and-swap against.
type FarmModel struct {
	ID        uint64    `gorm:"column:id;primaryKey"`
	Owner     string    `gorm:"column:owner;not null;index"`
	Session   string    `gorm:"column:session;not null"`
	GameState string    `gorm:"column:game_state;type:text;not null"` // snapshot JSON as text
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (FarmModel) TableName() string {
	return "farms"
}

// AuditEventModel represents the audit_events table: one row per
// replayed action, stored in the exact wire form the client submitted.
// Seq preserves the action's position within its batch.
type AuditEventModel struct {
	ID         string    `gorm:"column:id;primaryKey"` // UUID
	FarmID     uint64    `gorm:"column:farm_id;not null;index"`
	Session    string    `gorm:"column:session;not null;index"`
	Seq        int       `gorm:"column:seq;not null"`
	Kind       string    `gorm:"column:kind;not null"`
	Payload    string    `gorm:"column:payload;type:text;not null"` // action JSON as text
	OccurredAt time.Time `gorm:"column:occurred_at;not null"`       // client wall-clock time
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (AuditEventModel) TableName() string {
	return "audit_events"
}
