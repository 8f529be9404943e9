package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// MockFarmRepository is an in-memory test double for FarmRepository.
// It enforces the same session compare-and-swap contract as the gorm
// implementation.
type MockFarmRepository struct {
	mu    sync.RWMutex
	farms map[uint64]*farm.Farm

	// UpdateErr, when set, is returned by UpdateGameState before any
	// state change. Used to simulate storage failures.
	UpdateErr error
}

// NewMockFarmRepository creates a new mock farm repository
func NewMockFarmRepository() *MockFarmRepository {
	return &MockFarmRepository{
		farms: make(map[uint64]*farm.Farm),
	}
}

// AddFarm seeds a farm into the mock repository
func (m *MockFarmRepository) AddFarm(f *farm.Farm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.farms[f.ID().Value()] = f
}

// GetFarmByID loads a farm document
func (m *MockFarmRepository) GetFarmByID(ctx context.Context, id shared.FarmID) (*farm.Farm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.farms[id.Value()]
	if !ok {
		return nil, &farm.ErrFarmNotFound{ID: id}
	}
	return f, nil
}

// UpdateGameState persists a new state when the session matches,
// rotating the session token exactly like the real repository.
func (m *MockFarmRepository) UpdateGameState(ctx context.Context, id shared.FarmID, session shared.SessionToken, state *farm.State) (shared.SessionToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateErr != nil {
		return shared.SessionToken{}, m.UpdateErr
	}

	f, ok := m.farms[id.Value()]
	if !ok {
		return shared.SessionToken{}, &farm.ErrFarmNotFound{ID: id}
	}
	if !f.Session().Equals(session) {
		return shared.SessionToken{}, &farm.ErrSessionConflict{ID: id}
	}

	next := shared.NewSessionToken()
	m.farms[id.Value()] = farm.ReconstructFarm(f.ID(), f.Owner(), next, state)
	return next, nil
}

// CreateFarm inserts a new farm document
func (m *MockFarmRepository) CreateFarm(ctx context.Context, f *farm.Farm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.farms[f.ID().Value()] = f
	return nil
}

// MockEventStore records appended audit batches for assertions.
type MockEventStore struct {
	mu      sync.Mutex
	Batches []RecordedBatch

	// AppendErr, when set, is returned by Append.
	AppendErr error
}

// RecordedBatch is one Append call captured by the mock.
type RecordedBatch struct {
	FarmID  shared.FarmID
	Session shared.SessionToken
	Actions []actions.Action
}

// NewMockEventStore creates a new mock event store
func NewMockEventStore() *MockEventStore {
	return &MockEventStore{}
}

// Append records the batch
func (m *MockEventStore) Append(ctx context.Context, farmID shared.FarmID, session shared.SessionToken, batch []actions.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Batches = append(m.Batches, RecordedBatch{FarmID: farmID, Session: session, Actions: batch})
	return nil
}
