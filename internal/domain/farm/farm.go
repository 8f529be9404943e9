package farm

import (
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// Farm is the aggregate root tying a farm NFT to its off-chain game
// state: identity, owning wallet, the session token fencing
// concurrent saves, and the state itself.
type Farm struct {
	id      shared.FarmID
	owner   shared.Address
	session shared.SessionToken
	state   *State
}

// NewFarm creates a freshly minted farm with starting stock and
// recovered trees.
func NewFarm(id shared.FarmID, owner shared.Address) (*Farm, error) {
	if id.IsZero() {
		return nil, &ErrFarmNotFound{ID: id}
	}
	if owner.IsZero() {
		return nil, &ErrNotOwner{ID: id, Sender: owner}
	}
	return &Farm{
		id:      id,
		owner:   owner,
		session: shared.NewSessionToken(),
		state:   NewStartingState(),
	}, nil
}

// ReconstructFarm rebuilds a farm from persistence.
// This bypasses validation and is used by the repository.
func ReconstructFarm(id shared.FarmID, owner shared.Address, session shared.SessionToken, state *State) *Farm {
	return &Farm{
		id:      id,
		owner:   owner,
		session: session,
		state:   state,
	}
}

// ID returns the farm's on-chain token ID.
func (f *Farm) ID() shared.FarmID {
	return f.id
}

// Owner returns the owning wallet address recorded at creation. The
// save pipeline still verifies current ownership on chain.
func (f *Farm) Owner() shared.Address {
	return f.owner
}

// Session returns the current session token.
func (f *Farm) Session() shared.SessionToken {
	return f.session
}

// State returns the farm's game state.
func (f *Farm) State() *State {
	return f.state
}
