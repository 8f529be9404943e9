package setup

import (
	"reflect"

	farmCommands "github.com/andrescamacho/farmchain-go/internal/application/farm/commands"
	farmQueries "github.com/andrescamacho/farmchain-go/internal/application/farm/queries"
	"github.com/andrescamacho/farmchain-go/internal/application/mediator"
	"github.com/andrescamacho/farmchain-go/internal/domain/ports"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	farms     ports.FarmRepository
	events    ports.EventStore
	chain     ports.Chain
	signer    ports.Signer
	whitelist ports.Whitelist
	clock     shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required
// dependencies. A nil whitelist disables the mainnet whitelist gate.
func NewHandlerRegistry(
	farms ports.FarmRepository,
	events ports.EventStore,
	chain ports.Chain,
	signer ports.Signer,
	whitelist ports.Whitelist,
	clock shared.Clock,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		farms:     farms,
		events:    events,
		chain:     chain,
		signer:    signer,
		whitelist: whitelist,
		clock:     clock,
	}
}

// RegisterFarmHandlers registers all farm command and query handlers
// with the mediator:
//   - SaveFarmCommand → SaveFarmHandler (verify, replay, persist)
//   - WithdrawCommand → WithdrawHandler (tax + signer authorization)
//   - GetFarmQuery → GetFarmHandler (persisted snapshot reads)
func (r *HandlerRegistry) RegisterFarmHandlers(m mediator.Mediator) error {
	saveHandler := farmCommands.NewSaveFarmHandler(r.farms, r.events, r.chain, r.whitelist, r.clock)
	if err := m.Register(
		reflect.TypeOf(&farmCommands.SaveFarmCommand{}),
		saveHandler,
	); err != nil {
		return err
	}

	withdrawHandler := farmCommands.NewWithdrawHandler(r.farms, r.chain, r.signer)
	if err := m.Register(
		reflect.TypeOf(&farmCommands.WithdrawCommand{}),
		withdrawHandler,
	); err != nil {
		return err
	}

	getFarmHandler := farmQueries.NewGetFarmHandler(r.farms)
	if err := m.Register(
		reflect.TypeOf(&farmQueries.GetFarmQuery{}),
		getFarmHandler,
	); err != nil {
		return err
	}

	return nil
}
