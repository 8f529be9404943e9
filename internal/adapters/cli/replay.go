package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/farmchain-go/internal/adapters/persistence"
	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/replay"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
	"github.com/andrescamacho/farmchain-go/internal/infrastructure/config"
	"github.com/andrescamacho/farmchain-go/internal/infrastructure/database"
)

// NewReplayCommand creates the replay command
func NewReplayCommand() *cobra.Command {
	var fresh bool
	var gate bool

	cmd := &cobra.Command{
		Use:   "replay <batch.json>",
		Short: "Replay an action batch offline",
		Long: `Replay a JSON action batch against a farm without touching the engine.

The batch uses the same wire form the save endpoint accepts: a JSON
array of tagged actions, e.g.

  [
    {"type": "item.planted", "index": 0, "item": "Sunflower Seed",
     "createdAt": "2022-03-14T12:00:00Z"},
    {"type": "item.harvested", "index": 0,
     "createdAt": "2022-03-14T12:01:10Z"}
  ]

By default the batch runs against the farm's persisted state from the
engine database; nothing is written back. With --fresh it runs against
a brand-new farm with the standard loadout instead.

Examples:
  farmctl replay batch.json --farm 42
  farmctl replay batch.json --fresh
  farmctl replay batch.json --farm 42 --gate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read batch file: %w", err)
			}

			batch, err := actions.DecodeBatch(data)
			if err != nil {
				return fmt.Errorf("invalid batch: %w", err)
			}

			state, err := loadReplayState(fresh)
			if err != nil {
				return err
			}

			if gate {
				if err := actions.VerifyBatch(batch, time.Now()); err != nil {
					return fmt.Errorf("batch rejected by submission gate: %w", err)
				}
			}

			next, err := replay.Run(state, batch)
			if err != nil {
				return fmt.Errorf("replay failed: %w", err)
			}

			fmt.Printf("✓ Replayed %d actions\n", len(batch))
			printSnapshot(next.Snapshot())
			return nil
		},
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "Replay against a new farm with the standard loadout")
	cmd.Flags().BoolVar(&gate, "gate", false, "Also run the temporal submission gate against the current clock")

	return cmd
}

// loadReplayState picks the state a replay runs against: a fresh
// starting farm, or the persisted state of the selected farm.
func loadReplayState(fresh bool) (*farm.State, error) {
	if fresh {
		return farm.NewStartingState(), nil
	}

	id, err := resolveFarmID()
	if err != nil {
		return nil, err
	}

	parsedID, err := shared.NewFarmID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid farm ID: %w", err)
	}

	cfg, err := config.LoadConfig("")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	farmRepo := persistence.NewGormFarmRepository(db)
	f, err := farmRepo.GetFarmByID(context.Background(), parsedID)
	if err != nil {
		return nil, err
	}

	return f.State(), nil
}
