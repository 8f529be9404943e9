package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/farmchain-go/internal/adapters/persistence"
	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
	"github.com/andrescamacho/farmchain-go/internal/infrastructure/config"
	"github.com/andrescamacho/farmchain-go/internal/infrastructure/database"
)

// NewFarmCommand creates the farm command with subcommands
func NewFarmCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "farm",
		Short: "Inspect and seed farms",
		Long: `Inspect farms held by a running engine, or seed new ones directly
into the engine database for local development.

Examples:
  farmctl farm show --farm 42
  farmctl farm history --farm 42
  farmctl farm create --farm 42 --owner 0x71ce81cb65cbc9a04ba4d0d95b344c2cbf7dc223`,
	}

	// Add subcommands
	cmd.AddCommand(newFarmShowCommand())
	cmd.AddCommand(newFarmCreateCommand())
	cmd.AddCommand(newFarmHistoryCommand())

	return cmd
}

// newFarmShowCommand creates the farm show subcommand
func newFarmShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a farm's persisted state",
		Long: `Fetch a farm's persisted snapshot from the engine and display it.

Uses the default farm from user config when --farm is not given.

Examples:
  farmctl farm show --farm 42
  farmctl farm show --farm 42 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveFarmID()
			if err != nil {
				return err
			}

			client := NewEngineClient(resolveEngineURL())

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			response, err := client.GetFarm(ctx, id)
			if err != nil {
				return err
			}

			if asJSON {
				fmt.Println(prettyPrint(response))
				return nil
			}

			printFarm(response)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON response")

	return cmd
}

// printFarm renders a farm response as readable sections
func printFarm(response *FarmResponse) {
	fmt.Printf("Farm %d\n", response.ID)
	fmt.Println("========")
	fmt.Printf("  Owner:   %s\n", response.Owner)
	fmt.Printf("  Session: %s\n", response.SessionID)
	printSnapshot(response.Farm)
}

// printSnapshot renders a game-state snapshot as readable sections
func printSnapshot(snap farm.Snapshot) {
	fmt.Printf("  Balance: %s SFL\n", snap.Balance)

	if len(snap.Inventory) > 0 {
		fmt.Println("\nInventory:")
		for _, name := range sortedKeys(snap.Inventory) {
			fmt.Printf("  %-20s %s\n", name, snap.Inventory[name])
		}
	}

	if len(snap.Stock) > 0 {
		fmt.Println("\nShop stock:")
		for _, name := range sortedKeys(snap.Stock) {
			fmt.Printf("  %-20s %s\n", name, snap.Stock[name])
		}
	}

	if len(snap.Fields) > 0 {
		fmt.Println("\nPlanted fields:")
		indexes := make([]int, 0, len(snap.Fields))
		for idx := range snap.Fields {
			indexes = append(indexes, idx)
		}
		sort.Ints(indexes)
		for _, idx := range indexes {
			field := snap.Fields[idx]
			fmt.Printf("  field %-3d %-20s planted %s\n", idx, field.Item,
				field.PlantedAt.Format(time.RFC3339))
		}
	}

	if len(snap.Trees) > 0 {
		fmt.Println("\nTrees:")
		indexes := make([]int, 0, len(snap.Trees))
		for idx := range snap.Trees {
			indexes = append(indexes, idx)
		}
		sort.Ints(indexes)
		for _, idx := range indexes {
			tree := snap.Trees[idx]
			fmt.Printf("  tree %-3d wood %-8s chopped %s\n", idx, tree.Wood,
				tree.ChoppedAt.Format(time.RFC3339))
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// newFarmHistoryCommand creates the farm history subcommand
func newFarmHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a farm's audit trail",
		Long: `List the actions the engine has accepted for a farm, oldest first.

Reads the audit log from the engine database directly.

Examples:
  farmctl farm history --farm 42
  farmctl farm history --farm 42 --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveFarmID()
			if err != nil {
				return err
			}

			parsedID, err := shared.NewFarmID(id)
			if err != nil {
				return fmt.Errorf("invalid farm ID: %w", err)
			}

			cfg, err := config.LoadConfig("")
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)

			store := persistence.NewGormEventStore(db)
			history, err := store.History(context.Background(), parsedID, limit)
			if err != nil {
				return err
			}

			if len(history) == 0 {
				fmt.Printf("No recorded actions for farm %d\n", id)
				return nil
			}

			fmt.Printf("Farm %d audit trail (%d actions)\n", id, len(history))
			for _, action := range history {
				fmt.Printf("  %s  %s\n", action.Time().UTC().Format(time.RFC3339), describeAction(action))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of actions to show (0 = all)")

	return cmd
}

// describeAction renders one audit entry as a human-readable line
func describeAction(action actions.Action) string {
	switch a := action.(type) {
	case actions.Plant:
		return fmt.Sprintf("plant %q on field %d", a.Item, a.Index)
	case actions.Harvest:
		return fmt.Sprintf("harvest field %d", a.Index)
	case actions.Chop:
		return fmt.Sprintf("chop tree %d with %q", a.Index, a.Tool)
	case actions.Craft:
		return fmt.Sprintf("craft %s %q", a.Amount, a.Item)
	case actions.Sell:
		return fmt.Sprintf("sell %s %q", a.Amount, a.Item)
	case actions.Redeem:
		return fmt.Sprintf("redeem %q", a.Item)
	default:
		return string(action.Type())
	}
}

// newFarmCreateCommand creates the farm create subcommand
func newFarmCreateCommand() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Seed a new farm into the engine database",
		Long: `Create a fresh farm directly in the engine database.

The farm starts with the standard loadout: starting balance, starter
inventory and full shop stock. This writes to the database directly
and is meant for local development, not for production farms, which
are minted on-chain.

Example:
  farmctl farm create --farm 42 --owner 0x71ce81cb65cbc9a04ba4d0d95b344c2cbf7dc223`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if farmID == 0 {
				return fmt.Errorf("the --farm flag is required")
			}
			if owner == "" {
				return fmt.Errorf("the --owner flag is required")
			}

			id, err := shared.NewFarmID(farmID)
			if err != nil {
				return fmt.Errorf("invalid farm ID: %w", err)
			}

			ownerAddr, err := shared.NewAddress(owner)
			if err != nil {
				return fmt.Errorf("invalid owner address: %w", err)
			}

			cfg, err := config.LoadConfig("")
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			f, err := farm.NewFarm(id, ownerAddr)
			if err != nil {
				return fmt.Errorf("failed to create farm: %w", err)
			}

			farmRepo := persistence.NewGormFarmRepository(db)
			if err := farmRepo.CreateFarm(context.Background(), f); err != nil {
				return fmt.Errorf("failed to persist farm: %w", err)
			}

			fmt.Println("✓ Farm created")
			fmt.Printf("  Farm ID: %d\n", f.ID().Value())
			fmt.Printf("  Owner:   %s\n", f.Owner().Value())
			fmt.Printf("  Session: %s\n", f.Session().Value())
			fmt.Printf("  Balance: %s SFL\n", f.State().Balance())

			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner wallet address (0x-prefixed)")

	return cmd
}
