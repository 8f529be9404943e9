package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/farmchain-go/internal/adapters/persistence"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
	"github.com/andrescamacho/farmchain-go/internal/infrastructure/config"
	"github.com/andrescamacho/farmchain-go/internal/infrastructure/database"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage FarmChain configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (FARM_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default farm, engine URL) are stored in
~/.farmchain/config.json

Examples:
  farmctl config show
  farmctl config set-farm --farm 42
  farmctl config clear-farm
  farmctl config set-engine http://localhost:8880`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetFarmCommand())
	cmd.AddCommand(newConfigClearFarmCommand())
	cmd.AddCommand(newConfigSetEngineCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the current configuration settings.

Shows both system configuration and user preferences.

Example:
  farmctl config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load system config
			cfg, err := config.LoadConfig("")
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			// Load user config
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			// Display configuration
			fmt.Println("FarmChain Configuration")
			fmt.Println("=======================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultFarmID != nil {
				fmt.Printf("  Default Farm:     %d\n", *userCfg.DefaultFarmID)
			} else {
				fmt.Printf("  Default Farm:     (not set)\n")
			}
			if userCfg.EngineURL != "" {
				fmt.Printf("  Engine URL:       %s\n", userCfg.EngineURL)
			} else {
				fmt.Printf("  Engine URL:       (not set, using %s)\n", defaultEngineURL)
			}

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			if cfg.Database.URL != "" {
				fmt.Printf("  URL:              %s\n", cfg.Database.URL)
			} else {
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}
			fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Println("\nChain Gateway:")
			fmt.Printf("  URL:              %s\n", cfg.Chain.GatewayURL)
			fmt.Printf("  Network:          %s\n", cfg.Chain.Network)
			fmt.Printf("  Timeout:          %s\n", cfg.Chain.Timeout)
			fmt.Printf("  Rate Limit:       %d req/s (burst: %d)\n",
				cfg.Chain.RateLimit.Requests, cfg.Chain.RateLimit.Burst)
			fmt.Printf("  Max Retries:      %d\n", cfg.Chain.Retry.MaxAttempts)

			fmt.Println("\nServer:")
			fmt.Printf("  Listen:           %s\n", cfg.Server.Listen)
			fmt.Printf("  PID File:         %s\n", cfg.Server.PIDFile)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)

			return nil
		},
	}

	return cmd
}

// newConfigSetFarmCommand creates the config set-farm subcommand
func newConfigSetFarmCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-farm",
		Short: "Set default farm",
		Long: `Set the default farm to use for commands.

The farm is verified against the engine database before it is saved.
The default farm will be used when no --farm flag is specified.

Example:
  farmctl config set-farm --farm 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if farmID == 0 {
				return fmt.Errorf("the --farm flag is required")
			}

			// Create user config handler
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			// Verify farm exists in database
			cfg, err := config.LoadConfig("")
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)

			id, err := shared.NewFarmID(farmID)
			if err != nil {
				return fmt.Errorf("invalid farm ID: %w", err)
			}

			farmRepo := persistence.NewGormFarmRepository(db)
			f, err := farmRepo.GetFarmByID(context.Background(), id)
			if err != nil {
				return fmt.Errorf("farm %d not found: %w", farmID, err)
			}

			if err := userConfigHandler.SetDefaultFarm(farmID); err != nil {
				return fmt.Errorf("failed to set default farm: %w", err)
			}

			fmt.Println("✓ Default farm set successfully")
			fmt.Printf("  Farm ID: %d\n", f.ID().Value())
			fmt.Printf("  Owner:   %s\n", f.Owner().Value())
			fmt.Printf("\nCommands will now use this farm by default.\n")
			fmt.Printf("Override with the --farm flag.\n")

			return nil
		},
	}

	return cmd
}

// newConfigClearFarmCommand creates the config clear-farm subcommand
func newConfigClearFarmCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-farm",
		Short: "Clear default farm setting",
		Long: `Remove the default farm setting.

After clearing, you must explicitly pass --farm to every command that
needs a farm.

Example:
  farmctl config clear-farm`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultFarm(); err != nil {
				return fmt.Errorf("failed to clear default farm: %w", err)
			}

			fmt.Println("✓ Default farm cleared")
			fmt.Println("\nYou must now pass --farm to commands that need a farm.")

			return nil
		},
	}

	return cmd
}

// newConfigSetEngineCommand creates the config set-engine subcommand
func newConfigSetEngineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-engine <url>",
		Short: "Set the engine URL",
		Long: `Set the engine base URL the CLI talks to.

Example:
  farmctl config set-engine http://localhost:8880`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.SetEngineURL(args[0]); err != nil {
				return fmt.Errorf("failed to set engine URL: %w", err)
			}

			fmt.Println("✓ Engine URL set successfully")
			fmt.Printf("  URL: %s\n", args[0])

			return nil
		},
	}

	return cmd
}
