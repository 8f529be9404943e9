package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewHealthCommand creates the health command
func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check engine health status",
		Long:  `Verify that the engine is running and responsive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewEngineClient(resolveEngineURL())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			health, err := client.HealthCheck(ctx)
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}

			fmt.Println("✓ Engine is healthy")
			fmt.Printf("  Status: %s\n", health.Status)

			return nil
		},
	}

	return cmd
}
