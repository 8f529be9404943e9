package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
)

// NewTaxCommand creates the tax command
func NewTaxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax <sfl-amount>",
		Short: "Preview the withdrawal tax for an SFL amount",
		Long: `Preview the tax the engine would apply to an SFL withdrawal.

The tax rate depends on the withdrawn amount: small withdrawals pay a
higher rate than large ones. The previewed rate is the one the engine
would stamp into the withdrawal payload right now.

Examples:
  farmctl tax 5
  farmctl tax 1250.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid SFL amount %q: %w", args[0], err)
			}
			if amount.IsNegative() {
				return fmt.Errorf("SFL amount must not be negative")
			}

			bps := catalog.WithdrawalTaxBps(amount)
			rate := decimal.NewFromInt(bps).Div(decimal.NewFromInt(10000))
			fee := amount.Mul(rate)
			net := amount.Sub(fee)

			fmt.Printf("Withdrawal of %s SFL\n", amount)
			fmt.Printf("  Tax rate: %d bps (%s%%)\n", bps, rate.Mul(decimal.NewFromInt(100)))
			fmt.Printf("  Tax fee:  %s SFL\n", fee)
			fmt.Printf("  You get:  %s SFL\n", net)

			return nil
		},
	}

	return cmd
}
