package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the item catalog",
		Long: `Inspect the static item catalog the engine replays against.

The catalog holds every item the game knows: its on-chain token ID,
category, fixed-point precision and whether it may be withdrawn.

Examples:
  farmctl catalog list
  farmctl catalog item Sunflower
  farmctl catalog item 26`,
	}

	// Add subcommands
	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogItemCommand())

	return cmd
}

// newCatalogListCommand creates the catalog list subcommand
func newCatalogListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all catalog items",
		Long: `List every item in the catalog in ascending token ID order.

Example:
  farmctl catalog list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tDECIMALS\tWITHDRAWABLE")

			for _, name := range catalog.IDList() {
				item := catalog.MustItem(name)
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%t\n",
					item.ID, item.Name, item.Category, item.Decimals,
					catalog.IsWithdrawable(item.Name))
			}

			return w.Flush()
		},
	}

	return cmd
}

// newCatalogItemCommand creates the catalog item subcommand
func newCatalogItemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item <name-or-id>",
		Short: "Show details for one item",
		Long: `Show catalog details for a single item, looked up by name or by
on-chain token ID. Includes the crafting recipe, shop stock and crop
data where the item has them.

Examples:
  farmctl catalog item "Sunflower Seed"
  farmctl catalog item 19`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := lookupItem(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", item.Name)
			fmt.Println(strings.Repeat("=", len(item.Name)))
			fmt.Printf("  Token ID:     %d\n", item.ID)
			fmt.Printf("  Category:     %s\n", item.Category)
			fmt.Printf("  Decimals:     %d\n", item.Decimals)
			fmt.Printf("  Withdrawable: %t\n", catalog.IsWithdrawable(item.Name))
			fmt.Printf("  Redeemable:   %t\n", catalog.IsRedeemable(item.Name))

			if recipe, ok := catalog.RecipeFor(item.Name); ok {
				fmt.Println("\nShop listing:")
				fmt.Printf("  Price:        %s SFL\n", recipe.SFLPrice)
				fmt.Printf("  Craftable:    %t\n", recipe.Craftable)
				if recipe.FromStock {
					fmt.Printf("  Default stock: %s\n", recipe.DefaultStock)
				}
				if recipe.Supply > 0 {
					fmt.Printf("  Total supply: %d\n", recipe.Supply)
				}
				for _, ing := range recipe.Ingredients {
					fmt.Printf("  Ingredient:   %s x %s\n", ing.Item, ing.Amount)
				}
			}

			if price, ok := catalog.SellPrice(item.Name); ok {
				fmt.Println("\nSell:")
				fmt.Printf("  Price:        %s SFL\n", price)
			}

			if item.Category == catalog.CategorySeed {
				if crop, ok := catalog.CropBySeed(item.Name); ok {
					fmt.Println("\nCrop:")
					fmt.Printf("  Harvests to:  %s\n", crop.HarvestsInto)
					fmt.Printf("  Grow time:    %s\n", crop.GrowDuration())
				}
			}

			return nil
		},
	}

	return cmd
}

// lookupItem resolves an item from a symbolic name or a numeric token ID
func lookupItem(arg string) (catalog.Item, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		item, ok := catalog.ItemByID(id)
		if !ok {
			return catalog.Item{}, fmt.Errorf("no item with token ID %d", id)
		}
		return item, nil
	}

	item, ok := catalog.ItemByName(catalog.ItemName(arg))
	if !ok {
		return catalog.Item{}, fmt.Errorf("no item named %q", arg)
	}
	return item, nil
}
