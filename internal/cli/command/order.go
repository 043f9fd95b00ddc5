// Package command provides CLI command definitions for stockd-cli.
package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/stockd/stockd/internal/cli/connection"
	"github.com/stockd/stockd/internal/cli/output"
)

// OrderCommand returns the order subcommand group.
func OrderCommand() *cli.Command {
	return &cli.Command{
		Name:    "order",
		Aliases: []string{"ord"},
		Usage:   "Place orders against stock",
		Subcommands: []*cli.Command{
			{
				Name:      "place",
				Usage:     "Order one unit of a product",
				ArgsUsage: "PRODUCT_ID",
				Action:    orderPlace,
			},
		},
	}
}

func orderPlace(c *cli.Context) error {
	productID, err := parseProductID(c.Args().First())
	if err != nil {
		return err
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	ctx, cancel := context.WithTimeout(context.Background(), flags.Timeout)
	defer cancel()

	resp, err := client.Post(ctx, fmt.Sprintf("/api/order/%d", productID), nil)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var product productRow
	if err := connection.ParseResponse(resp, &product); err != nil {
		return err
	}

	if handled, err := renderStructured(output.Format(flags.Output), product); handled {
		return err
	}

	fmt.Printf("✓ Order placed for product %d\n", product.ID)
	fmt.Printf("  Remaining stock: %d\n", product.Quantity)
	if product.Quantity == 0 {
		fmt.Printf("  Product %d is now out of stock.\n", product.ID)
	}
	return nil
}
