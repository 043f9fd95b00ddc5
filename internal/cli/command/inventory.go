// Package command provides CLI command definitions for stockd-cli.
package command

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/stockd/stockd/internal/cli/connection"
	"github.com/stockd/stockd/internal/cli/output"
)

// productRow is the wire shape of a product as served by the inventory API.
type productRow struct {
	ID       int64 `json:"id"`
	Quantity int64 `json:"quantity"`
}

// InventoryCommand returns the inventory subcommand group.
func InventoryCommand() *cli.Command {
	return &cli.Command{
		Name:    "inventory",
		Aliases: []string{"inv"},
		Usage:   "Inspect stock levels",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all products and their stock levels",
				Action: inventoryList,
			},
			{
				Name:      "get",
				Usage:     "Get the stock level of a single product",
				ArgsUsage: "PRODUCT_ID",
				Action:    inventoryGet,
			},
		},
	}
}

func inventoryList(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	ctx, cancel := context.WithTimeout(context.Background(), flags.Timeout)
	defer cancel()

	resp, err := client.Get(ctx, "/api/inventory")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var products []productRow
	if err := connection.ParseResponse(resp, &products); err != nil {
		return err
	}

	if handled, err := renderStructured(output.Format(flags.Output), products); handled {
		return err
	}

	table := &output.Table{
		Headers: []string{"PRODUCT ID", "QUANTITY"},
	}
	for _, p := range products {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(p.ID, 10),
			strconv.FormatInt(p.Quantity, 10),
		})
	}
	if err := table.Render(os.Stdout); err != nil {
		return err
	}
	fmt.Printf("\nTotal: %d products\n", len(products))
	return nil
}

func inventoryGet(c *cli.Context) error {
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

	resp, err := client.Get(ctx, fmt.Sprintf("/api/inventory/%d", productID))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var product productRow
	if err := connection.ParseResponse(resp, &product); err != nil {
		return err
	}

	formatter := output.NewFormatter(output.Format(flags.Output), flags.Wide)
	return formatter.Format(os.Stdout, product)
}

// parseProductID validates a positive integer product ID argument.
func parseProductID(arg string) (int64, error) {
	if arg == "" {
		return 0, fmt.Errorf("product ID required")
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product ID %q", arg)
	}
	return id, nil
}
