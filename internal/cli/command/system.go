// Package command provides CLI command definitions for stockd-cli.
package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/stockd/stockd/internal/cli/connection"
	"github.com/stockd/stockd/internal/cli/output"
)

// SystemCommand returns the system subcommand group.
func SystemCommand() *cli.Command {
	return &cli.Command{
		Name:    "system",
		Aliases: []string{"sys"},
		Usage:   "System management commands",
		Subcommands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show inventory status summary",
				Action: systemStatus,
			},
			{
				Name:   "health",
				Usage:  "Check server health",
				Action: systemHealth,
			},
		},
	}
}

func systemStatus(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	ctx, cancel := context.WithTimeout(context.Background(), flags.Timeout)
	defer cancel()

	resp, err := client.Get(ctx, "/api/system/status")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result map[string]any
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	if handled, err := renderStructured(output.Format(flags.Output), result); handled {
		return err
	}

	fmt.Printf("System Status\n")
	fmt.Printf("=============\n\n")

	table := &output.Table{}
	for _, row := range []struct{ label, key string }{
		{"Service", "service"},
		{"Status", "status"},
		{"Version", "version"},
		{"Uptime", "uptime"},
		{"Products", "items"},
		{"Total Quantity", "total_quantity"},
		{"Out of Stock", "out_of_stock_items"},
		{"Low Stock", "low_stock_items"},
		{"Low Stock Threshold", "low_stock_threshold"},
	} {
		switch v := result[row.key].(type) {
		case string:
			table.Rows = append(table.Rows, []string{row.label, v})
		case float64:
			table.Rows = append(table.Rows, []string{row.label, fmt.Sprintf("%.0f", v)})
		}
	}
	return table.Render(os.Stdout)
}

func systemHealth(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		PrintError("Health check failed: %v", err)
		return fmt.Errorf("server unhealthy")
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	if handled, err := renderStructured(output.Format(flags.Output), result); handled {
		return err
	}

	if result.Status == "ok" {
		fmt.Printf("✓ Server is healthy\n")
		fmt.Printf("  Target: %s\n", client.BaseURL())
	} else {
		fmt.Printf("✗ Server is unhealthy: %s\n", result.Status)
	}
	return nil
}
