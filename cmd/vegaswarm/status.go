package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Pastarafian/VegaMCP-sub003/internal/state"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recorded graphs and recent operations",
	Long: `Display the graphs recorded in the audit store.

Shows:
  - Known graphs with their node and edge counts
  - Recent operations handled by the server`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = state.DefaultDBPath()
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No recorded graphs. Run 'vegaswarm serve' to start tracking.")
		return nil
	}

	db, err := state.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	if err := displayGraphs(db); err != nil {
		return err
	}
	fmt.Println()
	return displayRecentOperations(db)
}

func displayGraphs(db *state.DB) error {
	graphs, err := db.ListGraphSnapshots()
	if err != nil {
		return fmt.Errorf("list graphs: %w", err)
	}

	if len(graphs) == 0 {
		fmt.Println("Graphs: none")
		return nil
	}

	fmt.Printf("Graphs: %d\n", len(graphs))
	for _, g := range graphs {
		elapsed := formatDuration(time.Since(g.UpdatedAt))
		fmt.Printf("  %s: \"%s\" %s, %d nodes, %d edges (updated %s ago)\n",
			g.ID, g.Name, g.Status, g.NodeCount, g.EdgeCount, elapsed)
	}
	return nil
}

func displayRecentOperations(db *state.DB) error {
	ops, err := db.RecentOperations(statusLimit)
	if err != nil {
		return fmt.Errorf("list operations: %w", err)
	}

	if len(ops) == 0 {
		fmt.Println("Recent operations: none")
		return nil
	}

	fmt.Println("Recent operations:")
	for _, op := range ops {
		target := op.GraphID
		if target == "" {
			target = "-"
		}
		line := fmt.Sprintf("  %s  %-16s %s", op.Time.Local().Format("2006-01-02 15:04:05"), op.Action, target)
		if op.Detail != "" {
			line += fmt.Sprintf(" (%s)", op.Detail)
		}
		fmt.Println(line)
	}
	return nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m > 0 {
			return fmt.Sprintf("%dh%dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
	days := int(d.Hours()) / 24
	return fmt.Sprintf("%dd", days)
}

func init() {
	statusCmd.Flags().IntVar(&statusLimit, "limit", 10, "Number of recent operations to show")
}
