package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Pastarafian/VegaMCP-sub003/internal/config"
)

var (
	configPath string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "vegaswarm",
	Short: "Dependency-graph planner for agent swarms",
	Long: `vegaswarm models swarms of agents as dependency graphs and plans
their execution.

Agents declare what they depend on; vegaswarm computes a valid execution
order, partitions agents into parallel groups, and records handoffs of
work products between agents. Graphs come in over the HTTP bridge or from
YAML definitions on disk.

Typical use:
  vegaswarm serve                 start the HTTP bridge
  vegaswarm plan swarm.yaml       plan a definition from disk
  vegaswarm status                inspect recorded graphs and operations`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for a command run. The
// --config flag pins one file; otherwise the XDG and project search paths
// apply. --debug forces debug logging on.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if debugFlag {
		cfg.Log.Debug = true
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (overrides search paths)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}
