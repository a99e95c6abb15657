package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Pastarafian/VegaMCP-sub003/internal/api"
	"github.com/Pastarafian/VegaMCP-sub003/internal/config"
	"github.com/Pastarafian/VegaMCP-sub003/internal/defs"
	"github.com/Pastarafian/VegaMCP-sub003/internal/logging"
	"github.com/Pastarafian/VegaMCP-sub003/internal/server"
	"github.com/Pastarafian/VegaMCP-sub003/internal/state"
	"github.com/Pastarafian/VegaMCP-sub003/internal/swarm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP bridge",
	Long: `Start the vegaswarm HTTP bridge.

The bridge exposes every graph operation over REST, audits successful
actions to the SQLite store, and keeps YAML definitions from the
configured directory loaded, rebuilding them when their files change.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logger.Close()
	logging.SetPackageLogger(logger)

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = state.DefaultDBPath()
	}
	db, err := state.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open audit store: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate audit store: %w", err)
	}

	reg := swarm.NewRegistry(swarm.WithDebugLog(logging.Debugf))
	dispatcher := api.NewDispatcher(reg,
		api.WithAuditor(&snapshotAuditor{db: db, reg: reg}),
		api.WithDebugLog(logging.Debugf),
	)

	var watcher *defs.Watcher
	if cfg.Definitions.Dir != "" {
		watcher, err = defs.NewWatcher(reg, cfg.Definitions.Dir)
		if err != nil {
			return fmt.Errorf("load definitions: %w", err)
		}
		watcher.SetDebugLog(logging.Debugf)
		if cfg.Definitions.Watch {
			watcher.Start()
		}
		defer watcher.Close()
		fmt.Printf("Loaded %d swarm definitions from %s\n", len(watcher.GraphIDs()), cfg.Definitions.Dir)
	}

	srv := server.New(dispatcher, cfg.Server.Addr(), server.WithDebugLog(logging.Debugf))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	fmt.Printf("vegaswarm listening on http://%s\n", cfg.Server.Addr())
	fmt.Printf("Audit store: %s\n", dbPath)

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		fmt.Printf("\nReceived %s, shutting down...\n", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// buildLogger assembles the debug logger from config: a log file when one
// is set, stderr when only the debug toggle is on, otherwise a no-op.
func buildLogger(cfg *config.Config) (*logging.DebugLogger, error) {
	if cfg.Log.File != "" {
		return logging.NewDebugLogger(cfg.Log.File)
	}
	if cfg.Log.Debug {
		return logging.NewStderrLogger(), nil
	}
	return logging.NopLogger(), nil
}

// snapshotAuditor appends operations to the audit log and refreshes the
// persisted snapshot of the touched graph.
type snapshotAuditor struct {
	db  *state.DB
	reg *swarm.Registry
}

func (a *snapshotAuditor) RecordOperation(ctx context.Context, action, graphID, detail string) error {
	if err := a.db.RecordOperation(ctx, action, graphID, detail); err != nil {
		return err
	}
	if graphID == "" {
		return nil
	}

	g, err := a.reg.Graph(graphID)
	if err != nil {
		return nil
	}
	info := g.Info()
	return a.db.UpsertGraphSnapshot(state.GraphSnapshot{
		ID:        info.ID,
		Name:      info.Name,
		Status:    string(info.Status),
		NodeCount: info.NodeCount,
		EdgeCount: g.EdgeCount(),
	})
}
