package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Pastarafian/VegaMCP-sub003/internal/api"
	"github.com/Pastarafian/VegaMCP-sub003/internal/defs"
	"github.com/Pastarafian/VegaMCP-sub003/internal/swarm"
	"github.com/Pastarafian/VegaMCP-sub003/internal/tui"
	"github.com/Pastarafian/VegaMCP-sub003/pkg/models"
)

var (
	planJSON bool
	planTUI  bool
)

var planCmd = &cobra.Command{
	Use:   "plan <definition.yaml>",
	Short: "Plan a swarm definition",
	Long: `Load a YAML swarm definition, compute its execution order and
parallel groups, and print them.

The definition is built into an in-memory graph; nothing is persisted.
With --json the raw action envelopes are printed instead of the
human-readable report. With --tui a live monitor opens on the graph.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	def, err := defs.LoadFile(args[0])
	if err != nil {
		return err
	}

	reg := swarm.NewRegistry()
	graphID, err := defs.Build(reg, def)
	if err != nil {
		return err
	}

	if planJSON {
		return printPlanJSON(reg, graphID)
	}

	steps, err := reg.Plan(graphID)
	if err != nil {
		fmt.Println(renderPlanError(def.Name, err))
		return err
	}
	groups, err := reg.ParallelGroups(graphID)
	if err != nil {
		return err
	}

	fmt.Print(renderPlan(def.Name, steps, groups))

	if planTUI {
		return tui.Run(func() (models.GraphSummary, error) {
			return reg.Summary(graphID)
		})
	}
	return nil
}

// printPlanJSON emits the plan and parallel_groups action envelopes, one
// per line, exactly as the HTTP bridge would return them.
func printPlanJSON(reg *swarm.Registry, graphID string) error {
	d := api.NewDispatcher(reg)
	params, err := json.Marshal(api.GraphParams{GraphID: graphID})
	if err != nil {
		return err
	}

	for _, action := range []string{api.ActionPlan, api.ActionParallelGroups} {
		env := d.Handle(context.Background(), action, params)
		out, err := json.Marshal(env)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}
	return nil
}

// renderPlan formats the execution order and parallel groups.
func renderPlan(name string, steps []models.PlanStep, groups []models.ParallelGroup) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s Swarm: %s\n\n", color.GreenString("✓"), name))

	b.WriteString("Execution order:\n")
	for i, step := range steps {
		b.WriteString(fmt.Sprintf("  %2d. %s (%s)\n", i+1, step.Name, step.ID))
	}

	b.WriteString("\nParallel groups:\n")
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("  level %d: %s\n", g.Level, strings.Join(g.Agents, ", ")))
	}
	return b.String()
}

// renderPlanError formats a planning failure.
func renderPlanError(name string, err error) string {
	return fmt.Sprintf("%s %s: %v", color.RedString("✗"), name, err)
}

func init() {
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Print action envelopes instead of a report")
	planCmd.Flags().BoolVar(&planTUI, "tui", false, "Open a live monitor after planning")
}
