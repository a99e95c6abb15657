package defs

import (
	"fmt"

	"github.com/Pastarafian/VegaMCP-sub003/internal/graph"
	"github.com/Pastarafian/VegaMCP-sub003/internal/swarm"
	"github.com/Pastarafian/VegaMCP-sub003/pkg/models"
)

// Build creates a graph in the registry from a definition. Agents are
// created first so every edge endpoint resolves to a generated ID, then
// dependency and hierarchy edges are added in declaration order.
// It returns the new graph's ID.
func Build(reg *swarm.Registry, def *SwarmDef) (string, error) {
	if err := def.Validate(); err != nil {
		return "", err
	}

	g := reg.CreateGraph(def.Name)
	ids := make(map[string]string, len(def.Agents))

	for _, a := range def.Agents {
		node, err := reg.AddAgent(g.ID(), graph.AgentSpec{
			Name:         a.Name,
			Role:         a.Role,
			Capabilities: a.Capabilities,
		})
		if err != nil {
			return "", fmt.Errorf("swarm %s: add agent %s: %w", def.Name, a.Name, err)
		}
		ids[a.Name] = node.ID
	}

	for _, a := range def.Agents {
		for _, dep := range a.DependsOn {
			if err := reg.AddEdge(g.ID(), ids[dep], ids[a.Name], models.EdgeTypeDependency, nil); err != nil {
				return "", fmt.Errorf("swarm %s: dependency %s -> %s: %w", def.Name, dep, a.Name, err)
			}
		}
		if a.Parent != "" {
			if err := reg.AddEdge(g.ID(), ids[a.Parent], ids[a.Name], models.EdgeTypeHierarchy, nil); err != nil {
				return "", fmt.Errorf("swarm %s: hierarchy %s -> %s: %w", def.Name, a.Parent, a.Name, err)
			}
		}
	}

	return g.ID(), nil
}

// BuildDir loads every definition in dir and builds each one.
// Returns the created graph IDs keyed by swarm name.
func BuildDir(reg *swarm.Registry, dir string) (map[string]string, error) {
	loaded, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}

	graphs := make(map[string]string, len(loaded))
	for _, def := range loaded {
		id, err := Build(reg, def)
		if err != nil {
			return nil, err
		}
		graphs[def.Name] = id
	}
	return graphs, nil
}
