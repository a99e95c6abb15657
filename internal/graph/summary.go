package graph

import (
	"github.com/Pastarafian/VegaMCP-sub003/pkg/models"
)

// Summary projects the graph's current state: counts, a status histogram
// over all statuses, and one synopsis per node in insertion order. The
// execution order and parallel groups are included only while a current
// plan is cached. Summary never plans implicitly and mutates nothing.
func (g *Graph) Summary() models.GraphSummary {
	g.mu.RLock()
	defer g.mu.RUnlock()

	counts := make(map[models.AgentStatus]int, 5)
	for _, s := range models.AgentStatuses() {
		counts[s] = 0
	}

	deps := g.dependencySourcesLocked()

	nodes := make([]models.NodeSynopsis, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		node := g.nodes[id]
		counts[node.Status]++
		nodes = append(nodes, models.NodeSynopsis{
			ID:              node.ID,
			Name:            node.Name,
			Role:            node.Role,
			Status:          node.Status,
			DependencyCount: len(deps[id]),
		})
	}

	summary := models.GraphSummary{
		ID:           g.id,
		Name:         g.name,
		Status:       g.status,
		CreatedAt:    g.createdAt,
		NodeCount:    len(g.nodes),
		EdgeCount:    len(g.edges),
		StatusCounts: counts,
		Nodes:        nodes,
	}

	if g.planned && g.planVersion == g.version {
		summary.ExecutionOrder = append([]string(nil), g.execOrder...)
		summary.ParallelGroups = g.groupsLocked(g.execOrder)
	}
	return summary
}
