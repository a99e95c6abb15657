package graph

import (
	"fmt"
	"time"

	"github.com/Pastarafian/VegaMCP-sub003/pkg/models"
)

// Handoff transfers a payload from one node to another: the producer's
// output and the consumer's input both become data (last write wins), the
// consumer transitions to "waiting", and exactly one handoff edge is
// appended with a timestamp. Handoff ignores the dependency structure on
// purpose, so any two existing nodes can exchange context. It is not a
// structural mutation, and a cached plan stays current across it.
func (g *Graph) Handoff(fromID, toID string, data models.Payload) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	from, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, fromID)
	}
	to, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, toID)
	}

	from.Output = data.Clone()
	to.Input = data.Clone()
	to.Status = models.AgentStatusWaiting

	g.edges = append(g.edges, models.AgentEdge{
		From: fromID,
		To:   toID,
		Type: models.EdgeTypeHandoff,
		Metadata: map[string]string{
			"timestamp": g.now().UTC().Format(time.RFC3339),
		},
	})

	g.debugLog("[graph.Handoff] graph=%s %s -> %s (%d bytes)", g.id, fromID, toID, len(data))
	return nil
}
