package swarm

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for graphs and agent nodes. Injecting a
// generator lets tests assert on exact ids.
type IDGenerator interface {
	// GraphID returns a fresh graph identifier.
	GraphID() string
	// AgentID returns a fresh agent node identifier.
	AgentID() string
}

// UUIDGenerator is the default generator: a short uuid fragment behind a
// type prefix, readable in summaries and logs.
type UUIDGenerator struct{}

// GraphID returns an id of the form "graph-1a2b3c4d".
func (UUIDGenerator) GraphID() string {
	return "graph-" + uuid.New().String()[:8]
}

// AgentID returns an id of the form "agent-1a2b3c4d".
func (UUIDGenerator) AgentID() string {
	return "agent-" + uuid.New().String()[:8]
}

// SequenceGenerator numbers ids monotonically per instance: graph-1,
// graph-2, agent-1, ... Deterministic, for tests and fixtures.
type SequenceGenerator struct {
	graphs uint64
	agents uint64
}

// GraphID returns the next graph id in sequence.
func (s *SequenceGenerator) GraphID() string {
	return fmt.Sprintf("graph-%d", atomic.AddUint64(&s.graphs, 1))
}

// AgentID returns the next agent id in sequence.
func (s *SequenceGenerator) AgentID() string {
	return fmt.Sprintf("agent-%d", atomic.AddUint64(&s.agents, 1))
}
