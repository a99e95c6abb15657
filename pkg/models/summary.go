package models

import "time"

// PlanStep is one entry of a computed execution order.
type PlanStep struct {
	// ID is the node identifier.
	ID string `json:"id"`
	// Name is the node name, for human-readable plans.
	Name string `json:"name"`
}

// ParallelGroup is one concurrency level of a planned graph. All agents in a
// group may run at the same time once every earlier group has completed.
type ParallelGroup struct {
	// Level is the zero-based dependency depth of the group.
	Level int `json:"level"`
	// Agents lists the members of the group.
	Agents []string `json:"agents"`
}

// NodeSynopsis is the per-node line of a graph summary.
type NodeSynopsis struct {
	// ID is the node identifier.
	ID string `json:"id"`
	// Name is the node name.
	Name string `json:"name"`
	// Role is the node's free-form role label.
	Role string `json:"role,omitempty"`
	// Status is the node's current lifecycle state.
	Status AgentStatus `json:"status"`
	// DependencyCount is the number of distinct nodes this node waits for.
	DependencyCount int `json:"dependency_count"`
}

// GraphSummary is the read-only projection of a graph's current state.
type GraphSummary struct {
	// ID is the graph identifier.
	ID string `json:"id"`
	// Name is the graph name.
	Name string `json:"name"`
	// Status is the informational graph status.
	Status GraphStatus `json:"status"`
	// CreatedAt is when the graph was created.
	CreatedAt time.Time `json:"created_at"`
	// NodeCount is the number of agent nodes.
	NodeCount int `json:"node_count"`
	// EdgeCount is the number of edges of all types.
	EdgeCount int `json:"edge_count"`
	// StatusCounts is the node count per lifecycle status, including zeros.
	StatusCounts map[AgentStatus]int `json:"status_counts"`
	// Nodes holds one synopsis per node in insertion order.
	Nodes []NodeSynopsis `json:"nodes"`
	// ExecutionOrder is the cached plan, present only while it is current.
	ExecutionOrder []string `json:"execution_order,omitempty"`
	// ParallelGroups renders the concurrency levels by agent name, present
	// only while a current plan is cached.
	ParallelGroups []ParallelGroup `json:"parallel_groups,omitempty"`
}
