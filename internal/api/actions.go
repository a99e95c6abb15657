package api

import (
	"github.com/Pastarafian/VegaMCP-sub003/pkg/models"
)

// Action names, one per engine operation.
const (
	ActionCreate         = "create"
	ActionAddAgent       = "add_agent"
	ActionAddEdge        = "add_edge"
	ActionPlan           = "plan"
	ActionParallelGroups = "parallel_groups"
	ActionHandoff        = "handoff"
	ActionSummary        = "summary"
	ActionList           = "list"
)

// Actions lists every known action name.
func Actions() []string {
	return []string{
		ActionCreate,
		ActionAddAgent,
		ActionAddEdge,
		ActionPlan,
		ActionParallelGroups,
		ActionHandoff,
		ActionSummary,
		ActionList,
	}
}

// CreateParams names a new graph.
type CreateParams struct {
	Name string `json:"name"`
}

// CreateResult identifies the created graph.
type CreateResult struct {
	GraphID string `json:"graph_id"`
	Name    string `json:"name"`
}

// AddAgentParams declares an agent node.
type AddAgentParams struct {
	GraphID      string   `json:"graph_id"`
	Name         string   `json:"name"`
	Role         string   `json:"role,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	ParentID     string   `json:"parent_id,omitempty"`
}

// AddAgentResult identifies the added node.
type AddAgentResult struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
}

// AddEdgeParams appends an explicit edge.
type AddEdgeParams struct {
	GraphID  string            `json:"graph_id"`
	From     string            `json:"from"`
	To       string            `json:"to"`
	Type     models.EdgeType   `json:"type"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// GraphParams addresses a graph, for plan, parallel_groups and summary.
type GraphParams struct {
	GraphID string `json:"graph_id"`
}

// PlanResult carries the computed execution order.
type PlanResult struct {
	ExecutionOrder []models.PlanStep `json:"execution_order"`
}

// GroupsResult carries the concurrency levels.
type GroupsResult struct {
	Groups []models.ParallelGroup `json:"groups"`
}

// HandoffParams transfers a payload between two nodes.
type HandoffParams struct {
	GraphID string         `json:"graph_id"`
	From    string         `json:"from"`
	To      string         `json:"to"`
	Data    models.Payload `json:"data,omitempty"`
}

// ListResult enumerates registered graphs.
type ListResult struct {
	Graphs []models.GraphInfo `json:"graphs"`
}
