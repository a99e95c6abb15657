package models

// EdgeType classifies the relationship an edge records.
type EdgeType string

const (
	// EdgeTypeDependency means the source must complete before the target starts.
	EdgeTypeDependency EdgeType = "dependency"
	// EdgeTypeHandoff records a data transfer between two nodes.
	EdgeTypeHandoff EdgeType = "handoff"
	// EdgeTypeDataFlow documents an expected data path; it never affects scheduling.
	EdgeTypeDataFlow EdgeType = "data_flow"
	// EdgeTypeHierarchy records parent/child ownership; it never affects scheduling.
	EdgeTypeHierarchy EdgeType = "hierarchy"
)

// Valid returns true if the edge type is a known value.
func (t EdgeType) Valid() bool {
	switch t {
	case EdgeTypeDependency, EdgeTypeHandoff, EdgeTypeDataFlow, EdgeTypeHierarchy:
		return true
	default:
		return false
	}
}

// AgentEdge represents a directed relationship between two nodes in a graph.
type AgentEdge struct {
	// From is the source node ID.
	From string `json:"from"`
	// To is the target node ID.
	To string `json:"to"`
	// Type classifies the edge.
	Type EdgeType `json:"type"`
	// Metadata carries optional edge annotations, such as handoff timestamps.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Clone returns a copy of the edge with its own metadata map.
func (e AgentEdge) Clone() AgentEdge {
	c := e
	if e.Metadata != nil {
		c.Metadata = make(map[string]string, len(e.Metadata))
		for k, v := range e.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}
