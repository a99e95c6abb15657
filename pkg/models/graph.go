package models

// GraphStatus represents the informational lifecycle state of a graph.
// The planning engine records it but never gates operations on it.
type GraphStatus string

const (
	// GraphStatusCreated indicates the graph exists but has not been planned.
	GraphStatusCreated GraphStatus = "created"
	// GraphStatusPlanning indicates an orchestrator is computing a plan.
	GraphStatusPlanning GraphStatus = "planning"
	// GraphStatusExecuting indicates agents are being dispatched.
	GraphStatusExecuting GraphStatus = "executing"
	// GraphStatusCompleted indicates all agents finished.
	GraphStatusCompleted GraphStatus = "completed"
	// GraphStatusFailed indicates execution was abandoned.
	GraphStatusFailed GraphStatus = "failed"
)

// Valid returns true if the status is a known value.
func (s GraphStatus) Valid() bool {
	switch s {
	case GraphStatusCreated, GraphStatusPlanning, GraphStatusExecuting,
		GraphStatusCompleted, GraphStatusFailed:
		return true
	default:
		return false
	}
}

// GraphInfo is the registry listing entry for a graph.
type GraphInfo struct {
	// ID is the graph identifier.
	ID string `json:"id"`
	// Name is the graph name given at creation.
	Name string `json:"name"`
	// Status is the informational graph status.
	Status GraphStatus `json:"status"`
	// NodeCount is the number of agent nodes currently in the graph.
	NodeCount int `json:"node_count"`
}
