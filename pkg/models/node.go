package models

// AgentStatus represents the current lifecycle state of an agent node.
type AgentStatus string

const (
	// AgentStatusIdle indicates the agent has been added but received no work.
	AgentStatusIdle AgentStatus = "idle"
	// AgentStatusWaiting indicates the agent has received input via handoff.
	AgentStatusWaiting AgentStatus = "waiting"
	// AgentStatusRunning indicates the agent is actively working.
	AgentStatusRunning AgentStatus = "running"
	// AgentStatusCompleted indicates the agent finished its work.
	AgentStatusCompleted AgentStatus = "completed"
	// AgentStatusFailed indicates the agent encountered an error.
	AgentStatusFailed AgentStatus = "failed"
)

// Valid returns true if the status is a known value.
func (s AgentStatus) Valid() bool {
	switch s {
	case AgentStatusIdle, AgentStatusWaiting, AgentStatusRunning,
		AgentStatusCompleted, AgentStatusFailed:
		return true
	default:
		return false
	}
}

// AgentStatuses lists every valid status in a fixed order, for histograms
// and display.
func AgentStatuses() []AgentStatus {
	return []AgentStatus{
		AgentStatusIdle,
		AgentStatusWaiting,
		AgentStatusRunning,
		AgentStatusCompleted,
		AgentStatusFailed,
	}
}

// AgentNode represents a worker declared in a swarm graph.
type AgentNode struct {
	// ID is the unique identifier for this node within its graph.
	ID string `json:"id"`
	// Name is the human-readable agent name.
	Name string `json:"name"`
	// Role is a free-form label describing the agent's function.
	Role string `json:"role,omitempty"`
	// Capabilities lists what the agent can do.
	Capabilities []string `json:"capabilities,omitempty"`
	// Dependencies lists node IDs this agent must wait for, in declaration order.
	Dependencies []string `json:"dependencies,omitempty"`
	// Status is the current lifecycle state of the node.
	Status AgentStatus `json:"status"`
	// Input is the last payload received via handoff.
	Input Payload `json:"input,omitempty"`
	// Output is the last payload produced via handoff.
	Output Payload `json:"output,omitempty"`
	// ParentID is the ID of the hierarchical owner node, if any.
	ParentID string `json:"parent_id,omitempty"`
}

// Clone returns a deep copy of the node.
func (n *AgentNode) Clone() *AgentNode {
	if n == nil {
		return nil
	}
	c := *n
	if n.Capabilities != nil {
		c.Capabilities = append([]string(nil), n.Capabilities...)
	}
	if n.Dependencies != nil {
		c.Dependencies = append([]string(nil), n.Dependencies...)
	}
	c.Input = n.Input.Clone()
	c.Output = n.Output.Clone()
	return &c
}
