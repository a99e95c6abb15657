// Package graph provides the dependency graph underlying swarm planning:
// agent nodes, typed edges, cycle-aware topological planning, parallel-level
// partitioning, and handoff mediation.
package graph

import (
	"fmt"
	"sync"
	"time"

	"github.com/Pastarafian/VegaMCP-sub003/pkg/models"
)

// Graph is a directed graph of agent nodes. Nodes are added once and never
// removed; edges are an append-only history. All methods are safe for
// concurrent use: a single mutex serializes every operation on the graph, so
// callers on the same graph never interleave.
type Graph struct {
	mu sync.RWMutex

	id        string
	name      string
	status    models.GraphStatus
	createdAt time.Time

	// nodes maps node ID to the agent node itself.
	nodes map[string]*models.AgentNode
	// nodeOrder preserves insertion order so planning is deterministic for a
	// fixed insertion history.
	nodeOrder []string
	// edges is the append-only sequence of relationships of all types.
	edges []models.AgentEdge

	// version counts structural mutations (AddAgent, AddEdge). The cached
	// execution order is current only while planVersion equals version.
	version     uint64
	planVersion uint64
	execOrder   []string
	planned     bool

	// now supplies timestamps for handoff edges.
	now func() time.Time
	// debugLog is an optional logging function.
	debugLog func(format string, args ...interface{})
}

// New creates an empty graph with the given ID and name, status "created".
func New(id, name string) *Graph {
	return &Graph{
		id:        id,
		name:      name,
		status:    models.GraphStatusCreated,
		createdAt: time.Now(),
		nodes:     make(map[string]*models.AgentNode),
		now:       time.Now,
		debugLog:  func(format string, args ...interface{}) {}, // no-op by default
	}
}

// SetDebugLog sets the debug logging function.
func (g *Graph) SetDebugLog(fn func(format string, args ...interface{})) {
	if fn != nil {
		g.debugLog = fn
	}
}

// SetClock replaces the timestamp source used for handoff edge metadata.
func (g *Graph) SetClock(fn func() time.Time) {
	if fn != nil {
		g.now = fn
	}
}

// AgentSpec describes an agent to add to a graph.
type AgentSpec struct {
	Name         string
	Role         string
	Capabilities []string
	Dependencies []string
	ParentID     string
}

// AddAgent adds a node with the given ID built from spec. Declared
// dependencies may reference IDs not present yet; they are checked when a
// plan is requested. A dependency edge is appended per declared dependency
// and a hierarchy edge is appended when a parent is given. The new node
// starts idle.
func (g *Graph) AddAgent(id string, spec AgentSpec) (*models.AgentNode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id == "" {
		return nil, fmt.Errorf("add agent %q: empty agent id", spec.Name)
	}
	if _, exists := g.nodes[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAgent, id)
	}
	for _, depID := range spec.Dependencies {
		if depID == id {
			return nil, fmt.Errorf("%w: %s", ErrSelfDependency, id)
		}
	}

	node := &models.AgentNode{
		ID:           id,
		Name:         spec.Name,
		Role:         spec.Role,
		Capabilities: append([]string(nil), spec.Capabilities...),
		Dependencies: append([]string(nil), spec.Dependencies...),
		Status:       models.AgentStatusIdle,
		ParentID:     spec.ParentID,
	}
	g.nodes[id] = node
	g.nodeOrder = append(g.nodeOrder, id)

	for _, depID := range spec.Dependencies {
		g.edges = append(g.edges, models.AgentEdge{
			From: depID,
			To:   id,
			Type: models.EdgeTypeDependency,
		})
	}
	if spec.ParentID != "" {
		g.edges = append(g.edges, models.AgentEdge{
			From: spec.ParentID,
			To:   id,
			Type: models.EdgeTypeHierarchy,
		})
	}
	g.version++

	g.debugLog("[graph.AddAgent] graph=%s id=%s name=%q deps=%v parent=%q",
		g.id, id, spec.Name, spec.Dependencies, spec.ParentID)
	return node.Clone(), nil
}

// AddEdge appends an edge of the given type. Endpoints are not required to
// exist so non-scheduling edges can reference nodes added later; only
// dependency edges are validated, at plan time. Self-referencing dependency
// edges are rejected outright.
func (g *Graph) AddEdge(from, to string, edgeType models.EdgeType, metadata map[string]string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !edgeType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidEdgeType, edgeType)
	}
	if edgeType == models.EdgeTypeDependency && from == to {
		return fmt.Errorf("%w: %s", ErrSelfDependency, from)
	}

	edge := models.AgentEdge{From: from, To: to, Type: edgeType}
	if metadata != nil {
		edge.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			edge.Metadata[k] = v
		}
	}
	g.edges = append(g.edges, edge)
	g.version++

	g.debugLog("[graph.AddEdge] graph=%s %s -> %s type=%s", g.id, from, to, edgeType)
	return nil
}

// ID returns the graph identifier.
func (g *Graph) ID() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.id
}

// Name returns the graph name.
func (g *Graph) Name() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.name
}

// Status returns the informational graph status.
func (g *Graph) Status() models.GraphStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

// SetStatus records an informational status transition. The engine never
// gates operations on it; it exists for external orchestrators.
func (g *Graph) SetStatus(status models.GraphStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = status
	return nil
}

// CreatedAt returns the graph creation time.
func (g *Graph) CreatedAt() time.Time {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.createdAt
}

// NodeCount returns the number of agent nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of edges of all types.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (*models.AgentNode, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	node, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return node.Clone(), true
}

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []*models.AgentNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*models.AgentNode, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id].Clone())
	}
	return out
}

// Edges returns copies of all edges in append order.
func (g *Graph) Edges() []models.AgentEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]models.AgentEdge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e.Clone())
	}
	return out
}

// SetAgentStatus transitions a node's lifecycle status.
func (g *Graph) SetAgentStatus(id string, status models.AgentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	node, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, id)
	}
	node.Status = status
	g.debugLog("[graph.SetAgentStatus] graph=%s agent=%s status=%s", g.id, id, status)
	return nil
}

// ExecutionOrder returns the cached plan and whether it is current. A stale
// order (structural mutation since the last plan) is retained internally but
// not reported.
func (g *Graph) ExecutionOrder() ([]string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.planned || g.planVersion != g.version {
		return nil, false
	}
	return append([]string(nil), g.execOrder...), true
}

// Info returns the registry listing entry for this graph.
func (g *Graph) Info() models.GraphInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return models.GraphInfo{
		ID:        g.id,
		Name:      g.name,
		Status:    g.status,
		NodeCount: len(g.nodes),
	}
}
