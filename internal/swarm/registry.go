// Package swarm owns the in-memory graph registry and fronts every planning
// operation by graph id. A Registry instance holds all engine state; nothing
// is process-global, so independent instances coexist in tests and servers.
package swarm

import (
	"fmt"
	"sync"
	"time"

	"github.com/Pastarafian/VegaMCP-sub003/internal/graph"
	"github.com/Pastarafian/VegaMCP-sub003/pkg/models"
)

// Registry maps graph ids to graphs and owns their lifetimes. Graphs live
// until the process exits; nothing is persisted. The registry lock guards
// only the map itself: per-graph operations serialize on the graph's own
// lock, so different graphs never contend.
type Registry struct {
	// mu protects graphs and order.
	mu sync.RWMutex
	// graphs maps graph ID to the graph itself.
	graphs map[string]*graph.Graph
	// order preserves creation order for deterministic listings.
	order []string

	ids      IDGenerator
	now      func() time.Time
	debugLog func(format string, args ...interface{})
}

// Option configures a Registry.
type Option func(r *Registry)

// WithIDGenerator replaces the default uuid-backed id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(r *Registry) {
		if gen != nil {
			r.ids = gen
		}
	}
}

// WithClock replaces the timestamp source handed to graphs.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithDebugLog sets the debug logging function, propagated to every graph
// the registry creates.
func WithDebugLog(fn func(format string, args ...interface{})) Option {
	return func(r *Registry) {
		if fn != nil {
			r.debugLog = fn
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		graphs:   make(map[string]*graph.Graph),
		ids:      UUIDGenerator{},
		now:      time.Now,
		debugLog: func(format string, args ...interface{}) {}, // no-op by default
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateGraph allocates, registers and returns a new empty graph.
func (r *Registry) CreateGraph(name string) *graph.Graph {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.ids.GraphID()
	g := graph.New(id, name)
	g.SetClock(r.now)
	g.SetDebugLog(r.debugLog)
	r.graphs[id] = g
	r.order = append(r.order, id)

	r.debugLog("[swarm.CreateGraph] id=%s name=%q", id, name)
	return g
}

// Graph looks up a graph by id.
func (r *Registry) Graph(id string) (*graph.Graph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.graphs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGraphNotFound, id)
	}
	return g, nil
}

// List enumerates all graphs in creation order.
func (r *Registry) List() []models.GraphInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]models.GraphInfo, 0, len(r.order))
	for _, id := range r.order {
		infos = append(infos, r.graphs[id].Info())
	}
	return infos
}

// Count returns the number of registered graphs.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.graphs)
}

// AddAgent adds an agent node to the named graph, generating its id.
func (r *Registry) AddAgent(graphID string, spec graph.AgentSpec) (*models.AgentNode, error) {
	g, err := r.Graph(graphID)
	if err != nil {
		return nil, err
	}
	return g.AddAgent(r.ids.AgentID(), spec)
}

// AddEdge appends an edge to the named graph.
func (r *Registry) AddEdge(graphID, from, to string, edgeType models.EdgeType, metadata map[string]string) error {
	g, err := r.Graph(graphID)
	if err != nil {
		return err
	}
	return g.AddEdge(from, to, edgeType, metadata)
}

// Plan computes (or returns the cached) execution order for the named graph.
func (r *Registry) Plan(graphID string) ([]models.PlanStep, error) {
	g, err := r.Graph(graphID)
	if err != nil {
		return nil, err
	}
	return g.Plan()
}

// ParallelGroups returns the concurrency levels for the named graph.
func (r *Registry) ParallelGroups(graphID string) ([]models.ParallelGroup, error) {
	g, err := r.Graph(graphID)
	if err != nil {
		return nil, err
	}
	return g.ParallelGroups()
}

// Handoff transfers a payload between two nodes of the named graph.
func (r *Registry) Handoff(graphID, fromID, toID string, data models.Payload) error {
	g, err := r.Graph(graphID)
	if err != nil {
		return err
	}
	return g.Handoff(fromID, toID, data)
}

// Summary projects the named graph's current state.
func (r *Registry) Summary(graphID string) (models.GraphSummary, error) {
	g, err := r.Graph(graphID)
	if err != nil {
		return models.GraphSummary{}, err
	}
	return g.Summary(), nil
}
