package graph

import (
	"fmt"
	"strings"

	"github.com/Pastarafian/VegaMCP-sub003/pkg/models"
)

// Plan computes an execution order over all nodes such that every dependency
// precedes its dependents (Kahn's algorithm over dependency edges only).
// The order is cached on the graph together with the structural version it
// was computed at; repeated calls on an unchanged graph return the cached
// order. On failure any previously cached order is left untouched and no
// node status changes.
func (g *Graph) Plan() ([]models.PlanStep, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	order, err := g.planLocked()
	if err != nil {
		return nil, err
	}
	return g.stepsLocked(order), nil
}

// planLocked returns a current execution order, computing and caching one if
// the cache is absent or stale. Assumes the write lock is held.
func (g *Graph) planLocked() ([]string, error) {
	if g.planned && g.planVersion == g.version {
		g.debugLog("[graph.Plan] graph=%s reusing cached order (version=%d)", g.id, g.version)
		return g.execOrder, nil
	}

	// Dependency edges must resolve on both ends before an order can mean
	// anything. Dangling references are legal at add time and rejected here.
	for _, e := range g.edges {
		if e.Type != models.EdgeTypeDependency {
			continue
		}
		if _, ok := g.nodes[e.From]; !ok {
			return nil, fmt.Errorf("%w: agent %s depends on unknown agent %s", ErrUnknownDependency, e.To, e.From)
		}
		if _, ok := g.nodes[e.To]; !ok {
			return nil, fmt.Errorf("%w: dependency edge targets unknown agent %s", ErrUnknownDependency, e.To)
		}
	}

	// In-degrees and successor lists over dependency edges, counting each
	// (from, to) pair once regardless of how often it was declared.
	indegree := make(map[string]int, len(g.nodes))
	successors := make(map[string][]string, len(g.nodes))
	seen := make(map[[2]string]bool)
	for _, e := range g.edges {
		if e.Type != models.EdgeTypeDependency {
			continue
		}
		pair := [2]string{e.From, e.To}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		successors[e.From] = append(successors[e.From], e.To)
		indegree[e.To]++
	}

	// FIFO frontier seeded in insertion order keeps the result reproducible
	// for a fixed insertion history.
	frontier := make([]string, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		if indegree[id] == 0 {
			frontier = append(frontier, id)
		}
	}

	order := make([]string, 0, len(g.nodeOrder))
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		order = append(order, id)
		for _, succ := range successors[id] {
			indegree[succ]--
			if indegree[succ] == 0 {
				frontier = append(frontier, succ)
			}
		}
	}

	if len(order) < len(g.nodes) {
		placed := make(map[string]bool, len(order))
		for _, id := range order {
			placed[id] = true
		}
		var stuck []string
		for _, id := range g.nodeOrder {
			if !placed[id] {
				stuck = append(stuck, id)
			}
		}
		return nil, fmt.Errorf("%w: ordered %d of %d agents, blocked: %s",
			ErrCycleDetected, len(order), len(g.nodes), strings.Join(stuck, ", "))
	}

	g.execOrder = order
	g.planned = true
	g.planVersion = g.version
	g.debugLog("[graph.Plan] graph=%s ordered %d agents (version=%d)", g.id, len(order), g.version)
	return order, nil
}

// stepsLocked renders an order as plan steps. Assumes the lock is held.
func (g *Graph) stepsLocked(order []string) []models.PlanStep {
	steps := make([]models.PlanStep, 0, len(order))
	for _, id := range order {
		steps = append(steps, models.PlanStep{ID: id, Name: g.nodes[id].Name})
	}
	return steps
}

// ParallelGroups partitions the execution order into concurrency levels:
// level 0 holds nodes with no dependencies, and every node lands one level
// past its deepest direct dependency, so all members of a level can run at
// once. Plans first when no current order is cached.
func (g *Graph) ParallelGroups() ([]models.ParallelGroup, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	order, err := g.planLocked()
	if err != nil {
		return nil, err
	}
	return g.groupsLocked(order), nil
}

// groupsLocked derives the levels from a valid order. Assumes the lock is
// held and every dependency edge endpoint exists.
func (g *Graph) groupsLocked(order []string) []models.ParallelGroup {
	deps := g.dependencySourcesLocked()

	level := make(map[string]int, len(order))
	for _, id := range order {
		lv := 0
		for _, depID := range deps[id] {
			if level[depID]+1 > lv {
				lv = level[depID] + 1
			}
		}
		level[id] = lv
	}

	var buckets [][]string
	for _, id := range order {
		lv := level[id]
		for len(buckets) <= lv {
			buckets = append(buckets, nil)
		}
		buckets[lv] = append(buckets[lv], g.nodes[id].Name)
	}

	groups := make([]models.ParallelGroup, len(buckets))
	for i, agents := range buckets {
		groups[i] = models.ParallelGroup{Level: i, Agents: agents}
	}
	return groups
}

// dependencySourcesLocked maps each node ID to the distinct sources of its
// incoming dependency edges, in edge append order. Assumes the lock is held.
func (g *Graph) dependencySourcesLocked() map[string][]string {
	deps := make(map[string][]string, len(g.nodes))
	seen := make(map[[2]string]bool)
	for _, e := range g.edges {
		if e.Type != models.EdgeTypeDependency {
			continue
		}
		pair := [2]string{e.From, e.To}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		deps[e.To] = append(deps[e.To], e.From)
	}
	return deps
}
