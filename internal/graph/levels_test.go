package graph

import (
	"errors"
	"sort"
	"testing"

	"github.com/Pastarafian/VegaMCP-sub003/pkg/models"
)

func TestParallelGroupsDiamond(t *testing.T) {
	// A -> B, A -> C, B -> D, C -> D yields levels [A], [B C], [D].
	g := buildGraph(t, []struct {
		id   string
		deps []string
	}{
		{"A", nil},
		{"B", []string{"A"}},
		{"C", []string{"A"}},
		{"D", []string{"B", "C"}},
	})

	groups, err := g.ParallelGroups()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(groups))
	}

	if len(groups[0].Agents) != 1 || groups[0].Agents[0] != "A" {
		t.Errorf("level 0 = %v, want [A]", groups[0].Agents)
	}

	mid := append([]string(nil), groups[1].Agents...)
	sort.Strings(mid)
	if len(mid) != 2 || mid[0] != "B" || mid[1] != "C" {
		t.Errorf("level 1 = %v, want [B C] in either order", groups[1].Agents)
	}

	if len(groups[2].Agents) != 1 || groups[2].Agents[0] != "D" {
		t.Errorf("level 2 = %v, want [D]", groups[2].Agents)
	}

	for i, grp := range groups {
		if grp.Level != i {
			t.Errorf("groups[%d].Level = %d, want %d", i, grp.Level, i)
		}
	}
}

func TestParallelGroupsAllIndependent(t *testing.T) {
	g := buildGraph(t, []struct {
		id   string
		deps []string
	}{
		{"A", nil},
		{"B", nil},
		{"C", nil},
	})

	groups, err := g.ParallelGroups()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected a single level, got %d", len(groups))
	}
	if groups[0].Level != 0 || len(groups[0].Agents) != 3 {
		t.Errorf("level 0 = %+v, want all 3 agents", groups[0])
	}
}

func TestParallelGroupsLinearChain(t *testing.T) {
	g := buildGraph(t, []struct {
		id   string
		deps []string
	}{
		{"A", nil},
		{"B", []string{"A"}},
		{"C", []string{"B"}},
	})

	groups, err := g.ParallelGroups()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 levels for a chain, got %d", len(groups))
	}
	for i, want := range []string{"A", "B", "C"} {
		if len(groups[i].Agents) != 1 || groups[i].Agents[0] != want {
			t.Errorf("level %d = %v, want [%s]", i, groups[i].Agents, want)
		}
	}
}

// levelOf builds a name -> level index from groups. Fixtures use the node ID
// as the name, so lookups work by ID.
func levelOf(groups []models.ParallelGroup) map[string]int {
	levels := make(map[string]int)
	for _, grp := range groups {
		for _, name := range grp.Agents {
			levels[name] = grp.Level
		}
	}
	return levels
}

func TestParallelGroupsLevelProperties(t *testing.T) {
	agents := []struct {
		id   string
		deps []string
	}{
		{"ingest", nil},
		{"fetch", nil},
		{"normalize", []string{"ingest", "fetch"}},
		{"index", []string{"normalize"}},
		{"rank", []string{"normalize"}},
		{"report", []string{"index", "rank"}},
		{"archive", []string{"ingest"}},
	}
	g := buildGraph(t, agents)

	groups, err := g.ParallelGroups()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	levels := levelOf(groups)

	// Every direct dependency sits on a strictly earlier level.
	for _, a := range agents {
		for _, dep := range a.deps {
			if levels[dep] >= levels[a.id] {
				t.Errorf("level(%s)=%d not below level(%s)=%d", dep, levels[dep], a.id, levels[a.id])
			}
		}
	}

	// A node with no dependencies is always on level 0.
	for _, a := range agents {
		if len(a.deps) == 0 && levels[a.id] != 0 {
			t.Errorf("dependency-free agent %s on level %d, want 0", a.id, levels[a.id])
		}
	}

	// Nodes sharing a level are never connected by dependency edges in
	// either direction, directly or transitively.
	reach := transitiveDeps(agents)
	for _, x := range agents {
		for _, y := range agents {
			if x.id == y.id || levels[x.id] != levels[y.id] {
				continue
			}
			if reach[x.id][y.id] || reach[y.id][x.id] {
				t.Errorf("agents %s and %s share level %d but are dependency-connected", x.id, y.id, levels[x.id])
			}
		}
	}
}

// transitiveDeps computes, per agent, the set of agents reachable through
// dependency declarations.
func transitiveDeps(agents []struct {
	id   string
	deps []string
}) map[string]map[string]bool {
	direct := make(map[string][]string, len(agents))
	for _, a := range agents {
		direct[a.id] = a.deps
	}
	reach := make(map[string]map[string]bool, len(agents))
	var visit func(id string, into map[string]bool)
	visit = func(id string, into map[string]bool) {
		for _, dep := range direct[id] {
			if !into[dep] {
				into[dep] = true
				visit(dep, into)
			}
		}
	}
	for _, a := range agents {
		reach[a.id] = make(map[string]bool)
		visit(a.id, reach[a.id])
	}
	return reach
}

func TestParallelGroupsPlanImplicitly(t *testing.T) {
	g := buildGraph(t, []struct {
		id   string
		deps []string
	}{
		{"A", nil},
		{"B", []string{"A"}},
	})

	if _, ok := g.ExecutionOrder(); ok {
		t.Fatal("expected no cached order before ParallelGroups")
	}

	if _, err := g.ParallelGroups(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := g.ExecutionOrder(); !ok {
		t.Error("expected ParallelGroups to compute and cache the order")
	}
}

func TestParallelGroupsCycle(t *testing.T) {
	g := buildGraph(t, []struct {
		id   string
		deps []string
	}{
		{"X", []string{"Y"}},
		{"Y", []string{"X"}},
	})

	_, err := g.ParallelGroups()
	if !errors.Is(err, ErrCycleDetected) {
		t.Errorf("expected ErrCycleDetected, got %v", err)
	}
}

func TestParallelGroupsRenderNames(t *testing.T) {
	g := New("graph-1", "pipeline")
	if _, err := g.AddAgent("agent-1", AgentSpec{Name: "collector"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.AddAgent("agent-2", AgentSpec{Name: "writer", Dependencies: []string{"agent-1"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	groups, err := g.ParallelGroups()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if groups[0].Agents[0] != "collector" || groups[1].Agents[0] != "writer" {
		t.Errorf("groups = %+v, want agent names, not ids", groups)
	}
}
