package defs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_LoadsExistingDefinitions(t *testing.T) {
	dir := t.TempDir()
	content := "name: alpha\nagents:\n  - name: solo\n"
	if err := os.WriteFile(filepath.Join(dir, "alpha.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write definition: %v", err)
	}

	reg := newTestRegistry()
	w, err := NewWatcher(reg, dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	graphs := w.GraphIDs()
	if _, ok := graphs["alpha"]; !ok {
		t.Errorf("alpha not loaded at startup, got %v", graphs)
	}
	if reg.Count() != 1 {
		t.Errorf("registry has %d graphs, want 1", reg.Count())
	}
}

func TestWatcher_PicksUpNewFile(t *testing.T) {
	dir := t.TempDir()

	reg := newTestRegistry()
	w, err := NewWatcher(reg, dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()
	w.Start()

	content := "name: beta\nagents:\n  - name: solo\n"
	if err := os.WriteFile(filepath.Join(dir, "beta.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write definition: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if id, ok := w.GraphIDs()["beta"]; ok {
			if _, err := reg.Graph(id); err != nil {
				t.Fatalf("watched graph not in registry: %v", err)
			}
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("watcher did not pick up beta.yaml")
}

func TestWatcher_RewriteRegistersFreshGraph(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alpha.yaml")
	if err := os.WriteFile(path, []byte("name: alpha\nagents:\n  - name: solo\n"), 0644); err != nil {
		t.Fatalf("failed to write definition: %v", err)
	}

	reg := newTestRegistry()
	w, err := NewWatcher(reg, dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()
	w.Start()

	first := w.GraphIDs()["alpha"]

	rewritten := "name: alpha\nagents:\n  - name: solo\n  - name: extra\n    depends_on: [solo]\n"
	if err := os.WriteFile(path, []byte(rewritten), 0644); err != nil {
		t.Fatalf("failed to rewrite definition: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		current := w.GraphIDs()["alpha"]
		if current != first {
			g, err := reg.Graph(current)
			if err != nil {
				t.Fatalf("reloaded graph not in registry: %v", err)
			}
			if g.NodeCount() != 2 {
				t.Errorf("reloaded graph has %d nodes, want 2", g.NodeCount())
			}
			// The original build stays registered
			if _, err := reg.Graph(first); err != nil {
				t.Errorf("original graph dropped: %v", err)
			}
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("watcher did not rebuild alpha.yaml")
}

func TestWatcher_IgnoresInvalidFile(t *testing.T) {
	dir := t.TempDir()

	reg := newTestRegistry()
	w, err := NewWatcher(reg, dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()
	w.Start()

	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write definition: %v", err)
	}

	// Give the watcher time to react, then confirm nothing was registered
	time.Sleep(600 * time.Millisecond)
	if reg.Count() != 0 {
		t.Errorf("registry has %d graphs after invalid file, want 0", reg.Count())
	}
}
