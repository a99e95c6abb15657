package defs

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Pastarafian/VegaMCP-sub003/internal/swarm"
)

// reloadDelay coalesces the burst of write events editors produce when
// saving a file.
const reloadDelay = 200 * time.Millisecond

// Watcher keeps a definitions directory live: it builds every definition
// on startup and registers a fresh graph whenever a file is created or
// rewritten. Graphs are never removed; the registry keeps the history and
// GraphIDs points at the latest build of each swarm.
type Watcher struct {
	reg *swarm.Registry
	dir string

	mu       sync.RWMutex
	graphs   map[string]string // swarm name -> latest graph ID
	pending  map[string]*time.Timer
	closed   bool
	debugLog func(format string, args ...interface{})

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher builds every definition in dir and prepares the directory
// watch. Call Start to begin reloading on changes.
func NewWatcher(reg *swarm.Registry, dir string) (*Watcher, error) {
	w := &Watcher{
		reg:      reg,
		dir:      dir,
		graphs:   make(map[string]string),
		pending:  make(map[string]*time.Timer),
		debugLog: func(format string, args ...interface{}) {}, // no-op by default
		done:     make(chan struct{}),
	}

	graphs, err := BuildDir(reg, dir)
	if err != nil {
		return nil, err
	}
	w.graphs = graphs

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w.watcher = fsw

	return w, nil
}

// SetDebugLog sets the debug logging function.
func (w *Watcher) SetDebugLog(fn func(format string, args ...interface{})) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if fn != nil {
		w.debugLog = fn
	}
}

// Start begins watching the directory for definition changes.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// GraphIDs returns the latest graph ID for each swarm name.
func (w *Watcher) GraphIDs() map[string]string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make(map[string]string, len(w.graphs))
	for name, id := range w.graphs {
		out[name] = id
	}
	return out
}

// watchLoop monitors the definitions directory for new or rewritten files.
func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isDefFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.scheduleReload(event.Name)
		case <-w.watcher.Errors:
			// Ignore errors, keep watching
		}
	}
}

// scheduleReload arms a short per-file timer so one save triggers one
// rebuild.
func (w *Watcher) scheduleReload(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(reloadDelay, func() {
		w.reload(path)
	})
}

// reload rebuilds a single definition file into a fresh graph.
func (w *Watcher) reload(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	closed := w.closed
	logf := w.debugLog
	w.mu.Unlock()

	if closed {
		return
	}

	def, err := LoadFile(path)
	if err != nil {
		logf("[defs.Watcher] skipping %s: %v", filepath.Base(path), err)
		return
	}

	id, err := Build(w.reg, def)
	if err != nil {
		logf("[defs.Watcher] rebuild %s failed: %v", def.Name, err)
		return
	}

	w.mu.Lock()
	w.graphs[def.Name] = id
	w.mu.Unlock()

	logf("[defs.Watcher] reloaded %s as graph %s", def.Name, id)
}

// Close stops watching. Pending reloads are dropped.
func (w *Watcher) Close() {
	w.mu.Lock()
	w.closed = true
	for _, t := range w.pending {
		t.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	if w.watcher != nil {
		w.watcher.Close()
	}
}
