package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Operation is one recorded dispatcher action.
type Operation struct {
	ID      int64     `json:"id"`
	Time    time.Time `json:"time"`
	GraphID string    `json:"graph_id,omitempty"`
	Action  string    `json:"action"`
	Detail  string    `json:"detail,omitempty"`
}

// GraphSnapshot is the last persisted view of a graph's shape. It is
// refreshed after every successful mutation so the CLI can report on
// graphs without holding them in memory.
type GraphSnapshot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordOperation appends one action to the operations log. It satisfies
// the dispatcher's audit sink contract.
func (db *DB) RecordOperation(ctx context.Context, action, graphID, detail string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO operations (ts, graph_id, action, detail)
		VALUES (?, ?, ?, ?)
	`, formatTime(db.now()), graphID, action, detail)
	if err != nil {
		return fmt.Errorf("record operation: %w", err)
	}
	return nil
}

// RecentOperations returns the newest operations first, up to limit.
// A non-positive limit defaults to 50.
func (db *DB) RecentOperations(limit int) ([]Operation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT id, ts, graph_id, action, detail
		FROM operations ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	return scanOperations(rows)
}

// OperationsForGraph returns the newest operations recorded against one
// graph, up to limit. A non-positive limit defaults to 50.
func (db *DB) OperationsForGraph(graphID string, limit int) ([]Operation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT id, ts, graph_id, action, detail
		FROM operations WHERE graph_id = ? ORDER BY id DESC LIMIT ?
	`, graphID, limit)
	if err != nil {
		return nil, fmt.Errorf("list graph operations: %w", err)
	}
	defer rows.Close()

	return scanOperations(rows)
}

func scanOperations(rows *sql.Rows) ([]Operation, error) {
	var ops []Operation
	for rows.Next() {
		var op Operation
		var ts string
		if err := rows.Scan(&op.ID, &ts, &op.GraphID, &op.Action, &op.Detail); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		op.Time, _ = parseTime(ts)
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// UpsertGraphSnapshot inserts or refreshes the persisted view of a graph.
func (db *DB) UpsertGraphSnapshot(snap GraphSnapshot) error {
	updatedAt := snap.UpdatedAt
	if updatedAt.IsZero() {
		db.mu.RLock()
		updatedAt = db.now()
		db.mu.RUnlock()
	}
	_, err := db.Exec(`
		INSERT INTO graphs (id, name, status, node_count, edge_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			status = excluded.status,
			node_count = excluded.node_count,
			edge_count = excluded.edge_count,
			updated_at = excluded.updated_at
	`, snap.ID, snap.Name, snap.Status, snap.NodeCount, snap.EdgeCount, formatTime(updatedAt))
	if err != nil {
		return fmt.Errorf("upsert graph snapshot: %w", err)
	}
	return nil
}

// GetGraphSnapshot retrieves one graph snapshot by ID.
// It returns nil without error when no snapshot exists.
func (db *DB) GetGraphSnapshot(id string) (*GraphSnapshot, error) {
	row := db.QueryRow(`
		SELECT id, name, status, node_count, edge_count, updated_at
		FROM graphs WHERE id = ?
	`, id)

	var snap GraphSnapshot
	var updatedAt string
	err := row.Scan(&snap.ID, &snap.Name, &snap.Status, &snap.NodeCount, &snap.EdgeCount, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get graph snapshot: %w", err)
	}

	snap.UpdatedAt, _ = parseTime(updatedAt)
	return &snap, nil
}

// ListGraphSnapshots lists all persisted graphs, most recently updated first.
func (db *DB) ListGraphSnapshots() ([]GraphSnapshot, error) {
	rows, err := db.Query(`
		SELECT id, name, status, node_count, edge_count, updated_at
		FROM graphs ORDER BY updated_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list graph snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []GraphSnapshot
	for rows.Next() {
		var snap GraphSnapshot
		var updatedAt string
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.Status, &snap.NodeCount, &snap.EdgeCount, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan graph snapshot: %w", err)
		}
		snap.UpdatedAt, _ = parseTime(updatedAt)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// PurgeOperations deletes operations older than the specified duration.
// Returns the number of operations deleted.
func (db *DB) PurgeOperations(olderThan time.Duration) (int64, error) {
	db.mu.Lock()
	cutoff := db.now().Add(-olderThan)
	db.mu.Unlock()

	result, err := db.Exec(`
		DELETE FROM operations WHERE ts < ?
	`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("purge operations: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return count, nil
}
