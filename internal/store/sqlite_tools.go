package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/greenbelt-labs/dmaic/internal/dmaic"
)

// GetToolEntry retrieves one tool entry.
func (s *SQLiteStore) GetToolEntry(projectID string, phase dmaic.Phase, key string) (*ToolEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	e := &ToolEntry{}
	var data sql.NullString
	err := s.db.QueryRow(
		`SELECT project_id, phase, tool_key, completed, data, updated_at
		 FROM tool_entries WHERE project_id = ? AND phase = ? AND tool_key = ?`,
		projectID, phase, key,
	).Scan(&e.ProjectID, &e.Phase, &e.Key, &e.Completed, &data, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tool entry: %w", err)
	}
	if data.Valid {
		e.Data = []byte(data.String)
	}
	return e, nil
}

// ListToolEntries returns all tool entries of a project in phase order.
func (s *SQLiteStore) ListToolEntries(projectID string) ([]*ToolEntry, error) {
	return s.queryEntries(
		`SELECT project_id, phase, tool_key, completed, data, updated_at
		 FROM tool_entries WHERE project_id = ?`, projectID)
}

// ListPhaseEntries returns the tool entries of one phase.
func (s *SQLiteStore) ListPhaseEntries(projectID string, phase dmaic.Phase) ([]*ToolEntry, error) {
	return s.queryEntries(
		`SELECT project_id, phase, tool_key, completed, data, updated_at
		 FROM tool_entries WHERE project_id = ? AND phase = ?`, projectID, phase)
}

func (s *SQLiteStore) queryEntries(query string, args ...any) ([]*ToolEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tool entries: %w", err)
	}
	defer rows.Close()

	var entries []*ToolEntry
	for rows.Next() {
		e := &ToolEntry{}
		var data sql.NullString
		if err := rows.Scan(&e.ProjectID, &e.Phase, &e.Key, &e.Completed, &data, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tool entry: %w", err)
		}
		if data.Valid {
			e.Data = []byte(data.String)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveToolEntry upserts a tool entry and bumps the project's updated_at.
// The tool must exist in the catalog for the given phase.
func (s *SQLiteStore) SaveToolEntry(e *ToolEntry) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, ok := dmaic.LookupTool(e.Phase, e.Key); !ok {
		return fmt.Errorf("unknown tool %q in phase %q", e.Key, e.Phase)
	}

	e.UpdatedAt = time.Now().UTC()
	var data any
	if len(e.Data) > 0 {
		data = string(e.Data)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO tool_entries (project_id, phase, tool_key, completed, data, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(project_id, phase, tool_key)
		 DO UPDATE SET completed = excluded.completed, data = excluded.data,
		               updated_at = excluded.updated_at`,
		e.ProjectID, e.Phase, e.Key, e.Completed, data, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save tool entry: %w", err)
	}

	res, err := tx.Exec(`UPDATE projects SET updated_at = ? WHERE id = ?`, e.UpdatedAt, e.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to touch project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tool entry: %w", err)
	}
	return nil
}
