package store

import (
	"fmt"
)

// ImportProject upserts a project under its existing ID and replaces its
// tool entries. Used by snapshot import, where IDs and timestamps come from
// the snapshot rather than being generated.
func (s *SQLiteStore) ImportProject(p *Project, entries []*ToolEntry) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if p.ID == "" {
		return fmt.Errorf("imported project has no ID")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO projects (`+projectColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name, description = excluded.description,
		   business_case = excluded.business_case, expected_savings = excluded.expected_savings,
		   start_date = excluded.start_date, target_end_date = excluded.target_end_date,
		   status = excluded.status, current_phase = excluded.current_phase,
		   updated_at = excluded.updated_at`,
		p.ID, p.UserID, p.Name, p.Description, p.BusinessCase, p.ExpectedSavings,
		p.StartDate, p.TargetEndDate, p.Status, p.CurrentPhase, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to import project: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM tool_entries WHERE project_id = ?`, p.ID); err != nil {
		return fmt.Errorf("failed to clear tool entries: %w", err)
	}
	for _, e := range entries {
		var data any
		if len(e.Data) > 0 {
			data = string(e.Data)
		}
		_, err = tx.Exec(
			`INSERT INTO tool_entries (project_id, phase, tool_key, completed, data, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, e.Phase, e.Key, e.Completed, data, e.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import tool entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}
