package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/greenbelt-labs/dmaic/internal/dmaic"
)

const projectColumns = `id, user_id, name, description, business_case, expected_savings,
	start_date, target_end_date, status, current_phase, created_at, updated_at`

// CreateProject inserts a new project and seeds its tool entries from the
// DMAIC catalog, all in one transaction. Zero dates default to now and
// now + DefaultProjectDuration respectively.
func (s *SQLiteStore) CreateProject(p *Project) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	now := time.Now().UTC()
	p.ID = generateID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.StartDate.IsZero() {
		p.StartDate = now
	}
	if p.TargetEndDate.IsZero() {
		p.TargetEndDate = p.StartDate.Add(DefaultProjectDuration)
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.CurrentPhase == "" {
		p.CurrentPhase = dmaic.PhaseDefine
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO projects (`+projectColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, p.Description, p.BusinessCase, p.ExpectedSavings,
		p.StartDate, p.TargetEndDate, p.Status, p.CurrentPhase, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	// Seed one entry per catalog tool so progress has a fixed denominator.
	for _, phase := range dmaic.Phases {
		for _, tool := range dmaic.ToolsFor(phase) {
			_, err = tx.Exec(
				`INSERT INTO tool_entries (project_id, phase, tool_key, completed, data, updated_at)
				 VALUES (?, ?, ?, 0, NULL, ?)`,
				p.ID, phase, tool.Key, now,
			)
			if err != nil {
				return fmt.Errorf("failed to seed tool entries: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project: %w", err)
	}
	return nil
}

// GetProject retrieves a project by ID.
func (s *SQLiteStore) GetProject(id string) (*Project, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	p := &Project{}
	err := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.BusinessCase, &p.ExpectedSavings,
		&p.StartDate, &p.TargetEndDate, &p.Status, &p.CurrentPhase, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// ListProjects returns a user's projects, most recently created first.
func (s *SQLiteStore) ListProjects(userID string) ([]*Project, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT `+projectColumns+` FROM projects WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p := &Project{}
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Description, &p.BusinessCase, &p.ExpectedSavings,
			&p.StartDate, &p.TargetEndDate, &p.Status, &p.CurrentPhase, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject applies the non-nil fields of upd and returns the updated
// project. UpdatedAt is always bumped.
func (s *SQLiteStore) UpdateProject(id string, upd ProjectUpdate) (*Project, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	p, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.BusinessCase != nil {
		p.BusinessCase = *upd.BusinessCase
	}
	if upd.ExpectedSavings != nil {
		p.ExpectedSavings = *upd.ExpectedSavings
	}
	if upd.TargetEndDate != nil {
		p.TargetEndDate = *upd.TargetEndDate
	}
	if upd.Status != nil {
		if !ValidStatus(*upd.Status) {
			return nil, fmt.Errorf("invalid status: %q", *upd.Status)
		}
		p.Status = *upd.Status
	}
	if upd.CurrentPhase != nil {
		p.CurrentPhase = *upd.CurrentPhase
	}
	p.UpdatedAt = time.Now().UTC()

	_, err = s.db.Exec(
		`UPDATE projects SET name = ?, description = ?, business_case = ?,
		 expected_savings = ?, target_end_date = ?, status = ?, current_phase = ?,
		 updated_at = ? WHERE id = ?`,
		p.Name, p.Description, p.BusinessCase, p.ExpectedSavings,
		p.TargetEndDate, p.Status, p.CurrentPhase, p.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return p, nil
}

// DeleteProject removes a project. Tool entries cascade.
func (s *SQLiteStore) DeleteProject(id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	res, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
