// Package store persists users, projects and per-phase tool entries in
// SQLite. It is the system of record behind both the web server and the
// CLI commands.
package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/greenbelt-labs/dmaic/internal/dmaic"
)

// Project status values.
const (
	StatusActive    = "active"
	StatusOnHold    = "on_hold"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// DefaultProjectDuration is applied when no target end date is given.
const DefaultProjectDuration = 120 * 24 * time.Hour

// Sentinel errors returned by store operations.
var (
	ErrNotFound   = errors.New("store: not found")
	ErrEmailTaken = errors.New("store: email already registered")
)

// ValidStatus reports whether s is a known project status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// User is a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Company      string    `json:"company,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Project is one DMAIC improvement project.
type Project struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	BusinessCase    string      `json:"business_case,omitempty"`
	ExpectedSavings float64     `json:"expected_savings"`
	StartDate       time.Time   `json:"start_date"`
	TargetEndDate   time.Time   `json:"target_end_date"`
	Status          string      `json:"status"`
	CurrentPhase    dmaic.Phase `json:"current_phase"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// ToolEntry is the stored state of one tool within one project phase.
type ToolEntry struct {
	ProjectID string          `json:"project_id"`
	Phase     dmaic.Phase     `json:"phase"`
	Key       string          `json:"key"`
	Completed bool            `json:"completed"`
	Data      json.RawMessage `json:"data,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProjectUpdate carries the mutable project fields. Nil fields are left
// unchanged.
type ProjectUpdate struct {
	Name            *string
	Description     *string
	BusinessCase    *string
	ExpectedSavings *float64
	TargetEndDate   *time.Time
	Status          *string
	CurrentPhase    *dmaic.Phase
}

// Store is the persistence interface used by the server and CLI.
type Store interface {
	// Users
	CreateUser(u *User) error
	GetUser(id string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	ListUsers() ([]*User, error)

	// Projects
	CreateProject(p *Project) error
	GetProject(id string) (*Project, error)
	ListProjects(userID string) ([]*Project, error)
	UpdateProject(id string, upd ProjectUpdate) (*Project, error)
	DeleteProject(id string) error

	// Tool entries
	GetToolEntry(projectID string, phase dmaic.Phase, key string) (*ToolEntry, error)
	ListToolEntries(projectID string) ([]*ToolEntry, error)
	ListPhaseEntries(projectID string, phase dmaic.Phase) ([]*ToolEntry, error)
	SaveToolEntry(e *ToolEntry) error

	// Snapshot support
	ImportProject(p *Project, entries []*ToolEntry) error

	Close() error
}

// ToolStates converts stored entries into the progress calculation input.
func ToolStates(entries []*ToolEntry) []dmaic.ToolState {
	out := make([]dmaic.ToolState, 0, len(entries))
	for _, e := range entries {
		out = append(out, dmaic.ToolState{Phase: e.Phase, Key: e.Key, Completed: e.Completed})
	}
	return out
}
