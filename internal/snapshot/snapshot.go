// Package snapshot exports projects to JSON files and merges them back.
// Snapshots are the offline interchange format: a user's full project set
// including every tool entry.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/greenbelt-labs/dmaic/internal/store"
)

// FormatVersion identifies the snapshot file layout.
const FormatVersion = 1

// Store is the subset of store operations snapshots need.
type Store interface {
	GetProject(id string) (*store.Project, error)
	ListProjects(userID string) ([]*store.Project, error)
	ListToolEntries(projectID string) ([]*store.ToolEntry, error)
	ImportProject(p *store.Project, entries []*store.ToolEntry) error
}

// ProjectSnapshot is one project with all of its tool entries.
type ProjectSnapshot struct {
	Project *store.Project     `json:"project"`
	Entries []*store.ToolEntry `json:"entries"`
}

// Snapshot is the on-disk file format.
type Snapshot struct {
	Version    int               `json:"version"`
	UserID     string            `json:"user_id"`
	ExportedAt time.Time         `json:"exported_at"`
	Projects   []ProjectSnapshot `json:"projects"`
}

// ImportResult summarizes a merge.
type ImportResult struct {
	Imported int
	Skipped  int
}

// Export writes all of a user's projects to w.
func Export(s Store, userID string, w io.Writer) error {
	projects, err := s.ListProjects(userID)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	snap := Snapshot{
		Version:    FormatVersion,
		UserID:     userID,
		ExportedAt: time.Now().UTC(),
	}
	for _, p := range projects {
		entries, err := s.ListToolEntries(p.ID)
		if err != nil {
			return fmt.Errorf("failed to list tool entries for %s: %w", p.ID, err)
		}
		snap.Projects = append(snap.Projects, ProjectSnapshot{Project: p, Entries: entries})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// ExportFile writes a user's snapshot to path, creating parent directories.
func ExportFile(s Store, userID, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer f.Close()
	return Export(s, userID, f)
}

// Import merges a snapshot into the store. A snapshot project is applied
// when the store has no project with that ID, or when the snapshot copy is
// newer (updated_at). Older snapshot copies are skipped.
func Import(s Store, r io.Reader) (ImportResult, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return ImportResult{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != FormatVersion {
		return ImportResult{}, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	var res ImportResult
	for _, ps := range snap.Projects {
		if ps.Project == nil || ps.Project.ID == "" {
			return res, fmt.Errorf("snapshot contains a project without an ID")
		}

		existing, err := s.GetProject(ps.Project.ID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			// New project, apply.
		case err != nil:
			return res, err
		case !ps.Project.UpdatedAt.After(existing.UpdatedAt):
			res.Skipped++
			continue
		}

		if err := s.ImportProject(ps.Project, ps.Entries); err != nil {
			return res, err
		}
		res.Imported++
	}
	return res, nil
}

// ImportFile merges a snapshot file into the store.
func ImportFile(s Store, path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()
	return Import(s, f)
}
