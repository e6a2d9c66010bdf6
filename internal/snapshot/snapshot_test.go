package snapshot

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbelt-labs/dmaic/internal/dmaic"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// The full store interface must carry everything snapshots need, so the
// server can hand its store straight to a watcher.
var _ Store = (store.Store)(nil)

func setupStore(t *testing.T) (*store.SQLiteStore, *store.User) {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	u := &store.User{Email: "owner@example.com", Name: "Owner", PasswordHash: "x"}
	require.NoError(t, s.CreateUser(u))
	return s, u
}

func TestExportImportRoundtrip(t *testing.T) {
	src, u := setupStore(t)

	p := &store.Project{UserID: u.ID, Name: "Reduce lead time", ExpectedSavings: 50000}
	require.NoError(t, src.CreateProject(p))
	require.NoError(t, src.SaveToolEntry(&store.ToolEntry{
		ProjectID: p.ID,
		Phase:     dmaic.PhaseDefine,
		Key:       "charter",
		Completed: true,
		Data:      json.RawMessage(`{"goal":"cut lead time in half"}`),
	}))

	var buf bytes.Buffer
	require.NoError(t, Export(src, u.ID, &buf))

	// Import into a fresh store that has the same user.
	dst, _ := setupStore(t)
	res, err := Import(dst, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Zero(t, res.Skipped)

	got, err := dst.GetProject(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reduce lead time", got.Name)
	assert.Equal(t, 50000.0, got.ExpectedSavings)

	entry, err := dst.GetToolEntry(p.ID, dmaic.PhaseDefine, "charter")
	require.NoError(t, err)
	assert.True(t, entry.Completed)
	assert.JSONEq(t, `{"goal":"cut lead time in half"}`, string(entry.Data))
}

func TestImportSkipsOlderCopies(t *testing.T) {
	s, u := setupStore(t)
	p := &store.Project{UserID: u.ID, Name: "current"}
	require.NoError(t, s.CreateProject(p))

	// Build a snapshot whose copy is older than the stored project.
	stale := *p
	stale.Name = "stale"
	stale.UpdatedAt = p.UpdatedAt.Add(-time.Hour)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(Snapshot{
		Version:  FormatVersion,
		UserID:   u.ID,
		Projects: []ProjectSnapshot{{Project: &stale}},
	}))

	res, err := Import(s, &buf)
	require.NoError(t, err)
	assert.Zero(t, res.Imported)
	assert.Equal(t, 1, res.Skipped)

	got, err := s.GetProject(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "current", got.Name)
}

func TestImportAppliesNewerCopies(t *testing.T) {
	s, u := setupStore(t)
	p := &store.Project{UserID: u.ID, Name: "old name"}
	require.NoError(t, s.CreateProject(p))

	newer := *p
	newer.Name = "new name"
	newer.UpdatedAt = p.UpdatedAt.Add(time.Hour)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(Snapshot{
		Version:  FormatVersion,
		UserID:   u.ID,
		Projects: []ProjectSnapshot{{Project: &newer}},
	}))

	res, err := Import(s, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	got, err := s.GetProject(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "new name", got.Name)
}

func TestImportRejectsBadInput(t *testing.T) {
	s, _ := setupStore(t)

	t.Run("garbage", func(t *testing.T) {
		_, err := Import(s, strings.NewReader("not json"))
		assert.Error(t, err)
	})

	t.Run("wrong version", func(t *testing.T) {
		_, err := Import(s, strings.NewReader(`{"version": 99}`))
		assert.Error(t, err)
	})

	t.Run("project without id", func(t *testing.T) {
		_, err := Import(s, strings.NewReader(`{"version": 1, "projects": [{"project": {"id": ""}}]}`))
		assert.Error(t, err)
	})
}

func TestExportImportFile(t *testing.T) {
	src, u := setupStore(t)
	p := &store.Project{UserID: u.ID, Name: "file roundtrip"}
	require.NoError(t, src.CreateProject(p))

	path := filepath.Join(t.TempDir(), "snapshots", "owner.json")
	require.NoError(t, ExportFile(src, u.ID, path))

	dst, _ := setupStore(t)
	res, err := ImportFile(dst, path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
}
