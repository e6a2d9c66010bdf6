package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbelt-labs/dmaic/internal/dmaic"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

func seedProject(t *testing.T) (*store.SQLiteStore, *store.Project) {
	t.Helper()

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	u := &store.User{Email: "ana@acme.com", PasswordHash: "hash"}
	require.NoError(t, st.CreateUser(u))

	p := &store.Project{
		UserID:          u.ID,
		Name:            "Reduce scrap",
		ExpectedSavings: 150000,
		StartDate:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		TargetEndDate:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, st.CreateProject(p))
	return st, p
}

func TestBuild(t *testing.T) {
	st, p := seedProject(t)

	require.NoError(t, st.SaveToolEntry(&store.ToolEntry{
		ProjectID: p.ID,
		Phase:     dmaic.PhaseDefine,
		Key:       "charter",
		Completed: true,
	}))

	rep, err := Build(st, p.ID)
	require.NoError(t, err)

	assert.Equal(t, p.ID, rep.ProjectID)
	assert.Equal(t, "Reduce scrap", rep.Name)
	assert.Equal(t, dmaic.PhaseDefine, rep.CurrentPhase)
	assert.Equal(t, "R$ 150.000,00", rep.ExpectedSavings)
	assert.Equal(t, "01/04/2026", rep.StartDate)
	assert.Equal(t, "30/09/2026", rep.TargetEndDate)
	assert.Greater(t, rep.Progress, 0.0)

	require.Len(t, rep.Phases, 5)
	define := rep.Phases[0]
	assert.Equal(t, dmaic.PhaseDefine, define.Phase)
	assert.Greater(t, define.Progress, 0.0)

	var charter *ToolStatus
	for i := range define.Tools {
		if define.Tools[i].Key == "charter" {
			charter = &define.Tools[i]
		}
	}
	require.NotNil(t, charter)
	assert.True(t, charter.Completed)
	assert.True(t, charter.Required)
}

func TestBuild_UnknownProject(t *testing.T) {
	st, _ := seedProject(t)

	_, err := Build(st, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
