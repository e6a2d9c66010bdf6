package phases

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbelt-labs/dmaic/internal/dmaic"
	"github.com/greenbelt-labs/dmaic/internal/server/features"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	return NewHandlers(fixture.Store, fixture.Notifier), fixture
}

func phaseRequest(method, target, body, userID, projectID string, extra ...string) *http.Request {
	var rd *strings.Reader
	if body != "" {
		rd = strings.NewReader(body)
	} else {
		rd = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, rd)
	req = features.AuthenticatedRequest(req, userID)
	req = features.RequestWithPathParam(req, "projectID", projectID)
	for i := 0; i+1 < len(extra); i += 2 {
		req = features.RequestWithPathParam(req, extra[i], extra[i+1])
	}
	return req
}

func completeRequired(t *testing.T, st store.Store, projectID string, phase dmaic.Phase) {
	t.Helper()
	for _, tool := range dmaic.ToolsFor(phase) {
		if !tool.Required {
			continue
		}
		err := st.SaveToolEntry(&store.ToolEntry{
			ProjectID: projectID,
			Phase:     phase,
			Key:       tool.Key,
			Completed: true,
		})
		require.NoError(t, err)
	}
}

func TestOverview(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	u := fixture.SeedUser("ana@acme.com")
	p := fixture.SeedProject(u.ID, "Reduce scrap")

	rec := httptest.NewRecorder()
	h.Overview(rec, phaseRequest(http.MethodGet, "/api/projects/"+p.ID+"/phases", "", u.ID, p.ID))

	require.Equal(t, http.StatusOK, rec.Code)
	var out []PhaseSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 5)
	assert.Equal(t, dmaic.PhaseDefine, out[0].Phase)
	assert.True(t, out[0].Current)
	for _, row := range out {
		assert.Zero(t, row.Progress)
		assert.False(t, row.Complete)
	}
}

func TestTools(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	u := fixture.SeedUser("ana@acme.com")
	p := fixture.SeedProject(u.ID, "Reduce scrap")

	rec := httptest.NewRecorder()
	h.Tools(rec, phaseRequest(http.MethodGet, "/x", "", u.ID, p.ID, "phase", "define"))

	require.Equal(t, http.StatusOK, rec.Code)
	var out []ToolView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out, len(dmaic.ToolsFor(dmaic.PhaseDefine)))
	for _, v := range out {
		assert.False(t, v.Completed)
	}
}

func TestTools_BadPhase(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	u := fixture.SeedUser("ana@acme.com")
	p := fixture.SeedProject(u.ID, "Reduce scrap")

	rec := httptest.NewRecorder()
	h.Tools(rec, phaseRequest(http.MethodGet, "/x", "", u.ID, p.ID, "phase", "verify"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveTool(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	u := fixture.SeedUser("ana@acme.com")
	p := fixture.SeedProject(u.ID, "Reduce scrap")

	body := `{"completed":true,"data":{"problem":"high scrap rate"}}`
	rec := httptest.NewRecorder()
	h.SaveTool(rec, phaseRequest(http.MethodPut, "/x", body, u.ID, p.ID,
		"phase", "define", "toolKey", "charter"))

	require.Equal(t, http.StatusOK, rec.Code)

	entry, err := fixture.Store.GetToolEntry(p.ID, dmaic.PhaseDefine, "charter")
	require.NoError(t, err)
	assert.True(t, entry.Completed)
	assert.JSONEq(t, `{"problem":"high scrap rate"}`, string(entry.Data))
}

func TestSaveTool_UnknownKey(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	u := fixture.SeedUser("ana@acme.com")
	p := fixture.SeedProject(u.ID, "Reduce scrap")

	rec := httptest.NewRecorder()
	h.SaveTool(rec, phaseRequest(http.MethodPut, "/x", `{"completed":true}`, u.ID, p.ID,
		"phase", "define", "toolKey", "gantt"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdvance(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	u := fixture.SeedUser("ana@acme.com")
	p := fixture.SeedProject(u.ID, "Reduce scrap")

	t.Run("blocked while required tools incomplete", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Advance(rec, phaseRequest(http.MethodPost, "/x", "", u.ID, p.ID))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("moves to next phase once complete", func(t *testing.T) {
		completeRequired(t, fixture.Store, p.ID, dmaic.PhaseDefine)

		rec := httptest.NewRecorder()
		h.Advance(rec, phaseRequest(http.MethodPost, "/x", "", u.ID, p.ID))

		require.Equal(t, http.StatusOK, rec.Code)
		updated, err := fixture.Store.GetProject(p.ID)
		require.NoError(t, err)
		assert.Equal(t, dmaic.PhaseMeasure, updated.CurrentPhase)
	})
}

func TestAdvance_FinalPhase(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	u := fixture.SeedUser("ana@acme.com")
	p := fixture.SeedProject(u.ID, "Reduce scrap")

	for _, phase := range dmaic.Phases {
		completeRequired(t, fixture.Store, p.ID, phase)
	}
	control := dmaic.PhaseControl
	_, err := fixture.Store.UpdateProject(p.ID, store.ProjectUpdate{CurrentPhase: &control})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Advance(rec, phaseRequest(http.MethodPost, "/x", "", u.ID, p.ID))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		phase      string
		toolKey    string
		body       string
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "baseline summary",
			phase:      "measure",
			toolKey:    "baseline_data",
			body:       `{"values":[2,4,4,4,5,5,7,9]}`,
			wantStatus: http.StatusOK,
			wantBody:   []string{`"mean":5`, `"count":8`},
		},
		{
			name:       "process capability",
			phase:      "measure",
			toolKey:    "process_capability",
			body:       `{"values":[10,10.2,9.8,10.1,9.9],"lsl":9,"usl":11,"mark_complete":true}`,
			wantStatus: http.StatusOK,
			wantBody:   []string{`"cp"`, `"cpk"`, `"rating"`},
		},
		{
			name:       "pareto analysis",
			phase:      "analyze",
			toolKey:    "pareto",
			body:       `{"causes":[{"name":"setup","frequency":40},{"name":"material","frequency":35},{"name":"operator","frequency":15},{"name":"other","frequency":10}]}`,
			wantStatus: http.StatusOK,
			wantBody:   []string{`"vital_causes"`, `"setup"`},
		},
		{
			name:       "spc individuals chart",
			phase:      "control",
			toolKey:    "spc_charts",
			body:       `{"values":[10,10,10,10,10,10,10,10,10,10,30]}`,
			wantStatus: http.StatusOK,
			wantBody:   []string{`"ucl"`, `"out_of_control"`},
		},
		{
			name:       "no data",
			phase:      "measure",
			toolKey:    "baseline_data",
			body:       `{"values":[]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "tool without computation",
			phase:      "define",
			toolKey:    "charter",
			body:       `{"values":[1,2,3]}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "computable tool under the wrong phase",
			phase:      "measure",
			toolKey:    "pareto",
			body:       `{"causes":[{"name":"setup","frequency":40}]}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fixture := setupTestHandlers(t)
			u := fixture.SeedUser("ana@acme.com")
			p := fixture.SeedProject(u.ID, "Reduce scrap")

			rec := httptest.NewRecorder()
			h.Compute(rec, phaseRequest(http.MethodPost, "/x", tt.body, u.ID, p.ID,
				"phase", tt.phase, "toolKey", tt.toolKey))

			assert.Equal(t, tt.wantStatus, rec.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestCompute_PersistsInputAndResult(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	u := fixture.SeedUser("ana@acme.com")
	p := fixture.SeedProject(u.ID, "Reduce scrap")

	body := `{"values":[2,4,4,4,5,5,7,9],"mark_complete":true}`
	rec := httptest.NewRecorder()
	h.Compute(rec, phaseRequest(http.MethodPost, "/x", body, u.ID, p.ID,
		"phase", "measure", "toolKey", "baseline_data"))
	require.Equal(t, http.StatusOK, rec.Code)

	entry, err := fixture.Store.GetToolEntry(p.ID, dmaic.PhaseMeasure, "baseline_data")
	require.NoError(t, err)
	assert.True(t, entry.Completed)

	var rec2 computeRecord
	require.NoError(t, json.Unmarshal(entry.Data, &rec2))
	assert.Len(t, rec2.Input.Values, 8)
	assert.NotNil(t, rec2.Result)
}

func TestCompute_RecomputeKeepsCompletion(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	u := fixture.SeedUser("ana@acme.com")
	p := fixture.SeedProject(u.ID, "Reduce scrap")

	rec := httptest.NewRecorder()
	h.Compute(rec, phaseRequest(http.MethodPost, "/x",
		`{"values":[2,4,4,4,5,5,7,9],"mark_complete":true}`, u.ID, p.ID,
		"phase", "measure", "toolKey", "baseline_data"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Compute(rec, phaseRequest(http.MethodPost, "/x",
		`{"values":[3,3,4,5]}`, u.ID, p.ID,
		"phase", "measure", "toolKey", "baseline_data"))
	require.Equal(t, http.StatusOK, rec.Code)

	entry, err := fixture.Store.GetToolEntry(p.ID, dmaic.PhaseMeasure, "baseline_data")
	require.NoError(t, err)
	assert.True(t, entry.Completed, "recomputing must not clear the completion flag")

	var rec2 computeRecord
	require.NoError(t, json.Unmarshal(entry.Data, &rec2))
	assert.Len(t, rec2.Input.Values, 4)
}
