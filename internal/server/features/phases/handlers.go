package phases

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/greenbelt-labs/dmaic/internal/dmaic"
	"github.com/greenbelt-labs/dmaic/internal/server/features/common"
	"github.com/greenbelt-labs/dmaic/internal/server/notifier"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// Handlers provides the phase HTTP handlers.
type Handlers struct {
	store    store.Store
	notifier *notifier.Notifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st store.Store, notify *notifier.Notifier) *Handlers {
	return &Handlers{store: st, notifier: notify}
}

// PhaseSummary is one row of the phase overview.
type PhaseSummary struct {
	Phase    dmaic.Phase `json:"phase"`
	Name     string      `json:"name"`
	Progress float64     `json:"progress"`
	Complete bool        `json:"complete"`
	Current  bool        `json:"current"`
}

// ToolView merges a catalog tool with its stored entry.
type ToolView struct {
	dmaic.Tool
	Completed bool            `json:"completed"`
	Data      json.RawMessage `json:"data,omitempty"`
}

type saveToolRequest struct {
	Completed bool            `json:"completed"`
	Data      json.RawMessage `json:"data"`
}

func (h *Handlers) owned(r *http.Request) (*store.Project, error) {
	p, err := h.store.GetProject(chi.URLParam(r, "projectID"))
	if err != nil {
		return nil, err
	}
	if p.UserID != common.UserID(r.Context()) {
		return nil, store.ErrNotFound
	}
	return p, nil
}

func phaseParam(r *http.Request) (dmaic.Phase, error) {
	return dmaic.ParsePhase(chi.URLParam(r, "phase"))
}

// Overview returns progress and completion for every phase of a project.
func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	p, err := h.owned(r)
	if err != nil {
		common.FromError(w, err)
		return
	}

	entries, err := h.store.ListToolEntries(p.ID)
	if err != nil {
		common.FromError(w, err)
		return
	}
	states := store.ToolStates(entries)
	progress := dmaic.PhaseProgress(states)

	out := make([]PhaseSummary, 0, len(dmaic.Phases))
	for _, phase := range dmaic.Phases {
		out = append(out, PhaseSummary{
			Phase:    phase,
			Name:     phase.Name(),
			Progress: progress[phase],
			Complete: dmaic.PhaseComplete(phase, states),
			Current:  phase == p.CurrentPhase,
		})
	}
	common.JSON(w, http.StatusOK, out)
}

// Tools returns the catalog tools of one phase merged with stored state.
func (h *Handlers) Tools(w http.ResponseWriter, r *http.Request) {
	p, err := h.owned(r)
	if err != nil {
		common.FromError(w, err)
		return
	}
	phase, err := phaseParam(r)
	if err != nil {
		common.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.store.ListPhaseEntries(p.ID, phase)
	if err != nil {
		common.FromError(w, err)
		return
	}
	byKey := make(map[string]*store.ToolEntry, len(entries))
	for _, e := range entries {
		byKey[e.Key] = e
	}

	out := make([]ToolView, 0, len(dmaic.ToolsFor(phase)))
	for _, tool := range dmaic.ToolsFor(phase) {
		v := ToolView{Tool: tool}
		if e, ok := byKey[tool.Key]; ok {
			v.Completed = e.Completed
			v.Data = e.Data
		}
		out = append(out, v)
	}
	common.JSON(w, http.StatusOK, out)
}

// SaveTool stores tool data and its completion flag.
func (h *Handlers) SaveTool(w http.ResponseWriter, r *http.Request) {
	p, err := h.owned(r)
	if err != nil {
		common.FromError(w, err)
		return
	}
	phase, err := phaseParam(r)
	if err != nil {
		common.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	key := chi.URLParam(r, "toolKey")
	if _, ok := dmaic.LookupTool(phase, key); !ok {
		common.Error(w, http.StatusNotFound, "unknown tool for phase")
		return
	}

	var req saveToolRequest
	if err := common.Decode(r, &req); err != nil {
		common.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := &store.ToolEntry{
		ProjectID: p.ID,
		Phase:     phase,
		Key:       key,
		Completed: req.Completed,
		Data:      req.Data,
	}
	if err := h.store.SaveToolEntry(entry); err != nil {
		common.FromError(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusOK, entry)
}

// Advance moves the project to the next phase once the current phase's
// required tools are complete.
func (h *Handlers) Advance(w http.ResponseWriter, r *http.Request) {
	p, err := h.owned(r)
	if err != nil {
		common.FromError(w, err)
		return
	}

	entries, err := h.store.ListToolEntries(p.ID)
	if err != nil {
		common.FromError(w, err)
		return
	}
	states := store.ToolStates(entries)

	if !dmaic.PhaseComplete(p.CurrentPhase, states) {
		common.Error(w, http.StatusConflict, "current phase has incomplete required tools")
		return
	}
	next := p.CurrentPhase.Next()
	if next == p.CurrentPhase {
		common.Error(w, http.StatusConflict, "project is already in the final phase")
		return
	}

	updated, err := h.store.UpdateProject(p.ID, store.ProjectUpdate{CurrentPhase: &next})
	if err != nil {
		common.FromError(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusOK, updated)
}
