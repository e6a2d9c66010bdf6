package projects

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/greenbelt-labs/dmaic/internal/dmaic"
	"github.com/greenbelt-labs/dmaic/internal/server/features/common"
	"github.com/greenbelt-labs/dmaic/internal/server/notifier"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// Handlers provides the project HTTP handlers.
type Handlers struct {
	store    store.Store
	notifier *notifier.Notifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st store.Store, notify *notifier.Notifier) *Handlers {
	return &Handlers{store: st, notifier: notify}
}

// View is a project enriched with computed progress.
type View struct {
	*store.Project
	Progress      float64                 `json:"progress"`
	PhaseProgress map[dmaic.Phase]float64 `json:"phase_progress"`
}

type createRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	BusinessCase    string  `json:"business_case"`
	ExpectedSavings float64 `json:"expected_savings"`
	StartDate       string  `json:"start_date"`
	TargetEndDate   string  `json:"target_end_date"`
}

type updateRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	BusinessCase    *string  `json:"business_case"`
	ExpectedSavings *float64 `json:"expected_savings"`
	TargetEndDate   *string  `json:"target_end_date"`
	Status          *string  `json:"status"`
}

// owned loads a project and enforces that it belongs to the session user.
// Foreign projects read as absent.
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

func (h *Handlers) view(p *store.Project) (*View, error) {
	entries, err := h.store.ListToolEntries(p.ID)
	if err != nil {
		return nil, err
	}
	states := store.ToolStates(entries)
	return &View{
		Project:       p,
		Progress:      dmaic.OverallProgress(states),
		PhaseProgress: dmaic.PhaseProgress(states),
	}, nil
}

// List returns the session user's projects, most recent first.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(common.UserID(r.Context()))
	if err != nil {
		common.FromError(w, err)
		return
	}

	views := make([]*View, 0, len(projects))
	for _, p := range projects {
		v, err := h.view(p)
		if err != nil {
			common.FromError(w, err)
			return
		}
		views = append(views, v)
	}
	common.JSON(w, http.StatusOK, views)
}

// Create creates a project for the session user.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := common.Decode(r, &req); err != nil {
		common.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		common.Error(w, http.StatusBadRequest, "project name is required")
		return
	}

	p := &store.Project{
		UserID:          common.UserID(r.Context()),
		Name:            req.Name,
		Description:     req.Description,
		BusinessCase:    req.BusinessCase,
		ExpectedSavings: req.ExpectedSavings,
	}
	var err error
	if p.StartDate, err = parseDate(req.StartDate); err != nil {
		common.Error(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	if p.TargetEndDate, err = parseDate(req.TargetEndDate); err != nil {
		common.Error(w, http.StatusBadRequest, "invalid target_end_date")
		return
	}

	if err := h.store.CreateProject(p); err != nil {
		common.FromError(w, err)
		return
	}
	h.notifier.Broadcast()

	v, err := h.view(p)
	if err != nil {
		common.FromError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, v)
}

// Get returns one project with progress.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.owned(r)
	if err != nil {
		common.FromError(w, err)
		return
	}
	v, err := h.view(p)
	if err != nil {
		common.FromError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, v)
}

// Update applies a partial update.
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	p, err := h.owned(r)
	if err != nil {
		common.FromError(w, err)
		return
	}

	var req updateRequest
	if err := common.Decode(r, &req); err != nil {
		common.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := store.ProjectUpdate{
		Name:            req.Name,
		Description:     req.Description,
		BusinessCase:    req.BusinessCase,
		ExpectedSavings: req.ExpectedSavings,
	}
	if req.Status != nil {
		if !store.ValidStatus(*req.Status) {
			common.Error(w, http.StatusBadRequest, "invalid status")
			return
		}
		upd.Status = req.Status
	}
	if req.TargetEndDate != nil {
		end, err := parseDate(*req.TargetEndDate)
		if err != nil || end.IsZero() {
			common.Error(w, http.StatusBadRequest, "invalid target_end_date")
			return
		}
		upd.TargetEndDate = &end
	}

	updated, err := h.store.UpdateProject(p.ID, upd)
	if err != nil {
		common.FromError(w, err)
		return
	}
	h.notifier.Broadcast()

	v, err := h.view(updated)
	if err != nil {
		common.FromError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, v)
}

// Delete removes a project and its tool entries.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := h.owned(r)
	if err != nil {
		common.FromError(w, err)
		return
	}
	if err := h.store.DeleteProject(p.ID); err != nil {
		common.FromError(w, err)
		return
	}
	h.notifier.Broadcast()
	w.WriteHeader(http.StatusNoContent)
}

// parseDate accepts an empty string (zero time), a date, or RFC 3339.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("unrecognized date format")
}
