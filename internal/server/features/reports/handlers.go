package reports

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/greenbelt-labs/dmaic/internal/report"
	"github.com/greenbelt-labs/dmaic/internal/server/features/common"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// Handlers provides the report HTTP handlers.
type Handlers struct {
	store store.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st store.Store) *Handlers {
	return &Handlers{store: st}
}

// ProjectReport returns the full summary report for one project.
func (h *Handlers) ProjectReport(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetProject(chi.URLParam(r, "projectID"))
	if err != nil {
		common.FromError(w, err)
		return
	}
	if p.UserID != common.UserID(r.Context()) {
		common.FromError(w, store.ErrNotFound)
		return
	}

	rep, err := report.Build(h.store, p.ID)
	if err != nil {
		common.FromError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, rep)
}
