package dashboard

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/greenbelt-labs/dmaic/internal/dmaic"
	"github.com/greenbelt-labs/dmaic/internal/format"
	"github.com/greenbelt-labs/dmaic/internal/server/features/common"
	"github.com/greenbelt-labs/dmaic/internal/server/notifier"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// Handlers provides the dashboard HTTP handlers.
type Handlers struct {
	store    store.Store
	notifier *notifier.Notifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st store.Store, notify *notifier.Notifier) *Handlers {
	return &Handlers{store: st, notifier: notify}
}

// Metrics is the portfolio summary across a user's projects.
type Metrics struct {
	TotalProjects     int                 `json:"total_projects"`
	ActiveProjects    int                 `json:"active_projects"`
	CompletedProjects int                 `json:"completed_projects"`
	TotalSavings      float64             `json:"total_savings"`
	TotalSavingsBRL   string              `json:"total_savings_brl"`
	AverageProgress   float64             `json:"average_progress"`
	ByPhase           map[dmaic.Phase]int `json:"by_phase"`
}

// buildMetrics aggregates the user's portfolio.
func (h *Handlers) buildMetrics(userID string) (*Metrics, error) {
	projects, err := h.store.ListProjects(userID)
	if err != nil {
		return nil, err
	}

	m := &Metrics{ByPhase: make(map[dmaic.Phase]int)}
	var progressSum float64
	for _, p := range projects {
		m.TotalProjects++
		switch p.Status {
		case store.StatusActive:
			m.ActiveProjects++
		case store.StatusCompleted:
			m.CompletedProjects++
		}
		m.TotalSavings += p.ExpectedSavings
		m.ByPhase[p.CurrentPhase]++

		entries, err := h.store.ListToolEntries(p.ID)
		if err != nil {
			return nil, err
		}
		progressSum += dmaic.OverallProgress(store.ToolStates(entries))
	}

	if m.TotalProjects > 0 {
		m.AverageProgress = progressSum / float64(m.TotalProjects)
	}
	m.TotalSavingsBRL = format.Currency(m.TotalSavings)
	return m, nil
}

// Metrics returns the portfolio summary.
func (h *Handlers) Metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.buildMetrics(common.UserID(r.Context()))
	if err != nil {
		common.FromError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, m)
}

// Updates is the long-lived SSE endpoint. It pushes fresh metrics as
// datastar signals whenever the store changes.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	userID := common.UserID(r.Context())
	sse := datastar.NewSSE(w, r)

	// Send the current state immediately so a reconnecting client does not
	// wait for the next mutation.
	if err := h.sendMetrics(sse, userID); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := h.sendMetrics(sse, userID); err != nil {
				_ = sse.ConsoleError(err)
				// Keep the stream alive; the next update retries.
			}
		}
	}
}

func (h *Handlers) sendMetrics(sse *datastar.ServerSentEventGenerator, userID string) error {
	m, err := h.buildMetrics(userID)
	if err != nil {
		return err
	}
	return sse.MarshalAndPatchSignals(map[string]any{"dashboard": m})
}
