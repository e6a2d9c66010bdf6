package phases

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/greenbelt-labs/dmaic/internal/dmaic"
	"github.com/greenbelt-labs/dmaic/internal/server/features/common"
	"github.com/greenbelt-labs/dmaic/internal/stats"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// Tool keys that support server-side computation.
const (
	toolBaseline   = "baseline_data"
	toolCapability = "process_capability"
	toolPareto     = "pareto"
	toolSPC        = "spc_charts"
)

type computeRequest struct {
	Values []float64     `json:"values,omitempty"`
	LSL    *float64      `json:"lsl,omitempty"`
	USL    *float64      `json:"usl,omitempty"`
	Causes []stats.Cause `json:"causes,omitempty"`

	// MarkComplete also flags the tool as done.
	MarkComplete bool `json:"mark_complete,omitempty"`
}

// computeRecord is what gets persisted in the tool entry: the input next to
// its result, so the analysis can be re-run or audited later.
type computeRecord struct {
	Input  computeRequest `json:"input"`
	Result any            `json:"result"`
}

// Compute runs the numeric analysis behind a tool and persists the result.
func (h *Handlers) Compute(w http.ResponseWriter, r *http.Request) {
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

	var req computeRequest
	if err := common.Decode(r, &req); err != nil {
		common.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := runAnalysis(key, req)
	if err != nil {
		if errors.Is(err, errNotComputable) {
			common.Error(w, http.StatusNotFound, err.Error())
		} else {
			common.Error(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	data, err := json.Marshal(computeRecord{Input: req, Result: result})
	if err != nil {
		common.FromError(w, err)
		return
	}
	// Re-running an analysis must not undo an earlier completion.
	completed := req.MarkComplete
	if prev, err := h.store.GetToolEntry(p.ID, phase, key); err == nil {
		completed = completed || prev.Completed
	} else if !errors.Is(err, store.ErrNotFound) {
		common.FromError(w, err)
		return
	}

	entry := &store.ToolEntry{
		ProjectID: p.ID,
		Phase:     phase,
		Key:       key,
		Completed: completed,
		Data:      data,
	}
	if err := h.store.SaveToolEntry(entry); err != nil {
		common.FromError(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusOK, result)
}

var errNotComputable = errors.New("tool has no server-side computation")

func runAnalysis(key string, req computeRequest) (any, error) {
	switch key {
	case toolBaseline:
		return stats.Describe(req.Values)
	case toolCapability:
		return stats.ProcessCapability(req.Values, req.LSL, req.USL)
	case toolPareto:
		return stats.Pareto(req.Causes)
	case toolSPC:
		return stats.IndividualsChart(req.Values)
	default:
		return nil, errNotComputable
	}
}
