package dmaic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// seedStates builds the full catalog as tool states, all incomplete.
func seedStates() []ToolState {
	var out []ToolState
	for _, p := range Phases {
		for _, tool := range Catalog[p] {
			out = append(out, ToolState{Phase: p, Key: tool.Key})
		}
	}
	return out
}

func markDone(entries []ToolState, phase Phase, key string) {
	for i := range entries {
		if entries[i].Phase == phase && entries[i].Key == key {
			entries[i].Completed = true
		}
	}
}

func TestOverallProgress(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Zero(t, OverallProgress(nil))
	})

	t.Run("nothing completed", func(t *testing.T) {
		assert.Zero(t, OverallProgress(seedStates()))
	})

	t.Run("all completed", func(t *testing.T) {
		entries := seedStates()
		for i := range entries {
			entries[i].Completed = true
		}
		assert.InDelta(t, 100.0, OverallProgress(entries), 0.001)
	})

	t.Run("partial", func(t *testing.T) {
		entries := seedStates()
		markDone(entries, PhaseDefine, "charter")
		markDone(entries, PhaseDefine, "sipoc")

		want := 2.0 / float64(len(entries)) * 100
		assert.InDelta(t, want, OverallProgress(entries), 0.001)
	})
}

func TestPhaseProgress(t *testing.T) {
	entries := seedStates()
	markDone(entries, PhaseControl, "control_plan")
	markDone(entries, PhaseControl, "handover")

	progress := PhaseProgress(entries)

	assert.Zero(t, progress[PhaseDefine])
	assert.InDelta(t, 50.0, progress[PhaseControl], 0.001) // 2 of 4
	assert.Len(t, progress, len(Phases))
}

func TestPhaseComplete(t *testing.T) {
	entries := seedStates()

	// Define requires only the charter.
	assert.False(t, PhaseComplete(PhaseDefine, entries))
	markDone(entries, PhaseDefine, "charter")
	assert.True(t, PhaseComplete(PhaseDefine, entries))

	// Measure requires the data collection plan; completing another tool
	// is not enough.
	markDone(entries, PhaseMeasure, "baseline_data")
	assert.False(t, PhaseComplete(PhaseMeasure, entries))
	markDone(entries, PhaseMeasure, "data_collection_plan")
	assert.True(t, PhaseComplete(PhaseMeasure, entries))
}
