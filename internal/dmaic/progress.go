package dmaic

// ToolState is the completion state of one tool entry, keyed by phase and
// tool key. It is the minimal view the progress calculation needs.
type ToolState struct {
	Phase     Phase
	Key       string
	Completed bool
}

// OverallProgress returns the share of completed tools across all phases,
// as a percentage. An empty entry set yields 0.
func OverallProgress(entries []ToolState) float64 {
	var total, completed int
	for _, e := range entries {
		total++
		if e.Completed {
			completed++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// PhaseProgress returns the completion percentage per phase. Phases with no
// entries report 0.
func PhaseProgress(entries []ToolState) map[Phase]float64 {
	totals := make(map[Phase]int)
	done := make(map[Phase]int)
	for _, e := range entries {
		totals[e.Phase]++
		if e.Completed {
			done[e.Phase]++
		}
	}

	out := make(map[Phase]float64, len(Phases))
	for _, p := range Phases {
		if totals[p] == 0 {
			out[p] = 0
			continue
		}
		out[p] = float64(done[p]) / float64(totals[p]) * 100
	}
	return out
}

// PhaseComplete reports whether every required tool of the phase is done.
// Phases without required tools count as complete once any tool is done.
func PhaseComplete(p Phase, entries []ToolState) bool {
	byKey := make(map[string]bool)
	for _, e := range entries {
		if e.Phase == p {
			byKey[e.Key] = e.Completed
		}
	}

	hasRequired := false
	for _, t := range Catalog[p] {
		if !t.Required {
			continue
		}
		hasRequired = true
		if !byKey[t.Key] {
			return false
		}
	}
	if hasRequired {
		return true
	}

	for _, completed := range byKey {
		if completed {
			return true
		}
	}
	return false
}
