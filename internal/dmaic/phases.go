// Package dmaic defines the DMAIC phase model and the tool catalog that
// structures every project: which tools belong to each phase, which are
// required, and how completion rolls up into progress.
package dmaic

import "fmt"

// Phase is one of the five DMAIC phases.
type Phase string

const (
	PhaseDefine  Phase = "define"
	PhaseMeasure Phase = "measure"
	PhaseAnalyze Phase = "analyze"
	PhaseImprove Phase = "improve"
	PhaseControl Phase = "control"
)

// Phases lists all phases in methodology order.
var Phases = []Phase{PhaseDefine, PhaseMeasure, PhaseAnalyze, PhaseImprove, PhaseControl}

// ParsePhase validates a phase string.
func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	for _, known := range Phases {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown phase: %q", s)
}

// Name returns the display name of the phase.
func (p Phase) Name() string {
	switch p {
	case PhaseDefine:
		return "Define"
	case PhaseMeasure:
		return "Measure"
	case PhaseAnalyze:
		return "Analyze"
	case PhaseImprove:
		return "Improve"
	case PhaseControl:
		return "Control"
	}
	return string(p)
}

// Next returns the phase following p, or p itself when p is the last phase.
func (p Phase) Next() Phase {
	for i, known := range Phases {
		if p == known && i+1 < len(Phases) {
			return Phases[i+1]
		}
	}
	return p
}

// Tool describes one tool within a phase.
type Tool struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Catalog maps each phase to its ordered tool set. A project's tool entries
// are seeded from this catalog at creation time.
var Catalog = map[Phase][]Tool{
	PhaseDefine: {
		{Key: "charter", Name: "Project Charter", Description: "Formal definition of problem, goal and scope", Required: true},
		{Key: "stakeholders", Name: "Stakeholder Analysis", Description: "Identification and assessment of interested parties"},
		{Key: "voc", Name: "Voice of Customer", Description: "Customer requirements and expectations"},
		{Key: "sipoc", Name: "SIPOC Diagram", Description: "High-level process view: suppliers, inputs, process, outputs, customers"},
		{Key: "timeline", Name: "Project Timeline", Description: "Milestones and phase gates"},
	},
	PhaseMeasure: {
		{Key: "data_collection_plan", Name: "Data Collection Plan", Description: "Strategy for systematic data collection", Required: true},
		{Key: "baseline_data", Name: "Baseline Data", Description: "Current process performance data"},
		{Key: "msa", Name: "Measurement System Analysis", Description: "Reliability of the measurement system"},
		{Key: "process_capability", Name: "Process Capability", Description: "Cp/Cpk against specification limits"},
		{Key: "ctq_metrics", Name: "CTQ Metrics", Description: "Critical-to-quality characteristics and targets"},
	},
	PhaseAnalyze: {
		{Key: "ishikawa", Name: "Ishikawa Diagram", Description: "Cause-and-effect analysis"},
		{Key: "five_whys", Name: "Five Whys", Description: "Iterative root cause questioning"},
		{Key: "pareto", Name: "Pareto Analysis", Description: "Vital few causes by frequency"},
		{Key: "hypothesis_tests", Name: "Hypothesis Tests", Description: "Statistical validation of suspected causes"},
		{Key: "root_cause", Name: "Root Cause Summary", Description: "Verified root causes", Required: true},
		{Key: "statistical_analysis", Name: "Statistical Analysis", Description: "Exploratory and confirmatory statistics"},
	},
	PhaseImprove: {
		{Key: "solutions", Name: "Solution Selection", Description: "Candidate solutions and prioritization", Required: true},
		{Key: "action_plan", Name: "Action Plan", Description: "Who does what by when"},
		{Key: "pilot_results", Name: "Pilot Results", Description: "Outcome of the pilot implementation"},
		{Key: "implementation", Name: "Implementation", Description: "Full-scale rollout record"},
		{Key: "validation", Name: "Validation", Description: "Confirmation of improvement against baseline"},
	},
	PhaseControl: {
		{Key: "control_plan", Name: "Control Plan", Description: "Sustaining controls and response plans", Required: true},
		{Key: "spc_charts", Name: "SPC Charts", Description: "Statistical process control monitoring"},
		{Key: "documentation", Name: "Documentation", Description: "Updated procedures and work instructions"},
		{Key: "handover", Name: "Process Handover", Description: "Transfer to the process owner"},
	},
}

// ToolsFor returns the catalog tools for a phase.
func ToolsFor(p Phase) []Tool {
	return Catalog[p]
}

// LookupTool finds a tool by key within a phase.
func LookupTool(p Phase, key string) (Tool, bool) {
	for _, t := range Catalog[p] {
		if t.Key == key {
			return t, true
		}
	}
	return Tool{}, false
}
