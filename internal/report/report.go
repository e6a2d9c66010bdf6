// Package report builds per-project summary reports shared by the web
// endpoint and the CLI.
package report

import (
	"time"

	"github.com/greenbelt-labs/dmaic/internal/dmaic"
	"github.com/greenbelt-labs/dmaic/internal/format"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// ToolStatus is one tool row in a phase section.
type ToolStatus struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Required  bool   `json:"required"`
	Completed bool   `json:"completed"`
}

// PhaseSection is one phase of the report.
type PhaseSection struct {
	Phase    dmaic.Phase  `json:"phase"`
	Name     string       `json:"name"`
	Progress float64      `json:"progress"`
	Complete bool         `json:"complete"`
	Tools    []ToolStatus `json:"tools"`
}

// Report is the full project summary.
type Report struct {
	ProjectID       string         `json:"project_id"`
	Name            string         `json:"name"`
	Status          string         `json:"status"`
	CurrentPhase    dmaic.Phase    `json:"current_phase"`
	Progress        float64        `json:"progress"`
	ExpectedSavings string         `json:"expected_savings"`
	StartDate       string         `json:"start_date"`
	TargetEndDate   string         `json:"target_end_date"`
	Phases          []PhaseSection `json:"phases"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return format.DateOrPlaceholder(t.Format("2006-01-02"))
}

// Build assembles the report for one project.
func Build(s store.Store, projectID string) (*Report, error) {
	p, err := s.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	entries, err := s.ListToolEntries(p.ID)
	if err != nil {
		return nil, err
	}
	states := store.ToolStates(entries)
	phaseProgress := dmaic.PhaseProgress(states)

	completedByKey := make(map[dmaic.Phase]map[string]bool)
	for _, e := range entries {
		if completedByKey[e.Phase] == nil {
			completedByKey[e.Phase] = make(map[string]bool)
		}
		completedByKey[e.Phase][e.Key] = e.Completed
	}

	rep := &Report{
		ProjectID:       p.ID,
		Name:            p.Name,
		Status:          p.Status,
		CurrentPhase:    p.CurrentPhase,
		Progress:        dmaic.OverallProgress(states),
		ExpectedSavings: format.Currency(p.ExpectedSavings),
		StartDate:       formatDate(p.StartDate),
		TargetEndDate:   formatDate(p.TargetEndDate),
	}

	for _, phase := range dmaic.Phases {
		section := PhaseSection{
			Phase:    phase,
			Name:     phase.Name(),
			Progress: phaseProgress[phase],
			Complete: dmaic.PhaseComplete(phase, states),
		}
		for _, tool := range dmaic.ToolsFor(phase) {
			section.Tools = append(section.Tools, ToolStatus{
				Key:       tool.Key,
				Name:      tool.Name,
				Required:  tool.Required,
				Completed: completedByKey[phase][tool.Key],
			})
		}
		rep.Phases = append(rep.Phases, section)
	}
	return rep, nil
}
