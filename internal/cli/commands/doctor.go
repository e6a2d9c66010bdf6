package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/greenbelt-labs/dmaic/internal/cli/output"
	"github.com/greenbelt-labs/dmaic/internal/config"
)

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "pass", "warn", "error"
	Detail string `json:"detail,omitempty"`
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Checks          []HealthCheck `json:"checks"`
	Score           int           `json:"score"`
	Recommendations []string      `json:"recommendations"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run a workspace health check",
		Long: `Analyze the dmaic workspace for common setup problems.

Checks the configuration file, store reachability, schema migrations,
session secret strength, and the snapshot directory, then reports a
health score (0-100) with recommendations.`,
		Example: `  # Run health check
  dmaic doctor

  # Output as JSON
  dmaic doctor -o json`,
		RunE: runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg := getConfig(cmd.Context())
	r := newRenderer(cmd, cfg)

	out := &DoctorOutput{}
	add := func(name, status, detail string) {
		out.Checks = append(out.Checks, HealthCheck{Name: name, Status: status, Detail: detail})
	}
	recommend := func(s string) {
		out.Recommendations = append(out.Recommendations, s)
	}

	// Config file.
	if file := config.ConfigFileUsed(); file != "" {
		add("config file", "pass", file)
	} else {
		add("config file", "warn", "no dmaic.yaml found, using defaults")
		recommend("Run 'dmaic init' to create a workspace configuration")
	}

	// Store reachability and schema version.
	if _, err := os.Stat(cfg.StorePath); err != nil {
		add("store", "warn", fmt.Sprintf("%s does not exist yet", cfg.StorePath))
		recommend("The store is created on first use; run 'dmaic user create' to get started")
	} else {
		cmdCtx, cleanup, err := NewCommandContext(cmd)
		if err != nil {
			add("store", "error", err.Error())
		} else {
			add("store", "pass", cfg.StorePath)
			version, err := cmdCtx.Store.MigrationVersion()
			if err != nil {
				add("migrations", "error", err.Error())
			} else {
				add("migrations", "pass", fmt.Sprintf("schema version %d", version))
			}
			cleanup()
		}
	}

	// Session secret strength.
	secret := cfg.GetServer().SessionSecret
	switch {
	case secret == "":
		add("session secret", "warn", "not configured, a random one is generated per run")
		recommend("Set server.session_secret in dmaic.yaml so logins survive restarts")
	case len(secret) < 32:
		add("session secret", "warn", "shorter than 32 characters")
		recommend("Use a session secret of at least 32 random characters")
	default:
		add("session secret", "pass", "")
	}

	// Snapshot directory.
	snapDir := cfg.GetSnapshot().Dir
	if info, err := os.Stat(snapDir); err != nil {
		add("snapshot directory", "warn", fmt.Sprintf("%s does not exist", snapDir))
		recommend("Run 'dmaic init' or create the snapshot directory manually")
	} else if !info.IsDir() {
		add("snapshot directory", "error", fmt.Sprintf("%s is not a directory", snapDir))
	} else {
		add("snapshot directory", "pass", snapDir)
	}

	out.Score = healthScore(out.Checks)

	if r.Mode() == output.ModeJSON {
		return r.JSON(out)
	}
	return renderDoctorText(r, out)
}

// healthScore weighs errors heavier than warnings.
func healthScore(checks []HealthCheck) int {
	score := 100
	for _, c := range checks {
		switch c.Status {
		case "warn":
			score -= 10
		case "error":
			score -= 25
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	r.Println("Workspace health")
	for _, c := range out.Checks {
		r.StatusLine(c.Name, c.Status, c.Detail)
	}
	r.Println("")
	r.Printf("Health score: %d/100\n", out.Score)

	if len(out.Recommendations) > 0 {
		r.Println("")
		r.Println("Recommendations:")
		for _, rec := range out.Recommendations {
			r.Printf("  - %s\n", rec)
		}
	}
	return nil
}
