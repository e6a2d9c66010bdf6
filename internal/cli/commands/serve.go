package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/greenbelt-labs/dmaic/internal/server"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dmaic web dashboard",
		Long: `Start a local web server providing the project dashboard.

The dashboard provides:
- Account login and registration
- Project portfolio with live metrics
- Phase navigation with per-tool forms
- Capability, Pareto and control chart analysis
- Per-project summary reports`,
		Example: `  # Start on default port
  dmaic serve

  # Start on custom port
  dmaic serve --port 3000

  # Start without auto-opening browser
  dmaic serve --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Watch the snapshot directory for imports")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	srvCfg := cmdCtx.Cfg.GetServer()
	snapCfg := cmdCtx.Cfg.GetSnapshot()

	port := srvCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}
	autoOpen := srvCfg.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}
	watch := snapCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	secret := srvCfg.SessionSecret
	if secret == "" {
		secret = generateSessionSecret()
		cmdCtx.Logger.Warn("server.session_secret is not set, sessions will not survive restarts")
	}

	if watch {
		if err := os.MkdirAll(snapCfg.Dir, 0750); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	srv := server.New(server.Config{
		Store:             cmdCtx.Store,
		Port:              port,
		SessionSecret:     secret,
		SessionMaxAgeDays: srvCfg.SessionMaxAgeDays,
		SnapshotDir:       snapCfg.Dir,
		Watch:             watch,
		Logger:            cmdCtx.Logger,
	})

	if autoOpen {
		go openBrowser(fmt.Sprintf("http://localhost:%d", port))
	}

	fmt.Printf("Starting dashboard on http://localhost:%d\n", port)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx)
}

// generateSessionSecret returns a random per-process secret for when none
// is configured.
func generateSessionSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return filepath.Base(os.Args[0]) + "-dev-secret"
	}
	return hex.EncodeToString(buf)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
