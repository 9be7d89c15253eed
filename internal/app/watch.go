package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackwell-systems/brewsync/internal/brew"
	"github.com/blackwell-systems/brewsync/internal/journal"
	"github.com/blackwell-systems/brewsync/internal/logging"
	"github.com/blackwell-systems/brewsync/internal/manifest"
	"github.com/blackwell-systems/brewsync/internal/output"
	"github.com/blackwell-systems/brewsync/internal/reconcile"
	"github.com/blackwell-systems/brewsync/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchDaemon      bool
	watchDaemonChild bool
	watchPIDFile     string
	watchLogFile     string
	watchStop        bool
	watchManifest    string

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Re-run install whenever the manifest changes",
		Long: `Watch the package manifest and reconcile on every change.

Saving the manifest triggers the same reconciliation as 'brewsync install':
missing packages get installed, present ones are skipped. Rapid consecutive
saves are debounced into a single run, and one run fires on startup so the
machine converges immediately.

Watch modes:
  • Foreground (default): run in the current terminal, Ctrl+C to stop
  • Daemon: run as a detached background process
  • Stop: stop a running daemon`,
		Example: `  # Watch in the foreground (Ctrl+C to stop)
  brewsync watch

  # Run as a background daemon
  brewsync watch --daemon

  # Stop the daemon
  brewsync watch --stop

  # Watch an explicit manifest
  brewsync watch --manifest ./packages.yaml`,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: ~/.brewsync/watch.pid)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: ~/.brewsync/watch.log)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop running daemon")
	watchCmd.Flags().StringVar(&watchManifest, "manifest", "", "manifest path (default: packages.yaml in the config dir)")

	// Hide the internal daemon-child flag from help
	watchCmd.Flags().MarkHidden("daemon-child")

	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logging.Setup(false)

	// Get default paths if not specified
	if watchPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		watchPIDFile = defaultPID
	}

	if watchLogFile == "" {
		defaultLog, err := getDefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to get default log file path: %w", err)
		}
		watchLogFile = defaultLog
	}

	// Handle stop before anything touches brew or the manifest
	if watchStop {
		return stopWatchDaemon()
	}

	if err := brew.VerifyPlatform(); err != nil {
		return err
	}

	manifestPath := watchManifest
	if manifestPath == "" {
		path, err := manifest.DefaultPath()
		if err != nil {
			return fmt.Errorf("failed to resolve manifest path: %w", err)
		}
		manifestPath = path
	}

	// Watching the built-in defaults is meaningless; a manifest file is
	// required here, unlike for install.
	if _, err := os.Stat(manifestPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no manifest at %s — write one to use watch mode", manifestPath)
		}
		return fmt.Errorf("failed to stat manifest: %w", err)
	}

	pm, err := brew.Detect()
	if err != nil {
		return &ExitError{Code: ExitToolchain, Err: fmt.Errorf("%w (run 'brewsync up' to install Homebrew)", err)}
	}

	w, err := watcher.New(manifestPath, makeReconcileRun(pm, manifestPath))
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Handle daemon mode
	if watchDaemon {
		return startWatchDaemon(w)
	}

	// Handle daemon child process
	if watchDaemonChild {
		return runWatchDaemonChild(w)
	}

	// Run in foreground
	return runWatchForeground(w)
}

// makeReconcileRun builds the callback the watcher invokes on every
// manifest change. Each invocation reloads the manifest so edits take
// effect, and journals the run, failures included.
func makeReconcileRun(pm brew.PackageManager, manifestPath string) watcher.RunFunc {
	return func() error {
		ctx := context.Background()
		started := time.Now()

		m, err := manifest.Load(manifestPath)
		if err != nil {
			return err
		}

		rec := reconcile.New(pm)
		rec.SetProgress(os.Stdout)

		report, err := rec.Apply(ctx, m)

		run := &journal.Run{
			Kind:      journal.KindWatch,
			StartedAt: started,
			Duration:  time.Since(started),
			Succeeded: err == nil,
		}
		if report != nil {
			run.Installed = len(report.Installed)
			run.AlreadyPresent = len(report.AlreadyPresent)
		}
		recordRun(run)

		return err
	}
}

func stopWatchDaemon() error {
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running {
		fmt.Println("Daemon is not running")
		return nil
	}

	spinner := output.NewSpinner("Stopping daemon")
	spinner.Start()
	if err := watcher.StopDaemon(watchPIDFile); err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to stop daemon: %w", err)
	}
	spinner.StopWithMessage("✓ Daemon stopped")

	return nil
}

func startWatchDaemon(w *watcher.Watcher) error {
	// Check if already running
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running {
		return fmt.Errorf("daemon already running (PID file: %s)", watchPIDFile)
	}

	if err := w.StartDaemon(watchPIDFile, watchLogFile); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	fmt.Println("✓ Watch daemon started")
	fmt.Printf("  Manifest: %s\n", w.Path())
	fmt.Printf("  PID file: %s\n", watchPIDFile)
	fmt.Printf("  Log file: %s\n", watchLogFile)
	fmt.Printf("\nTo stop: brewsync watch --stop\n")

	return nil
}

func runWatchDaemonChild(w *watcher.Watcher) error {
	// Runs as the daemon child; stdout and stderr already point at the
	// log file, so progress lines land there.
	return w.RunDaemon(watchPIDFile)
}

func runWatchForeground(w *watcher.Watcher) error {
	fmt.Printf("Watching %s (press Ctrl+C to stop)...\n\n", w.Path())

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigCh
	fmt.Printf("\nReceived signal %v, shutting down...\n", sig)

	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}

	fmt.Println("Watch stopped")
	return nil
}
