package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/blackwell-systems/brewsync/internal/brew"
	"github.com/blackwell-systems/brewsync/internal/journal"
	"github.com/blackwell-systems/brewsync/internal/logging"
	"github.com/blackwell-systems/brewsync/internal/output"
	"github.com/blackwell-systems/brewsync/internal/reconcile"
	"github.com/blackwell-systems/brewsync/internal/shell"
	"github.com/spf13/cobra"
)

var (
	upNoCleanup bool
	upVerbose   bool

	upCmd = &cobra.Command{
		Use:   "up",
		Short: "Update Homebrew and upgrade all outdated packages",
		Long: `Bring the Homebrew installation itself up to date.

Installs Homebrew when it is missing (one attempt, via the official
installer), refreshes the package metadata, then bulk-upgrades every
outdated formula and cask. A cleanup pass removes stale downloads at the
end unless --no-cleanup is given.

Exit codes:
  0  success
  1  unsupported platform, or any other failure
  2  Homebrew installation failed
  3  metadata update failed`,
		Example: `  # Update, upgrade and clean up
  brewsync up

  # Keep old downloads and cache entries
  brewsync up --no-cleanup

  # Echo each brew command as it runs
  brewsync up --verbose`,
		RunE: runUp,
	}
)

func init() {
	upCmd.Flags().BoolVar(&upNoCleanup, "no-cleanup", false, "skip the post-upgrade cleanup step")
	upCmd.Flags().BoolVar(&upVerbose, "verbose", false, "echo brew commands and enable debug logging")
}

func runUp(cmd *cobra.Command, args []string) error {
	logging.Setup(upVerbose)
	ctx := context.Background()
	started := time.Now()

	if err := brew.VerifyPlatform(); err != nil {
		return err
	}

	pm, err := ensureToolchain(ctx)
	if err != nil {
		return &ExitError{Code: ExitToolchain, Err: err}
	}
	if upVerbose {
		pm.EchoCommands(os.Stderr)
	}

	spinner := output.NewSpinner("Updating Homebrew")
	spinner.Start()
	if err := pm.Update(ctx); err != nil {
		spinner.Stop()
		return &ExitError{Code: ExitUpdate, Err: fmt.Errorf("metadata update failed: %w", err)}
	}
	spinner.StopWithMessage("✓ Homebrew updated")

	rec := reconcile.New(pm)
	rec.SetProgress(os.Stdout)

	upgraded := 0
	for _, cat := range brew.Categories() {
		_, names, err := rec.UpgradeOutdated(ctx, cat)
		if err != nil {
			return err
		}
		upgraded += len(names)
	}

	if !upNoCleanup {
		spinner = output.NewSpinner("Cleaning up")
		spinner.Start()
		// Cleanup is best effort; a failure here does not undo the upgrade.
		if err := pm.Cleanup(ctx); err != nil {
			spinner.Stop()
			fmt.Printf("⚠ Cleanup failed: %v\n", err)
		} else {
			spinner.StopWithMessage("✓ Cleaned up")
		}
	}

	recordRun(&journal.Run{
		Kind:      journal.KindUp,
		StartedAt: started,
		Duration:  time.Since(started),
		Upgraded:  upgraded,
		Succeeded: true,
	})

	fmt.Printf("\n✓ Done in %s (%d upgraded)\n", time.Since(started).Round(time.Second), upgraded)
	return nil
}

// ensureToolchain resolves the brew executable, installing Homebrew when
// none is found. Exactly one install attempt is made; a second miss is
// fatal.
func ensureToolchain(ctx context.Context) (*brew.Runner, error) {
	pm, err := brew.Detect()
	if err == nil {
		return pm, nil
	}

	fmt.Println("Homebrew not found, installing...")
	pm, err = brew.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Println("✓ Homebrew installed")

	// A fresh install is not on PATH until a new shell picks up shellenv;
	// hook it into the user's profile so future sessions find it.
	if prefix, perr := pm.Prefix(ctx, ""); perr == nil {
		added, profile, serr := shell.EnsureShellEnv(prefix)
		switch {
		case serr != nil:
			fmt.Printf("⚠ Could not update shell profile: %v\n", serr)
		case added:
			fmt.Printf("✓ Added Homebrew to %s (takes effect in new shells)\n", profile)
		}
	}

	return pm, nil
}
