package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/blackwell-systems/brewsync/internal/brew"
	"github.com/blackwell-systems/brewsync/internal/journal"
	"github.com/blackwell-systems/brewsync/internal/logging"
	"github.com/blackwell-systems/brewsync/internal/manifest"
	"github.com/blackwell-systems/brewsync/internal/output"
	"github.com/blackwell-systems/brewsync/internal/reconcile"
	"github.com/spf13/cobra"
)

var (
	installVerbose  bool
	installManifest string

	installCmd = &cobra.Command{
		Use:   "install",
		Short: "Install every declared package that is missing",
		Long: `Reconcile the machine against the declared package manifest.

Each declared formula and cask is checked against the installed set and
installed only when absent; already-installed packages are skipped, which
makes the command safe to re-run at any time. Formulae are processed
before casks, each category in declaration order.

The manifest is read from --manifest when given, otherwise from
packages.yaml in the brewsync config directory, falling back to the
built-in package set.

Exit codes:
  0  success
  1  unsupported platform, or any other failure
  2  Homebrew not installed`,
		Example: `  # Converge on the declared package set
  brewsync install

  # Use an explicit manifest
  brewsync install --manifest ./packages.yaml

  # Echo each brew command as it runs
  brewsync install --verbose`,
		RunE: runInstall,
	}
)

func init() {
	installCmd.Flags().BoolVar(&installVerbose, "verbose", false, "echo brew commands and enable debug logging")
	installCmd.Flags().StringVar(&installManifest, "manifest", "", "manifest path (default: packages.yaml in the config dir)")
}

func runInstall(cmd *cobra.Command, args []string) error {
	logging.Setup(installVerbose)
	ctx := context.Background()
	started := time.Now()

	if err := brew.VerifyPlatform(); err != nil {
		return err
	}

	// Unlike up, install never bootstraps; a missing toolchain is fatal.
	pm, err := brew.Detect()
	if err != nil {
		return &ExitError{Code: ExitToolchain, Err: fmt.Errorf("%w (run 'brewsync up' to install Homebrew)", err)}
	}
	if installVerbose {
		pm.EchoCommands(os.Stderr)
	}

	m, source, err := manifest.Resolve(installManifest)
	if err != nil {
		return err
	}
	fmt.Printf("Using manifest: %s (%d formulae, %d casks)\n\n", source, len(m.Formulae), len(m.Casks))

	rec := reconcile.New(pm)
	rec.SetProgress(os.Stdout)

	report, err := rec.Apply(ctx, m)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s", output.RenderReport(report))

	recordRun(&journal.Run{
		Kind:           journal.KindInstall,
		StartedAt:      started,
		Duration:       time.Since(started),
		Installed:      len(report.Installed),
		AlreadyPresent: len(report.AlreadyPresent),
		Succeeded:      true,
	})

	return nil
}
