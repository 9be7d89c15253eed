package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/brewsync/internal/manifest"
	"github.com/spf13/cobra"
)

var (
	journalPath string

	// RootCmd is the root command for brewsync
	RootCmd = &cobra.Command{
		Use:   "brewsync",
		Short: "Declarative Homebrew package sync for macOS",
		Long: `brewsync keeps a macOS machine converged on a declared set of Homebrew
formulae and casks. Declare the packages once, run brewsync on any machine,
and it installs what is missing and skips what is already there.

Commands:
  • up       — install/update Homebrew and upgrade everything outdated
  • install  — install the declared packages, skipping present ones
  • watch    — re-run install whenever the manifest changes
  • status   — toolchain and manifest overview
  • history  — past runs

Examples:
  # Upgrade the whole machine
  brewsync up

  # Converge on the declared package set
  brewsync install

  # Use a manifest outside the config directory
  brewsync install --manifest ./packages.yaml

  # Follow manifest edits automatically
  brewsync watch --daemon`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("brewsync: declarative Homebrew package sync")
			fmt.Println()
			if path, err := manifest.DefaultPath(); err == nil {
				if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
					fmt.Println("No manifest found — 'brewsync install' uses the built-in package set.")
					fmt.Printf("Declare your own in %s.\n", path)
					fmt.Println("Run 'brewsync --help' for the full reference.")
					return nil
				}
			}
			fmt.Println("Tip: Run 'brewsync status' to check the environment.")
			fmt.Println("     Run 'brewsync install' to converge on the manifest.")
			fmt.Println("     Run 'brewsync --help' for all commands.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "run journal path (default: ~/.brewsync/brewsync.db)")

	// Unknown flags print the command's usage and map to the generic
	// failure exit code.
	RootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		cmd.PrintErr(cmd.UsageString())
		return &ExitError{Code: ExitFailure, Err: err}
	})

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	// The two reconciliation entry points; status, history and watch
	// register themselves in their own files.
	RootCmd.AddCommand(upCmd)
	RootCmd.AddCommand(installCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// dataDir returns the brewsync data directory, creating it if needed.
func dataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".brewsync")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create brewsync directory: %w", err)
	}

	return dir, nil
}

// getJournalPath returns the journal database path, using the flag value or default
func getJournalPath() (string, error) {
	if journalPath != "" {
		return journalPath, nil
	}

	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "brewsync.db"), nil
}

// getDefaultPIDFile returns the default PID file path
func getDefaultPIDFile() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.pid"), nil
}

// getDefaultLogFile returns the default log file path
func getDefaultLogFile() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.log"), nil
}
