package app

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/blackwell-systems/brewsync/internal/brew"
	"github.com/blackwell-systems/brewsync/internal/journal"
	"github.com/blackwell-systems/brewsync/internal/manifest"
	"github.com/blackwell-systems/brewsync/internal/watcher"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show toolchain, manifest and run status",
	Long: `Display the state of the Homebrew toolchain and the declared manifest.

Shows:
  • Platform and macOS version
  • Homebrew presence, version and prefix
  • Manifest source and declared package counts
  • Outdated packages per category
  • Watch daemon state and the most recent recorded run

Status only queries; nothing is installed or changed.`,
	Example: `  # Check the environment
  brewsync status`,
	RunE: runStatus,
}

func init() {
	// Register with root command
	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	const label = "%-12s"

	fmt.Println()

	// Platform line
	platform := runtime.GOOS + "/" + runtime.GOARCH
	if version := macOSVersion(); version != "" {
		platform += " · macOS " + version
	}
	if err := brew.VerifyPlatform(); err != nil {
		fmt.Printf(label+"%s — unsupported, brewsync needs macOS\n", "Platform:", platform)
	} else {
		fmt.Printf(label+"%s\n", "Platform:", platform)
	}

	// Homebrew line
	pm, err := brew.Detect()
	if err != nil {
		fmt.Printf(label+"not installed (run 'brewsync up')\n", "Homebrew:")
	} else {
		version, verr := pm.Version(ctx)
		if verr != nil {
			version = "version unknown"
		}
		prefix, perr := pm.Prefix(ctx, "")
		if perr != nil {
			prefix = pm.Exe()
		}
		fmt.Printf(label+"%s · %s\n", "Homebrew:", version, prefix)
	}

	// Manifest line
	m, source, merr := manifest.Resolve("")
	if merr != nil {
		fmt.Printf(label+"invalid: %v\n", "Manifest:", merr)
	} else {
		fmt.Printf(label+"%s · %d formulae · %d casks\n", "Manifest:", source, len(m.Formulae), len(m.Casks))
	}

	// Outdated line, only when brew is reachable
	if pm != nil {
		var parts []string
		for _, cat := range brew.Categories() {
			outdated, oerr := pm.ListOutdated(ctx, cat)
			if oerr != nil {
				parts = append(parts, fmt.Sprintf("%s unknown", cat.Label()))
				continue
			}
			parts = append(parts, fmt.Sprintf("%d %s", len(outdated), cat.Label()))
		}
		fmt.Printf(label+"%s\n", "Outdated:", strings.Join(parts, " · "))
	}

	// Watch daemon line
	if pidFile, perr := getDefaultPIDFile(); perr == nil {
		running, _ := watcher.IsDaemonRunning(pidFile)
		if running {
			fmt.Printf(label+"running (PID file %s)\n", "Watch:", pidFile)
		} else {
			fmt.Printf(label+"stopped  (run 'brewsync watch --daemon')\n", "Watch:")
		}
	}

	printLastRun()

	fmt.Println()
	return nil
}

// printLastRun renders the most recent journal entry, if any.
func printLastRun() {
	const label = "%-12s"

	path, err := getJournalPath()
	if err != nil {
		return
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf(label+"none recorded\n", "Last run:")
		return
	}

	j, err := journal.Open(path)
	if err != nil {
		fmt.Printf(label+"journal unreadable: %v\n", "Last run:", err)
		return
	}
	defer j.Close()

	last, err := j.Last()
	if err != nil || last == nil {
		fmt.Printf(label+"none recorded\n", "Last run:")
		return
	}

	result := "ok"
	if !last.Succeeded {
		result = "failed"
	}

	var size int64
	if fi, err := os.Stat(path); err == nil {
		size = fi.Size()
	}

	fmt.Printf(label+"%s %s · %s · journal %s\n",
		"Last run:", last.Kind, formatAge(time.Since(last.StartedAt)), result, formatSize(size))
}

// macOSVersion returns the product version reported by sw_vers, or "" when
// unavailable.
func macOSVersion() string {
	out, err := exec.Command("/usr/bin/sw_vers", "-productVersion").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// formatAge renders how long ago something happened, coarsely.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
