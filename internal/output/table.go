// Package output provides terminal output utilities for brewsync.
//
// This package includes:
//   - Table rendering for the run history
//   - Report rendering for reconcile runs
//   - Spinners for long-running brew commands
//   - Human-readable formatting for durations and timestamps
//
// Rendering uses ASCII characters plus ANSI color codes on terminals.
// Progress indicators are thread-safe.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blackwell-systems/brewsync/internal/journal"
	"github.com/blackwell-systems/brewsync/internal/reconcile"
	"github.com/mattn/go-isatty"
)

// ANSI color codes for run results
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderRunTable renders the run history, newest first as provided.
func RenderRunTable(runs []*journal.Run) string {
	if len(runs) == 0 {
		return "No runs recorded.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-9s %-15s %-10s %-9s %-9s %-9s %s\n",
		"ID", "Kind", "When", "Installed", "Present", "Upgraded", "Duration", "Result"))
	sb.WriteString(strings.Repeat("─", 84))
	sb.WriteString("\n")

	for _, run := range runs {
		result := colorize(colorGreen, "✓ ok")
		if !run.Succeeded {
			result = colorize(colorRed, "✗ failed")
		}

		sb.WriteString(fmt.Sprintf("%-5d %-9s %-15s %-10d %-9d %-9d %-9s %s\n",
			run.ID,
			truncate(run.Kind, 9),
			formatRelativeTime(run.StartedAt),
			run.Installed,
			run.AlreadyPresent,
			run.Upgraded,
			formatDuration(run.Duration),
			result))
	}

	return sb.String()
}

// RenderReport renders the closing summary of a reconcile run.
func RenderReport(report *reconcile.Report) string {
	var sb strings.Builder

	if len(report.Installed) > 0 {
		sb.WriteString(fmt.Sprintf("Installed (%d): %s\n",
			len(report.Installed), strings.Join(report.Installed, ", ")))
	}
	if len(report.AlreadyPresent) > 0 {
		sb.WriteString(fmt.Sprintf("Already present (%d): %s\n",
			len(report.AlreadyPresent), strings.Join(report.AlreadyPresent, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Summary: %s\n", report.Summary()))

	return sb.String()
}

// formatDuration renders a run duration compactly: "850ms", "12s", "1m32s".
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	default:
		mins := int(d.Minutes())
		secs := int(d.Seconds()) - mins*60
		return fmt.Sprintf("%dm%02ds", mins, secs)
	}
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
