package app

import (
	"fmt"

	"github.com/blackwell-systems/brewsync/internal/journal"
	"github.com/blackwell-systems/brewsync/internal/logging"
)

// recordRun appends a completed run to the journal. The journal exists for
// status and history only, so bookkeeping failures are logged and
// swallowed; a run never fails because its record could not be written.
func recordRun(run *journal.Run) {
	log := logging.GetLogger("app")

	path, err := getJournalPath()
	if err != nil {
		log.Warn().Err(err).Msg("journal unavailable")
		return
	}

	j, err := journal.Open(path)
	if err != nil {
		log.Warn().Err(err).Msg("failed to open journal")
		return
	}
	defer j.Close()

	if _, err := j.Record(run); err != nil {
		log.Warn().Err(err).Msg("failed to record run")
	}
}

// formatSize converts bytes to human-readable size.
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.0f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.0f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
