package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/brewsync/internal/journal"
	"github.com/blackwell-systems/brewsync/internal/output"
	"github.com/spf13/cobra"
)

var (
	historyLimit int

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Show past brewsync runs",
		Long: `Display the journal of completed brewsync runs, newest first.

Every up, install and watch-triggered run is recorded with its duration
and package counts. The journal is bookkeeping only: reconciliation always
queries Homebrew directly and never consults past runs.`,
		Example: `  # The most recent runs
  brewsync history

  # Only the last five
  brewsync history --limit 5`,
		RunE: runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to show")

	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := getJournalPath()
	if err != nil {
		return err
	}

	// No journal file means no runs; don't create one just to say so.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("No runs recorded.")
		return nil
	}

	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.List(historyLimit)
	if err != nil {
		return err
	}

	fmt.Print(output.RenderRunTable(runs))
	return nil
}
