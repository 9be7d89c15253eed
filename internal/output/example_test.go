package output_test

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/brewsync/internal/journal"
	"github.com/blackwell-systems/brewsync/internal/output"
	"github.com/blackwell-systems/brewsync/internal/reconcile"
)

// Example showing how to use a spinner around a slow brew command
func ExampleSpinner() {
	spinner := output.NewSpinner("Updating Homebrew")
	spinner.Start()

	// Run the slow command...

	spinner.StopWithMessage("✓ Homebrew updated")
}

// Example showing how to render the run history
func ExampleRenderRunTable() {
	runs := []*journal.Run{
		{
			ID:        3,
			Kind:      journal.KindUp,
			StartedAt: time.Now().Add(-2 * time.Hour),
			Duration:  74 * time.Second,
			Upgraded:  4,
			Succeeded: true,
		},
		{
			ID:             2,
			Kind:           journal.KindInstall,
			StartedAt:      time.Now().Add(-3 * 24 * time.Hour),
			Duration:       12 * time.Second,
			Installed:      1,
			AlreadyPresent: 13,
			Succeeded:      true,
		},
	}

	table := output.RenderRunTable(runs)
	fmt.Println(table)
}

// Example showing how to render a reconcile report
func ExampleRenderReport() {
	report := &reconcile.Report{
		Installed:      []string{"jq"},
		AlreadyPresent: []string{"git", "curl"},
	}

	fmt.Print(output.RenderReport(report))
}
