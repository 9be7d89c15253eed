// Package reconcile drives the machine's installed packages toward the
// declared manifest.
//
// The engine is deliberately stateless: every decision starts from a fresh
// query against the package manager, so runs are idempotent and safe to
// repeat at any time. Mutations only happen on observed absence.
package reconcile

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/brewsync/internal/brew"
	"github.com/blackwell-systems/brewsync/internal/logging"
	"github.com/blackwell-systems/brewsync/internal/manifest"
)

// Outcome describes what EnsureInstalled did for one identifier.
type Outcome int

const (
	// AlreadyPresent means the identifier was installed before the call
	// and nothing was done.
	AlreadyPresent Outcome = iota
	// Installed means the identifier was absent and has been installed.
	Installed
)

func (o Outcome) String() string {
	switch o {
	case AlreadyPresent:
		return "already present"
	case Installed:
		return "installed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// UpgradeOutcome describes what UpgradeOutdated did for one category.
type UpgradeOutcome int

const (
	// NothingToDo means no package of the category was outdated and no
	// upgrade command ran.
	NothingToDo UpgradeOutcome = iota
	// Upgraded means at least one package was outdated and a bulk upgrade
	// ran.
	Upgraded
)

func (o UpgradeOutcome) String() string {
	switch o {
	case NothingToDo:
		return "nothing to do"
	case Upgraded:
		return "upgraded"
	}
	return fmt.Sprintf("UpgradeOutcome(%d)", int(o))
}

// Report summarizes one Apply run.
type Report struct {
	Installed      []string
	AlreadyPresent []string
}

// Summary returns the one-line summary printed after a run.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d installed, %d already present", len(r.Installed), len(r.AlreadyPresent))
}

// Reconciler applies a declared manifest through a PackageManager.
type Reconciler struct {
	pm       brew.PackageManager
	progress io.Writer
}

// New returns a Reconciler driving pm. Progress lines are discarded until
// SetProgress installs a writer.
func New(pm brew.PackageManager) *Reconciler {
	return &Reconciler{pm: pm, progress: io.Discard}
}

// SetProgress directs per-identifier progress lines to w.
func (r *Reconciler) SetProgress(w io.Writer) {
	r.progress = w
}

// EnsureInstalled makes sure a single identifier is installed. The
// installed set is queried fresh on every call and the install command only
// runs on observed absence, so calling this twice in a row installs at most
// once.
func (r *Reconciler) EnsureInstalled(ctx context.Context, cat brew.Category, name string) (Outcome, error) {
	log := logging.GetLogger("reconcile")

	installed, err := r.pm.ListInstalled(ctx, cat)
	if err != nil {
		return AlreadyPresent, err
	}

	if contains(installed, name) {
		log.Debug().Str("package", name).Str("category", cat.String()).Msg("already installed")
		fmt.Fprintf(r.progress, "✓ %s already installed\n", name)
		return AlreadyPresent, nil
	}

	fmt.Fprintf(r.progress, "Installing %s (%s)...\n", name, cat)
	if err := r.pm.Install(ctx, cat, name); err != nil {
		return AlreadyPresent, err
	}

	log.Debug().Str("package", name).Str("category", cat.String()).Msg("installed")
	fmt.Fprintf(r.progress, "✓ %s installed\n", name)
	return Installed, nil
}

// Apply reconciles every identifier the manifest declares, formulae first,
// then casks, each category in declaration order. The first failure aborts
// the run; the returned report covers everything processed up to that
// point.
func (r *Reconciler) Apply(ctx context.Context, m *manifest.Manifest) (*Report, error) {
	report := &Report{}

	for _, cat := range brew.Categories() {
		for _, name := range m.Names(cat) {
			outcome, err := r.EnsureInstalled(ctx, cat, name)
			if err != nil {
				return report, fmt.Errorf("failed to ensure %s %s: %w", cat, name, err)
			}
			switch outcome {
			case Installed:
				report.Installed = append(report.Installed, name)
			case AlreadyPresent:
				report.AlreadyPresent = append(report.AlreadyPresent, name)
			}
		}
	}

	return report, nil
}

// UpgradeOutdated upgrades every outdated package of one category in a
// single bulk operation and returns the identifiers that were outdated.
// When nothing is outdated, no upgrade command runs at all.
func (r *Reconciler) UpgradeOutdated(ctx context.Context, cat brew.Category) (UpgradeOutcome, []string, error) {
	outdated, err := r.pm.ListOutdated(ctx, cat)
	if err != nil {
		return NothingToDo, nil, err
	}

	if len(outdated) == 0 {
		fmt.Fprintf(r.progress, "✓ No outdated %s\n", cat.Label())
		return NothingToDo, nil, nil
	}

	fmt.Fprintf(r.progress, "Upgrading %d %s: %s\n", len(outdated), cat.Label(), strings.Join(outdated, " "))
	if err := r.pm.UpgradeAll(ctx, cat); err != nil {
		return NothingToDo, outdated, err
	}

	fmt.Fprintf(r.progress, "✓ Upgraded %d %s\n", len(outdated), cat.Label())
	return Upgraded, outdated, nil
}

func contains(list []string, name string) bool {
	for _, entry := range list {
		if entry == name {
			return true
		}
	}
	return false
}
