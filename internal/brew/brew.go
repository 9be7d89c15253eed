// Package brew wraps the Homebrew command line interface.
package brew

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/blackwell-systems/brewsync/internal/logging"
)

// PackageManager is the surface brewsync needs from Homebrew. The production
// implementation shells out to the brew executable; tests substitute a
// recording fake. Every method issues a fresh query or command, nothing is
// cached between calls.
type PackageManager interface {
	ListInstalled(ctx context.Context, cat Category) ([]string, error)
	Install(ctx context.Context, cat Category, name string) error
	ListOutdated(ctx context.Context, cat Category) ([]string, error)
	UpgradeAll(ctx context.Context, cat Category) error
	Update(ctx context.Context) error
	Cleanup(ctx context.Context) error
	Version(ctx context.Context) (string, error)
	Prefix(ctx context.Context, name string) (string, error)
}

// Runner executes brew commands through os/exec.
type Runner struct {
	exe  string
	echo io.Writer
}

// NewRunner returns a Runner that invokes the brew executable at exe.
func NewRunner(exe string) *Runner {
	return &Runner{exe: exe}
}

// Exe returns the path of the brew executable this Runner invokes.
func (r *Runner) Exe() string {
	return r.exe
}

// EchoCommands mirrors each brew invocation to w, one line per command,
// the way `sh -x` would. Passing nil disables the echo.
func (r *Runner) EchoCommands(w io.Writer) {
	r.echo = w
}

// ListInstalled returns the identifiers currently installed for the category.
func (r *Runner) ListInstalled(ctx context.Context, cat Category) ([]string, error) {
	output, err := r.query(ctx, "list", cat.flag(), "-1")
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// Install installs a single identifier.
func (r *Runner) Install(ctx context.Context, cat Category, name string) error {
	args := []string{"install"}
	if cat == Cask {
		args = append(args, "--cask")
	}
	args = append(args, name)
	return r.mutate(ctx, args...)
}

// ListOutdated returns the identifiers of the category that have a newer
// version available.
func (r *Runner) ListOutdated(ctx context.Context, cat Category) ([]string, error) {
	output, err := r.query(ctx, "outdated", cat.flag(), "-q")
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// UpgradeAll upgrades every outdated package of the category in one bulk
// brew invocation.
func (r *Runner) UpgradeAll(ctx context.Context, cat Category) error {
	return r.mutate(ctx, "upgrade", cat.flag())
}

// Update refreshes Homebrew's package metadata.
func (r *Runner) Update(ctx context.Context) error {
	return r.mutate(ctx, "update")
}

// Cleanup removes stale downloads and outdated kegs.
func (r *Runner) Cleanup(ctx context.Context) error {
	return r.mutate(ctx, "cleanup")
}

// Version returns the Homebrew version line.
func (r *Runner) Version(ctx context.Context) (string, error) {
	output, err := r.query(ctx, "--version")
	if err != nil {
		return "", err
	}
	// First line only; the remainder describes tap revisions.
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	return line, nil
}

// Prefix returns the installation prefix for name, or the global Homebrew
// prefix when name is empty.
func (r *Runner) Prefix(ctx context.Context, name string) (string, error) {
	args := []string{"--prefix"}
	if name != "" {
		args = append(args, name)
	}
	output, err := r.query(ctx, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// query runs a read-only brew command and returns its stdout.
func (r *Runner) query(ctx context.Context, args ...string) (string, error) {
	r.logInvocation(args)
	cmd := exec.CommandContext(ctx, r.exe, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("brew %s failed: %w (stderr: %s)", args[0], err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("brew %s failed: %w", args[0], err)
	}
	return string(output), nil
}

// mutate runs a brew command that changes state. Output is captured rather
// than streamed so progress lines stay readable; on failure it is folded
// into the error.
func (r *Runner) mutate(ctx context.Context, args ...string) error {
	r.logInvocation(args)
	cmd := exec.CommandContext(ctx, r.exe, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("brew %s failed: %w (output: %s)", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (r *Runner) logInvocation(args []string) {
	log := logging.GetLogger("brew")
	log.Debug().Str("exe", r.exe).Strs("args", args).Msg("invoking brew")
	if r.echo != nil {
		fmt.Fprintf(r.echo, "+ brew %s\n", strings.Join(args, " "))
	}
}

// splitLines splits command output into trimmed, non-empty lines.
func splitLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
