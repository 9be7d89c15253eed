package brew

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/blackwell-systems/brewsync/internal/logging"
)

// installScriptURL is the official Homebrew installer entry point.
const installScriptURL = "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh"

var (
	// ErrUnsupportedPlatform is returned when the host is not macOS.
	ErrUnsupportedPlatform = errors.New("homebrew requires macOS")

	// ErrBrewMissing is returned when no brew executable can be found.
	ErrBrewMissing = errors.New("brew executable not found")

	// ErrBootstrapFailed is returned when the Homebrew installer did not
	// leave behind a usable brew executable.
	ErrBootstrapFailed = errors.New("homebrew installation failed")
)

// prefixByArch maps GOARCH values to the prefix the Homebrew installer uses
// on that architecture.
var prefixByArch = map[string]string{
	"arm64": "/opt/homebrew",
	"amd64": "/usr/local",
}

// VerifyPlatform checks that the current OS can run Homebrew.
func VerifyPlatform() error {
	return verifyPlatform(runtime.GOOS)
}

func verifyPlatform(goos string) error {
	if goos != "darwin" {
		return fmt.Errorf("%w: running on %s", ErrUnsupportedPlatform, goos)
	}
	return nil
}

// DefaultPrefix returns the Homebrew prefix for the given architecture.
func DefaultPrefix(arch string) (string, bool) {
	prefix, ok := prefixByArch[arch]
	return prefix, ok
}

// Detect locates an existing brew executable. PATH is checked first, then
// the architecture's default prefix: a fresh Homebrew install is reachable
// there even before the user's shell profile picks up shellenv.
func Detect() (*Runner, error) {
	if path, err := exec.LookPath("brew"); err == nil {
		return NewRunner(path), nil
	}
	if prefix, ok := prefixByArch[runtime.GOARCH]; ok {
		candidate := filepath.Join(prefix, "bin", "brew")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return NewRunner(candidate), nil
		}
	}
	return nil, ErrBrewMissing
}

// Bootstrap runs the official Homebrew installer and returns a Runner for
// the freshly installed executable. Installer output streams straight to
// the terminal: installs take minutes and Homebrew reports its own
// progress.
func Bootstrap(ctx context.Context) (*Runner, error) {
	if err := VerifyPlatform(); err != nil {
		return nil, err
	}

	log := logging.GetLogger("brew")
	log.Info().Str("url", installScriptURL).Msg("running homebrew installer")

	cmd := exec.CommandContext(ctx, "/bin/bash", "-c", installerCommand())
	cmd.Env = append(os.Environ(), "NONINTERACTIVE=1")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: installer exited: %v", ErrBootstrapFailed, err)
	}

	runner, err := Detect()
	if err != nil {
		return nil, fmt.Errorf("%w: installer finished but no brew executable was found", ErrBootstrapFailed)
	}
	return runner, nil
}

// installerCommand builds the bash command line that fetches and runs the
// installer script.
func installerCommand() string {
	return fmt.Sprintf(`/bin/bash -c "$(curl -fsSL %s)"`, installScriptURL)
}
