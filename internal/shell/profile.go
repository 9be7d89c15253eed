// Package shell writes the Homebrew environment hook into the user's shell
// profile.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// marker identifies the block brewsync appends, so repeated runs never
// duplicate it.
const marker = "# brewsync: homebrew environment"

// EnsureShellEnv makes sure the user's shell profile evaluates brew
// shellenv for the given Homebrew prefix. A fresh Homebrew install is not
// on PATH until this runs in a new shell.
// Returns (added bool, configFile string, err error).
// added=false means the profile already carried the hook (no change made).
func EnsureShellEnv(prefix string) (added bool, configFile string, err error) {
	// Detect the user's shell and choose the profile file accordingly.
	shellPath := os.Getenv("SHELL")
	shellName := filepath.Base(shellPath)

	home, err := os.UserHomeDir()
	if err != nil {
		return false, "", fmt.Errorf("cannot determine home directory: %w", err)
	}

	var profilePath string
	var isFish bool

	switch shellName {
	case "zsh":
		profilePath = filepath.Join(home, ".zprofile")
	case "bash":
		profilePath = filepath.Join(home, ".bash_profile")
	case "fish":
		profilePath = filepath.Join(home, ".config", "fish", "conf.d", "brewsync.fish")
		isFish = true
	default:
		profilePath = filepath.Join(home, ".profile")
	}

	// Ensure the parent directory exists (needed for the fish conf.d path).
	if err := os.MkdirAll(filepath.Dir(profilePath), 0755); err != nil {
		return false, "", fmt.Errorf("cannot create profile directory %s: %w", filepath.Dir(profilePath), err)
	}

	// Skip when the hook is already in place.
	existing, readErr := os.ReadFile(profilePath)
	if readErr == nil && strings.Contains(string(existing), marker) {
		return false, profilePath, nil
	}

	brewExe := filepath.Join(prefix, "bin", "brew")
	var block string
	if isFish {
		block = fmt.Sprintf("\n%s\neval (%s shellenv)\n", marker, brewExe)
	} else {
		block = fmt.Sprintf("\n%s\neval \"$(%s shellenv)\"\n", marker, brewExe)
	}

	f, err := os.OpenFile(profilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return false, "", fmt.Errorf("cannot open profile %s: %w", profilePath, err)
	}
	defer f.Close()

	if _, err := fmt.Fprint(f, block); err != nil {
		return false, "", fmt.Errorf("cannot write to profile %s: %w", profilePath, err)
	}

	return true, profilePath, nil
}
