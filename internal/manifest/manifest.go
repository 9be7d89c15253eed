// Package manifest loads the declared package set brewsync reconciles the
// machine against.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/brewsync/internal/brew"
	"gopkg.in/yaml.v3"
)

// FileName is the manifest file brewsync looks for inside its config
// directory.
const FileName = "packages.yaml"

// BuiltinSource names the manifest origin when no file was found and the
// built-in defaults were used.
const BuiltinSource = "built-in defaults"

// Manifest declares the formulae and casks a machine should have installed.
// Order matters: entries are processed in the order they are written,
// formulae before casks.
type Manifest struct {
	Formulae []string `yaml:"formulae"`
	Casks    []string `yaml:"casks"`
}

// Default returns the built-in package set used when no manifest file
// exists. Writing a packages.yaml is the intended way to customize it; the
// defaults cover a common developer setup.
func Default() *Manifest {
	return &Manifest{
		Formulae: []string{
			"git",
			"curl",
			"wget",
			"jq",
			"ripgrep",
			"fzf",
			"gh",
			"tree",
			"htop",
			"coreutils",
		},
		Casks: []string{
			"rectangle",
			"iterm2",
			"visual-studio-code",
			"firefox",
		},
	}
}

// Dir returns the brewsync config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/brewsync if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "brewsync"), nil
}

// DefaultPath returns the standard manifest location inside the config
// directory.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	return &m, nil
}

// Resolve picks the manifest to use. An explicit path wins and must exist;
// otherwise the default location is tried, and when nothing is there the
// built-in defaults apply. The returned source says where the manifest came
// from.
func Resolve(explicit string) (*Manifest, string, error) {
	if explicit != "" {
		m, err := Load(explicit)
		if err != nil {
			return nil, "", err
		}
		return m, explicit, nil
	}

	path, err := DefaultPath()
	if err != nil {
		// No home directory to look in; the defaults still work.
		return Default(), BuiltinSource, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), BuiltinSource, nil
		}
		return nil, "", fmt.Errorf("failed to stat manifest: %w", err)
	}

	m, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return m, path, nil
}

// Validate rejects identifiers brew would misinterpret.
func (m *Manifest) Validate() error {
	for _, name := range m.Formulae {
		if err := validateIdentifier(name); err != nil {
			return fmt.Errorf("formula %q: %w", name, err)
		}
	}
	for _, name := range m.Casks {
		if err := validateIdentifier(name); err != nil {
			return fmt.Errorf("cask %q: %w", name, err)
		}
	}
	return nil
}

// Names returns the declared identifiers for the category in declaration
// order.
func (m *Manifest) Names(cat brew.Category) []string {
	switch cat {
	case brew.Formula:
		return m.Formulae
	case brew.Cask:
		return m.Casks
	}
	return nil
}

// Total returns the number of declared identifiers across both categories.
func (m *Manifest) Total() int {
	return len(m.Formulae) + len(m.Casks)
}

func validateIdentifier(name string) error {
	if name == "" {
		return errors.New("empty identifier")
	}
	if strings.ContainsAny(name, " \t\n") {
		return errors.New("identifier contains whitespace")
	}
	return nil
}
