package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureShellEnv_Zsh(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/bin/zsh")

	added, configFile, err := EnsureShellEnv("/opt/homebrew")
	if err != nil {
		t.Fatalf("EnsureShellEnv() error = %v, want nil", err)
	}
	if !added {
		t.Error("EnsureShellEnv() added = false, want true for fresh profile")
	}

	wantPath := filepath.Join(home, ".zprofile")
	if configFile != wantPath {
		t.Errorf("configFile = %q, want %q", configFile, wantPath)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		t.Fatalf("failed to read profile: %v", err)
	}
	if !strings.Contains(string(content), marker) {
		t.Errorf("profile missing marker comment:\n%s", content)
	}
	if !strings.Contains(string(content), `eval "$(/opt/homebrew/bin/brew shellenv)"`) {
		t.Errorf("profile missing shellenv eval:\n%s", content)
	}
}

func TestEnsureShellEnv_Bash(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/bin/bash")

	_, configFile, err := EnsureShellEnv("/usr/local")
	if err != nil {
		t.Fatalf("EnsureShellEnv() error = %v, want nil", err)
	}

	wantPath := filepath.Join(home, ".bash_profile")
	if configFile != wantPath {
		t.Errorf("configFile = %q, want %q", configFile, wantPath)
	}
}

func TestEnsureShellEnv_Fish(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/usr/local/bin/fish")

	added, configFile, err := EnsureShellEnv("/opt/homebrew")
	if err != nil {
		t.Fatalf("EnsureShellEnv() error = %v, want nil", err)
	}
	if !added {
		t.Error("EnsureShellEnv() added = false, want true")
	}

	wantPath := filepath.Join(home, ".config", "fish", "conf.d", "brewsync.fish")
	if configFile != wantPath {
		t.Errorf("configFile = %q, want %q", configFile, wantPath)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		t.Fatalf("failed to read profile: %v", err)
	}
	if !strings.Contains(string(content), "eval (/opt/homebrew/bin/brew shellenv)") {
		t.Errorf("fish profile should use fish eval syntax:\n%s", content)
	}
}

func TestEnsureShellEnv_UnknownShellFallsBackToProfile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/bin/tcsh")

	_, configFile, err := EnsureShellEnv("/opt/homebrew")
	if err != nil {
		t.Fatalf("EnsureShellEnv() error = %v, want nil", err)
	}

	wantPath := filepath.Join(home, ".profile")
	if configFile != wantPath {
		t.Errorf("configFile = %q, want %q", configFile, wantPath)
	}
}

func TestEnsureShellEnv_Idempotent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/bin/zsh")

	added, _, err := EnsureShellEnv("/opt/homebrew")
	if err != nil {
		t.Fatalf("first EnsureShellEnv() error = %v", err)
	}
	if !added {
		t.Error("first call added = false, want true")
	}

	added, configFile, err := EnsureShellEnv("/opt/homebrew")
	if err != nil {
		t.Fatalf("second EnsureShellEnv() error = %v", err)
	}
	if added {
		t.Error("second call added = true, want false")
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		t.Fatalf("failed to read profile: %v", err)
	}
	if got := strings.Count(string(content), marker); got != 1 {
		t.Errorf("marker appears %d times, want exactly 1", got)
	}
}

func TestEnsureShellEnv_PreservesExistingContent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/bin/zsh")

	profile := filepath.Join(home, ".zprofile")
	if err := os.WriteFile(profile, []byte("export EDITOR=vim\n"), 0644); err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	if _, _, err := EnsureShellEnv("/opt/homebrew"); err != nil {
		t.Fatalf("EnsureShellEnv() error = %v", err)
	}

	content, err := os.ReadFile(profile)
	if err != nil {
		t.Fatalf("failed to read profile: %v", err)
	}
	if !strings.Contains(string(content), "export EDITOR=vim") {
		t.Errorf("existing content was lost:\n%s", content)
	}
	if !strings.Contains(string(content), marker) {
		t.Errorf("hook was not appended:\n%s", content)
	}
}
