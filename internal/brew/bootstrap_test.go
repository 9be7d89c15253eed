package brew

import (
	"errors"
	"strings"
	"testing"
)

func TestVerifyPlatform(t *testing.T) {
	tests := []struct {
		goos    string
		wantErr bool
	}{
		{"darwin", false},
		{"linux", true},
		{"windows", true},
		{"freebsd", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			err := verifyPlatform(tt.goos)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedPlatform) {
					t.Errorf("verifyPlatform(%q) error = %v, want ErrUnsupportedPlatform", tt.goos, err)
				}
			} else if err != nil {
				t.Errorf("verifyPlatform(%q) error = %v, want nil", tt.goos, err)
			}
		})
	}
}

func TestVerifyPlatformErrorNamesOS(t *testing.T) {
	err := verifyPlatform("linux")
	if err == nil {
		t.Fatal("verifyPlatform(linux) = nil, want error")
	}
	if !strings.Contains(err.Error(), "linux") {
		t.Errorf("error %q should name the rejected OS", err.Error())
	}
}

func TestDefaultPrefix(t *testing.T) {
	tests := []struct {
		arch   string
		want   string
		wantOK bool
	}{
		{"arm64", "/opt/homebrew", true},
		{"amd64", "/usr/local", true},
		{"riscv64", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.arch, func(t *testing.T) {
			got, ok := DefaultPrefix(tt.arch)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("DefaultPrefix(%q) = (%q, %v), want (%q, %v)",
					tt.arch, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestInstallerCommand(t *testing.T) {
	cmd := installerCommand()

	if !strings.Contains(cmd, installScriptURL) {
		t.Errorf("installerCommand() = %q, should reference %q", cmd, installScriptURL)
	}
	if !strings.Contains(cmd, "curl -fsSL") {
		t.Errorf("installerCommand() = %q, should fetch via curl -fsSL", cmd)
	}
	if !strings.HasPrefix(cmd, `/bin/bash -c`) {
		t.Errorf("installerCommand() = %q, should run through /bin/bash -c", cmd)
	}
}
