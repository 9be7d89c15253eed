package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/blackwell-systems/brewsync/internal/brew"
)

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: ExitSuccess,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: ExitFailure,
		},
		{
			name: "unsupported platform sentinel",
			err:  fmt.Errorf("preflight: %w", brew.ErrUnsupportedPlatform),
			want: ExitFailure,
		},
		{
			name: "toolchain exit error",
			err:  &ExitError{Code: ExitToolchain, Err: brew.ErrBootstrapFailed},
			want: ExitToolchain,
		},
		{
			name: "update exit error",
			err:  &ExitError{Code: ExitUpdate, Err: errors.New("metadata update failed")},
			want: ExitUpdate,
		},
		{
			name: "wrapped exit error",
			err:  fmt.Errorf("context: %w", &ExitError{Code: ExitToolchain, Err: brew.ErrBrewMissing}),
			want: ExitToolchain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitStatus(tt.err); got != tt.want {
				t.Errorf("ExitStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	err := &ExitError{Code: ExitToolchain, Err: brew.ErrBrewMissing}

	if !errors.Is(err, brew.ErrBrewMissing) {
		t.Error("expected errors.Is to see through ExitError")
	}

	if err.Error() != brew.ErrBrewMissing.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), brew.ErrBrewMissing.Error())
	}
}

func TestExitCodeValues(t *testing.T) {
	// The exit codes are a published contract; scripts depend on them.
	if ExitSuccess != 0 || ExitFailure != 1 || ExitToolchain != 2 || ExitUpdate != 3 {
		t.Errorf("exit codes = %d/%d/%d/%d, want 0/1/2/3",
			ExitSuccess, ExitFailure, ExitToolchain, ExitUpdate)
	}
}
