package app

import "errors"

// Exit codes for the brewsync entry points. The up and install commands
// document their own tables in their long help; both share 0 for success
// and 1 for generic failures, usage errors included.
const (
	ExitSuccess   = 0
	ExitFailure   = 1
	ExitToolchain = 2
	ExitUpdate    = 3
)

// ExitError couples an error with the process exit code it should produce.
// Command RunE functions return it when an outcome maps to a documented
// code; plain errors default to ExitFailure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitStatus translates an error returned by Execute into a process exit
// code.
func ExitStatus(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
