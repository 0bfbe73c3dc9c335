package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrNoValidVersion means no entry qualifies as the latest release.
	ErrNoValidVersion = errors.New("no valid latest version found")
	// ErrMissingTarget means the docs directory for the latest release is absent.
	ErrMissingTarget = errors.New("target directory does not exist")
	// ErrForeignLatest means the latest path is occupied by something other than a symlink.
	ErrForeignLatest = errors.New("latest path exists but is not a symlink")
)

// LinkError reports a failure to create or replace the latest symlink.
type LinkError struct {
	Link   string
	Target string
	Err    error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("creating symlink %s -> %s: %v", e.Link, e.Target, e.Err)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}
