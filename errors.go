package fsusage

import (
	"fmt"
	"strings"
)

// UsageError reports conflicting or unknown command line options.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return "invalid usage: " + e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// MountTableError is returned when the mount table cannot be read.
type MountTableError struct {
	Path string
	Err  error
}

func (e *MountTableError) Error() string {
	return fmt.Sprintf("mount table (%s): %s", e.Path, e.Err)
}

func (e *MountTableError) Unwrap() error {
	return e.Err
}

// StatsQueryError is returned when statfs fails for a mount point.
type StatsQueryError struct {
	Path string
	Err  error
}

func (e *StatsQueryError) Error() string {
	return fmt.Sprintf("statfs %s: %s", e.Path, e.Err)
}

func (e *StatsQueryError) Unwrap() error {
	return e.Err
}

// SelectorNotFoundError lists the selectors that matched no mount entry.
type SelectorNotFoundError struct {
	Selectors []string
}

func (e *SelectorNotFoundError) Error() string {
	return "filesystems not found: " + strings.Join(e.Selectors, ", ")
}
