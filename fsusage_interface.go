package fsusage

import (
	"errors"
)

var ErrNotImplemented = errors.New("fsusage: not implemented")

// Source supplies the mount table and per-mount statistics to a Reporter.
type Source interface {
	ListFileSystems() ([]FileSystem, error)
	GetFileSystemUsage(string) (FileSystemUsage, error)
}
