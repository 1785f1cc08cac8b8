// Copyright (c) 2012 VMware, Inc.

package fsusage

import "strings"

// MountsFile is the mount table read by FileSystemList.Get.
var MountsFile = "/proc/self/mounts"

// FileSystem is one entry of the mount table.
type FileSystem struct {
	DirName  string
	DevName  string
	TypeName string
	Options  string
	Freq     int
	PassNo   int
}

type FileSystemList struct {
	List []FileSystem
}

// FileSystemUsage holds raw statfs counters. Block counts are in units of
// BlockSize bytes.
type FileSystemUsage struct {
	BlockSize  uint64
	Total      uint64
	Free       uint64
	Avail      uint64
	Files      uint64
	FreeFiles  uint64
	AvailFiles uint64
}

func (u *FileSystemUsage) Used() uint64 {
	return usedOf(u.Total, u.Free)
}

func (u *FileSystemUsage) UsedFiles() uint64 {
	return usedOf(u.Files, u.FreeFiles)
}

// usedOf is total-free, or 0 when a filesystem reports more free than total.
func usedOf(total, free uint64) uint64 {
	if free > total {
		return 0
	}
	return total - free
}

// IsPseudo reports whether the entry looks synthetic: its source or its
// mount point is not an absolute path.
func IsPseudo(fs FileSystem) bool {
	return !strings.HasPrefix(fs.DevName, "/") || !strings.HasPrefix(fs.DirName, "/")
}

// Filter returns the entries of list that should be reported. Pseudo
// filesystems are dropped unless pseudoFS is set.
func Filter(list []FileSystem, pseudoFS bool) []FileSystem {
	if pseudoFS {
		return list
	}
	kept := make([]FileSystem, 0, len(list))
	for _, fs := range list {
		if IsPseudo(fs) {
			continue
		}
		kept = append(kept, fs)
	}
	return kept
}
