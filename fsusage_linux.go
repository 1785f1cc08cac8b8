// Copyright (c) 2012 VMware, Inc.

package fsusage

import (
	"strings"

	"golang.org/x/sys/unix"
	"k8s.io/mount-utils"
)

func (self *FileSystemList) Get() error {
	return self.GetFrom(MountsFile)
}

// GetFrom reads the mount table at path, in table order.
func (self *FileSystemList) GetFrom(path string) error {
	mounts, err := mount.ListProcMounts(path)
	if err != nil {
		return &MountTableError{Path: path, Err: err}
	}

	fslist := make([]FileSystem, 0, len(mounts))

	for _, mp := range mounts {
		fs := FileSystem{}
		fs.DevName = unescapeMountField(mp.Device)
		fs.DirName = unescapeMountField(mp.Path)
		fs.TypeName = unescapeMountField(mp.Type)
		fs.Options = unescapeMountField(strings.Join(mp.Opts, ","))
		fs.Freq = mp.Freq
		fs.PassNo = mp.Pass

		fslist = append(fslist, fs)
	}

	self.List = fslist

	return nil
}

func (self *FileSystemUsage) Get(path string) error {
	stat := unix.Statfs_t{}
	if err := unix.Statfs(path, &stat); err != nil {
		return &StatsQueryError{Path: path, Err: err}
	}

	self.BlockSize = uint64(stat.Bsize)
	self.Total = stat.Blocks
	self.Free = stat.Bfree
	self.Avail = stat.Bavail
	self.Files = stat.Files
	self.FreeFiles = stat.Ffree
	// statfs has no f_favail; statvfs reports f_ffree there on Linux.
	self.AvailFiles = stat.Ffree

	return nil
}
