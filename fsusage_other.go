//go:build !linux

package fsusage

func (self *FileSystemList) Get() error {
	return self.GetFrom(MountsFile)
}

func (self *FileSystemList) GetFrom(path string) error {
	return &MountTableError{Path: path, Err: ErrNotImplemented}
}

func (self *FileSystemUsage) Get(path string) error {
	return &StatsQueryError{Path: path, Err: ErrNotImplemented}
}
