package fsusage

// ConcreteSource reads the live mount table and queries statfs.
type ConcreteSource struct {
	// MountsFile overrides the package level MountsFile when set.
	MountsFile string
}

func (c *ConcreteSource) ListFileSystems() ([]FileSystem, error) {
	path := c.MountsFile
	if path == "" {
		path = MountsFile
	}

	fslist := FileSystemList{}
	if err := fslist.GetFrom(path); err != nil {
		return nil, err
	}
	return fslist.List, nil
}

func (c *ConcreteSource) GetFileSystemUsage(path string) (FileSystemUsage, error) {
	usage := FileSystemUsage{}
	err := usage.Get(path)
	return usage, err
}
