package fsusage

// Selector names a mount point or a device given by the caller. Matched
// becomes true the first time an entry satisfies it and is never cleared.
type Selector struct {
	Text    string
	Matched bool
}

// Selectors is the ordered selector collection of one run.
type Selectors []Selector

func NewSelectors(args []string) Selectors {
	selectors := make(Selectors, 0, len(args))
	for _, arg := range args {
		selectors = append(selectors, Selector{Text: arg})
	}
	return selectors
}

// ShouldInclude reports whether fs is selected. With no selectors every
// entry is. Otherwise each selector equal to the device or the mount point
// is marked as matched, and the entry is included if any of them was.
func (s Selectors) ShouldInclude(fs FileSystem) bool {
	if len(s) == 0 {
		return true
	}

	include := false
	for i := range s {
		if s[i].Text != fs.DevName && s[i].Text != fs.DirName {
			continue
		}
		s[i].Matched = true
		include = true
	}
	return include
}

// Unmatched returns the selectors no entry satisfied, in caller order.
func (s Selectors) Unmatched() []string {
	var unmatched []string
	for _, selector := range s {
		if !selector.Matched {
			unmatched = append(unmatched, selector.Text)
		}
	}
	return unmatched
}
