package timerotator

import (
	"sort"
)

// backupFiles is used to satisfy a sort.Interface.
type backupFiles struct {
	Files []string // full paths.
	names []string // base names, the sort key.
}

// Len is part of sort.Interface.
func (b *backupFiles) Len() int {
	return len(b.Files)
}

// Swap is part of sort.Interface. We track two slices, so swap them both!
func (b *backupFiles) Swap(i, j int) {
	b.Files[i], b.Files[j] = b.Files[j], b.Files[i]
	b.names[i], b.names[j] = b.names[j], b.names[i]
}

// Less is part of the sort.Sort interface.
// Suffixes are rendered time stamps, so name order is age order
// for patterns written most-significant field first.
// We always want to return the slice with the oldest files first.
func (b *backupFiles) Less(i, j int) bool {
	return b.names[i] < b.names[j]
}

// Our backupFiles interface must satify a sort.Interface.
var _ sort.Interface = (*backupFiles)(nil)
