// Package timerotator names and prunes time-stamped log segments.
// A segment is the active log file renamed with a suffix rendered from the
// period it covers, e.g. service.log.2024-03-05. Compressed segments add the
// archive extension: service.log.2024-03-05.zip. Retention is by count:
// every sibling whose name starts with the log file's name is a segment.
package timerotator

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"golift.io/rollover/compressor"
	"golift.io/rollover/filer"
)

// Layout defines how time-stamped segments are named and pruned.
type Layout struct {
	filer.Filer

	// Compression is used to find archives that would collide with a new segment.
	Compression compressor.Format
}

// Dirs validates input data and returns the list of directories being used.
func (l *Layout) Dirs(fileName string) ([]string, error) {
	if l.Filer == nil {
		l.Filer = filer.Default()
	}

	if fileName == "" {
		return nil, fmt.Errorf("%w: empty file name", ErrBadPath)
	}

	return []string{filepath.Dir(fileName)}, nil
}

// Rotate renames fileName to fileName+suffix and returns the new name. If a
// segment or archive with that name exists, a counter is appended instead of
// overwriting it: service.log.2024-03-05.1.
func (l *Layout) Rotate(fileName, suffix string) (string, error) {
	newFile := l.available(fileName + suffix)

	err := l.Rename(fileName, newFile)
	if err != nil {
		return "", fmt.Errorf("error renaming log: %w", err)
	}

	return newFile, nil
}

// Prune keeps the newest keep segments of fileName and deletes the rest.
// A keep of zero or less deletes every segment. The active file itself is
// never a segment. Every removal is attempted; errors are combined.
func (l *Layout) Prune(fileName string, keep int) error {
	logFiles, err := l.getAllLogFiles(fileName)
	if err != nil {
		return err
	}

	sort.Sort(logFiles)

	var errs error

	for idx := 0; idx < logFiles.Len()-max(keep, 0); idx++ {
		if err := l.Remove(logFiles.Files[idx]); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("error removing file: %w", err))
		}
	}

	return errs
}

// Segments returns the paths of the rotated segments of fileName, oldest first.
func (l *Layout) Segments(fileName string) ([]string, error) {
	logFiles, err := l.getAllLogFiles(fileName)
	if err != nil {
		return nil, err
	}

	sort.Sort(logFiles)

	return logFiles.Files, nil
}

// available returns name, or name with a counter appended, such that neither
// it nor its archive exists.
func (l *Layout) available(name string) string {
	ext := l.Compression.Ext()

	candidate := name
	for idx := 1; l.exists(candidate) || (ext != "" && l.exists(candidate+ext)); idx++ {
		candidate = name + "." + strconv.Itoa(idx)
	}

	return candidate
}

func (l *Layout) exists(name string) bool {
	_, err := l.Stat(name)
	return err == nil
}

// getAllLogFiles finds the siblings of fileName whose names start with its name.
func (l *Layout) getAllLogFiles(fileName string) (*backupFiles, error) {
	var (
		list   = &backupFiles{Files: []string{}, names: []string{}}
		dir    = filepath.Dir(fileName)
		prefix = filepath.Base(fileName)
	)

	fileList, err := l.ReadDir(dir)
	if err != nil {
		return list, fmt.Errorf("listing segments: %w", err)
	}

	for _, entry := range fileList {
		name := entry.Name()
		if name == prefix || !strings.HasPrefix(name, prefix) || entry.IsDir() {
			continue // not our file.
		}

		list.Files = append(list.Files, filepath.Join(dir, name))
		list.names = append(list.names, name)
	}

	return list, nil
}
