package filer_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golift.io/rollover/filer"
)

// Our interface must satify a filer.Filer.
var _ filer.Filer = (*MyFiler)(nil)

// Create a custom Filer that overrides only the Rename method.
type MyFiler struct {
	filer.File
}

func (f *MyFiler) Rename(oldpath, newpath string) error {
	fmt.Printf("Renamed %s -> %s\n", oldpath, newpath)

	return nil
}

func ExampleFile() {
	// Pass s into any package that uses a filer.Filer.
	s := &MyFiler{}
	_ = s.Rename("old.file", "new.file")
	// Output:
	// Renamed old.file -> new.file
}

func TestStat(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := t.TempDir()
	name := filepath.Join(dir, "app.log")
	assert.NoError(os.WriteFile(name, []byte("hello"), 0o600))

	info, err := filer.Default().Stat(name)
	if !assert.NoError(err) {
		return
	}

	assert.EqualValues(5, info.Size())
	assert.False(info.CreateTime.IsZero())
	assert.WithinDuration(time.Now(), info.CreateTime, time.Hour)

	_, err = filer.Stat(filepath.Join(dir, "missing.log"))
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestReadDirSorted(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := t.TempDir()
	for _, name := range []string{"c.log", "a.log", "b.log"} {
		assert.NoError(os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	entries, err := filer.Default().ReadDir(dir)
	assert.NoError(err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	assert.Equal([]string{"a.log", "b.log", "c.log"}, names)
}
