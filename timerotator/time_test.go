package timerotator_test

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golift.io/rollover/compressor"
	"golift.io/rollover/filer"
	"golift.io/rollover/mocks"
	"golift.io/rollover/timerotator"
)

var errTest = fmt.Errorf("this is a test error")

func TestDirs(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	layout := &timerotator.Layout{}
	dirs, err := layout.Dirs(filepath.Join("/", "var", "log", "service.log"))
	assert.NoError(err, "this should not producce an error")
	assert.Equal([]string{filepath.Join("/", "var", "log")}, dirs, "the wrong directories were returned")
	assert.Equal(filer.Default(), layout.Filer)

	_, err = layout.Dirs("")
	assert.ErrorIs(err, timerotator.ErrBadPath)
}

func TestRotateOne(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockFiler := mocks.NewMockFiler(mockCtrl)
	layout := &timerotator.Layout{Filer: mockFiler, Compression: compressor.Zip}
	logFile := filepath.Join("/", "var", "log", "service.log")
	newName := logFile + ".2024-03-05"

	gomock.InOrder(
		mockFiler.EXPECT().Stat(newName).Return(nil, os.ErrNotExist),
		mockFiler.EXPECT().Stat(newName+".zip").Return(nil, os.ErrNotExist),
		mockFiler.EXPECT().Rename(logFile, newName),
	)

	file, err := layout.Rotate(logFile, ".2024-03-05")
	assert.Equal(newName, file)
	assert.NoError(err)
}

func TestRotateCollision(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockFiler := mocks.NewMockFiler(mockCtrl)
	layout := &timerotator.Layout{Filer: mockFiler, Compression: compressor.Gzip}
	logFile := filepath.Join("/", "var", "log", "service.log")
	newName := logFile + ".2024-03-05"

	gomock.InOrder(
		// The archive of the first segment with this suffix already exists.
		mockFiler.EXPECT().Stat(newName).Return(nil, os.ErrNotExist),
		mockFiler.EXPECT().Stat(newName+".gz").Return(&filer.FileInfo{}, nil),
		mockFiler.EXPECT().Stat(newName+".1").Return(nil, os.ErrNotExist),
		mockFiler.EXPECT().Stat(newName+".1.gz").Return(nil, os.ErrNotExist),
		mockFiler.EXPECT().Rename(logFile, newName+".1").Return(errTest),
	)

	file, err := layout.Rotate(logFile, ".2024-03-05")
	assert.Empty(file)
	assert.ErrorIs(err, errTest)
}

// Make fake directory entries to fake delete.
func testFakeFiles(mockCtrl *gomock.Controller, names ...string) []fs.DirEntry {
	files := make([]fs.DirEntry, len(names))

	for idx, name := range names {
		fake := mocks.NewMockDirEntry(mockCtrl)
		fake.EXPECT().Name().Return(name).AnyTimes()
		fake.EXPECT().IsDir().Return(name == "service.log.d").AnyTimes()
		files[idx] = fake
	}

	return files
}

func TestPrune(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockFiler := mocks.NewMockFiler(mockCtrl)
	layout := &timerotator.Layout{Filer: mockFiler}
	dir := filepath.Join("/", "var", "log")

	// Unsorted on purpose; only service.log.* files are segments.
	mockFiler.EXPECT().ReadDir(dir).Return(testFakeFiles(mockCtrl,
		"service.log.2024-03-04.zip",
		"other.log.2024-03-01.zip",
		"service.log",
		"service.log.2024-03-01.zip",
		"service.log.d",
		"service.log.2024-03-03",
		"service.log.2024-03-02.zip",
	), nil)
	mockFiler.EXPECT().Remove(filepath.Join(dir, "service.log.2024-03-01.zip"))
	mockFiler.EXPECT().Remove(filepath.Join(dir, "service.log.2024-03-02.zip")).Return(errTest)

	err := layout.Prune(filepath.Join(dir, "service.log"), 2)
	assert.ErrorIs(err, errTest, "removal errors must be returned")
}

func TestPruneEdges(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockFiler := mocks.NewMockFiler(mockCtrl)
	layout := &timerotator.Layout{Filer: mockFiler}
	dir := filepath.Join("/", "var", "log")
	names := []string{"service.log.1", "service.log.2", "service.log.3"}

	// Fewer segments than keep: nothing is deleted.
	mockFiler.EXPECT().ReadDir(dir).Return(testFakeFiles(mockCtrl, names...), nil)
	assert.NoError(layout.Prune(filepath.Join(dir, "service.log"), 5))

	// keep <= 0 deletes everything.
	mockFiler.EXPECT().ReadDir(dir).Return(testFakeFiles(mockCtrl, names...), nil).Times(2)

	for _, name := range names {
		mockFiler.EXPECT().Remove(filepath.Join(dir, name)).Times(2)
	}

	assert.NoError(layout.Prune(filepath.Join(dir, "service.log"), 0))
	assert.NoError(layout.Prune(filepath.Join(dir, "service.log"), -1))

	// A directory that cannot be listed.
	mockFiler.EXPECT().ReadDir(dir).Return(nil, errTest)
	assert.ErrorIs(layout.Prune(filepath.Join(dir, "service.log"), 1), errTest)
}

func TestPruneDisk(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := t.TempDir()
	logFile := filepath.Join(dir, "app.log")
	layout := &timerotator.Layout{}
	_, _ = layout.Dirs(logFile)

	for _, name := range []string{"app.log", "app.log.2024-01", "app.log.2024-02.zip", "app.log.2024-03.zip", "zzz.log"} {
		assert.NoError(os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	assert.NoError(layout.Prune(logFile, 2))

	segments, err := layout.Segments(logFile)
	assert.NoError(err)
	assert.Equal([]string{filepath.Join(dir, "app.log.2024-02.zip"), filepath.Join(dir, "app.log.2024-03.zip")}, segments)
	assert.FileExists(logFile, "the active file is never pruned")
	assert.FileExists(filepath.Join(dir, "zzz.log"))
}
