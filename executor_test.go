package rollover_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golift.io/rollover"
	"golift.io/rollover/compressor"
	"golift.io/rollover/filer"
	"golift.io/rollover/mocks"
	"golift.io/rollover/timerotator"
)

func testExecutor(t *testing.T, appender rollover.Appender, format compressor.Format) *rollover.Executor {
	t.Helper()

	return &rollover.Executor{
		Appender: appender,
		Layout:   &timerotator.Layout{Filer: filer.Default(), Compression: format},
		Log:      zaptest.NewLogger(t),
	}
}

func TestExecutorRollover(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	dir := t.TempDir()
	logFile := filepath.Join(dir, "app.log")

	for _, name := range []string{"app.log", "app.log.2024-03-03.gz", "app.log.2024-03-04.gz"} {
		require.NoError(os.WriteFile(filepath.Join(dir, name), []byte("data\n"), 0o600))
	}

	appender := mocks.NewMockAppender(mockCtrl)
	gomock.InOrder(
		appender.EXPECT().CurrentFile().Return(logFile),
		appender.EXPECT().SetActiveFile(""),
		appender.EXPECT().SetActiveFile(logFile),
	)

	testExecutor(t, appender, compressor.Gzip).Rollover(".2024-03-05", 2)

	assert.FileExists(logFile + ".2024-03-05.gz")
	assert.NoFileExists(logFile + ".2024-03-05")
	assert.NoFileExists(logFile+".2024-03-03.gz", "the oldest segment must be pruned")
	assert.FileExists(logFile + ".2024-03-04.gz")
}

func TestExecutorNoActiveFile(t *testing.T) {
	t.Parallel()

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	appender := mocks.NewMockAppender(mockCtrl)
	appender.EXPECT().CurrentFile().Return("")
	appender.EXPECT().ReportError(gomock.Any(), gomock.Any(), rollover.KindOpenFailure).
		Do(func(_ string, err error, _ rollover.ErrorKind) {
			assert.ErrorIs(t, err, rollover.ErrOpenFailure)
		})

	testExecutor(t, appender, compressor.Zip).Rollover(".2024-03-05", 1)
}

func TestExecutorRenameFailure(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	// The file is not on disk, so it cannot be renamed.
	logFile := filepath.Join(t.TempDir(), "missing.log")

	appender := mocks.NewMockAppender(mockCtrl)
	gomock.InOrder(
		appender.EXPECT().CurrentFile().Return(logFile),
		appender.EXPECT().SetActiveFile(""),
		appender.EXPECT().ReportError(gomock.Any(), gomock.Any(), rollover.KindOpenFailure).
			Do(func(_ string, err error, _ rollover.ErrorKind) {
				assert.ErrorIs(err, os.ErrNotExist)
			}),
		appender.EXPECT().SetActiveFile(logFile),
	)

	testExecutor(t, appender, compressor.Zip).Rollover(".2024-03-05", 1)
	assert.NoFileExists(logFile + ".2024-03-05")
}

func TestExecutorCompressFailure(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logFile := filepath.Join(t.TempDir(), "app.log")
	require.NoError(os.WriteFile(logFile, []byte("data\n"), 0o600))

	appender := mocks.NewMockAppender(mockCtrl)
	gomock.InOrder(
		appender.EXPECT().CurrentFile().Return(logFile),
		appender.EXPECT().SetActiveFile(""),
		appender.EXPECT().ReportError(gomock.Any(), gomock.Any(), rollover.KindGeneric).
			Do(func(_ string, err error, _ rollover.ErrorKind) {
				assert.ErrorIs(err, rollover.ErrCompression)
				assert.ErrorIs(err, compressor.ErrUnknownFormat)
			}),
		appender.EXPECT().SetActiveFile(logFile),
	)

	testExecutor(t, appender, compressor.Format("rar")).Rollover(".2024-03-05", 1)
	assert.FileExists(logFile+".2024-03-05", "a segment that failed to compress must be kept")
}

func TestExecutorReopenFailure(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logFile := filepath.Join(t.TempDir(), "app.log")
	require.NoError(os.WriteFile(logFile, []byte("data\n"), 0o600))

	appender := mocks.NewMockAppender(mockCtrl)
	gomock.InOrder(
		appender.EXPECT().CurrentFile().Return(logFile),
		appender.EXPECT().SetActiveFile(""),
		appender.EXPECT().SetActiveFile(logFile).Return(errTest),
		appender.EXPECT().ReportError(gomock.Any(), gomock.Any(), rollover.KindOpenFailure).
			Do(func(_ string, err error, _ rollover.ErrorKind) {
				assert.ErrorIs(err, rollover.ErrOpenFailure)
				assert.ErrorIs(err, errTest)
			}),
	)

	testExecutor(t, appender, compressor.None).Rollover(".2024-03-05", 1)
	assert.FileExists(logFile + ".2024-03-05")
}

// openFiler records every file it opens.
type openFiler struct {
	filer.File
	opened []string
}

func (o *openFiler) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	o.opened = append(o.opened, name)
	return o.File.OpenFile(name, flag, perm)
}

func TestExecutorUsesLayoutFiler(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logFile := filepath.Join(t.TempDir(), "app.log")
	require.NoError(os.WriteFile(logFile, []byte("data\n"), 0o600))

	appender := mocks.NewMockAppender(mockCtrl)
	gomock.InOrder(
		appender.EXPECT().CurrentFile().Return(logFile),
		appender.EXPECT().SetActiveFile(""),
		appender.EXPECT().SetActiveFile(logFile),
	)

	files := &openFiler{}
	executor := testExecutor(t, appender, compressor.Zip)
	executor.Layout.Filer = files
	executor.Rollover(".2024-03-05", 1)

	segment := logFile + ".2024-03-05"
	assert.Equal([]string{segment, segment + ".zip"}, files.opened, "compression must use the layout's filer")
	assert.FileExists(segment + ".zip")
}
