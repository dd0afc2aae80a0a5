package rollover

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golift.io/rollover/compressor"
	"golift.io/rollover/timerotator"
)

// errNoActiveFile is reported when a rollover finds nothing open to rotate.
var errNoActiveFile = errors.New("no active log file")

// Executor performs one rollover of an Appender's active file:
// close, rename with the suffix, compress, prune, and reopen.
// Every failure is sent to the Appender's ReportError; none are fatal.
type Executor struct {
	Appender Appender
	Layout   *timerotator.Layout // Layout.Compression selects the archive format.
	Log      *zap.Logger         // nil uses the global zap logger.
}

// Rollover satisfies the Rotatorr interface.
func (e *Executor) Rollover(suffix string, keep int) {
	path := e.Appender.CurrentFile()
	if path == "" {
		e.report("Unable to rotate log file", errNoActiveFile, KindOpenFailure)
		return
	}

	// Close first; some platforms will not rename an open file.
	if err := e.Appender.SetActiveFile(""); err != nil {
		e.report("Unable to close log file", err, KindOpenFailure)
		e.reopen(path)

		return
	}

	segment, err := e.Layout.Rotate(path, suffix)
	if err != nil {
		// Nothing moved; keep appending to the old file under its old name.
		e.report("Unable to rotate log file", err, KindOpenFailure)
		e.reopen(path)

		return
	}

	archive := segment

	if report, err := compressor.CompressWith(e.Layout.Filer, segment, e.Layout.Compression); err != nil {
		e.report("Unable to compress log file", fmt.Errorf("%w: %w", ErrCompression, err), KindGeneric)
	} else {
		archive = report.NewFile
		compressor.Log(report, e.logger().Sugar().Debugf)
	}

	if err := e.Layout.Prune(path, keep); err != nil {
		e.report("Unable to remove old log files", fmt.Errorf("%w: %w", ErrPrune, err), KindGeneric)
	}

	if e.reopen(path) {
		e.logger().Info("rotated log file", zap.String("file", path), zap.String("archive", archive))
	}
}

// reopen makes path the active file again. Returns false if that failed.
func (e *Executor) reopen(path string) bool {
	if err := e.Appender.SetActiveFile(path); err != nil {
		e.report("Unable to reopen log file", err, KindOpenFailure)
		return false
	}

	return true
}

func (e *Executor) report(msg string, err error, kind ErrorKind) {
	if kind == KindOpenFailure && !errors.Is(err, ErrOpenFailure) {
		err = fmt.Errorf("%w: %w", ErrOpenFailure, err)
	}

	e.Appender.ReportError(msg, err, kind)
}

func (e *Executor) logger() *zap.Logger {
	if e.Log != nil {
		return e.Log
	}

	return zap.L()
}

// Our Executor must satisfy a Rotatorr.
var _ Rotatorr = (*Executor)(nil)
