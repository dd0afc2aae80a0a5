package rollover

//go:generate mockgen -destination=mocks/rollover.go -package=mocks golift.io/rollover Appender,ErrorReporter,Rotatorr

// Rotatorr performs rollovers for a Policy.
// Executor is the working implementation included with this library.
type Rotatorr interface {
	// Rollover is called, with the policy locked, each time a write crosses a
	// period boundary. suffix names the segment being closed. keep is the
	// number of segments to retain. Failures are reported, not returned.
	Rollover(suffix string, keep int)
}

// Appender is the file-writing collaborator an Executor rotates.
// Logger is the implementation included with this library.
type Appender interface {
	// CurrentFile returns the path of the open file, or "" if none is open.
	CurrentFile() string
	// SetActiveFile closes the open file, if any, then opens path for
	// appending. An empty path only closes.
	SetActiveFile(path string) error
	ErrorReporter
}

// ErrorReporter receives failures that must not interrupt logging.
type ErrorReporter interface {
	ReportError(msg string, err error, kind ErrorKind)
}
