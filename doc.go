// Package rollover is a time-based log rotation module designed to plug directly
// into a standard go logger, or any logger that writes to an io.Writer.
//
// The active log file keeps its name. When a write crosses a period boundary the
// file is closed, renamed with a suffix rendered from a date pattern such as
// '.'yyyy-MM-dd, compressed, and old segments beyond the retention count are
// removed. The pattern picks the period: the finest date field it contains.
// A pattern with yyyy-MM-dd rotates daily; one with HH rotates hourly.
//
// The New() methods return a simple io.WriteCloser that works with most log packages.
// Rotation failures never reach the writer; they go to an ErrorReporter,
// which logs through zap by default.
//
// Supporting packages do the work and may be used on their own:
//
//	https://pkg.go.dev/golift.io/rollover/period       (pattern classification and scheduling)
//	https://pkg.go.dev/golift.io/rollover/timerotator  (renaming and pruning segments)
//	https://pkg.go.dev/golift.io/rollover/compressor   (zip, gzip, zstd and lz4 archives)
//	https://pkg.go.dev/golift.io/rollover/placeholder  (${NAME:default} path expansion)
package rollover
