package rollover

import (
	"go.uber.org/zap"
)

// ReporterFunc adapts a function to the ErrorReporter interface.
type ReporterFunc func(msg string, err error, kind ErrorKind)

// ReportError calls f.
func (f ReporterFunc) ReportError(msg string, err error, kind ErrorKind) {
	f(msg, err, kind)
}

// ZapReporter writes reported failures to a zap logger at error level.
type ZapReporter struct {
	Log *zap.Logger // nil uses the global zap logger at the time of each report.
}

// NewZapReporter returns an ErrorReporter that logs to log.
func NewZapReporter(log *zap.Logger) *ZapReporter {
	return &ZapReporter{Log: log}
}

// ReportError satisfies the ErrorReporter interface.
func (z *ZapReporter) ReportError(msg string, err error, kind ErrorKind) {
	log := z.Log
	if log == nil {
		log = zap.L()
	}

	log.Error(msg, zap.Stringer("kind", kind), zap.Error(err))
}

// Our reporters must satisfy ErrorReporter.
var (
	_ ErrorReporter = ReporterFunc(nil)
	_ ErrorReporter = (*ZapReporter)(nil)
)
