package rollover

import (
	"errors"
	"fmt"
)

// Custom errors returned or reported by this package.
var (
	// ErrConfiguration wraps every invalid pattern, time zone or config file.
	ErrConfiguration = errors.New("invalid rotation configuration")
	ErrNilLocation   = errors.New("nil time zone provided")
	ErrNilConfig     = errors.New("nil Config provided")
	// These are reported through an ErrorReporter.
	ErrOpenFailure = errors.New("log file open failure")
	ErrCompression = errors.New("log file compression failure")
	ErrPrune       = errors.New("log file cleanup failure")
)

// ErrorKind classifies a reported failure.
type ErrorKind uint8

// These are the kinds of reported failures.
const (
	KindGeneric ErrorKind = iota
	KindOpenFailure
	KindWriteFailure
)

// String returns the name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindOpenFailure:
		return "open failure"
	case KindWriteFailure:
		return "write failure"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

func configError(err error) error {
	if errors.Is(err, ErrConfiguration) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrConfiguration, err)
}
