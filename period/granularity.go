// Package period turns a date/time pattern into a rotation schedule.
// A pattern such as '.'yyyy-MM-dd both names rotated segments and implies how
// often they rotate: the finest calendar field in the pattern decides the period.
//
// Patterns use SimpleDateFormat-style letters (yyyy, MM, dd, HH, mm, ...).
// Text inside single quotes is copied literally; two single quotes make one.
// Seconds and milliseconds are rejected, rotation is at most once a minute.
package period

import "time"

// Granularity is a calendar period. Smaller values are finer.
type Granularity uint8

// Granularities, finest first. Never means no periodic rotation.
const (
	Minute Granularity = iota
	Hour
	HalfDay
	Day
	Week
	Month
	Year
	Never
)

// Forever is the largest representable instant. A Never schedule rolls over at Forever.
var Forever = time.Unix(1<<63-62135596801, 999999999) //nolint:gochecknoglobals

// String returns the lower-case name of the granularity.
func (g Granularity) String() string {
	switch g {
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case HalfDay:
		return "half-day"
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	case Never:
		return "never"
	default:
		return "unknown"
	}
}

// Finer returns the finer of two granularities.
func (g Granularity) Finer(o Granularity) Granularity {
	if o < g {
		return o
	}

	return g
}
