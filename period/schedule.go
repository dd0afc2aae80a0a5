package period

import (
	"time"
)

// Schedule pairs a pattern with the period it implies.
type Schedule struct {
	Period Granularity
	Layout *Layout
}

// NewSchedule classifies and compiles a pattern for the given time zone.
func NewSchedule(pattern string, loc *time.Location) (*Schedule, error) {
	period, err := Classify(pattern)
	if err != nil {
		return nil, err
	}

	layout, err := Compile(pattern, loc)
	if err != nil {
		return nil, err
	}

	return &Schedule{Period: period, Layout: layout}, nil
}

// Next returns the suffix for the segment that holds ref, and the instant the
// bucket holding ref ends. A Never schedule returns an empty suffix and Forever.
// Calling Next twice with the same ref returns the same values.
func (s *Schedule) Next(ref time.Time) (string, time.Time) {
	if s.Period >= Never {
		return "", Forever
	}

	return s.Layout.Format(ref), s.Period.Next(ref.In(s.Layout.Location()))
}

// Start truncates t, in t's location, to the beginning of its bucket.
func (g Granularity) Start(t time.Time) time.Time {
	rule, ok := rules[g]
	if !ok {
		return t
	}

	for _, fn := range rule.clear {
		t = fn(t)
	}

	return t
}

// Next returns the start of the bucket after the one holding t.
func (g Granularity) Next(t time.Time) time.Time {
	rule, ok := rules[g]
	if !ok {
		return Forever
	}

	return rule.advance(g.Start(t))
}

// clearFunc zeroes one calendar field, assuming every finer field is already zero.
type clearFunc func(time.Time) time.Time

// Fields are cleared fine to coarse. Fields below an hour are subtracted in
// absolute time so the zone offset in effect is kept across DST changes.
func clearNanos(t time.Time) time.Time   { return t.Add(-time.Duration(t.Nanosecond())) }
func clearSeconds(t time.Time) time.Time { return t.Add(-time.Duration(t.Second()) * time.Second) }
func clearMinutes(t time.Time) time.Time { return t.Add(-time.Duration(t.Minute()) * time.Minute) }

func clearHalfDayHours(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()-t.Hour()%12, 0, 0, 0, t.Location())
}

func clearHours(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// clearWeekday moves back to Monday, the first day of an ISO week.
func clearWeekday(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()-(isoWeekday(t)-1), 0, 0, 0, 0, t.Location())
}

func clearDays(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func clearMonths(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// rule is one row of the rollover table: fields to clear, then one unit to add.
type rule struct {
	clear   []clearFunc
	advance func(time.Time) time.Time
}

//nolint:gochecknoglobals
var (
	belowMinute = []clearFunc{clearNanos, clearSeconds}
	belowHour   = append(belowMinute[:len(belowMinute):len(belowMinute)], clearMinutes)
	belowDay    = append(belowHour[:len(belowHour):len(belowHour)], clearHours)

	rules = map[Granularity]rule{
		Minute: {
			clear:   belowMinute,
			advance: func(t time.Time) time.Time { return t.Add(time.Minute) },
		},
		Hour: {
			clear:   belowHour,
			advance: func(t time.Time) time.Time { return t.Add(time.Hour) },
		},
		HalfDay: {
			clear: append(belowHour[:len(belowHour):len(belowHour)], clearHalfDayHours),
			advance: func(t time.Time) time.Time {
				return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+12, 0, 0, 0, t.Location()) //nolint:mnd
			},
		},
		Day: {
			clear:   belowDay,
			advance: func(t time.Time) time.Time { return t.AddDate(0, 0, 1) },
		},
		Week: {
			clear:   append(belowDay[:len(belowDay):len(belowDay)], clearWeekday),
			advance: func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }, //nolint:mnd
		},
		Month: {
			clear:   append(belowDay[:len(belowDay):len(belowDay)], clearDays),
			advance: func(t time.Time) time.Time { return t.AddDate(0, 1, 0) },
		},
		Year: {
			clear:   append(belowDay[:len(belowDay):len(belowDay)], clearDays, clearMonths),
			advance: func(t time.Time) time.Time { return t.AddDate(1, 0, 0) },
		},
	}
)
