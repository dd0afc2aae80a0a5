package rollover

import (
	"sync"
	"time"

	"golift.io/rollover/period"
)

// Policy decides when the active log file rolls over. It holds the pattern,
// time zone, retention count and the next rollover instant, all guarded by
// one lock. PreWrite must be called before every write; it runs the Rotatorr
// at most once per period boundary no matter how many writers race for it.
type Policy struct {
	mu       sync.Mutex
	schedule *period.Schedule // nil until a pattern is set.
	loc      *time.Location
	next     time.Time
	suffix   string // names the segment for the bucket that ends at next.
	keep     int
	rotatorr Rotatorr
	now      func() time.Time
}

// NewPolicy returns a policy that never rotates until a pattern is set.
// A nil clock uses time.Now.
func NewPolicy(rotatorr Rotatorr, clock func() time.Time) *Policy {
	if clock == nil {
		clock = time.Now
	}

	return &Policy{
		loc:      time.Local,
		next:     period.Forever,
		keep:     DefaultKeep,
		rotatorr: rotatorr,
		now:      clock,
	}
}

// PreWrite is the pre-write hook. It rolls the file over if when is at or
// past the next rollover instant, then schedules the following one from
// when. Returns true if a rollover ran.
func (p *Policy) PreWrite(when time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if when.Before(p.next) {
		return false
	}

	p.rotatorr.Rollover(p.suffix, p.keep)
	p.reschedule(when)

	return true
}

// Rotate rolls the file over now, naming the segment for the current bucket.
// The schedule is not changed. Rotate runs the Rotatorr on the calling go
// routine; a Logger's policy is only rotated through Logger.Rotate.
func (p *Policy) Rotate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.rotatorr.Rollover(p.suffix, p.keep)
}

// SetPattern validates and installs a new pattern, then recomputes the next
// rollover from the current time. Patterns finer than a minute, or otherwise
// invalid, return an error wrapping ErrConfiguration and change nothing.
func (p *Policy) SetPattern(pattern string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	schedule, err := period.NewSchedule(pattern, p.loc)
	if err != nil {
		return configError(err)
	}

	p.schedule = schedule
	p.reschedule(p.now())

	return nil
}

// Pattern returns the current pattern.
func (p *Policy) Pattern() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.schedule == nil {
		return ""
	}

	return p.schedule.Layout.String()
}

// SetLocation changes the time zone buckets and suffixes are computed in,
// then recomputes the next rollover from the current time.
func (p *Policy) SetLocation(loc *time.Location) error {
	if loc == nil {
		return configError(ErrNilLocation)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.schedule != nil {
		schedule, err := period.NewSchedule(p.schedule.Layout.String(), loc)
		if err != nil {
			return configError(err)
		}

		p.schedule = schedule
	}

	p.loc = loc
	p.reschedule(p.now())

	return nil
}

// Location returns the policy's time zone.
func (p *Policy) Location() *time.Location {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.loc
}

// SetRetention sets how many rotated segments to keep. Zero or less keeps none.
func (p *Policy) SetRetention(keep int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.keep = keep
}

// Retention returns how many rotated segments are kept.
func (p *Policy) Retention() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.keep
}

// Granularity returns the rotation period implied by the pattern.
func (p *Policy) Granularity() period.Granularity {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.schedule == nil {
		return period.Never
	}

	return p.schedule.Period
}

// NextRollover returns the instant of the next rollover and the suffix the
// closed segment will get. Never-rotating policies return period.Forever.
func (p *Policy) NextRollover() (time.Time, string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.next, p.suffix
}

// Anchor recomputes the schedule as if the active file was opened at ref.
// Use it with the creation time of an existing file so a file left over
// from an earlier period rolls over, under that period's name, on the first write.
func (p *Policy) Anchor(ref time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reschedule(ref)
}

// reschedule must be called with the lock held.
func (p *Policy) reschedule(ref time.Time) {
	if p.schedule == nil {
		p.suffix, p.next = "", period.Forever
		return
	}

	p.suffix, p.next = p.schedule.Next(ref)
}

// Settings is the part of a Policy that may be changed from any go routine
// while a Logger writes. Writes and rollovers stay on the Logger's go routine.
type Settings struct {
	policy *Policy
}

// SetPattern calls Policy.SetPattern.
func (s Settings) SetPattern(pattern string) error { return s.policy.SetPattern(pattern) }

// Pattern calls Policy.Pattern.
func (s Settings) Pattern() string { return s.policy.Pattern() }

// SetLocation calls Policy.SetLocation.
func (s Settings) SetLocation(loc *time.Location) error { return s.policy.SetLocation(loc) }

// Location calls Policy.Location.
func (s Settings) Location() *time.Location { return s.policy.Location() }

// SetRetention calls Policy.SetRetention.
func (s Settings) SetRetention(keep int) { s.policy.SetRetention(keep) }

// Retention calls Policy.Retention.
func (s Settings) Retention() int { return s.policy.Retention() }

// Granularity calls Policy.Granularity.
func (s Settings) Granularity() period.Granularity { return s.policy.Granularity() }

// NextRollover calls Policy.NextRollover.
func (s Settings) NextRollover() (time.Time, string) { return s.policy.NextRollover() }
