package period

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Errors returned while parsing a pattern.
var (
	ErrSubMinute         = errors.New("sub-minute rotation not supported")
	ErrUnknownField      = errors.New("unknown pattern letter")
	ErrUnterminatedQuote = errors.New("unterminated quote in pattern")
)

const quote = '\''

// token is either a run of one pattern letter or literal text.
type token struct {
	letter byte
	count  int
	text   string
}

// field is one pattern letter: the period it implies and how it renders.
type field struct {
	period Granularity
	render func(buf []byte, t time.Time, count int) []byte
}

// fields maps pattern letters to calendar fields. Letters with a Never period
// render but do not affect the rotation schedule.
var fields = map[byte]field{ //nolint:gochecknoglobals
	'G': {Never, renderEra},
	'y': {Year, func(b []byte, t time.Time, n int) []byte { return appendYear(b, t.Year(), n) }},
	'Y': {Year, func(b []byte, t time.Time, n int) []byte { y, _ := t.ISOWeek(); return appendYear(b, y, n) }},
	'M': {Month, renderMonth},
	'L': {Month, renderMonth},
	'w': {Week, func(b []byte, t time.Time, n int) []byte { _, w := t.ISOWeek(); return appendInt(b, w, n) }},
	'W': {Week, func(b []byte, t time.Time, n int) []byte { return appendInt(b, weekOfMonth(t), n) }},
	'D': {Day, func(b []byte, t time.Time, n int) []byte { return appendInt(b, t.YearDay(), n) }},
	'd': {Day, func(b []byte, t time.Time, n int) []byte { return appendInt(b, t.Day(), n) }},
	'F': {Day, func(b []byte, t time.Time, n int) []byte { return appendInt(b, (t.Day()-1)/7+1, n) }},
	'E': {Day, renderWeekday},
	'u': {Day, func(b []byte, t time.Time, n int) []byte { return appendInt(b, isoWeekday(t), n) }},
	'a': {HalfDay, renderAmPm},
	'H': {Hour, func(b []byte, t time.Time, n int) []byte { return appendInt(b, t.Hour(), n) }},
	'k': {Hour, func(b []byte, t time.Time, n int) []byte { return appendInt(b, oneBased(t.Hour(), 24), n) }},
	'K': {Hour, func(b []byte, t time.Time, n int) []byte { return appendInt(b, t.Hour()%12, n) }},
	'h': {Hour, func(b []byte, t time.Time, n int) []byte { return appendInt(b, oneBased(t.Hour()%12, 12), n) }},
	'm': {Minute, func(b []byte, t time.Time, n int) []byte { return appendInt(b, t.Minute(), n) }},
	's': {Minute, func(b []byte, t time.Time, n int) []byte { return appendInt(b, t.Second(), n) }},
	'S': {Minute, func(b []byte, t time.Time, n int) []byte { return appendInt(b, t.Nanosecond()/1e6, n) }},
	'z': {Never, func(b []byte, t time.Time, _ int) []byte { return t.AppendFormat(b, "MST") }},
	'Z': {Never, func(b []byte, t time.Time, _ int) []byte { return t.AppendFormat(b, "-0700") }},
	'X': {Never, renderISOZone},
}

// Layout is a compiled pattern bound to a time zone.
type Layout struct {
	pattern string
	tokens  []token
	loc     *time.Location
}

// Compile parses a pattern and binds it to loc. A nil loc means UTC.
// Every letter, including seconds, may be rendered by a Layout; use Classify
// to decide whether the pattern is usable as a rotation schedule.
func Compile(pattern string, loc *time.Location) (*Layout, error) {
	tokens, err := tokenize(pattern)
	if err != nil {
		return nil, err
	}

	if loc == nil {
		loc = time.UTC
	}

	return &Layout{pattern: pattern, tokens: tokens, loc: loc}, nil
}

// Format renders t in the layout's time zone.
func (l *Layout) Format(t time.Time) string {
	t = t.In(l.loc)
	buf := make([]byte, 0, len(l.pattern)+16) //nolint:mnd

	for _, tok := range l.tokens {
		if tok.letter == 0 {
			buf = append(buf, tok.text...)
			continue
		}

		buf = fields[tok.letter].render(buf, t, tok.count)
	}

	return string(buf)
}

// Location returns the time zone the layout renders in.
func (l *Layout) Location() *time.Location {
	return l.loc
}

// String returns the source pattern.
func (l *Layout) String() string {
	return l.pattern
}

// tokenize splits a pattern into letter runs and literal text.
func tokenize(pattern string) ([]token, error) {
	var (
		tokens  []token
		literal strings.Builder
	)

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, token{text: literal.String()})
			literal.Reset()
		}
	}

	for idx := 0; idx < len(pattern); {
		switch char := pattern[idx]; {
		case char == quote:
			end, text, err := quoted(pattern, idx)
			if err != nil {
				return nil, err
			}

			literal.WriteString(text)
			idx = end
		case isLetter(char):
			if _, ok := fields[char]; !ok {
				return nil, fmt.Errorf("%w: %q at %d", ErrUnknownField, char, idx)
			}

			flush()

			run := idx
			for run < len(pattern) && pattern[run] == char {
				run++
			}

			tokens = append(tokens, token{letter: char, count: run - idx})
			idx = run
		default:
			literal.WriteByte(char)
			idx++
		}
	}

	flush()

	return tokens, nil
}

// quoted reads a quoted span starting at pattern[start] and returns the index
// just past it and its literal text.
func quoted(pattern string, start int) (int, string, error) {
	if start+1 < len(pattern) && pattern[start+1] == quote {
		return start + 2, "'", nil //nolint:mnd
	}

	var text strings.Builder

	for idx := start + 1; idx < len(pattern); idx++ {
		if pattern[idx] != quote {
			text.WriteByte(pattern[idx])
			continue
		}

		if idx+1 < len(pattern) && pattern[idx+1] == quote {
			text.WriteByte(quote) // '' inside quotes.
			idx++

			continue
		}

		return idx + 1, text.String(), nil
	}

	return 0, "", fmt.Errorf("%w: %q", ErrUnterminatedQuote, pattern)
}

func isLetter(char byte) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

func appendInt(buf []byte, val, width int) []byte {
	digits := strconv.Itoa(val)
	for i := len(digits); i < width; i++ {
		buf = append(buf, '0')
	}

	return append(buf, digits...)
}

func appendYear(buf []byte, year, width int) []byte {
	if width == 2 { //nolint:mnd
		return appendInt(buf, year%100, 2) //nolint:mnd
	}

	return appendInt(buf, year, width)
}

func renderEra(buf []byte, t time.Time, _ int) []byte {
	if t.Year() > 0 {
		return append(buf, "AD"...)
	}

	return append(buf, "BC"...)
}

func renderMonth(buf []byte, t time.Time, count int) []byte {
	switch {
	case count >= 4: //nolint:mnd
		return append(buf, t.Month().String()...)
	case count == 3: //nolint:mnd
		return append(buf, t.Month().String()[:3]...)
	default:
		return appendInt(buf, int(t.Month()), count)
	}
}

func renderWeekday(buf []byte, t time.Time, count int) []byte {
	if count >= 4 { //nolint:mnd
		return append(buf, t.Weekday().String()...)
	}

	return append(buf, t.Weekday().String()[:3]...)
}

func renderAmPm(buf []byte, t time.Time, _ int) []byte {
	if t.Hour() < 12 { //nolint:mnd
		return append(buf, "AM"...)
	}

	return append(buf, "PM"...)
}

func renderISOZone(buf []byte, t time.Time, count int) []byte {
	switch count {
	case 1:
		return t.AppendFormat(buf, "Z07")
	case 2: //nolint:mnd
		return t.AppendFormat(buf, "Z0700")
	default:
		return t.AppendFormat(buf, "Z07:00")
	}
}

// isoWeekday is 1 for Monday through 7 for Sunday.
func isoWeekday(t time.Time) int {
	return int(t.Weekday()+6)%7 + 1 //nolint:mnd
}

// weekOfMonth counts Monday-started weeks; the week holding the 1st is week 1.
func weekOfMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return (t.Day()-1+isoWeekday(first)-1)/7 + 1 //nolint:mnd
}

// oneBased maps 0 to top, for the 1-24 and 1-12 hour fields.
func oneBased(val, top int) int {
	if val == 0 {
		return top
	}

	return val
}
