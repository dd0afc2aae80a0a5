// Package placeholder expands ${name} tokens in file paths.
//
// Supported forms:
//
//	${NAME}          the value of NAME, or the literal ${NAME} if unset.
//	${A,B,C}         the first of A, B, C that is set.
//	${NAME:default}  the value of NAME, or the literal text "default".
//	${/}             the OS path separator.
//	${:}             the OS path list separator.
//	$$               a literal $.
//
// Unterminated or invalid tokens are copied through unchanged.
package placeholder

import (
	"os"
	"strings"
)

// Resolver expands placeholders using Lookup. A nil Lookup reads the environment.
type Resolver struct {
	Lookup func(name string) (string, bool)
}

// Resolve expands placeholders in value using environment variables.
func Resolve(value string) string {
	return (&Resolver{}).Resolve(value)
}

// Resolve expands the placeholders in value. Resolution never fails, anything
// that cannot be resolved is left in the output as written.
func (r *Resolver) Resolve(value string) string {
	lookup := r.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	scan := &scanner{input: value, lookup: lookup}

	return scan.run()
}

// state is one of the scanner's states.
type state uint8

const (
	plain     state = iota // copying text.
	sawDollar              // read a '$'.
	inBrace                // reading a candidate name after '${' or ','.
	resolved               // a value was written; skipping to '}'.
	inDefault              // reading a default value after ':'.
)

// scanner walks the input once, left to right.
type scanner struct {
	input  string
	lookup func(string) (string, bool)
	out    strings.Builder
	token  int // index of the '$' that opened the current token.
	name   int // index where the current candidate name starts.
}

// transitions maps each state to the function that consumes one byte in it.
var transitions = [...]func(*scanner, int) state{ //nolint:gochecknoglobals
	plain:     (*scanner).plain,
	sawDollar: (*scanner).sawDollar,
	inBrace:   (*scanner).inBrace,
	resolved:  (*scanner).resolved,
	inDefault: (*scanner).inDefault,
}

func (s *scanner) run() string {
	current := plain

	for idx := 0; idx < len(s.input); idx++ {
		current = transitions[current](s, idx)
	}

	s.finish(current)

	return s.out.String()
}

func (s *scanner) plain(idx int) state {
	if s.input[idx] == '$' {
		s.token = idx
		return sawDollar
	}

	s.out.WriteByte(s.input[idx])

	return plain
}

func (s *scanner) sawDollar(idx int) state {
	switch char := s.input[idx]; char {
	case '$':
		s.out.WriteByte('$')
		return plain
	case '{':
		s.name = idx + 1
		return inBrace
	default:
		s.out.WriteByte('$')
		s.out.WriteByte(char)

		return plain
	}
}

func (s *scanner) inBrace(idx int) state {
	char := s.input[idx]
	if char != ':' && char != ',' && char != '}' {
		return inBrace
	}

	if char == ':' && strings.TrimSpace(s.input[s.name:idx]) == "" && strings.HasPrefix(s.input[idx+1:], "}") {
		return inBrace // ${:} names the list separator.
	}

	if val, ok := s.value(strings.TrimSpace(s.input[s.name:idx])); ok {
		s.out.WriteString(val)

		if char == '}' {
			return plain
		}

		return resolved
	}

	switch char {
	case ',':
		s.name = idx + 1
		return inBrace
	case ':':
		s.name = idx + 1
		return inDefault
	default:
		// Only the last candidate is echoed when none of them are set.
		s.out.WriteString("${" + s.input[s.name:idx+1])
		return plain
	}
}

func (s *scanner) resolved(idx int) state {
	if s.input[idx] == '}' {
		return plain
	}

	return resolved
}

func (s *scanner) inDefault(idx int) state {
	if s.input[idx] != '}' {
		return inDefault
	}

	s.out.WriteString(s.input[s.name:idx])

	return plain
}

// finish flushes whatever an unterminated token left behind.
func (s *scanner) finish(last state) {
	switch last {
	case sawDollar:
		s.out.WriteByte('$')
	case inBrace, inDefault:
		s.out.WriteString(s.input[s.token:])
	case plain, resolved:
	}
}

// value resolves the separator names before asking lookup.
func (s *scanner) value(name string) (string, bool) {
	switch name {
	case "/":
		return string(os.PathSeparator), true
	case ":":
		return string(os.PathListSeparator), true
	default:
		return s.lookup(name)
	}
}
