package period

import "fmt"

// Classify returns the finest granularity encoded in a pattern, or Never if
// the pattern has no calendar fields. Quoted text is ignored. A seconds or
// milliseconds field returns ErrSubMinute.
func Classify(pattern string) (Granularity, error) {
	tokens, err := tokenize(pattern)
	if err != nil {
		return Never, err
	}

	found := Never

	for _, tok := range tokens {
		switch tok.letter {
		case 0:
			continue
		case 's', 'S':
			return Never, fmt.Errorf("%w: %q", ErrSubMinute, pattern)
		}

		found = found.Finer(fields[tok.letter].period)
	}

	return found, nil
}
