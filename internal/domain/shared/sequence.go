package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// Sequence describes codes made of a fixed prefix and a zero-padded numeric suffix, e.g. HD0007
type Sequence struct {
	Prefix string
	Width  int
}

// Format renders n with the sequence prefix and padding
func (s Sequence) Format(n int) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Width, n)
}

// Parse extracts the numeric suffix of code; ok is false when code does not belong to the sequence
func (s Sequence) Parse(code string) (n int, ok bool) {
	if !strings.HasPrefix(code, s.Prefix) {
		return 0, false
	}
	suffix := code[len(s.Prefix):]
	if suffix == "" {
		return 0, false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Next returns the code following the greatest member of existing.
// Codes outside the sequence are ignored; an empty set yields suffix 1.
func (s Sequence) Next(existing ...string) string {
	max := 0
	for _, code := range existing {
		if n, ok := s.Parse(code); ok && n > max {
			max = n
		}
	}
	return s.Format(max + 1)
}

// Pattern returns a LIKE pattern matching every code carrying the prefix
func (s Sequence) Pattern() string {
	return s.Prefix + "%"
}
