package sltypes

import "fmt"

// leadingDigits splits s after its run of ASCII decimal digits.
func leadingDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

func noMatch(what, input string) error {
	if len(input) > 32 {
		input = input[:32] + "..."
	}
	return fmt.Errorf("%w: expected %s at %q", ErrNoMatch, what, input)
}
