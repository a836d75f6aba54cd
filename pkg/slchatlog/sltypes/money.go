package sltypes

import (
	"fmt"
	"strconv"
	"strings"
)

// LindenAmount is an amount of Linden dollars (L$).
type LindenAmount uint64

func (a LindenAmount) String() string { return fmt.Sprintf("L$%d", uint64(a)) }

// ParseLindenAmount parses "L$1234".
func ParseLindenAmount(s string) (LindenAmount, string, error) {
	rest, ok := strings.CutPrefix(s, "L$")
	if !ok {
		return 0, s, noMatch("L$ amount", s)
	}
	digits, rest := leadingDigits(rest)
	if digits == "" {
		return 0, s, noMatch("L$ digits", rest)
	}
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, s, fmt.Errorf("%w: L$ amount %s: %v", ErrNoMatch, digits, err)
	}
	return LindenAmount(v), rest, nil
}
