package sltypes

import (
	"fmt"
	"strconv"
	"strings"
)

// RegionCoordinates is a position inside a region in meters.
type RegionCoordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ParseFloat parses an optionally signed decimal number with an optional
// fractional part ("12", "-3.25").
func ParseFloat(s string) (float64, string, error) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	whole, rest := leadingDigits(s[i:])
	if whole == "" {
		return 0, s, noMatch("number", s)
	}
	end := len(s) - len(rest)
	if after, ok := strings.CutPrefix(rest, "."); ok {
		if frac, r := leadingDigits(after); frac != "" {
			end = len(s) - len(r)
			rest = r
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, s, fmt.Errorf("%w: number: %v", ErrNoMatch, err)
	}
	return v, rest, nil
}

// ParseCoordinateList parses three numbers separated by commas, each comma
// optionally followed by spaces: "63.04, 45.25,1501.08".
func ParseCoordinateList(s string) (RegionCoordinates, string, error) {
	var c RegionCoordinates
	rest := s
	var err error
	for i, f := range []*float64{&c.X, &c.Y, &c.Z} {
		if i > 0 {
			var ok bool
			if rest, ok = strings.CutPrefix(rest, ","); !ok {
				return RegionCoordinates{}, s, noMatch("coordinate separator", rest)
			}
			rest = strings.TrimLeft(rest, " ")
		}
		if *f, rest, err = ParseFloat(rest); err != nil {
			return RegionCoordinates{}, s, err
		}
	}
	return c, rest, nil
}

// ParseRegionCoordinates parses the braced form "{ 63.04, 45.25, 1501.08 }".
func ParseRegionCoordinates(s string) (RegionCoordinates, string, error) {
	rest, ok := strings.CutPrefix(s, "{")
	if !ok {
		return RegionCoordinates{}, s, noMatch("region coordinates", s)
	}
	c, rest, err := ParseCoordinateList(strings.TrimLeft(rest, " "))
	if err != nil {
		return RegionCoordinates{}, s, err
	}
	rest, ok = strings.CutPrefix(strings.TrimLeft(rest, " "), "}")
	if !ok {
		return RegionCoordinates{}, s, noMatch("closing brace", rest)
	}
	return c, rest, nil
}
