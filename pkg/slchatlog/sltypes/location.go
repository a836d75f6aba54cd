package sltypes

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Distance is a distance in meters.
type Distance float64

func (d Distance) String() string { return strconv.FormatFloat(float64(d), 'f', -1, 64) + " m" }

// ParseDistance parses "235.23 m".
func ParseDistance(s string) (Distance, string, error) {
	whole, rest := leadingDigits(s)
	if whole == "" {
		return 0, s, noMatch("distance", s)
	}
	rest, ok := strings.CutPrefix(rest, ".")
	if !ok {
		return 0, s, noMatch("distance decimal point", rest)
	}
	frac, rest := leadingDigits(rest)
	if frac == "" {
		return 0, s, noMatch("distance decimals", rest)
	}
	rest, ok = strings.CutPrefix(rest, " m")
	if !ok {
		return 0, s, noMatch("distance unit", rest)
	}
	v, err := strconv.ParseFloat(whole+"."+frac, 64)
	if err != nil {
		return 0, s, fmt.Errorf("%w: distance: %v", ErrNoMatch, err)
	}
	return Distance(v), rest, nil
}

// Region names are limited to this many characters by the grid.
const maxRegionNameLen = 35

// RegionName is the name of a simulator region.
type RegionName string

// NewRegionName trims and validates a region name.
func NewRegionName(s string) (RegionName, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < 2 || n > maxRegionNameLen {
		return "", fmt.Errorf("%w: region name %q must be 2 to %d characters", ErrNoMatch, s, maxRegionNameLen)
	}
	return RegionName(s), nil
}

// Location is a region name with integer coordinates as used in map URLs
// and SLurls. The coordinates are not range checked.
type Location struct {
	Region RegionName `json:"region"`
	X      int        `json:"x"`
	Y      int        `json:"y"`
	Z      int        `json:"z"`
}

// MapsURL returns the maps.secondlife.com URL of the location.
func (l Location) MapsURL() string {
	return fmt.Sprintf("https://maps.secondlife.com/secondlife/%s/%d/%d/%d",
		url.PathEscape(string(l.Region)), l.X, l.Y, l.Z)
}

func isURLTextRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '%' || r == '-' || r == '~'
}

// ParseURLLocation parses the path part of a map URL after the
// ".../secondlife/" prefix: "Region%20Name/128/64/23".
func ParseURLLocation(s string) (Location, string, error) {
	end := strings.IndexFunc(s, func(r rune) bool { return !isURLTextRune(r) })
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return Location{}, s, noMatch("region name", s)
	}
	name, err := url.PathUnescape(s[:end])
	if err != nil {
		return Location{}, s, fmt.Errorf("%w: region name: %v", ErrNoMatch, err)
	}
	region, err := NewRegionName(name)
	if err != nil {
		return Location{}, s, err
	}
	loc := Location{Region: region}
	rest := s[end:]
	for _, c := range []*int{&loc.X, &loc.Y, &loc.Z} {
		var ok bool
		if rest, ok = strings.CutPrefix(rest, "/"); !ok {
			return Location{}, s, noMatch("coordinate separator", rest)
		}
		if *c, rest, err = parseInt(rest); err != nil {
			return Location{}, s, err
		}
	}
	return loc, rest, nil
}

// parseInt parses an optionally negative decimal integer.
func parseInt(s string) (int, string, error) {
	body, neg := strings.CutPrefix(s, "-")
	digits, rest := leadingDigits(body)
	if digits == "" {
		return 0, s, noMatch("integer", s)
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, s, fmt.Errorf("%w: integer: %v", ErrNoMatch, err)
	}
	if neg {
		v = -v
	}
	return v, rest, nil
}

// ParseUint parses an unsigned decimal integer.
func ParseUint(s string) (uint64, string, error) {
	digits, rest := leadingDigits(s)
	if digits == "" {
		return 0, s, noMatch("number", s)
	}
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, s, fmt.Errorf("%w: number: %v", ErrNoMatch, err)
	}
	return v, rest, nil
}
