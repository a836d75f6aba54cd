package sltypes

import "strings"

// Area is an area of significance used in the viewer's presence notices.
type Area int

const (
	ChatRange Area = iota
	DrawDistance
	Region
)

var areaNames = [...]string{"chat range", "draw distance", "region"}

func (a Area) String() string {
	if a < 0 || int(a) >= len(areaNames) {
		return "unknown"
	}
	return areaNames[a]
}

// MarshalText implements encoding.TextMarshaler.
func (a Area) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// ParseArea parses "chat range", "draw distance" or "region".
func ParseArea(s string) (Area, string, error) {
	for i, name := range areaNames {
		if rest, ok := strings.CutPrefix(s, name); ok {
			return Area(i), rest, nil
		}
	}
	return 0, s, noMatch("area", s)
}
