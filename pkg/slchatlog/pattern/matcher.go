package pattern

import (
	"fmt"
	"regexp"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
)

// ShapePrefix prefixes the shape name of every pattern.
const ShapePrefix = "pattern:"

// Matcher holds the compiled patterns of a file. It is safe for concurrent
// use.
type Matcher struct {
	patterns []*compiledPattern
}

type compiledPattern struct {
	id    string
	regex *regexp.Regexp
}

// NewMatcher compiles the patterns of pf. Each regex is anchored at both
// ends, so it has to match the whole notice text.
func NewMatcher(pf *PatternFile) (*Matcher, error) {
	if pf == nil {
		return nil, fmt.Errorf("pattern file is nil")
	}

	patterns := make([]*compiledPattern, 0, len(pf.Patterns))
	for i, p := range pf.Patterns {
		re, err := regexp.Compile(`^(?:` + p.Regex + `)$`)
		if err != nil {
			return nil, &PatternError{
				Index:   i,
				ID:      p.ID,
				Field:   "regex",
				Message: fmt.Sprintf("invalid regular expression: %v", err),
				Cause:   err,
			}
		}
		patterns = append(patterns, &compiledPattern{id: p.ID, regex: re})
	}
	return &Matcher{patterns: patterns}, nil
}

// NewMatcherFromFile loads a pattern file and compiles it.
//
// Example:
//
//	m, err := pattern.NewMatcherFromFile("patterns.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := slchatlog.NewParser(slchatlog.WithSystemShapes(m.Shapes()...))
func NewMatcherFromFile(path string) (*Matcher, error) {
	pf, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewMatcher(pf)
}

// Match returns the message of the first pattern, in file order, that
// matches text.
func (m *Matcher) Match(text string) (*event.PatternMessage, bool) {
	for _, cp := range m.patterns {
		if msg, ok := cp.match(text); ok {
			return msg, true
		}
	}
	return nil, false
}

// Shapes returns one system shape per pattern, in file order. Shape names
// are ShapePrefix followed by the pattern id.
func (m *Matcher) Shapes() []slchatlog.SystemShape {
	shapes := make([]slchatlog.SystemShape, len(m.patterns))
	for i, cp := range m.patterns {
		shapes[i] = slchatlog.SystemShape{
			Name: ShapePrefix + cp.id,
			Parse: func(text string) (event.SystemMessage, bool) {
				msg, ok := cp.match(text)
				if !ok {
					return nil, false
				}
				return msg, true
			},
		}
	}
	return shapes
}

// Len returns the number of patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

func (cp *compiledPattern) match(text string) (*event.PatternMessage, bool) {
	matches := cp.regex.FindStringSubmatch(text)
	if matches == nil {
		return nil, false
	}

	msg := &event.PatternMessage{ID: cp.id, Message: text}
	// Data stays nil without named groups.
	names := cp.regex.SubexpNames()
	for i := 1; i < len(names); i++ {
		if names[i] == "" {
			continue
		}
		if msg.Data == nil {
			msg.Data = make(map[string]string)
		}
		msg.Data[names[i]] = matches[i]
	}
	return msg, true
}
