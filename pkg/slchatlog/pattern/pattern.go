// Package pattern lets users describe system notices the built-in grammar
// does not know, as regular expressions in a YAML file. Each pattern
// becomes a SystemShape that produces an event.PatternMessage.
package pattern

// PatternFile is the structure of a YAML pattern file.
//
// Example YAML file:
//
//	version: 1
//	patterns:
//	  - id: sim_crossing
//	    regex: 'You have entered (?P<region>.+)\.'
//	  - id: hud_tip
//	    regex: 'Tip from (?P<sender>[^:]+): (?P<amount>\d+) L\$'
type PatternFile struct {
	// Version is the pattern file format version. Only version 1 exists.
	Version int `yaml:"version"`

	Patterns []Pattern `yaml:"patterns"`
}

// Pattern is a single notice definition.
type Pattern struct {
	// ID names the pattern. It is copied to PatternMessage.ID and must be
	// unique within a file.
	ID string `yaml:"id"`

	// Regex must match the whole notice text, as every shape must.
	// Named capture groups (?P<name>...) are copied to PatternMessage.Data.
	Regex string `yaml:"regex"`
}
