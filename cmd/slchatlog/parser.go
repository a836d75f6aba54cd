package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/pattern"
)

// parserFlags are the grammar flags shared by parse, tail and import.
type parserFlags struct {
	extended bool
	tz       string
	patterns []string
}

// buildParser builds a Parser from the grammar flags. Pattern files are
// tried in the order given, after the built-in shapes.
func buildParser(pf parserFlags, logger *slog.Logger) (*slchatlog.Parser, error) {
	loc := time.Local
	if pf.tz != "" {
		l, err := time.LoadLocation(pf.tz)
		if err != nil {
			return nil, fmt.Errorf("invalid --tz: %w", err)
		}
		loc = l
	}

	var shapes []slchatlog.SystemShape
	for i, path := range pf.patterns {
		m, err := pattern.NewMatcherFromFile(path)
		if err != nil {
			// Error from pattern package is already sanitized (no path)
			return nil, fmt.Errorf("pattern file %d: %w", i+1, err)
		}
		shapes = append(shapes, m.Shapes()...)
	}

	return slchatlog.NewParser(
		slchatlog.WithLocation(loc),
		slchatlog.WithExtendedSystemMessages(pf.extended),
		slchatlog.WithSystemShapes(shapes...),
		slchatlog.WithParserLogger(logger),
	)
}
