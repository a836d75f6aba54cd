package slchatlog

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/slchatlog/slchatlog-go/internal/parser"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
)

// unknownLogRate limits debug logging of unrecognized system notices, which
// can be most of a log when only the core shapes are enabled.
const unknownLogRate = 10

// discardLogger returns a logger that discards all output.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Parser parses logical chat log lines with a fixed grammar and location.
// It is safe for concurrent use.
type Parser struct {
	grammar *parser.Grammar
	loc     *time.Location
	log     *slog.Logger
	limiter *rate.Limiter
}

// ParserOption configures NewParser.
type ParserOption func(*parserConfig)

type parserConfig struct {
	loc      *time.Location
	extended bool
	shapes   []SystemShape
	logger   *slog.Logger
}

func (c *parserConfig) validate() error {
	if c.loc == nil {
		return fmt.Errorf("location must not be nil")
	}
	for i, s := range c.shapes {
		if s.Name == "" {
			return fmt.Errorf("system shape %d has no name", i)
		}
		if s.Parse == nil {
			return fmt.Errorf("system shape %q has no parse function", s.Name)
		}
	}
	return nil
}

// WithLocation sets the time zone timestamps are interpreted in.
// Default: time.Local.
func WithLocation(loc *time.Location) ParserOption {
	return func(c *parserConfig) {
		c.loc = loc
	}
}

// WithExtendedSystemMessages enables the shapes returned by ExtendedShapes.
func WithExtendedSystemMessages(enabled bool) ParserOption {
	return func(c *parserConfig) {
		c.extended = enabled
	}
}

// WithSystemShapes adds custom notice shapes. They are tried after the
// core shapes and before the extended ones. Calls accumulate.
func WithSystemShapes(shapes ...SystemShape) ParserOption {
	return func(c *parserConfig) {
		c.shapes = append(c.shapes, shapes...)
	}
}

// WithParserLogger sets a logger for debug output.
// If logger is nil, logging is disabled (default behavior).
func WithParserLogger(logger *slog.Logger) ParserOption {
	return func(c *parserConfig) {
		c.logger = logger
	}
}

// NewParser builds a Parser. Without options it behaves like ParseLine.
func NewParser(opts ...ParserOption) (*Parser, error) {
	cfg := &parserConfig{loc: time.Local}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	g := parser.Default()
	if cfg.extended || len(cfg.shapes) > 0 {
		shapes := parser.CoreShapes()
		shapes = append(shapes, cfg.shapes...)
		if cfg.extended {
			shapes = append(shapes, parser.ExtendedShapes()...)
		}
		g = parser.NewGrammar(shapes...)
	}

	log := cfg.logger
	if log == nil {
		log = discardLogger
	}
	return &Parser{
		grammar: g,
		loc:     cfg.loc,
		log:     log,
		limiter: rate.NewLimiter(unknownLogRate, unknownLogRate),
	}, nil
}

// ShapeNames lists the parser's system notice shapes in priority order.
func (p *Parser) ShapeNames() []string {
	return p.grammar.ShapeNames()
}

// Location returns the time zone timestamps are interpreted in.
func (p *Parser) Location() *time.Location {
	return p.loc
}

// ParseLine parses one logical line. The only error is a *FramingError.
func (p *Parser) ParseLine(line string) (Line, error) {
	l, err := p.grammar.Parse(line, p.loc)
	if err != nil {
		return Line{}, err
	}
	if sys, ok := l.Event.(*event.SystemLine); ok {
		if other, ok := sys.Message.(*event.OtherSystemMessage); ok && p.limiter.Allow() {
			p.log.Debug("unrecognized system message", "text", other.Message)
		}
	}
	return l, nil
}

var defaultParser = &Parser{
	grammar: parser.Default(),
	log:     discardLogger,
	limiter: rate.NewLimiter(unknownLogRate, unknownLogRate),
}

// ParseLine parses one logical chat log line with the default grammar,
// interpreting the timestamp in time.Local.
//
// Return values:
//   - (Line, nil): the line parsed; every framed line does
//   - (Line{}, error): the timestamp is malformed; errors.Is(err, ErrFraming)
//
// Example:
//
//	line, err := slchatlog.ParseLine("[2024/01/15 23:59:59]  Jane Doe: hi")
//	if err != nil {
//	    log.Printf("framing error: %v", err)
//	} else if line.Type() == event.Chat {
//	    fmt.Printf("%s said something\n", line.Name())
//	}
func ParseLine(line string) (Line, error) {
	return defaultParser.ParseLine(line)
}
