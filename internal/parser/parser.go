// Package parser implements the Second Life chat log line grammar.
//
// A logical line is framed by a bracketed timestamp and classified as an
// avatar line, a system notice or an unattributed line. Classification is
// an ordered choice: the first alternative that accepts the whole body
// wins, and the last alternative accepts anything.
package parser

import (
	"strings"
	"time"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
)

// sentinel prefixes lines written by the viewer or the grid.
const sentinel = "Second Life: "

// Grammar is an immutable ordered list of system notice shapes. It is safe
// for concurrent use.
type Grammar struct {
	shapes []SystemShape
}

var defaultGrammar = NewGrammar(CoreShapes()...)

// Default returns the shared grammar built from CoreShapes.
func Default() *Grammar {
	return defaultGrammar
}

// NewGrammar returns a grammar trying shapes in the given order before
// falling back to OtherSystemMessage. Shapes with a nil Parse are skipped.
func NewGrammar(shapes ...SystemShape) *Grammar {
	g := &Grammar{shapes: make([]SystemShape, 0, len(shapes))}
	for _, s := range shapes {
		if s.Parse != nil {
			g.shapes = append(g.shapes, s)
		}
	}
	return g
}

// ShapeNames lists the grammar's shapes in priority order.
func (g *Grammar) ShapeNames() []string {
	names := make([]string, len(g.shapes))
	for i, s := range g.shapes {
		names[i] = s.Name
	}
	return names
}

// Parse parses one logical line. loc is the location the timestamp is
// interpreted in; nil means time.Local.
//
// The only error is a *FramingError when the timestamp is malformed. Any
// correctly framed line parses successfully.
func (g *Grammar) Parse(line string, loc *time.Location) (event.ChatLogLine, error) {
	if loc == nil {
		loc = time.Local
	}
	ts, body, err := parseTimestamp(line, loc)
	if err != nil {
		return event.ChatLogLine{}, err
	}
	return event.ChatLogLine{Timestamp: ts, Event: g.Classify(body)}, nil
}

// Classify classifies a line body, the text after the timestamp.
func (g *Grammar) Classify(body string) event.ChatLogEvent {
	if ev, ok := parseMergedName(body); ok {
		return ev
	}
	if text, ok := expect(body, sentinel); ok {
		return &event.SystemLine{Message: g.ParseSystemMessage(text)}
	}
	if ev, ok := parseAvatarLine(body); ok {
		return ev
	}
	return &event.OtherMessage{Message: body}
}

// ParseSystemMessage parses the text after the "Second Life: " prefix.
// It never fails: unknown text yields *event.OtherSystemMessage.
func (g *Grammar) ParseSystemMessage(text string) event.SystemMessage {
	if msg, ok := matchShapes(text, g.shapes); ok {
		return msg
	}
	return &event.OtherSystemMessage{Message: text}
}

// Reclassify tries shapes against the text of a message the default
// grammar did not recognize. It returns msg unchanged when no shape
// matches.
func Reclassify(msg *event.OtherSystemMessage, shapes []SystemShape) event.SystemMessage {
	if m, ok := matchShapes(msg.Message, shapes); ok {
		return m
	}
	return msg
}

func matchShapes(text string, shapes []SystemShape) (event.SystemMessage, bool) {
	for _, s := range shapes {
		if s.Parse == nil {
			continue
		}
		if msg, ok := s.Parse(text); ok {
			return msg, true
		}
	}
	return nil, false
}

// parseMergedName handles lines some viewers wrote with the object or
// avatar name merged into a system line:
//
//	Second Life: Some Object is online.
//
// The name runs up to the leftmost presence notice that ends the line.
func parseMergedName(body string) (event.ChatLogEvent, bool) {
	text, ok := expect(body, sentinel)
	if !ok {
		return nil, false
	}
	name, msg, ok := scanAt(text, parsePresence)
	if !ok {
		return nil, false
	}
	name = trimOneSpace(name)
	if name == "" {
		return nil, false
	}
	return &event.AvatarLine{Name: name, Message: msg}, true
}

func trimOneSpace(s string) string {
	if len(s) > 0 && s[len(s)-1] == ' ' {
		return s[:len(s)-1]
	}
	return s
}

// parseAvatarLine parses "<name>: <message>". The name runs to the first
// colon and the colon must be followed by a space.
func parseAvatarLine(body string) (event.ChatLogEvent, bool) {
	i := strings.IndexByte(body, ':')
	if i <= 0 {
		return nil, false
	}
	message, ok := expect(body[i+1:], " ")
	if !ok {
		return nil, false
	}
	return &event.AvatarLine{Name: body[:i], Message: parseAvatarMessage(message)}, true
}
