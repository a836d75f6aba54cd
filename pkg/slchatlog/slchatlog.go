package slchatlog

import (
	"github.com/slchatlog/slchatlog-go/internal/parser"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
)

// Line is a parsed logical line.
type Line = event.ChatLogLine

// EventType names the leaf variant of a Line.
type EventType = event.Type

// SystemShape recognizes one form of system notice. Parse must accept the
// whole text or report false.
type SystemShape = parser.SystemShape

// FramingError reports a line whose timestamp could not be read.
type FramingError = parser.FramingError

// ErrFraming is matched by every error ParseLine returns.
var ErrFraming = parser.ErrFraming

// Entry is a parsed logical line together with where it was read.
type Entry struct {
	Line Line

	// Path is the file the line was read from, or "" for readers.
	Path string

	// LineNumber is the 1-based physical line the logical line starts on.
	// It is 0 for lines received while tailing from the end of a file.
	LineNumber int

	// Raw is the logical line as read, with continuation lines joined
	// by "\n".
	Raw string
}

// CoreShapes returns the system notice shapes of the default grammar.
func CoreShapes() []SystemShape { return parser.CoreShapes() }

// ExtendedShapes returns the additional notice shapes enabled by
// WithExtendedSystemMessages.
func ExtendedShapes() []SystemShape { return parser.ExtendedShapes() }

// Reclassify applies shapes to a system line that was parsed as
// OtherSystemMessage. Other lines are returned unchanged.
func Reclassify(l Line, shapes []SystemShape) Line {
	sys, ok := l.Event.(*event.SystemLine)
	if !ok {
		return l
	}
	other, ok := sys.Message.(*event.OtherSystemMessage)
	if !ok {
		return l
	}
	msg := parser.Reclassify(other, shapes)
	if msg == sys.Message {
		return l
	}
	return Line{Timestamp: l.Timestamp, Event: &event.SystemLine{Message: msg}}
}

// EventTypeNames returns all event type names, sorted.
func EventTypeNames() []string { return event.TypeNames() }

// ParseEventTypes resolves type names such as "chat" or "sent_payment".
func ParseEventTypes(names []string) ([]EventType, error) {
	types := make([]EventType, 0, len(names))
	for _, n := range names {
		t, ok := event.ParseType(n)
		if !ok {
			return nil, &UnknownEventTypeError{Name: n}
		}
		types = append(types, t)
	}
	return types, nil
}
