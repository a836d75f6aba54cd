// Package event defines the parsed representation of Second Life chat log
// lines.
//
// This package is separated from the main slchatlog package to avoid import
// cycles between pkg/slchatlog and internal/parser.
package event

import (
	"sort"
	"strings"
	"time"
)

// Type names the leaf variant of a parsed line, for example "chat",
// "came_online" or "sent_payment". It is used for filtering and as the
// "type" field of the JSON encoding.
type Type string

// Kind names the top level variant of a ChatLogEvent.
type Kind string

const (
	KindAvatar Kind = "avatar"
	KindSystem Kind = "system"
	KindOther  Kind = "other"
)

// Avatar message types.
const (
	Chat        Type = "chat"
	Emote       Type = "emote"
	CameOnline  Type = "came_online"
	WentOffline Type = "went_offline"
	EnteredArea Type = "entered_area"
	LeftArea    Type = "left_area"
)

// Other is the type of lines without a recognizable name separator.
const Other Type = "other_message"

// allTypes is the canonical list of all event types.
// Add new event types here when extending the parser.
var allTypes = append([]Type{
	Chat, Emote, CameOnline, WentOffline, EnteredArea, LeftArea, Other,
}, append(coreSystemTypes, extendedSystemTypes...)...)

// TypeNames returns a sorted list of all valid event type names.
func TypeNames() []string {
	names := make([]string, len(allTypes))
	for i, t := range allTypes {
		names[i] = string(t)
	}
	sort.Strings(names)
	return names
}

var typeByName = func() map[string]Type {
	m := make(map[string]Type, len(allTypes))
	for _, t := range allTypes {
		m[string(t)] = t
	}
	return m
}()

// ParseType converts a string to Type if valid.
// It is case-insensitive and trims leading/trailing whitespace.
func ParseType(name string) (Type, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	t, ok := typeByName[name]
	return t, ok
}

// ChatLogLine is one parsed logical line of a chat log.
type ChatLogLine struct {
	// Timestamp is nil only for lines carrying the untranslated
	// timestamp template some viewer builds wrote instead of a date.
	Timestamp *time.Time

	Event ChatLogEvent
}

// Type returns the leaf type of the line's event.
func (l ChatLogLine) Type() Type {
	if l.Event == nil {
		return ""
	}
	return l.Event.Type()
}

// Kind returns the top level variant of the line's event.
func (l ChatLogLine) Kind() Kind {
	if l.Event == nil {
		return ""
	}
	return l.Event.Kind()
}

// ChatLogEvent is one of *AvatarLine, *SystemLine or *OtherMessage.
type ChatLogEvent interface {
	Kind() Kind
	Type() Type
	isChatLogEvent()
}

// AvatarLine is a line spoken or emitted by a named avatar or object.
type AvatarLine struct {
	Name    string        `json:"name"`
	Message AvatarMessage `json:"message"`
}

func (*AvatarLine) Kind() Kind      { return KindAvatar }
func (e *AvatarLine) Type() Type    { return e.Message.Type() }
func (*AvatarLine) isChatLogEvent() {}

// SystemLine is a notice written by the viewer or the grid.
type SystemLine struct {
	Message SystemMessage `json:"message"`
}

func (*SystemLine) Kind() Kind      { return KindSystem }
func (e *SystemLine) Type() Type    { return e.Message.Type() }
func (*SystemLine) isChatLogEvent() {}

// OtherMessage is a line that could not be attributed to a speaker, kept
// verbatim.
type OtherMessage struct {
	Message string `json:"message"`
}

func (*OtherMessage) Kind() Kind      { return KindOther }
func (*OtherMessage) Type() Type      { return Other }
func (*OtherMessage) isChatLogEvent() {}
