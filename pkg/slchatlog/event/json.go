package event

import (
	"encoding/json"
	"time"
)

// lineJSON is the wire form of a ChatLogLine. The variant is flattened into
// kind and type so consumers can dispatch without inspecting data.
type lineJSON struct {
	Timestamp *time.Time `json:"timestamp"`
	Kind      Kind       `json:"kind"`
	Type      Type       `json:"type"`
	Name      string     `json:"name,omitempty"`
	Data      any        `json:"data"`
}

// Name returns the speaker of an avatar line and "" for other kinds.
func (l ChatLogLine) Name() string {
	if a, ok := l.Event.(*AvatarLine); ok {
		return a.Name
	}
	return ""
}

// Payload returns the leaf message value of the line's event.
func (l ChatLogLine) Payload() any {
	switch e := l.Event.(type) {
	case *AvatarLine:
		return e.Message
	case *SystemLine:
		return e.Message
	default:
		return e
	}
}

// MarshalJSON encodes the line as
//
//	{"timestamp":...,"kind":"avatar","type":"chat","name":"Bob","data":{...}}
func (l ChatLogLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineJSON{
		Timestamp: l.Timestamp,
		Kind:      l.Kind(),
		Type:      l.Type(),
		Name:      l.Name(),
		Data:      l.Payload(),
	})
}
