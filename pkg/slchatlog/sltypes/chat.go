package sltypes

import "strings"

// ChatVolume is how far a chat message carries.
type ChatVolume int

const (
	// Whisper carries 10m.
	Whisper ChatVolume = iota
	// Say carries 20m (chat range). This is the default.
	Say
	// Shout carries 100m.
	Shout
	// RegionSay reaches the whole region. Only scripts can use it and the
	// chat log carries no marker for it.
	RegionSay
)

var volumeNames = [...]string{"whisper", "say", "shout", "region_say"}

func (v ChatVolume) String() string {
	if v < 0 || int(v) >= len(volumeNames) {
		return "unknown"
	}
	return volumeNames[v]
}

// MarshalText implements encoding.TextMarshaler.
func (v ChatVolume) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// VolumeAndMessage detects the volume of a chat message from the viewer's
// decoration and returns the message with the decoration removed.
// It never fails: undecorated text is Say and returned unchanged.
func VolumeAndMessage(s string) (ChatVolume, string) {
	if msg, ok := strings.CutPrefix(s, "whispers: "); ok {
		return Whisper, msg
	}
	if msg, ok := strings.CutPrefix(s, "shouts: "); ok {
		return Shout, msg
	}
	return Say, s
}
