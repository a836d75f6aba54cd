package event

import "github.com/slchatlog/slchatlog-go/pkg/slchatlog/sltypes"

// AvatarMessage is the body of an AvatarLine.
type AvatarMessage interface {
	Type() Type
	isAvatarMessage()
}

// ChatMessage is ordinary local chat.
type ChatMessage struct {
	Volume  sltypes.ChatVolume `json:"volume"`
	Message string             `json:"message"`
}

// EmoteMessage is a "/me" emote.
type EmoteMessage struct {
	Volume  sltypes.ChatVolume `json:"volume"`
	Message string             `json:"message"`
}

// CameOnlineMessage reports a friend logging in.
type CameOnlineMessage struct{}

// WentOfflineMessage reports a friend logging out.
type WentOfflineMessage struct{}

// EnteredAreaMessage reports an avatar entering chat range, draw distance
// or the region. Distance is nil when the viewer did not report one.
type EnteredAreaMessage struct {
	Area     sltypes.Area      `json:"area"`
	Distance *sltypes.Distance `json:"distance,omitempty"`
}

// LeftAreaMessage reports an avatar leaving an area.
type LeftAreaMessage struct {
	Area sltypes.Area `json:"area"`
}

func (*ChatMessage) Type() Type        { return Chat }
func (*EmoteMessage) Type() Type       { return Emote }
func (*CameOnlineMessage) Type() Type  { return CameOnline }
func (*WentOfflineMessage) Type() Type { return WentOffline }
func (*EnteredAreaMessage) Type() Type { return EnteredArea }
func (*LeftAreaMessage) Type() Type    { return LeftArea }

func (*ChatMessage) isAvatarMessage()        {}
func (*EmoteMessage) isAvatarMessage()       {}
func (*CameOnlineMessage) isAvatarMessage()  {}
func (*WentOfflineMessage) isAvatarMessage() {}
func (*EnteredAreaMessage) isAvatarMessage() {}
func (*LeftAreaMessage) isAvatarMessage()    {}
