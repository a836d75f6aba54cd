package parser

import (
	"strings"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/sltypes"
)

// parseAvatarMessage parses the text after "Name: ". It never fails: text
// that is not a presence notice or an emote is chat.
func parseAvatarMessage(body string) event.AvatarMessage {
	if msg, ok := parsePresence(body); ok {
		return msg
	}
	if text, ok := strings.CutPrefix(body, "/me "); ok {
		volume, message := sltypes.VolumeAndMessage(text)
		return &event.EmoteMessage{Volume: volume, Message: message}
	}
	volume, message := sltypes.VolumeAndMessage(body)
	return &event.ChatMessage{Volume: volume, Message: message}
}

// parsePresence matches the fixed presence and area notices. The notice
// must make up all of body.
func parsePresence(body string) (event.AvatarMessage, bool) {
	switch body {
	case "is online.":
		return &event.CameOnlineMessage{}, true
	case "is offline.":
		return &event.WentOfflineMessage{}, true
	}
	if rest, ok := expect(body, "entered "); ok {
		return parseEnteredArea(rest)
	}
	if rest, ok := expect(body, "left "); ok {
		area, rest, err := sltypes.ParseArea(rest)
		if err != nil || rest != "." {
			return nil, false
		}
		return &event.LeftAreaMessage{Area: area}, true
	}
	return nil, false
}

// parseEnteredArea parses `<area>[ (<d.d m>)].`.
func parseEnteredArea(s string) (event.AvatarMessage, bool) {
	area, rest, err := sltypes.ParseArea(s)
	if err != nil {
		return nil, false
	}
	msg := &event.EnteredAreaMessage{Area: area}
	if after, ok := expect(rest, " ("); ok {
		d, after, err := sltypes.ParseDistance(after)
		if err != nil {
			return nil, false
		}
		if rest, ok = expect(after, ")"); !ok {
			return nil, false
		}
		msg.Distance = &d
	}
	if rest != "." {
		return nil, false
	}
	return msg, true
}
