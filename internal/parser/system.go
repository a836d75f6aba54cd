package parser

import (
	"strings"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/sltypes"
)

// SystemShape is one known form of system notice. Parse must either
// consume all of text or report false.
type SystemShape struct {
	Name  string
	Parse func(text string) (event.SystemMessage, bool)
}

// CoreShapes returns the shapes of the default grammar in priority order.
func CoreShapes() []SystemShape {
	return []SystemShape{
		{"snapshot_saved", parseSnapshotSaved},
		{"attachment_saved", parseAttachmentSaved},
		{"sent_payment", parseSentPayment},
		{"received_payment", parseReceivedPayment},
		{"teleport_completed", parseTeleportCompleted},
		{"now_playing", parseNowPlaying},
		{"region_restart", parseRegionRestart},
		{"object_gave_object", parseObjectGaveObject},
		{"items_shared", parseItemsShared},
		{"modified_search_query", parseModifiedSearchQuery},
		{"avatar_gave_object", parseAvatarGaveObject},
		{"simulator_version", parseSimulatorVersion},
		{"renamed_avatar", parseRenamedAvatar},
	}
}

func parseSnapshotSaved(text string) (event.SystemMessage, bool) {
	filename, ok := expect(text, "Snapshot saved: ")
	if !ok {
		return nil, false
	}
	return &event.SnapshotSavedMessage{Filename: filename}, true
}

func parseAttachmentSaved(text string) (event.SystemMessage, bool) {
	if text != "Attachment has been saved" {
		return nil, false
	}
	return &event.AttachmentSavedMessage{}, true
}

// paymentComment parses the end of a payment notice: either a period or
// ": " followed by the payer's comment.
func paymentComment(s string) (*string, bool) {
	if s == "." {
		return nil, true
	}
	if comment, ok := expect(s, ": "); ok {
		return &comment, true
	}
	return nil, false
}

func parseSentPayment(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "You paid ")
	if !ok {
		return nil, false
	}
	recipient, rest, err := sltypes.ParseOwnerURI(rest)
	if err != nil {
		return nil, false
	}
	amount, rest, err := sltypes.ParseLindenAmount(skipSpace(rest))
	if err != nil {
		return nil, false
	}
	comment, ok := paymentComment(rest)
	if !ok {
		return nil, false
	}
	return &event.SentPaymentMessage{Recipient: recipient, Amount: amount, Message: comment}, true
}

func parseReceivedPayment(text string) (event.SystemMessage, bool) {
	sender, rest, err := sltypes.ParseOwnerURI(text)
	if err != nil {
		return nil, false
	}
	rest, ok := expect(rest, " paid you ")
	if !ok {
		return nil, false
	}
	amount, rest, err := sltypes.ParseLindenAmount(rest)
	if err != nil {
		return nil, false
	}
	comment, ok := paymentComment(rest)
	if !ok {
		return nil, false
	}
	return &event.ReceivedPaymentMessage{Sender: sender, Amount: amount, Message: comment}, true
}

func parseTeleportCompleted(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "Teleport completed from http://maps.secondlife.com/secondlife/")
	if !ok {
		return nil, false
	}
	origin, rest, err := sltypes.ParseURLLocation(rest)
	if err != nil || rest != "" {
		return nil, false
	}
	return &event.TeleportCompletedMessage{Origin: origin}, true
}

func parseNowPlaying(text string) (event.SystemMessage, bool) {
	song, ok := expect(text, "Now playing: ")
	if !ok {
		return nil, false
	}
	return &event.NowPlayingMessage{Song: song}, true
}

func parseRegionRestart(text string) (event.SystemMessage, bool) {
	if text != "The region you are in now is about to restart. If you stay in this region you will be logged out." {
		return nil, false
	}
	return &event.RegionRestartMessage{}, true
}

type objectGift struct {
	owner    sltypes.OwnerKey
	given    string
	location sltypes.Location
}

// parseObjectGaveObject parses
//
//	<object> owned by <owner uri> gave you <nolink>'<item></nolink>' ( http://slurl.com/secondlife/<location> ).
//
// where the nolink decoration is optional.
func parseObjectGaveObject(text string) (event.SystemMessage, bool) {
	object, gift, ok := scanUntil(text, " owned by ", func(rest string) (objectGift, bool) {
		var g objectGift
		owner, rest, err := sltypes.ParseOwnerURI(rest)
		if err != nil {
			return g, false
		}
		rest, ok := expect(skipSpace(rest), "gave you ")
		if !ok {
			return g, false
		}
		rest = strings.TrimPrefix(rest, "<nolink>'")
		given, loc, ok := scanAt(rest, slurlSuffix)
		if !ok {
			return g, false
		}
		return objectGift{owner: owner, given: given, location: loc}, true
	})
	if !ok {
		return nil, false
	}
	return &event.ObjectGaveObjectMessage{
		ObjectName:     object,
		ObjectOwner:    gift.owner,
		GivenName:      gift.given,
		ObjectLocation: gift.location,
	}, true
}

// slurlSuffix matches the location suffix of an object gift notice.
func slurlSuffix(s string) (sltypes.Location, bool) {
	s = strings.TrimPrefix(s, "</nolink>'")
	rest, ok := expect(skipSpace(s), "( http://slurl.com/secondlife/")
	if !ok {
		return sltypes.Location{}, false
	}
	loc, rest, err := sltypes.ParseURLLocation(rest)
	if err != nil || rest != " )." {
		return sltypes.Location{}, false
	}
	return loc, true
}

func parseItemsShared(text string) (event.SystemMessage, bool) {
	if text != "Items successfully shared." {
		return nil, false
	}
	return &event.ItemsSharedMessage{}, true
}

func parseModifiedSearchQuery(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "Your search query was modified and the words that were too short were removed.")
	if !ok {
		return nil, false
	}
	rest, ok = expect(skipSpace(rest), "Searched for:")
	if !ok {
		return nil, false
	}
	return &event.ModifiedSearchQueryMessage{Query: skipSpace(rest)}, true
}

// parseAvatarGaveObject parses "[A group member named ]<avatar> gave you <item>.".
func parseAvatarGaveObject(text string) (event.SystemMessage, bool) {
	rest, groupMember := expect(text, "A group member named ")
	avatar, given, ok := scanUntil(rest, " gave you ", func(rest string) (string, bool) {
		return untilFinal(rest, ".")
	})
	if !ok || avatar == "" {
		return nil, false
	}
	return &event.AvatarGaveObjectMessage{
		GroupMember: groupMember,
		AvatarName:  avatar,
		GivenName:   given,
	}, true
}

func parseSimulatorVersion(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "The region you have entered is running a different simulator version.")
	if !ok {
		return nil, false
	}
	rest, ok = expect(skipSpace(rest), "Current simulator:")
	if !ok {
		return nil, false
	}
	current, previous, ok := scanUntil(skipSpace(rest), "\n", func(rest string) (string, bool) {
		rest, ok := expect(skipSpace(rest), "Previous simulator:")
		return skipSpace(rest), ok
	})
	if !ok {
		return nil, false
	}
	return &event.SimulatorVersionMessage{Current: current, Previous: previous}, true
}

// parseRenamedAvatar parses "<old name> is now known as <new name>.".
func parseRenamedAvatar(text string) (event.SystemMessage, bool) {
	oldName, newName, ok := scanUntil(text, " is now known as", func(rest string) (string, bool) {
		return untilFinal(skipSpace(rest), ".")
	})
	if !ok || oldName == "" {
		return nil, false
	}
	return &event.RenamedAvatarMessage{OldName: oldName, NewName: newName}, true
}
