package parser

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/sltypes"
)

func strPtr(s string) *string { return &s }

var (
	testAgent = sltypes.OwnerKey{Kind: sltypes.OwnerAgent, Key: uuid.MustParse(testUUID)}
	testGroup = sltypes.OwnerKey{Kind: sltypes.OwnerGroup, Key: uuid.MustParse(testUUID)}
)

func TestParseSystemMessage_Core(t *testing.T) {
	agentURI := "secondlife:///app/agent/" + testUUID + "/about"
	groupURI := "secondlife:///app/group/" + testUUID + "/inspect"

	tests := []struct {
		name string
		text string
		want event.SystemMessage
	}{
		{
			name: "snapshot saved",
			text: `Snapshot saved: C:\Users\bob\Pictures\snap_001.png`,
			want: &event.SnapshotSavedMessage{Filename: `C:\Users\bob\Pictures\snap_001.png`},
		},
		{
			name: "attachment saved",
			text: "Attachment has been saved",
			want: &event.AttachmentSavedMessage{},
		},
		{
			name: "sent payment",
			text: "You paid " + agentURI + " L$250.",
			want: &event.SentPaymentMessage{Recipient: testAgent, Amount: 250},
		},
		{
			name: "sent payment with comment",
			text: "You paid " + groupURI + " L$10: tip jar",
			want: &event.SentPaymentMessage{Recipient: testGroup, Amount: 10, Message: strPtr("tip jar")},
		},
		{
			name: "received payment",
			text: agentURI + " paid you L$1000.",
			want: &event.ReceivedPaymentMessage{Sender: testAgent, Amount: 1000},
		},
		{
			name: "received payment with comment",
			text: agentURI + " paid you L$5: thanks!",
			want: &event.ReceivedPaymentMessage{Sender: testAgent, Amount: 5, Message: strPtr("thanks!")},
		},
		{
			name: "teleport completed with escaped region",
			text: "Teleport completed from http://maps.secondlife.com/secondlife/Da%20Boom/128/128/22",
			want: &event.TeleportCompletedMessage{Origin: sltypes.Location{Region: "Da Boom", X: 128, Y: 128, Z: 22}},
		},
		{
			name: "now playing",
			text: "Now playing: Artist - Song",
			want: &event.NowPlayingMessage{Song: "Artist - Song"},
		},
		{
			name: "region restart",
			text: "The region you are in now is about to restart. If you stay in this region you will be logged out.",
			want: &event.RegionRestartMessage{},
		},
		{
			name: "object gave object",
			text: "Vendor owned by " + agentURI + " gave you <nolink>'Hat</nolink>' ( http://slurl.com/secondlife/Ahern/10/20/30 ).",
			want: &event.ObjectGaveObjectMessage{
				ObjectName:     "Vendor",
				ObjectOwner:    testAgent,
				GivenName:      "Hat",
				ObjectLocation: sltypes.Location{Region: "Ahern", X: 10, Y: 20, Z: 30},
			},
		},
		{
			name: "object gave object without nolink",
			text: "Box owned by " + groupURI + " gave you Notecard ( http://slurl.com/secondlife/Ahern/1/2/3 ).",
			want: &event.ObjectGaveObjectMessage{
				ObjectName:     "Box",
				ObjectOwner:    testGroup,
				GivenName:      "Notecard",
				ObjectLocation: sltypes.Location{Region: "Ahern", X: 1, Y: 2, Z: 3},
			},
		},
		{
			name: "items shared",
			text: "Items successfully shared.",
			want: &event.ItemsSharedMessage{},
		},
		{
			name: "modified search query",
			text: "Your search query was modified and the words that were too short were removed.\n Searched for: red hat",
			want: &event.ModifiedSearchQueryMessage{Query: "red hat"},
		},
		{
			name: "avatar gave object",
			text: "Jane Doe gave you Party Hat.",
			want: &event.AvatarGaveObjectMessage{AvatarName: "Jane Doe", GivenName: "Party Hat"},
		},
		{
			name: "group member gave object with period in name",
			text: "A group member named Jane Doe gave you Notes v1.2.",
			want: &event.AvatarGaveObjectMessage{GroupMember: true, AvatarName: "Jane Doe", GivenName: "Notes v1.2"},
		},
		{
			name: "simulator version",
			text: "The region you have entered is running a different simulator version.\n Current simulator: Second Life Server 2024.1\n Previous simulator: Second Life Server 2023.9",
			want: &event.SimulatorVersionMessage{Current: "Second Life Server 2024.1", Previous: "Second Life Server 2023.9"},
		},
		{
			name: "renamed avatar",
			text: "janedoe Resident is now known as Jane Doe.",
			want: &event.RenamedAvatarMessage{OldName: "janedoe Resident", NewName: "Jane Doe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Default().ParseSystemMessage(tt.text))
		})
	}
}

func TestParseSystemMessage_FallbackKeepsText(t *testing.T) {
	texts := []string{
		"",
		"Attachment has been saved.",
		"You paid secondlife:///app/agent/" + testUUID + "/about L$250 for a Hat.",
		"Teleport completed from http://maps.secondlife.com/secondlife/Ahern/1/2/3 extra",
		"Home position set.",
		"Jane Doe gave you .",
		" gave you Hat.",
		"Vendor owned by nobody gave you Hat",
	}
	for _, text := range texts {
		assert.Equal(t, &event.OtherSystemMessage{Message: text}, Default().ParseSystemMessage(text), "%q", text)
	}
}

func TestScanUntil_Leftmost(t *testing.T) {
	head, tail, ok := scanUntil("a-b-c", "-", func(rest string) (string, bool) { return rest, true })
	assert.True(t, ok)
	assert.Equal(t, "a", head)
	assert.Equal(t, "b-c", tail)

	// The leftmost occurrence whose remainder is accepted wins.
	head, tail, ok = scanUntil("a-b-c", "-", func(rest string) (string, bool) { return rest, rest == "c" })
	assert.True(t, ok)
	assert.Equal(t, "a-b", head)
	assert.Equal(t, "c", tail)

	_, _, ok = scanUntil("abc", "-", func(rest string) (string, bool) { return rest, true })
	assert.False(t, ok)
}
