package event

import "github.com/slchatlog/slchatlog-go/pkg/slchatlog/sltypes"

// SystemMessage is the body of a SystemLine.
type SystemMessage interface {
	Type() Type
	isSystemMessage()
}

// System message types recognized by the default grammar.
const (
	SnapshotSaved       Type = "snapshot_saved"
	AttachmentSaved     Type = "attachment_saved"
	SentPayment         Type = "sent_payment"
	ReceivedPayment     Type = "received_payment"
	TeleportCompleted   Type = "teleport_completed"
	NowPlaying          Type = "now_playing"
	RegionRestart       Type = "region_restart"
	ObjectGaveObject    Type = "object_gave_object"
	ItemsShared         Type = "items_shared"
	ModifiedSearchQuery Type = "modified_search_query"
	AvatarGaveObject    Type = "avatar_gave_object"
	SimulatorVersion    Type = "simulator_version"
	RenamedAvatar       Type = "renamed_avatar"
	OtherSystem         Type = "other_system_message"
	PatternMatched      Type = "pattern_matched"
)

var coreSystemTypes = []Type{
	SnapshotSaved, AttachmentSaved, SentPayment, ReceivedPayment,
	TeleportCompleted, NowPlaying, RegionRestart, ObjectGaveObject,
	ItemsShared, ModifiedSearchQuery, AvatarGaveObject, SimulatorVersion,
	RenamedAvatar, OtherSystem, PatternMatched,
}

type SnapshotSavedMessage struct {
	Filename string `json:"filename"`
}

type AttachmentSavedMessage struct{}

// SentPaymentMessage is a payment made by the logging avatar. Message is
// nil when no payment comment was given.
type SentPaymentMessage struct {
	Recipient sltypes.OwnerKey     `json:"recipient"`
	Amount    sltypes.LindenAmount `json:"amount"`
	Message   *string              `json:"message,omitempty"`
}

// ReceivedPaymentMessage is a payment made to the logging avatar.
type ReceivedPaymentMessage struct {
	Sender  sltypes.OwnerKey     `json:"sender"`
	Amount  sltypes.LindenAmount `json:"amount"`
	Message *string              `json:"message,omitempty"`
}

// TeleportCompletedMessage names the location the avatar teleported from.
type TeleportCompletedMessage struct {
	Origin sltypes.Location `json:"origin"`
}

type NowPlayingMessage struct {
	Song string `json:"song"`
}

type RegionRestartMessage struct{}

// ObjectGaveObjectMessage is an inventory offer from a scripted object.
type ObjectGaveObjectMessage struct {
	ObjectName     string           `json:"object_name"`
	ObjectOwner    sltypes.OwnerKey `json:"object_owner"`
	GivenName      string           `json:"given_name"`
	ObjectLocation sltypes.Location `json:"object_location"`
}

type ItemsSharedMessage struct{}

type ModifiedSearchQueryMessage struct {
	Query string `json:"query"`
}

// AvatarGaveObjectMessage is an inventory offer from another avatar.
type AvatarGaveObjectMessage struct {
	GroupMember bool   `json:"group_member"`
	AvatarName  string `json:"avatar_name"`
	GivenName   string `json:"given_name"`
}

// SimulatorVersionMessage is shown after crossing into a region running a
// different server build.
type SimulatorVersionMessage struct {
	Current  string `json:"current"`
	Previous string `json:"previous"`
}

type RenamedAvatarMessage struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

// OtherSystemMessage holds a system notice no shape recognized, verbatim.
type OtherSystemMessage struct {
	Message string `json:"message"`
}

// PatternMessage is produced by user supplied pattern files. ID is the
// pattern's id and Data holds its named capture groups.
type PatternMessage struct {
	ID      string            `json:"id"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data,omitempty"`
}

func (*SnapshotSavedMessage) Type() Type       { return SnapshotSaved }
func (*AttachmentSavedMessage) Type() Type     { return AttachmentSaved }
func (*SentPaymentMessage) Type() Type         { return SentPayment }
func (*ReceivedPaymentMessage) Type() Type     { return ReceivedPayment }
func (*TeleportCompletedMessage) Type() Type   { return TeleportCompleted }
func (*NowPlayingMessage) Type() Type          { return NowPlaying }
func (*RegionRestartMessage) Type() Type       { return RegionRestart }
func (*ObjectGaveObjectMessage) Type() Type    { return ObjectGaveObject }
func (*ItemsSharedMessage) Type() Type         { return ItemsShared }
func (*ModifiedSearchQueryMessage) Type() Type { return ModifiedSearchQuery }
func (*AvatarGaveObjectMessage) Type() Type    { return AvatarGaveObject }
func (*SimulatorVersionMessage) Type() Type    { return SimulatorVersion }
func (*RenamedAvatarMessage) Type() Type       { return RenamedAvatar }
func (*OtherSystemMessage) Type() Type         { return OtherSystem }
func (*PatternMessage) Type() Type             { return PatternMatched }

func (*SnapshotSavedMessage) isSystemMessage()       {}
func (*AttachmentSavedMessage) isSystemMessage()     {}
func (*SentPaymentMessage) isSystemMessage()         {}
func (*ReceivedPaymentMessage) isSystemMessage()     {}
func (*TeleportCompletedMessage) isSystemMessage()   {}
func (*NowPlayingMessage) isSystemMessage()          {}
func (*RegionRestartMessage) isSystemMessage()       {}
func (*ObjectGaveObjectMessage) isSystemMessage()    {}
func (*ItemsSharedMessage) isSystemMessage()         {}
func (*ModifiedSearchQueryMessage) isSystemMessage() {}
func (*AvatarGaveObjectMessage) isSystemMessage()    {}
func (*SimulatorVersionMessage) isSystemMessage()    {}
func (*RenamedAvatarMessage) isSystemMessage()       {}
func (*OtherSystemMessage) isSystemMessage()         {}
func (*PatternMessage) isSystemMessage()             {}
