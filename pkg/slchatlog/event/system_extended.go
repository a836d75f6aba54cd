package event

import (
	"time"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/sltypes"
)

// System message types produced only by the extended shapes.
const (
	SnapshotFailed        Type = "snapshot_failed"
	DrawDistanceSet       Type = "draw_distance_set"
	CallingCardOffered    Type = "calling_card_offered"
	PaidForObject         Type = "paid_for_object"
	PaidToCreateGroup     Type = "paid_to_create_group"
	PaidToJoinGroup       Type = "paid_to_join_group"
	PaidForLand           Type = "paid_for_land"
	PaymentFailed         Type = "payment_failed"
	MoneyPermission       Type = "money_permission_granted"
	LeftGroup             Type = "left_group"
	GestureLoadFailed     Type = "gesture_load_failed"
	DeclinedObject        Type = "declined_object"
	SettingToggled        Type = "setting_toggled"
	ScriptCountChanged    Type = "script_count_changed"
	ChatStillProcessing   Type = "chat_still_processing"
	VoiceCallFailed       Type = "voice_call_failed"
	AudioDomainAllowed    Type = "audio_domain_allowed"
	LinkFailed            Type = "link_failed"
	RezFailed             Type = "rez_failed"
	ObjectReturned        Type = "object_returned"
	BannedTemporarily     Type = "banned_temporarily"
	ScriptInfo            Type = "script_info"
	DiceRoll              Type = "dice_roll"
	DiceRollSum           Type = "dice_roll_sum"
	TextureInfoObject     Type = "texture_info_object"
	TextureInfoFace       Type = "texture_info_face"
	FirestormAnnouncement Type = "firestorm_message"
	GridStatus            Type = "grid_status"
	MessageWithLink       Type = "message_with_link"
	HolidayWishes         Type = "holiday_wishes"
	PhishingWarning       Type = "phishing_warning"
	StartupProgress       Type = "startup_progress"
	NoticeType            Type = "notice"
)

var extendedSystemTypes = []Type{
	SnapshotFailed, DrawDistanceSet, CallingCardOffered, PaidForObject,
	PaidToCreateGroup, PaidToJoinGroup, PaidForLand, PaymentFailed,
	MoneyPermission, LeftGroup, GestureLoadFailed, DeclinedObject,
	SettingToggled, ScriptCountChanged, ChatStillProcessing, VoiceCallFailed,
	AudioDomainAllowed, LinkFailed, RezFailed, ObjectReturned,
	BannedTemporarily, ScriptInfo, DiceRoll, DiceRollSum, TextureInfoObject,
	TextureInfoFace, FirestormAnnouncement, GridStatus, MessageWithLink,
	HolidayWishes, PhishingWarning, StartupProgress, NoticeType,
}

// Notice identifies a fixed-text system notice that carries no data.
type Notice string

const (
	NoticeHomePositionSet        Notice = "home_position_set"
	NoticeLandDivided            Notice = "land_divided"
	NoticeLandJoinCrossesRegion  Notice = "land_join_crosses_region"
	NoticeAddedToGroup           Notice = "added_to_group"
	NoticeInviteNotInGroup       Notice = "invite_not_in_group"
	NoticeInviteLimitedEstate    Notice = "invite_limited_estate"
	NoticeNotecardLoadFailed     Notice = "notecard_load_failed"
	NoticeSelectResidentsToShare Notice = "select_residents_to_share"
	NoticeAddedAsEstateManager   Notice = "added_as_estate_manager"
	NoticeBridgeCreating         Notice = "bridge_creating"
	NoticeBridgeCreated          Notice = "bridge_created"
	NoticeBridgeCreationRunning  Notice = "bridge_creation_in_progress"
	NoticeBridgeObjectNotFound   Notice = "bridge_object_not_found"
	NoticeBridgeAttachFailed     Notice = "bridge_attach_failed"
	NoticeBridgeAttachPointInUse Notice = "bridge_attach_point_in_use"
	NoticeBridgeNotCreated       Notice = "bridge_not_created"
	NoticeBridgeDetached         Notice = "bridge_detached"
	NoticeObjectPlacementFailed  Notice = "object_placement_failed"
	NoticeObjectNotForSale       Notice = "object_not_for_sale"
	NoticeInventoryCreateFailed  Notice = "inventory_create_failed"
	NoticeRegionFull             Notice = "region_full"
	NoticeCreateObjectDenied     Notice = "create_object_denied"
	NoticeRepositionDenied       Notice = "reposition_denied"
	NoticeRotateDenied           Notice = "rotate_denied"
	NoticeRescaleDenied          Notice = "rescale_denied"
	NoticeUnlinkDenied           Notice = "unlink_denied"
	NoticeViewScriptDenied       Notice = "view_script_denied"
	NoticeViewNotecardDenied     Notice = "view_notecard_denied"
	NoticeChangeShapeDenied      Notice = "change_shape_denied"
	NoticeParcelAccessDenied     Notice = "parcel_access_denied"
	NoticeParcelBanned           Notice = "parcel_banned"
	NoticeAvatarEjected          Notice = "avatar_ejected"
	NoticeEjectedFromParcel      Notice = "ejected_from_parcel"
	NoticeEjectedNoLongerAllowed Notice = "ejected_no_longer_allowed"
	NoticeBannedIndefinitely     Notice = "banned_indefinitely"
	NoticeGroupOnlyArea          Notice = "group_only_area"
	NoticeTeleportBlockedByRLV   Notice = "teleport_blocked_by_rlv"
	NoticeTextureBlockedByRLV    Notice = "texture_blocked_by_rlv"
	NoticeUnsupportedSLurl       Notice = "unsupported_slurl"
	NoticeUntrustedSLurlBlocked  Notice = "untrusted_slurl_blocked"
	NoticeGridStatusError        Notice = "grid_status_error"
	NoticeScriptInfoOutOfRange   Notice = "script_info_out_of_range"
	NoticeDiceUsage              Notice = "dice_usage"
	NoticeTestMessageOfTheDay    Notice = "test_message_of_the_day"
)

// NoticeMessage is a fixed-text notice.
type NoticeMessage struct {
	Notice Notice `json:"notice"`
}

// SnapshotFailedMessage reports a snapshot that could not be written.
// RequiredKiB and FreeKiB are only set when the disk was full.
type SnapshotFailedMessage struct {
	Folder      string `json:"folder"`
	DiskFull    bool   `json:"disk_full"`
	RequiredKiB uint64 `json:"required_kib,omitempty"`
	FreeKiB     uint64 `json:"free_kib,omitempty"`
}

type DrawDistanceSetMessage struct {
	Distance sltypes.Distance `json:"distance"`
}

type CallingCardOfferedMessage struct {
	Recipient string `json:"recipient"`
}

type PaidForObjectMessage struct {
	Seller     sltypes.OwnerKey     `json:"seller"`
	Amount     sltypes.LindenAmount `json:"amount"`
	ObjectName string               `json:"object_name"`
}

type PaidToCreateGroupMessage struct {
	Recipient sltypes.AgentKey     `json:"recipient"`
	Amount    sltypes.LindenAmount `json:"amount"`
}

type PaidToJoinGroupMessage struct {
	Group sltypes.GroupKey     `json:"group"`
	Fee   sltypes.LindenAmount `json:"fee"`
}

type PaidForLandMessage struct {
	PreviousOwner sltypes.OwnerKey     `json:"previous_owner"`
	Amount        sltypes.LindenAmount `json:"amount"`
}

type PaymentFailedMessage struct {
	Recipient sltypes.OwnerKey     `json:"recipient"`
	Amount    sltypes.LindenAmount `json:"amount"`
}

// MoneyPermissionMessage reports an object granted permission to take L$.
// Region and Position are nil when the viewer reported them as unknown.
type MoneyPermissionMessage struct {
	ObjectName string                     `json:"object_name"`
	OwnerName  string                     `json:"owner_name"`
	Region     *sltypes.RegionName        `json:"region,omitempty"`
	Position   *sltypes.RegionCoordinates `json:"position,omitempty"`
}

type LeftGroupMessage struct {
	GroupName string `json:"group_name"`
}

type GestureLoadFailedMessage struct {
	GestureName string `json:"gesture_name"`
}

type DeclinedObjectMessage struct {
	ObjectName    string           `json:"object_name"`
	GiverLocation sltypes.Location `json:"giver_location"`
	GiverName     string           `json:"giver_name"`
}

// Setting names used by SettingToggledMessage.
const (
	SettingDoubleClickTeleport = "double_click_teleport"
	SettingAlwaysRun           = "always_run"
)

type SettingToggledMessage struct {
	Setting string `json:"setting"`
	Enabled bool   `json:"enabled"`
}

type ScriptCountChangedMessage struct {
	Previous uint32 `json:"previous"`
	Current  uint32 `json:"current"`
	Change   int32  `json:"change"`
}

// Session kinds used by ChatStillProcessingMessage.
const (
	SessionMultiPerson = "multi_person"
	SessionMissing     = "missing_session"
	SessionConference  = "conference"
	SessionGroup       = "group"
)

// ChatStillProcessingMessage reports an IM or group chat message the
// server has not delivered yet. Name is the conference owner or group name.
type ChatStillProcessingMessage struct {
	Session string `json:"session"`
	Name    string `json:"name,omitempty"`
}

type VoiceCallFailedMessage struct {
	AvatarName string `json:"avatar_name"`
	Declined   bool   `json:"declined"`
}

type AudioDomainAllowedMessage struct {
	Domain string `json:"domain"`
}

// LinkFailedMessage counts are nil when no piece could be linked.
type LinkFailedMessage struct {
	FailedPieces   *uint64 `json:"failed_pieces,omitempty"`
	SelectedPieces *uint64 `json:"selected_pieces,omitempty"`
}

type RezFailedMessage struct {
	ObjectName string                    `json:"object_name"`
	Position   sltypes.RegionCoordinates `json:"position"`
	ParcelName string                    `json:"parcel_name"`
	Region     sltypes.RegionName        `json:"region"`
	ParcelFull bool                      `json:"parcel_full"`
}

type ObjectReturnedMessage struct {
	ObjectName string           `json:"object_name"`
	ParcelName string           `json:"parcel_name"`
	Location   sltypes.Location `json:"location"`
	AutoReturn bool             `json:"auto_return"`
}

type BannedTemporarilyMessage struct {
	Duration time.Duration `json:"duration"`
}

type ScriptInfoMessage struct {
	Name           string        `json:"name"`
	RunningScripts uint64        `json:"running_scripts"`
	TotalScripts   uint64        `json:"total_scripts"`
	MemoryLimitKB  uint64        `json:"memory_limit_kb"`
	CPUTime        time.Duration `json:"cpu_time"`
}

type DiceRollMessage struct {
	RollNumber uint64 `json:"roll_number"`
	Faces      uint64 `json:"faces"`
	Result     uint64 `json:"result"`
}

type DiceRollSumMessage struct {
	Rolls uint64 `json:"rolls"`
	Faces uint64 `json:"faces"`
	Sum   uint64 `json:"sum"`
}

// TextureInfoObjectMessage lists the faces reported on the continuation
// lines of a texture info notice.
type TextureInfoObjectMessage struct {
	ObjectName string                   `json:"object_name"`
	Faces      []TextureInfoFaceMessage `json:"faces,omitempty"`
}

type TextureInfoFaceMessage struct {
	Face        uint64 `json:"face"`
	Width       uint64 `json:"width"`
	Height      uint64 `json:"height"`
	TextureType string `json:"texture_type"`
}

// FirestormMessage is an announcement by the Firestorm viewer team, for
// example "Firestorm Tip! ...".
type FirestormMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type GridStatusMessage struct {
	Title       string `json:"title"`
	Scheduled   bool   `json:"scheduled"`
	Body        string `json:"body"`
	IncidentURL string `json:"incident_url"`
}

type MessageWithLinkMessage struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

type HolidayWishesMessage struct {
	Message string `json:"message"`
}

type PhishingWarningMessage struct {
	Message string `json:"message"`
}

// StartupProgressMessage is one of the "Loading..." style lines a viewer
// logs while connecting.
type StartupProgressMessage struct {
	Message string `json:"message"`
}

func (*NoticeMessage) Type() Type              { return NoticeType }
func (*SnapshotFailedMessage) Type() Type      { return SnapshotFailed }
func (*DrawDistanceSetMessage) Type() Type     { return DrawDistanceSet }
func (*CallingCardOfferedMessage) Type() Type  { return CallingCardOffered }
func (*PaidForObjectMessage) Type() Type       { return PaidForObject }
func (*PaidToCreateGroupMessage) Type() Type   { return PaidToCreateGroup }
func (*PaidToJoinGroupMessage) Type() Type     { return PaidToJoinGroup }
func (*PaidForLandMessage) Type() Type         { return PaidForLand }
func (*PaymentFailedMessage) Type() Type       { return PaymentFailed }
func (*MoneyPermissionMessage) Type() Type     { return MoneyPermission }
func (*LeftGroupMessage) Type() Type           { return LeftGroup }
func (*GestureLoadFailedMessage) Type() Type   { return GestureLoadFailed }
func (*DeclinedObjectMessage) Type() Type      { return DeclinedObject }
func (*SettingToggledMessage) Type() Type      { return SettingToggled }
func (*ScriptCountChangedMessage) Type() Type  { return ScriptCountChanged }
func (*ChatStillProcessingMessage) Type() Type { return ChatStillProcessing }
func (*VoiceCallFailedMessage) Type() Type     { return VoiceCallFailed }
func (*AudioDomainAllowedMessage) Type() Type  { return AudioDomainAllowed }
func (*LinkFailedMessage) Type() Type          { return LinkFailed }
func (*RezFailedMessage) Type() Type           { return RezFailed }
func (*ObjectReturnedMessage) Type() Type      { return ObjectReturned }
func (*BannedTemporarilyMessage) Type() Type   { return BannedTemporarily }
func (*ScriptInfoMessage) Type() Type          { return ScriptInfo }
func (*DiceRollMessage) Type() Type            { return DiceRoll }
func (*DiceRollSumMessage) Type() Type         { return DiceRollSum }
func (*TextureInfoObjectMessage) Type() Type   { return TextureInfoObject }
func (*TextureInfoFaceMessage) Type() Type     { return TextureInfoFace }
func (*FirestormMessage) Type() Type           { return FirestormAnnouncement }
func (*GridStatusMessage) Type() Type          { return GridStatus }
func (*MessageWithLinkMessage) Type() Type     { return MessageWithLink }
func (*HolidayWishesMessage) Type() Type       { return HolidayWishes }
func (*PhishingWarningMessage) Type() Type     { return PhishingWarning }
func (*StartupProgressMessage) Type() Type     { return StartupProgress }

func (*NoticeMessage) isSystemMessage()              {}
func (*SnapshotFailedMessage) isSystemMessage()      {}
func (*DrawDistanceSetMessage) isSystemMessage()     {}
func (*CallingCardOfferedMessage) isSystemMessage()  {}
func (*PaidForObjectMessage) isSystemMessage()       {}
func (*PaidToCreateGroupMessage) isSystemMessage()   {}
func (*PaidToJoinGroupMessage) isSystemMessage()     {}
func (*PaidForLandMessage) isSystemMessage()         {}
func (*PaymentFailedMessage) isSystemMessage()       {}
func (*MoneyPermissionMessage) isSystemMessage()     {}
func (*LeftGroupMessage) isSystemMessage()           {}
func (*GestureLoadFailedMessage) isSystemMessage()   {}
func (*DeclinedObjectMessage) isSystemMessage()      {}
func (*SettingToggledMessage) isSystemMessage()      {}
func (*ScriptCountChangedMessage) isSystemMessage()  {}
func (*ChatStillProcessingMessage) isSystemMessage() {}
func (*VoiceCallFailedMessage) isSystemMessage()     {}
func (*AudioDomainAllowedMessage) isSystemMessage()  {}
func (*LinkFailedMessage) isSystemMessage()          {}
func (*RezFailedMessage) isSystemMessage()           {}
func (*ObjectReturnedMessage) isSystemMessage()      {}
func (*BannedTemporarilyMessage) isSystemMessage()   {}
func (*ScriptInfoMessage) isSystemMessage()          {}
func (*DiceRollMessage) isSystemMessage()            {}
func (*DiceRollSumMessage) isSystemMessage()         {}
func (*TextureInfoObjectMessage) isSystemMessage()   {}
func (*TextureInfoFaceMessage) isSystemMessage()     {}
func (*FirestormMessage) isSystemMessage()           {}
func (*GridStatusMessage) isSystemMessage()          {}
func (*MessageWithLinkMessage) isSystemMessage()     {}
func (*HolidayWishesMessage) isSystemMessage()       {}
func (*PhishingWarningMessage) isSystemMessage()     {}
func (*StartupProgressMessage) isSystemMessage()     {}
