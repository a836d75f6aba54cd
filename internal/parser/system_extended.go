package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/sltypes"
)

// ExtendedShapes returns further known notice shapes. They are not part of
// the default grammar; append them to CoreShapes or use them with
// Reclassify.
func ExtendedShapes() []SystemShape {
	return []SystemShape{
		{"notice", parseNotice},
		{"snapshot_failed", parseSnapshotFailed},
		{"draw_distance_set", parseDrawDistanceSet},
		{"calling_card_offered", parseCallingCardOffered},
		{"paid_to_create_group", parsePaidToCreateGroup},
		{"paid_to_join_group", parsePaidToJoinGroup},
		{"paid_for_land", parsePaidForLand},
		{"paid_for_object", parsePaidForObject},
		{"payment_failed", parsePaymentFailed},
		{"money_permission_granted", parseMoneyPermission},
		{"left_group", parseLeftGroup},
		{"gesture_load_failed", parseGestureLoadFailed},
		{"declined_object", parseDeclinedObject},
		{"setting_toggled", parseSettingToggled},
		{"script_count_changed", parseScriptCountChanged},
		{"chat_still_processing", parseChatStillProcessing},
		{"voice_call_failed", parseVoiceCallFailed},
		{"audio_domain_allowed", parseAudioDomainAllowed},
		{"link_failed", parseLinkFailed},
		{"rez_failed", parseRezFailed},
		{"object_returned", parseObjectReturned},
		{"banned_temporarily", parseBannedTemporarily},
		{"script_info", parseScriptInfo},
		{"dice_roll", parseDiceRoll},
		{"texture_info", parseTextureInfo},
		{"firestorm_message", parseFirestormMessage},
		{"grid_status", parseGridStatus},
		{"message_with_link", parseMessageWithLink},
		{"heuristic", parseHeuristic},
	}
}

var noticeTexts = map[string]event.Notice{
	"Home position set.":     event.NoticeHomePositionSet,
	"Land has been divided.": event.NoticeLandDivided,
	"Selected land is not all in the same region.\n Try selecting a smaller piece of land.":               event.NoticeLandJoinCrossesRegion,
	"You have been added to the group.":                                                                   event.NoticeAddedToGroup,
	"Unable to invite user because you are not in that group.":                                            event.NoticeInviteNotInGroup,
	"Unable to invite users because at least one user is in a different\n limited estate than the group.": event.NoticeInviteLimitedEstate,
	"Select residents to share with.":                                                                     event.NoticeSelectResidentsToShare,
	"You have been added as an estate manager.":                                                           event.NoticeAddedAsEstateManager,
	"Creating the bridge. This might take a moment, please wait.":                                         event.NoticeBridgeCreating,
	"Creating the bridge. This might take a few moments, please wait":                                     event.NoticeBridgeCreating,
	"Bridge created.": event.NoticeBridgeCreated,
	"Bridge creation in process, cannot start another. Please wait a few minutes before trying again.":                                                                                   event.NoticeBridgeCreationRunning,
	"Bridge object not found. Can't proceed with creation, exiting.":                                                                                                                     event.NoticeBridgeObjectNotFound,
	"Bridge failed to attach. This is not the current bridge version. Please use the Firestorm 'Avatar/Avatar Health/Recreate Bridge' menu option to recreate the bridge.":               event.NoticeBridgeAttachFailed,
	"Bridge failed to attach. Something else was using the bridge attachment point. Please try to recreate the bridge.":                                                                  event.NoticeBridgeAttachPointInUse,
	"Bridge failed to attach. Something else was using the bridge attachment point. Please use the Firestorm 'Avatar/Avatar Health/Recreate Bridge' menu option to recreate the bridge.": event.NoticeBridgeAttachPointInUse,
	"Bridge not created. The bridge couldn't be found in inventory. Please use the Firestorm 'Avatar/Avatar Health/Recreate Bridge' menu option to recreate the bridge.":                 event.NoticeBridgeNotCreated,
	"Bridge detached.": event.NoticeBridgeDetached,
	"Failed to place object at specified location.  Please try again.": event.NoticeObjectPlacementFailed,
	"This object is not for sale.":                                     event.NoticeObjectNotForSale,
	"Cannot create requested inventory.":                               event.NoticeInventoryCreateFailed,
	"Unable to create requested object. The region is full.":           event.NoticeRegionFull,
	"You cannot create objects here.  The owner of this land does not allow it.  Use the land tool to see land ownership.": event.NoticeCreateObjectDenied,
	"Can't reposition -- permission denied":                                        event.NoticeRepositionDenied,
	"Can't rotate -- permission denied":                                            event.NoticeRotateDenied,
	"Can't rescale -- permission denied":                                           event.NoticeRescaleDenied,
	"Failed to unlink because you do not have permissions to build on all parcels": event.NoticeUnlinkDenied,
	"Insufficient permissions to view the script.":                                 event.NoticeViewScriptDenied,
	"You do not have permission to view this notecard.":                            event.NoticeViewNotecardDenied,
	"You are not allowed to change this shape.":                                    event.NoticeChangeShapeDenied,
	"Cannot enter parcel, you are not on the access list.":                         event.NoticeParcelAccessDenied,
	"Cannot enter parcel, you have been banned.":                                   event.NoticeParcelBanned,
	"Avatar ejected.":                                                                       event.NoticeAvatarEjected,
	"You have been ejected from this land.":                                                 event.NoticeEjectedFromParcel,
	"You are no longer allowed here and have been ejected.":                                 event.NoticeEjectedNoLongerAllowed,
	"You have been banned indefinitely":                                                     event.NoticeBannedIndefinitely,
	"You have been banned indefinitely.":                                                    event.NoticeBannedIndefinitely,
	"Only members of a certain group can visit this area.":                                  event.NoticeGroupOnlyArea,
	"Unable to initiate teleport due to RLV restrictions":                                   event.NoticeTeleportBlockedByRLV,
	"Unable to open texture due to RLV restrictions":                                        event.NoticeTextureBlockedByRLV,
	"The SLurl you clicked on is not supported.":                                            event.NoticeUnsupportedSLurl,
	"A SLurl was received from an untrusted browser and has been blocked for your security": event.NoticeUntrustedSLurlBlocked,
	"SL Grid Status error: Invalid message format. Try again later.":                        event.NoticeGridStatusError,
	"Script info: Object to check is invalid or out of range.":                              event.NoticeScriptInfoOutOfRange,
	"You must provide positive values for dice (max 100) and faces (max 1000).":             event.NoticeDiceUsage,
}

const testMOTD = "This is a test version of Firestorm. If this were an actual release version, a real message of the day would be here. This is only a test."

func parseNotice(text string) (event.SystemMessage, bool) {
	if n, ok := noticeTexts[text]; ok {
		return &event.NoticeMessage{Notice: n}, true
	}
	// The notecard notice wraps onto an indented continuation line.
	if rest, ok := expect(text, "Unable to load the notecard.\n"); ok && skipSpace(rest) == "Please try again." {
		return &event.NoticeMessage{Notice: event.NoticeNotecardLoadFailed}, true
	}
	return nil, false
}

func parseSnapshotFailed(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "Failed to save snapshot to ")
	if !ok {
		return nil, false
	}
	if folder, ok := untilFinal(rest, ": Directory does not exist."); ok {
		return &event.SnapshotFailedMessage{Folder: folder}, true
	}
	type space struct{ required, free uint64 }
	folder, sp, ok := scanUntil(rest, ": Disk is full. ", func(rest string) (space, bool) {
		required, rest, err := sltypes.ParseUint(rest)
		if err != nil {
			return space{}, false
		}
		rest, ok := expect(rest, "KB is required but only ")
		if !ok {
			return space{}, false
		}
		free, rest, err := sltypes.ParseUint(rest)
		if err != nil || rest != "KB is free." {
			return space{}, false
		}
		return space{required, free}, true
	})
	if !ok {
		return nil, false
	}
	return &event.SnapshotFailedMessage{Folder: folder, DiskFull: true, RequiredKiB: sp.required, FreeKiB: sp.free}, true
}

func parseDrawDistanceSet(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "Draw Distance set to ")
	if !ok {
		return nil, false
	}
	d, rest, err := sltypes.ParseDistance(rest)
	if err != nil || rest != "." {
		return nil, false
	}
	return &event.DrawDistanceSetMessage{Distance: d}, true
}

func parseCallingCardOffered(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "You have offered a calling card to ")
	if !ok {
		return nil, false
	}
	name, ok := untilFinal(rest, ".")
	if !ok {
		return nil, false
	}
	return &event.CallingCardOfferedMessage{Recipient: name}, true
}

// payment parses "<prefix><owner uri> L$<amount>" and returns the text
// after the amount.
func payment(text, prefix string) (sltypes.OwnerKey, sltypes.LindenAmount, string, bool) {
	rest, ok := expect(text, prefix)
	if !ok {
		return sltypes.OwnerKey{}, 0, "", false
	}
	owner, rest, err := sltypes.ParseOwnerURI(rest)
	if err != nil {
		return sltypes.OwnerKey{}, 0, "", false
	}
	amount, rest, err := sltypes.ParseLindenAmount(skipSpace(rest))
	if err != nil {
		return sltypes.OwnerKey{}, 0, "", false
	}
	return owner, amount, rest, true
}

func parsePaidToCreateGroup(text string) (event.SystemMessage, bool) {
	owner, amount, rest, ok := payment(text, "You paid ")
	if !ok || owner.IsGroup() || rest != " to create a group." {
		return nil, false
	}
	return &event.PaidToCreateGroupMessage{Recipient: sltypes.AgentKey(owner.Key), Amount: amount}, true
}

func parsePaidToJoinGroup(text string) (event.SystemMessage, bool) {
	owner, amount, rest, ok := payment(text, "You paid ")
	if !ok || !owner.IsGroup() || rest != " to join a group." {
		return nil, false
	}
	return &event.PaidToJoinGroupMessage{Group: sltypes.GroupKey(owner.Key), Fee: amount}, true
}

func parsePaidForLand(text string) (event.SystemMessage, bool) {
	owner, amount, rest, ok := payment(text, "You paid ")
	if !ok || rest != " for a parcel of land." {
		return nil, false
	}
	return &event.PaidForLandMessage{PreviousOwner: owner, Amount: amount}, true
}

func parsePaidForObject(text string) (event.SystemMessage, bool) {
	owner, amount, rest, ok := payment(text, "You paid ")
	if !ok {
		return nil, false
	}
	rest, ok = expect(rest, " for ")
	if !ok {
		return nil, false
	}
	object, ok := untilFinal(rest, ".")
	if !ok {
		return nil, false
	}
	return &event.PaidForObjectMessage{Seller: owner, Amount: amount, ObjectName: object}, true
}

func parsePaymentFailed(text string) (event.SystemMessage, bool) {
	owner, amount, rest, ok := payment(text, "You failed to pay ")
	if !ok || rest != "." {
		return nil, false
	}
	return &event.PaymentFailedMessage{Recipient: owner, Amount: amount}, true
}

// parseMoneyPermission parses
//
//	'<object>', an object owned by '<owner>', located in <region> at <x>, <y>,<z>, has been granted permission to: Take Linden dollars (L$) from you.
//
// where region and position may be "(unknown region)" and "(unknown position)".
func parseMoneyPermission(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "'")
	if !ok {
		return nil, false
	}
	const suffix = ", has been granted permission to: Take Linden dollars (L$) from you."
	rest, ok = strings.CutSuffix(rest, suffix)
	if !ok {
		return nil, false
	}
	object, rest, ok := strings.Cut(rest, "', an object owned by '")
	if !ok {
		return nil, false
	}
	owner, rest, ok := strings.Cut(rest, "', located in ")
	if !ok {
		return nil, false
	}
	msg := &event.MoneyPermissionMessage{ObjectName: object, OwnerName: owner}
	if after, ok := expect(rest, "(unknown region) at "); ok {
		rest = after
	} else {
		regionText, after, ok := strings.Cut(rest, " at ")
		if !ok {
			return nil, false
		}
		region, err := sltypes.NewRegionName(regionText)
		if err != nil {
			return nil, false
		}
		msg.Region = &region
		rest = after
	}
	if rest == "(unknown position)" {
		return msg, true
	}
	pos, rest, err := sltypes.ParseCoordinateList(rest)
	if err != nil || rest != "" {
		return nil, false
	}
	msg.Position = &pos
	return msg, true
}

func parseLeftGroup(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "You have left the group '")
	if !ok {
		return nil, false
	}
	group, ok := untilFinal(rest, "'.")
	if !ok {
		return nil, false
	}
	return &event.LeftGroupMessage{GroupName: group}, true
}

func parseGestureLoadFailed(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "Unable to load gesture ")
	if !ok {
		return nil, false
	}
	name, ok := untilFinal(rest, ".")
	if !ok {
		return nil, false
	}
	return &event.GestureLoadFailedMessage{GestureName: name}, true
}

// parseDeclinedObject parses
//
//	You decline '<object>'  ( http://slurl.com/secondlife/<location> ) from <giver>.
func parseDeclinedObject(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "You decline '")
	if !ok {
		return nil, false
	}
	type giver struct {
		location sltypes.Location
		name     string
	}
	object, g, ok := scanUntil(rest, "'  ( http://slurl.com/secondlife/", func(rest string) (giver, bool) {
		loc, rest, err := sltypes.ParseURLLocation(rest)
		if err != nil {
			return giver{}, false
		}
		name, ok := expect(rest, " ) from ")
		if !ok {
			return giver{}, false
		}
		return giver{location: loc, name: strings.TrimSuffix(name, ".")}, true
	})
	if !ok {
		return nil, false
	}
	return &event.DeclinedObjectMessage{ObjectName: object, GiverLocation: g.location, GiverName: g.name}, true
}

func parseSettingToggled(text string) (event.SystemMessage, bool) {
	switch text {
	case "DoubleClick Teleport enabled.":
		return &event.SettingToggledMessage{Setting: event.SettingDoubleClickTeleport, Enabled: true}, true
	case "DoubleClick Teleport disabled.":
		return &event.SettingToggledMessage{Setting: event.SettingDoubleClickTeleport}, true
	case "Always Run enabled.":
		return &event.SettingToggledMessage{Setting: event.SettingAlwaysRun, Enabled: true}, true
	case "Always Run disabled.":
		return &event.SettingToggledMessage{Setting: event.SettingAlwaysRun}, true
	}
	return nil, false
}

func parseScriptCountChanged(text string) (event.SystemMessage, bool) {
	m := scriptCountPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	previous, err1 := strconv.ParseUint(m[1], 10, 32)
	current, err2 := strconv.ParseUint(m[2], 10, 32)
	diff, err3 := strconv.ParseInt(m[4], 10, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, false
	}
	if m[3] == "-" {
		diff = -diff
	}
	return &event.ScriptCountChangedMessage{
		Previous: uint32(previous),
		Current:  uint32(current),
		Change:   int32(diff),
	}, true
}

const droppedByServer = "If the message does not appear in the next few minutes, it may have been dropped by the server."

// parseChatStillProcessing parses the two line notice about an IM that has
// not been delivered yet.
func parseChatStillProcessing(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "The message sent to ")
	if !ok {
		return nil, false
	}
	first, second, ok := strings.Cut(rest, "\n")
	if !ok || skipSpace(second) != droppedByServer {
		return nil, false
	}
	switch first {
	case "Multi-person chat is still being processed.":
		return &event.ChatStillProcessingMessage{Session: event.SessionMultiPerson}, true
	case "(IM Session Doesn't Exist) is still being processed.":
		return &event.ChatStillProcessingMessage{Session: event.SessionMissing}, true
	}
	name, ok := untilFinal(first, " is still being processed.")
	if !ok {
		return nil, false
	}
	if owner, ok := expect(name, "Conference with "); ok {
		return &event.ChatStillProcessingMessage{Session: event.SessionConference, Name: owner}, true
	}
	return &event.ChatStillProcessingMessage{Session: event.SessionGroup, Name: name}, true
}

func parseVoiceCallFailed(text string) (event.SystemMessage, bool) {
	const reconnect = "  You will now be reconnected to Nearby Voice Chat."
	if name, ok := untilFinal(text, "has declined your call."+reconnect); ok {
		return &event.VoiceCallFailedMessage{AvatarName: strings.TrimSpace(name), Declined: true}, true
	}
	if name, ok := untilFinal(text, "is not available to take your call."+reconnect); ok {
		return &event.VoiceCallFailedMessage{AvatarName: strings.TrimSpace(name)}, true
	}
	return nil, false
}

func parseAudioDomainAllowed(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "Audio from the domain ")
	if !ok {
		return nil, false
	}
	domain, ok := untilFinal(rest, " will always be played.")
	if !ok {
		return nil, false
	}
	return &event.AudioDomainAllowedMessage{Domain: domain}, true
}

func parseLinkFailed(text string) (event.SystemMessage, bool) {
	if text == "Link failed -- Unable to link any pieces - pieces are too far apart." {
		return &event.LinkFailedMessage{}, true
	}
	m := linkFailedPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	failed, err1 := strconv.ParseUint(m[1], 10, 64)
	selected, err2 := strconv.ParseUint(m[2], 10, 64)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	return &event.LinkFailedMessage{FailedPieces: &failed, SelectedPieces: &selected}, true
}

// parseRezFailed parses
//
//	Can't rez object '<object>' at { x, y, z } on parcel '<parcel>' in region <region> because ...
//
// for the parcel-full and the permission-denied reasons.
func parseRezFailed(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "Can't rez object '")
	if !ok {
		return nil, false
	}
	const (
		parcelFull = " because the parcel is too full"
		denied     = " because the owner of this land does not allow it.  Use the land tool to see land ownership."
	)
	object, msg, ok := scanUntil(rest, "' at ", func(rest string) (*event.RezFailedMessage, bool) {
		pos, rest, err := sltypes.ParseRegionCoordinates(rest)
		if err != nil {
			return nil, false
		}
		rest, ok := expect(rest, " on parcel '")
		if !ok {
			return nil, false
		}
		parcel, rest, ok := strings.Cut(rest, "' in region ")
		if !ok {
			return nil, false
		}
		m := &event.RezFailedMessage{Position: pos, ParcelName: parcel}
		regionText, ok := untilFinal(rest, denied)
		if !ok {
			var after string
			regionText, after, ok = strings.Cut(rest, parcelFull)
			if !ok || strings.TrimRight(after, ".") != "" {
				return nil, false
			}
			m.ParcelFull = true
		}
		region, err := sltypes.NewRegionName(regionText)
		if err != nil {
			return nil, false
		}
		m.Region = region
		return m, true
	})
	if !ok {
		return nil, false
	}
	msg.ObjectName = object
	return msg, true
}

func parseObjectReturned(text string) (event.SystemMessage, bool) {
	m := objectReturnedPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	region, err := sltypes.NewRegionName(m[3])
	if err != nil {
		return nil, false
	}
	x, err1 := strconv.Atoi(m[4])
	y, err2 := strconv.Atoi(m[5])
	if err1 != nil || err2 != nil {
		return nil, false
	}
	return &event.ObjectReturnedMessage{
		ObjectName: m[1],
		ParcelName: m[2],
		Location:   sltypes.Location{Region: region, X: x, Y: y},
		AutoReturn: m[6] != "",
	}, true
}

func parseBannedTemporarily(text string) (event.SystemMessage, bool) {
	m := bannedForPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	minutes, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return nil, false
	}
	return &event.BannedTemporarilyMessage{Duration: time.Duration(minutes) * time.Minute}, true
}

func parseScriptInfo(text string) (event.SystemMessage, bool) {
	m := scriptInfoPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	running, err1 := strconv.ParseUint(m[2], 10, 64)
	total, err2 := strconv.ParseUint(m[3], 10, 64)
	memory, err3 := strconv.ParseUint(m[4], 10, 64)
	ms, err4 := strconv.ParseFloat(m[5], 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return nil, false
	}
	return &event.ScriptInfoMessage{
		Name:           m[1],
		RunningScripts: running,
		TotalScripts:   total,
		MemoryLimitKB:  memory,
		CPUTime:        time.Duration(ms * float64(time.Millisecond)),
	}, true
}

// parseUints parses every capture group of a match as an unsigned integer.
func parseUints(groups []string) ([]uint64, bool) {
	out := make([]uint64, len(groups))
	for i, g := range groups {
		v, err := strconv.ParseUint(g, 10, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func parseDiceRoll(text string) (event.SystemMessage, bool) {
	if m := diceRollPattern.FindStringSubmatch(text); m != nil {
		if v, ok := parseUints(m[1:]); ok {
			return &event.DiceRollMessage{RollNumber: v[0], Faces: v[1], Result: v[2]}, true
		}
	}
	if m := diceSumPattern.FindStringSubmatch(text); m != nil {
		if v, ok := parseUints(m[1:]); ok {
			return &event.DiceRollSumMessage{Rolls: v[0], Faces: v[1], Sum: v[2]}, true
		}
	}
	return nil, false
}

// parseTextureInfo parses the texture info header for an object, or the
// per-face line when it was logged on its own.
func parseTextureInfo(text string) (event.SystemMessage, bool) {
	if m := textureFacePattern.FindStringSubmatch(text); m != nil {
		return textureFace(m)
	}
	rest, ok := expect(text, "Texture info for: ")
	if !ok {
		return nil, false
	}
	name, faces, _ := strings.Cut(rest, "\n")
	if name == "" {
		return nil, false
	}
	msg := &event.TextureInfoObjectMessage{ObjectName: name}
	if faces == "" {
		return msg, true
	}
	for _, line := range strings.Split(faces, "\n") {
		m := textureFacePattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			return nil, false
		}
		face, ok := textureFace(m)
		if !ok {
			return nil, false
		}
		msg.Faces = append(msg.Faces, *face)
	}
	return msg, true
}

func textureFace(m []string) (*event.TextureInfoFaceMessage, bool) {
	v, ok := parseUints([]string{m[1], m[2], m[4]})
	if !ok {
		return nil, false
	}
	return &event.TextureInfoFaceMessage{Width: v[0], Height: v[1], TextureType: m[3], Face: v[2]}, true
}

func parseFirestormMessage(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "Firestorm ")
	if !ok {
		return nil, false
	}
	category, message, ok := strings.Cut(rest, "!")
	if !ok || category == "" {
		return nil, false
	}
	return &event.FirestormMessage{Category: category, Message: strings.TrimLeft(message, " ")}, true
}

const incidentPrefix = "https://status.secondlifegrid.net/incidents/"

// parseGridStatus parses
//
//	[ <title> ] [THIS IS A SCHEDULED EVENT ]<body> [ https://status.secondlifegrid.net/incidents/<id> ]
func parseGridStatus(text string) (event.SystemMessage, bool) {
	rest, ok := expect(text, "[ ")
	if !ok {
		return nil, false
	}
	title, rest, ok := strings.Cut(rest, " ] ")
	if !ok {
		return nil, false
	}
	rest, scheduled := expect(rest, "THIS IS A SCHEDULED EVENT ")
	body, incident, ok := scanUntil(rest, " [ "+incidentPrefix, func(rest string) (string, bool) {
		id, ok := untilFinal(rest, " ]")
		if !ok || strings.ContainsAny(id, " \n") {
			return "", false
		}
		return id, true
	})
	if !ok {
		return nil, false
	}
	return &event.GridStatusMessage{
		Title:       title,
		Scheduled:   scheduled,
		Body:        body,
		IncidentURL: incidentPrefix + incident,
	}, true
}

// parseMessageWithLink matches message of the day style notices that end
// in a URL.
func parseMessageWithLink(text string) (event.SystemMessage, bool) {
	loc := linkPattern.FindStringIndex(text)
	if loc == nil {
		return nil, false
	}
	return &event.MessageWithLinkMessage{
		Message: strings.TrimRight(text[:loc[0]], " "),
		Link:    text[loc[0]:],
	}, true
}

// parseHeuristic recognizes free-form viewer announcements by keywords.
func parseHeuristic(text string) (event.SystemMessage, bool) {
	switch {
	case strings.Contains(text, "Firestorm") &&
		(strings.Contains(text, "holiday") || strings.Contains(text, "Happy New Year")):
		return &event.HolidayWishesMessage{Message: text}, true
	case strings.Contains(text, "phishing"):
		return &event.PhishingWarningMessage{Message: text}, true
	case text == testMOTD:
		return &event.NoticeMessage{Notice: event.NoticeTestMessageOfTheDay}, true
	case isStartupProgress(text):
		return &event.StartupProgressMessage{Message: text}, true
	case strings.Contains(text, "wiki.phoenixviewer.com/firestorm_classes"):
		return &event.FirestormMessage{Category: "Classes", Message: text}, true
	case strings.Contains(text, "BETA TESTERS") || strings.Contains(text, "Beta Testers"):
		return &event.FirestormMessage{Category: "Beta Test", Message: text}, true
	}
	return nil, false
}

func isStartupProgress(text string) bool {
	if text == "Welcome to Advertisement-Free Firestorm" || strings.HasPrefix(text, "Logging in") {
		return true
	}
	if !strings.HasSuffix(text, "...") {
		return false
	}
	for _, p := range startupPrefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}
