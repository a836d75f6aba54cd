package sltypes

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// keyLen is the length of a textual key: 8-4-4-4-12 lowercase hex digits.
const keyLen = 36

// NullKey is the all-zero key used by Second Life for "no key".
var NullKey = uuid.Nil

// AgentKey identifies an avatar.
type AgentKey uuid.UUID

func (k AgentKey) String() string { return uuid.UUID(k).String() }

// MarshalText implements encoding.TextMarshaler.
func (k AgentKey) MarshalText() ([]byte, error) { return uuid.UUID(k).MarshalText() }

// GroupKey identifies a group.
type GroupKey uuid.UUID

func (k GroupKey) String() string { return uuid.UUID(k).String() }

// MarshalText implements encoding.TextMarshaler.
func (k GroupKey) MarshalText() ([]byte, error) { return uuid.UUID(k).MarshalText() }

// OwnerKind tells whether an OwnerKey refers to an avatar or a group.
type OwnerKind string

const (
	OwnerAgent OwnerKind = "agent"
	OwnerGroup OwnerKind = "group"
)

// OwnerKey identifies the owner of an object or the other party of a
// payment, which is either an avatar or a group.
type OwnerKey struct {
	Kind OwnerKind `json:"kind"`
	Key  uuid.UUID `json:"key"`
}

// AgentOwner returns an OwnerKey for an avatar.
func AgentOwner(k AgentKey) OwnerKey { return OwnerKey{Kind: OwnerAgent, Key: uuid.UUID(k)} }

// GroupOwner returns an OwnerKey for a group.
func GroupOwner(k GroupKey) OwnerKey { return OwnerKey{Kind: OwnerGroup, Key: uuid.UUID(k)} }

// IsGroup reports whether the owner is a group.
func (o OwnerKey) IsGroup() bool { return o.Kind == OwnerGroup }

func (o OwnerKey) String() string { return fmt.Sprintf("%s:%s", o.Kind, o.Key) }

// ParseKey parses a lowercase textual UUID.
func ParseKey(s string) (uuid.UUID, string, error) {
	if len(s) < keyLen {
		return uuid.Nil, s, noMatch("key", s)
	}
	for i := 0; i < keyLen; i++ {
		c := s[i]
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return uuid.Nil, s, noMatch("key", s)
			}
		default:
			if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
				return uuid.Nil, s, noMatch("key", s)
			}
		}
	}
	id, err := uuid.Parse(s[:keyLen])
	if err != nil {
		return uuid.Nil, s, fmt.Errorf("%w: %v", ErrNoMatch, err)
	}
	return id, s[keyLen:], nil
}

// parseAppURI parses secondlife:///app/<kind>/<key>/about and the /inspect
// variant of the same viewer URI.
func parseAppURI(kind, s string) (uuid.UUID, string, error) {
	rest, ok := strings.CutPrefix(s, "secondlife:///app/"+kind+"/")
	if !ok {
		return uuid.Nil, s, noMatch(kind+" URI", s)
	}
	id, rest, err := ParseKey(rest)
	if err != nil {
		return uuid.Nil, s, err
	}
	for _, action := range []string{"/about", "/inspect"} {
		if after, ok := strings.CutPrefix(rest, action); ok {
			return id, after, nil
		}
	}
	return uuid.Nil, s, noMatch(kind+" URI action", rest)
}

// ParseAgentURI parses an avatar /about or /inspect viewer URI.
func ParseAgentURI(s string) (AgentKey, string, error) {
	id, rest, err := parseAppURI("agent", s)
	return AgentKey(id), rest, err
}

// ParseGroupURI parses a group /about or /inspect viewer URI.
func ParseGroupURI(s string) (GroupKey, string, error) {
	id, rest, err := parseAppURI("group", s)
	return GroupKey(id), rest, err
}

// ParseOwnerURI parses either an avatar or a group viewer URI.
func ParseOwnerURI(s string) (OwnerKey, string, error) {
	if k, rest, err := ParseAgentURI(s); err == nil {
		return AgentOwner(k), rest, nil
	}
	k, rest, err := ParseGroupURI(s)
	if err != nil {
		return OwnerKey{}, s, noMatch("agent or group URI", s)
	}
	return GroupOwner(k), rest, nil
}
