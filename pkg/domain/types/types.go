package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// UserID represents a Slack user identifier (e.g. "U01ABCDEF")
type UserID string

// Validate checks if the UserID is valid
func (u UserID) Validate() error {
	if u == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}

// Mention returns the message-text mention form of the user (e.g. "<@U01ABCDEF>")
func (u UserID) Mention() string {
	return "<@" + string(u) + ">"
}

// ChannelKey is the string indexing the onboarding registry. It is either a
// real channel ID or the synthetic "@userID" token used when a card is
// addressed to a user directly.
type ChannelKey string

// MentionChannelKey derives the synthetic "@userID" channel key for a user
func MentionChannelKey(userID UserID) ChannelKey {
	return ChannelKey("@" + string(userID))
}

// Validate checks if the ChannelKey is valid
func (c ChannelKey) Validate() error {
	if c == "" {
		return goerr.New("channel key cannot be empty")
	}
	return nil
}

// String returns the string representation of ChannelKey
func (c ChannelKey) String() string {
	return string(c)
}

// IsMention reports whether the key is the synthetic "@userID" form
func (c ChannelKey) IsMention() bool {
	return strings.HasPrefix(string(c), "@")
}

// RenderID is the opaque handle of a posted message instance (a Slack
// message timestamp). It is empty until the card's first send.
type RenderID string

// String returns the string representation of RenderID
func (r RenderID) String() string {
	return string(r)
}
