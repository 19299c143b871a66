package slack

import (
	"github.com/secmon-lab/doorman/pkg/domain/types"
	"github.com/slack-go/slack/slackevents"
)

// EventKind is the closed set of inbound event kinds the router handles
type EventKind string

const (
	// EventKindMessage is a new message posted to a channel
	EventKindMessage EventKind = "message"
	// EventKindReactionAdded is an emoji reaction added to a message
	EventKindReactionAdded EventKind = "reaction_added"
)

// Event is the domain form of a Slack Events API callback. Only the kinds
// above are represented; anything else maps to nil.
type Event struct {
	kind      EventKind
	teamID    string
	channelID string
	userID    types.UserID
	text      string
	timestamp string
	reaction  string
	botID     string
}

// NewEvent converts a Slack Events API event to the domain model.
// Returns nil for event types outside the handled set.
func NewEvent(ev *slackevents.EventsAPIEvent) *Event {
	if ev == nil || ev.Type != slackevents.CallbackEvent {
		return nil
	}

	switch evt := ev.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		return &Event{
			kind:      EventKindMessage,
			teamID:    ev.TeamID,
			channelID: evt.Channel,
			userID:    types.UserID(evt.User),
			text:      evt.Text,
			timestamp: evt.TimeStamp,
			botID:     evt.BotID,
		}
	case *slackevents.ReactionAddedEvent:
		return &Event{
			kind:      EventKindReactionAdded,
			teamID:    ev.TeamID,
			channelID: evt.Item.Channel,
			userID:    types.UserID(evt.User),
			reaction:  evt.Reaction,
			timestamp: evt.Item.Timestamp,
		}
	default:
		return nil
	}
}

// NewMessageEvent creates a message event from raw values (for tests and
// repository-free construction)
func NewMessageEvent(channelID string, userID types.UserID, text, timestamp string) *Event {
	return &Event{
		kind:      EventKindMessage,
		channelID: channelID,
		userID:    userID,
		text:      text,
		timestamp: timestamp,
	}
}

// NewReactionAddedEvent creates a reaction_added event from raw values
func NewReactionAddedEvent(channelID string, userID types.UserID, reaction, timestamp string) *Event {
	return &Event{
		kind:      EventKindReactionAdded,
		channelID: channelID,
		userID:    userID,
		reaction:  reaction,
		timestamp: timestamp,
	}
}

func (e *Event) Kind() EventKind {
	return e.kind
}

func (e *Event) TeamID() string {
	return e.teamID
}

func (e *Event) ChannelID() string {
	return e.channelID
}

func (e *Event) UserID() types.UserID {
	return e.userID
}

func (e *Event) Text() string {
	return e.text
}

func (e *Event) Timestamp() string {
	return e.timestamp
}

func (e *Event) Reaction() string {
	return e.reaction
}

// FromBot reports whether the message was produced by a bot integration
// rather than a human user
func (e *Event) FromBot() bool {
	return e.botID != ""
}
