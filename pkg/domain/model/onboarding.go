package model

import (
	"time"

	"github.com/secmon-lab/doorman/pkg/domain/types"
	"github.com/slack-go/slack"
)

// ActionIDCompleteTask is the action_id carried by the card's button.
// Slack sends it back in block_actions callbacks.
const ActionIDCompleteTask = "complete_task"

const (
	cardWelcomeText = "Welcome to this awesome channel! \n\n*Get started by completing the tasks!*"
	cardTaskText    = "*React to this message!*"
	checkedGlyph    = ":white_check_mark:"
	uncheckedGlyph  = ":white_large_square:"
)

// OnboardingCard tracks one user's onboarding state in one conversation.
// At most one card exists per (ChannelKey, UserID) pair. The registry key
// never changes after creation; only the delivery channel may be updated
// when a completion event arrives from a different real channel.
type OnboardingCard struct {
	ChannelKey      types.ChannelKey
	UserID          types.UserID
	Completed       bool
	RenderID        types.RenderID
	DeliveryChannel string
	CreatedAt       time.Time
}

// NewOnboardingCard creates a card in the initial (not completed) state.
// The delivery channel starts as the registry key itself.
func NewOnboardingCard(channelKey types.ChannelKey, userID types.UserID) *OnboardingCard {
	return &OnboardingCard{
		ChannelKey:      channelKey,
		UserID:          userID,
		Completed:       false,
		DeliveryChannel: channelKey.String(),
		CreatedAt:       time.Now().UTC(),
	}
}

// Validate checks the card's identifying fields
func (c *OnboardingCard) Validate() error {
	if err := c.ChannelKey.Validate(); err != nil {
		return err
	}
	if err := c.UserID.Validate(); err != nil {
		return err
	}
	return nil
}

// Complete moves the card to the terminal completed state. The transition
// is one-directional; calling it again is a no-op.
func (c *OnboardingCard) Complete() {
	c.Completed = true
}

// UpdateDeliveryChannel replaces the channel used for message delivery.
// Empty input keeps the current channel. The registry key is untouched.
func (c *OnboardingCard) UpdateDeliveryChannel(channelID string) {
	if channelID != "" {
		c.DeliveryChannel = channelID
	}
}

// Clone returns a copy of the card
func (c *OnboardingCard) Clone() *OnboardingCard {
	copied := *c
	return &copied
}

// Blocks renders the card as Block Kit blocks. The render is deterministic:
// only the task line's checkmark glyph varies with the completion state.
func (c *OnboardingCard) Blocks() []slack.Block {
	checkmark := uncheckedGlyph
	if c.Completed {
		checkmark = checkedGlyph
	}

	return []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, cardWelcomeText, false, false),
			nil, nil,
		),
		slack.NewDividerBlock(),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, checkmark+" "+cardTaskText, false, false),
			nil, nil,
		),
		slack.NewActionBlock(
			"onboarding_tasks",
			slack.NewButtonBlockElement(
				ActionIDCompleteTask,
				c.UserID.String(),
				slack.NewTextBlockObject(slack.PlainTextType, "Complete Task", false, false),
			),
		),
	}
}

// FallbackText is the plain-text notification fallback for the card
func (c *OnboardingCard) FallbackText() string {
	return "Welcome to this awesome channel! Get started by completing the tasks!"
}
