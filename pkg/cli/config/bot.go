package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/doorman/pkg/domain/model"
)

// Bot is the TOML behavior profile: responder word sets and the channels
// swept for pending scheduled messages at startup. Every field is
// optional; the built-in defaults apply when omitted.
type Bot struct {
	Responder ResponderConfig `toml:"responder"`
	Schedule  ScheduleConfig  `toml:"schedule"`
}

// ResponderConfig configures the keyword responder
type ResponderConfig struct {
	Blocklist     []string `toml:"blocklist"`
	Greetings     []string `toml:"greetings"`
	GreetingReply string   `toml:"greeting_reply"`
	Farewells     []string `toml:"farewells"`
	FarewellReply string   `toml:"farewell_reply"`
}

// ScheduleConfig configures scheduled-message housekeeping
type ScheduleConfig struct {
	CleanupChannels []string `toml:"cleanup_channels"`
}

// Validate checks if the Bot profile is valid
func (b *Bot) Validate() error {
	for _, w := range b.Responder.Blocklist {
		if w == "" {
			return goerr.New("blocklist entries must not be empty")
		}
	}
	for _, w := range b.Responder.Greetings {
		if w == "" {
			return goerr.New("greeting entries must not be empty")
		}
	}
	for _, w := range b.Responder.Farewells {
		if w == "" {
			return goerr.New("farewell entries must not be empty")
		}
	}
	for _, ch := range b.Schedule.CleanupChannels {
		if ch == "" {
			return goerr.New("cleanup channel IDs must not be empty")
		}
	}
	return nil
}

// ToResponder builds the keyword responder from the profile
func (b *Bot) ToResponder() *model.Responder {
	return model.NewResponder(
		model.WithBlocklist(b.Responder.Blocklist),
		model.WithGreetings(b.Responder.Greetings, b.Responder.GreetingReply),
		model.WithFarewells(b.Responder.Farewells, b.Responder.FarewellReply),
	)
}

// LoadBotProfile loads the bot behavior profile from a TOML file. An empty
// path yields the default profile.
func LoadBotProfile(path string) (*Bot, error) {
	var profile Bot
	if path == "" {
		return &profile, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read bot profile", goerr.V("path", path))
	}

	if err := toml.Unmarshal(data, &profile); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML bot profile", goerr.V("path", path))
	}

	if err := profile.Validate(); err != nil {
		return nil, goerr.Wrap(err, "bot profile validation failed", goerr.V("path", path))
	}

	return &profile, nil
}
