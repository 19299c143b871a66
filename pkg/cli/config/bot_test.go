package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/doorman/pkg/cli/config"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bot.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadBotProfile(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		profile, err := config.LoadBotProfile("")
		gt.NoError(t, err)
		gt.Value(t, profile).NotNil().Required()
		gt.Array(t, profile.Responder.Blocklist).Length(0)
		gt.Array(t, profile.Schedule.CleanupChannels).Length(0)

		// The default responder still answers greetings
		reply, ok := profile.ToResponder().Respond("hello")
		gt.Bool(t, ok).True()
		gt.Value(t, reply).Equal("Hello! How can I help you today?")
	})

	t.Run("full profile round-trips", func(t *testing.T) {
		path := writeProfile(t, `
[responder]
blocklist = ["spam"]
greetings = ["howdy"]
greeting_reply = "Howdy back!"
farewells = ["bye"]
farewell_reply = "See you!"

[schedule]
cleanup_channels = ["C111", "C222"]
`)

		profile, err := config.LoadBotProfile(path)
		gt.NoError(t, err)
		gt.Array(t, profile.Responder.Blocklist).Length(1)
		gt.Array(t, profile.Schedule.CleanupChannels).Length(2)
		gt.Value(t, profile.Schedule.CleanupChannels[0]).Equal("C111")

		r := profile.ToResponder()
		gt.Bool(t, r.HasBlockedWord("that is spam")).True()

		reply, ok := r.Respond("howdy partner")
		gt.Bool(t, ok).True()
		gt.Value(t, reply).Equal("Howdy back!")

		reply, ok = r.Respond("bye now")
		gt.Bool(t, ok).True()
		gt.Value(t, reply).Equal("See you!")
	})

	t.Run("partial profile keeps built-in defaults", func(t *testing.T) {
		path := writeProfile(t, `
[schedule]
cleanup_channels = ["C111"]
`)

		profile, err := config.LoadBotProfile(path)
		gt.NoError(t, err)

		reply, ok := profile.ToResponder().Respond("hello")
		gt.Bool(t, ok).True()
		gt.Value(t, reply).Equal("Hello! How can I help you today?")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadBotProfile(filepath.Join(t.TempDir(), "nope.toml"))
		gt.Error(t, err)
	})

	t.Run("malformed TOML", func(t *testing.T) {
		path := writeProfile(t, "[responder\nblocklist = [")
		_, err := config.LoadBotProfile(path)
		gt.Error(t, err)
	})

	t.Run("empty entries are rejected", func(t *testing.T) {
		path := writeProfile(t, `
[responder]
blocklist = [""]
`)
		_, err := config.LoadBotProfile(path)
		gt.Error(t, err)
	})
}
