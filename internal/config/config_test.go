package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "discord:\n  token: abc\n")

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.Discord.Token)
	assert.Equal(t, "!", cfg.Discord.CommandPrefix)
	assert.Equal(t, "gemini-1.5-flash", cfg.AI.Model)
	assert.Equal(t, 1100*time.Millisecond, cfg.AI.MinDelay)
	assert.Equal(t, "json", cfg.Store.Driver)
	assert.Equal(t, "horoscope_users.json", cfg.Store.Path)
	assert.Equal(t, "00:00", cfg.Scheduler.DailyTime)
	assert.Equal(t, "UTC", cfg.Scheduler.Timezone)
	assert.Equal(t, 2*time.Minute, cfg.Selection.Timeout)
	assert.Equal(t, 2000, cfg.Reply.MaxLength)
	assert.Equal(t, 1990, cfg.Reply.ChunkSize)
	assert.Equal(t, 1900, cfg.Reply.BlockLimit)
	assert.Equal(t, DefaultMessages, cfg.Messages)
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
discord:
  token: abc
  owner_id: "1234"
  command_prefix: "?"
ai:
  provider: openai
  min_delay: 3s
store:
  driver: sqlite
  path: data/bot.db
scheduler:
  daily_time: "07:30"
  timezone: Asia/Kuala_Lumpur
messages:
  ai_offline: nap time
`)

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, "?", cfg.Discord.CommandPrefix)
	assert.True(t, cfg.Discord.IsOwner("1234"))
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 3*time.Second, cfg.AI.MinDelay)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "nap time", cfg.Messages.AIOffline)
	assert.Equal(t, DefaultMessages.AIError, cfg.Messages.AIError)

	hour, minute, err := cfg.Scheduler.TimeOfDay()
	require.NoError(t, err)
	assert.Equal(t, 7, hour)
	assert.Equal(t, 30, minute)
}

func TestLoadEnvironment(t *testing.T) {
	t.Run("prefixed variables override the file", func(t *testing.T) {
		t.Setenv("JENBOT_DISCORD_TOKEN", "from-env")
		t.Setenv("JENBOT_REPLY_PACE", "250ms")

		cfg, err := load(writeConfig(t, "discord:\n  token: from-file\n"))
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Discord.Token)
		assert.Equal(t, 250*time.Millisecond, cfg.Reply.Pace)
	})

	t.Run("legacy variables are honoured", func(t *testing.T) {
		t.Setenv("DISCORD_BOT_TOKEN", "legacy")
		t.Setenv("GEMINI_API_KEY", "key")
		t.Setenv("BOT_OWNER_ID", "42")

		cfg, err := load("")
		require.NoError(t, err)
		assert.Equal(t, "legacy", cfg.Discord.Token)
		assert.Equal(t, "key", cfg.AI.APIKey)
		assert.Equal(t, "42", cfg.Discord.OwnerID)
	})
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JENBOT_DISCORD_TOKEN", "abc")

	cfg, err := load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.Discord.Token)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing token", "log:\n  level: info\n"},
		{"bad log level", "discord:\n  token: a\nlog:\n  level: loud\n"},
		{"bad provider", "discord:\n  token: a\nai:\n  provider: parrot\n"},
		{"postgres without dsn", "discord:\n  token: a\nstore:\n  driver: postgres\n"},
		{"chunk larger than limit", "discord:\n  token: a\nreply:\n  chunk_size: 2500\n"},
		{"bad daily time", "discord:\n  token: a\nscheduler:\n  daily_time: noon\n"},
		{"bad timezone", "discord:\n  token: a\nscheduler:\n  timezone: Mars/Olympus\n"},
		{"non numeric owner", "discord:\n  token: a\n  owner_id: me\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
		})
	}
}

func TestIsOwner(t *testing.T) {
	t.Parallel()

	assert.False(t, DiscordConfig{}.IsOwner(""), "no owner configured")
	assert.False(t, DiscordConfig{OwnerID: "1"}.IsOwner("2"))
	assert.True(t, DiscordConfig{OwnerID: "1"}.IsOwner("1"))
}

func TestDefaultsMatchLoadedDefaults(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	assert.Equal(t, DefaultMessages, cfg.Messages)
	assert.Equal(t, DefaultReplyChunkSize, cfg.Reply.ChunkSize)
	assert.Equal(t, DefaultAIMinDelay, cfg.AI.MinDelay)

	cfg.Discord.Token = "token"
	assert.NoError(t, cfg.Validate())
}
