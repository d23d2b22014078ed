package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/go-co-op/gocron/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenbot/jenbot/internal/chat"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcd...", truncateString("abcdefghij", 7))
	assert.Equal(t, "...", truncateString("abcdef", 2))
	assert.Equal(t, "héé...", truncateString("hééllo wörld", 6), "cuts on runes")
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	called := false
	h := Middleware(log)(func(context.Context, chat.Message) { called = true })
	h(context.Background(), chat.Message{ID: "1", ChannelID: "c", AuthorID: "u", Content: "hi"})

	require.True(t, called)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "Processing message", first["msg"])
	assert.Equal(t, "u", first["user_id"])

	buf.Reset()
	h(context.Background(), chat.Message{ID: "2", AuthorIsBot: true})
	assert.Empty(t, buf.String(), "bot traffic stays below info")
}

func TestGocronLoggerTagsErrors(t *testing.T) {
	var buf bytes.Buffer
	l := NewGocronLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	l.Error("job failed", "error", gocron.ErrJobNotFound, "name", "daily")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "job_not_found", rec["error_kind"])
	assert.Equal(t, "daily", rec["name"])
	assert.Equal(t, "gocron", rec["component"])
}

func TestProcessSchedulerArgs(t *testing.T) {
	t.Parallel()

	got := processSchedulerArgs("error", errors.New("x"), "odd")
	assert.Equal(t, []any{"error", errors.New("x"), "error_kind", "scheduler", "odd"}, got)
}

func TestDiscordLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	DiscordLogger(log)(discordgo.LogWarning, 0, "heartbeat %d missed", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "heartbeat 3 missed", rec["msg"])
	assert.Equal(t, "discordgo", rec["source"])
}
