package tasks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenbot/jenbot/internal/chat"
	"github.com/jenbot/jenbot/internal/chat/chattest"
	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/horoscope"
	"github.com/jenbot/jenbot/internal/store"
	"github.com/jenbot/jenbot/internal/zodiac"
)

type fakeFetcher struct{}

func (fakeFetcher) Daily(_ context.Context, sign zodiac.Sign) (horoscope.Reading, error) {
	return horoscope.Reading{Text: "reading for " + string(sign), Date: "Oct 14, 2026"}, nil
}

type brokenStore struct {
	store.Store
}

func (brokenStore) All(context.Context) (map[string]zodiac.Sign, error) {
	return nil, errors.New("disk on fire")
}

func newDeps(t *testing.T, logs io.Writer, users map[string]zodiac.Sign) (TaskDeps, *chattest.Messenger) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := config.Defaults()

	st, err := store.NewJSONStore(filepath.Join(t.TempDir(), "users.json"), log)
	require.NoError(t, err)
	for id, sign := range users {
		_, err := st.Put(context.Background(), id, sign)
		require.NoError(t, err)
	}

	m := chattest.New()
	return TaskDeps{
		Logger:    log,
		Config:    cfg,
		Store:     st,
		Messenger: m,
		Horoscope: horoscope.NewDeliverer(m, fakeFetcher{}, cfg.Messages, log),
	}, m
}

func threeUsers() map[string]zodiac.Sign {
	return map[string]zodiac.Sign{"1": zodiac.Aries, "2": zodiac.Leo, "3": zodiac.Pisces}
}

func TestDailyHoroscopeIsolatesResolveFailures(t *testing.T) {
	t.Parallel()
	var logs bytes.Buffer
	deps, m := newDeps(t, &logs, threeUsers())
	m.FailUser("2", chat.ErrNotFound)

	err := RegisterAllTasks(deps)[DailyHoroscope](context.Background())
	require.NoError(t, err)

	var resolved []string
	for _, c := range m.CallsTo(chattest.MethodResolveUser) {
		resolved = append(resolved, c.UserID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, resolved)

	embeds := m.CallsTo(chattest.MethodDirectEmbed)
	require.Len(t, embeds, 2)
	assert.Equal(t, "1", embeds[0].UserID)
	assert.Equal(t, "✨ Daily Horoscope for Aries ✨", embeds[0].Embed.Title)
	assert.Equal(t, "3", embeds[1].UserID)
	assert.Equal(t, "✨ Daily Horoscope for Pisces ✨", embeds[1].Embed.Title)

	assert.Empty(t, m.CallsTo(chattest.MethodSend), "direct deliveries post no channel notice")
	assert.Contains(t, logs.String(), "Cannot send horoscope to user")
	assert.Contains(t, logs.String(), "user_id=2")
	assert.Contains(t, logs.String(), "delivered=2 failed=1")
}

func TestDailyHoroscopeIsolatesDeliveryFailures(t *testing.T) {
	t.Parallel()
	var logs bytes.Buffer
	deps, m := newDeps(t, &logs, threeUsers())
	m.FailMethod(chattest.MethodDirectEmbed, chat.ErrForbidden)

	require.NoError(t, RegisterAllTasks(deps)[DailyHoroscope](context.Background()))

	assert.Len(t, m.CallsTo(chattest.MethodDirectEmbed), 3, "every user is attempted")
	assert.Contains(t, logs.String(), "delivered=0 failed=3")
}

func TestDailyHoroscopeWithoutUsers(t *testing.T) {
	t.Parallel()
	deps, m := newDeps(t, io.Discard, nil)

	require.NoError(t, RegisterAllTasks(deps)[DailyHoroscope](context.Background()))
	assert.Empty(t, m.Calls())
}

func TestDailyHoroscopeStoreFailure(t *testing.T) {
	t.Parallel()
	deps, m := newDeps(t, io.Discard, nil)
	deps.Store = brokenStore{deps.Store}

	err := RegisterAllTasks(deps)[DailyHoroscope](context.Background())
	assert.ErrorContains(t, err, "disk on fire")
	assert.Empty(t, m.Calls())
}

func TestDailyHoroscopeStopsOnCancel(t *testing.T) {
	t.Parallel()
	deps, m := newDeps(t, io.Discard, threeUsers())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RegisterAllTasks(deps)[DailyHoroscope](ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.CallsTo(chattest.MethodDirectEmbed))
}
