package handlers

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/jenbot/jenbot/internal/chat"
	"github.com/jenbot/jenbot/internal/chat/chattest"
	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/cooldown"
	"github.com/jenbot/jenbot/internal/currency"
	"github.com/jenbot/jenbot/internal/horoscope"
	"github.com/jenbot/jenbot/internal/reply"
	"github.com/jenbot/jenbot/internal/store"
	"github.com/jenbot/jenbot/internal/zodiac"
)

const (
	botID     = "1000"
	ownerID   = "2000"
	userID    = "3000"
	channelID = "c1"
)

type staticIdentity struct{}

func (staticIdentity) Self() chat.User { return chat.User{ID: botID, Name: "JenBot", Bot: true} }

type fakeAI struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (f *fakeAI) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeAI) set(reply string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reply, f.err = reply, err
}

func (f *fakeAI) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

type fakeRates struct {
	latest     currency.Rates
	latestErr  error
	history    currency.History
	historyErr error

	mu       sync.Mutex
	requests []string
}

func (f *fakeRates) Latest(_ context.Context, base, target string) (currency.Rates, error) {
	f.mu.Lock()
	f.requests = append(f.requests, base+"/"+target)
	f.mu.Unlock()
	return f.latest, f.latestErr
}

func (f *fakeRates) History(_ context.Context, base, target string) (currency.History, error) {
	f.mu.Lock()
	f.requests = append(f.requests, "history:"+base+"/"+target)
	f.mu.Unlock()
	return f.history, f.historyErr
}

type fakeFetcher struct {
	err error
}

func (f fakeFetcher) Daily(_ context.Context, sign zodiac.Sign) (horoscope.Reading, error) {
	if f.err != nil {
		return horoscope.Reading{}, f.err
	}
	return horoscope.Reading{Text: "Stars favour " + string(sign), Date: "Oct 14, 2026"}, nil
}

type harness struct {
	deps      HandlerDeps
	router    *Router
	messenger *chattest.Messenger
	clock     *clockwork.FakeClock
	ai        *fakeAI
	rates     *fakeRates
	store     store.Store
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.Defaults()
	cfg.Discord.Token = "token"
	cfg.Discord.OwnerID = ownerID
	cfg.Reply.Pace = 0

	st, err := store.NewJSONStore(filepath.Join(t.TempDir(), "users.json"), discardLogger())
	require.NoError(t, err)

	m := chattest.New()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC))
	ai := &fakeAI{reply: "an answer"}
	rates := &fakeRates{}

	deps := HandlerDeps{
		Logger:    discardLogger(),
		Config:    cfg,
		Messenger: m,
		Identity:  staticIdentity{},
		Store:     st,
		AI:        ai,
		Cooldown:  cooldown.New(cfg.AI.MinDelay),
		Clock:     clock,
		Rates:     rates,
		Horoscope: horoscope.NewDeliverer(m, fakeFetcher{}, cfg.Messages, discardLogger()),
		Emitter:   reply.NewEmitter(m, cfg.Reply.MaxLength, cfg.Reply.ChunkSize, cfg.Reply.Pace),
		Flows:     NewFlows(clock, cfg.Selection.Timeout),
	}

	return &harness{
		deps:      deps,
		router:    NewRouter(deps, RegisterAllCommands(deps)),
		messenger: m,
		clock:     clock,
		ai:        ai,
		rates:     rates,
		store:     st,
	}
}

func message(author, content string) chat.Message {
	return chat.Message{ID: "in-1", ChannelID: channelID, GuildID: "g1", AuthorID: author, AuthorName: "user", Content: content}
}

func mention(author, content string) chat.Message {
	msg := message(author, content)
	msg.MentionsBot = true
	return msg
}
