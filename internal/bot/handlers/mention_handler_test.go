package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenbot/jenbot/internal/chat/chattest"
)

func TestMentionWithoutAI(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.deps.AI = nil

	NewMentionHandler(h.deps)(context.Background(), mention(userID, "<@1000> hi"))

	replies := h.messenger.CallsTo(chattest.MethodReply)
	require.Len(t, replies, 1)
	assert.Equal(t, h.deps.Config.Messages.AIOffline, replies[0].Content)
}

func TestMentionEmptyPrompt(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	for _, content := range []string{"<@1000>", "  <@!1000>  ", "<@1000> <@1000>"} {
		h.router.HandleMessage(context.Background(), mention(userID, content))
	}

	assert.Empty(t, h.ai.calls())
	for _, r := range h.messenger.CallsTo(chattest.MethodReply) {
		assert.Equal(t, h.deps.Config.Messages.AIEmptyPrompt, r.Content)
	}
	assert.Len(t, h.messenger.CallsTo(chattest.MethodReply), 3)
}

func TestMentionCooldown(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	handle := NewMentionHandler(h.deps)

	handle(ctx, mention(userID, "<@1000> first"))
	handle(ctx, mention(userID, "<@1000> second"))

	assert.Equal(t, []string{"first"}, h.ai.calls(), "second call is rejected")
	replies := h.messenger.CallsTo(chattest.MethodReply)
	require.Len(t, replies, 2)
	assert.Equal(t, "I'm thinking... please wait 1.1s before asking again.", replies[1].Content)

	h.clock.Advance(h.deps.Config.Reply.CooldownNoticeTTL)
	assert.Eventually(t, func() bool {
		return len(h.messenger.CallsTo(chattest.MethodDelete)) == 1
	}, time.Second, 5*time.Millisecond, "cooldown notice is deleted")

	h.clock.Advance(h.deps.Config.AI.MinDelay)
	handle(ctx, mention(userID, "<@1000> third"))
	assert.Equal(t, []string{"first", "third"}, h.ai.calls())
}

func TestMentionFailureDoesNotArmCooldown(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	handle := NewMentionHandler(h.deps)

	h.ai.set("", errors.New("upstream down"))
	handle(ctx, mention(userID, "<@1000> first"))

	replies := h.messenger.CallsTo(chattest.MethodReply)
	require.Len(t, replies, 1)
	assert.Equal(t, h.deps.Config.Messages.AIError, replies[0].Content)

	h.ai.set("recovered", nil)
	handle(ctx, mention(userID, "<@1000> retry"))

	assert.Equal(t, []string{"first", "retry"}, h.ai.calls())
	replies = h.messenger.CallsTo(chattest.MethodReply)
	require.Len(t, replies, 2)
	assert.Equal(t, "recovered", replies[1].Content)
}

func TestMentionLongReplyIsChunked(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.ai.set(strings.Repeat("x", 5000), nil)

	NewMentionHandler(h.deps)(context.Background(), mention(userID, "<@1000> essay please"))

	var sizes []int
	var methods []string
	for _, c := range h.messenger.Calls() {
		if c.Method == chattest.MethodReply || c.Method == chattest.MethodSend {
			sizes = append(sizes, len(c.Content))
			methods = append(methods, c.Method)
		}
	}
	assert.Equal(t, []int{1990, 1990, 1020}, sizes)
	assert.Equal(t, []string{chattest.MethodReply, chattest.MethodSend, chattest.MethodSend}, methods)
	assert.NotEmpty(t, h.messenger.CallsTo(chattest.MethodTyping))
}

func TestStripMention(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"<@1000> hello", "hello"},
		{"hello <@!1000>", "hello"},
		{"a <@1000> b", "a  b"},
		{"<@999> hello", "<@999> hello"},
		{"<@1000>", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripMention(tt.in, botID), tt.in)
	}
}
