// Package chattest provides an in-memory chat.Messenger for tests.
package chattest

import (
	"context"
	"strconv"
	"sync"

	"github.com/jenbot/jenbot/internal/chat"
)

// Method names recorded in Call.Method.
const (
	MethodSend              = "Send"
	MethodReply             = "Reply"
	MethodSendComponents    = "SendComponents"
	MethodSendEmbed         = "SendEmbed"
	MethodEdit              = "Edit"
	MethodDelete            = "Delete"
	MethodReact             = "React"
	MethodTyping            = "Typing"
	MethodDirectMessage     = "DirectMessage"
	MethodDirectEmbed       = "DirectEmbed"
	MethodResolveUser       = "ResolveUser"
	MethodRespondEphemeral  = "RespondEphemeral"
	MethodRespondUpdate     = "RespondUpdate"
	MethodFollowupFile      = "FollowupFile"
	MethodFollowupEphemeral = "FollowupEphemeral"
)

// Call is one recorded Messenger invocation.
type Call struct {
	Method     string
	ChannelID  string
	MessageID  string
	UserID     string
	ReplyTo    string
	Content    string
	Components []chat.Component
	Embed      *chat.Embed
	File       *chat.File
}

// Messenger records every call and returns sequential message IDs.
type Messenger struct {
	mu         sync.Mutex
	calls      []Call
	nextID     int
	users      map[string]chat.User
	methodErrs map[string]error
	userErrs   map[string]error
}

// New returns an empty Messenger. ResolveUser succeeds for any ID unless a
// user error is registered.
func New() *Messenger {
	return &Messenger{
		users:      make(map[string]chat.User),
		methodErrs: make(map[string]error),
		userErrs:   make(map[string]error),
	}
}

// AddUser registers a user returned by ResolveUser.
func (m *Messenger) AddUser(u chat.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

// FailMethod makes every call of method return err. The call is still recorded.
func (m *Messenger) FailMethod(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.methodErrs[method] = err
}

// FailUser makes ResolveUser and direct deliveries for userID return err.
func (m *Messenger) FailUser(userID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userErrs[userID] = err
}

// Calls returns a copy of all recorded calls in order.
func (m *Messenger) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallsTo returns recorded calls of one method in order.
func (m *Messenger) CallsTo(method string) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Methods returns the method name of every recorded call in order.
func (m *Messenger) Methods() []string {
	calls := m.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Method
	}
	return out
}

func (m *Messenger) record(c Call) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
	if err := m.methodErrs[c.Method]; err != nil {
		return "", err
	}
	if c.UserID != "" {
		if err := m.userErrs[c.UserID]; err != nil {
			return "", err
		}
	}
	m.nextID++
	return "m" + strconv.Itoa(m.nextID), nil
}

func (m *Messenger) Send(_ context.Context, channelID, content string) (string, error) {
	return m.record(Call{Method: MethodSend, ChannelID: channelID, Content: content})
}

func (m *Messenger) Reply(_ context.Context, msg chat.Message, content string) (string, error) {
	return m.record(Call{Method: MethodReply, ChannelID: msg.ChannelID, ReplyTo: msg.ID, Content: content})
}

func (m *Messenger) SendComponents(_ context.Context, channelID, content string, components []chat.Component) (string, error) {
	return m.record(Call{Method: MethodSendComponents, ChannelID: channelID, Content: content, Components: components})
}

func (m *Messenger) SendEmbed(_ context.Context, channelID string, embed chat.Embed) (string, error) {
	return m.record(Call{Method: MethodSendEmbed, ChannelID: channelID, Embed: &embed})
}

func (m *Messenger) Edit(_ context.Context, channelID, messageID, content string, components []chat.Component) error {
	_, err := m.record(Call{Method: MethodEdit, ChannelID: channelID, MessageID: messageID, Content: content, Components: components})
	return err
}

func (m *Messenger) Delete(_ context.Context, channelID, messageID string) error {
	_, err := m.record(Call{Method: MethodDelete, ChannelID: channelID, MessageID: messageID})
	return err
}

func (m *Messenger) React(_ context.Context, channelID, messageID, emoji string) error {
	_, err := m.record(Call{Method: MethodReact, ChannelID: channelID, MessageID: messageID, Content: emoji})
	return err
}

func (m *Messenger) Typing(_ context.Context, channelID string) error {
	_, err := m.record(Call{Method: MethodTyping, ChannelID: channelID})
	return err
}

func (m *Messenger) DirectMessage(_ context.Context, userID, content string) error {
	_, err := m.record(Call{Method: MethodDirectMessage, UserID: userID, Content: content})
	return err
}

func (m *Messenger) DirectEmbed(_ context.Context, userID string, embed chat.Embed) error {
	_, err := m.record(Call{Method: MethodDirectEmbed, UserID: userID, Embed: &embed})
	return err
}

func (m *Messenger) ResolveUser(_ context.Context, userID string) (chat.User, error) {
	if _, err := m.record(Call{Method: MethodResolveUser, UserID: userID}); err != nil {
		return chat.User{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return chat.User{ID: userID, Name: "user" + userID}, nil
}

func (m *Messenger) RespondEphemeral(_ context.Context, in chat.Interaction, content string) error {
	_, err := m.record(Call{Method: MethodRespondEphemeral, ChannelID: in.ChannelID, MessageID: in.MessageID, Content: content})
	return err
}

func (m *Messenger) RespondUpdate(_ context.Context, in chat.Interaction, content string, components []chat.Component) error {
	_, err := m.record(Call{Method: MethodRespondUpdate, ChannelID: in.ChannelID, MessageID: in.MessageID, Content: content, Components: components})
	return err
}

func (m *Messenger) FollowupFile(_ context.Context, in chat.Interaction, file chat.File) error {
	_, err := m.record(Call{Method: MethodFollowupFile, ChannelID: in.ChannelID, File: &file})
	return err
}

func (m *Messenger) FollowupEphemeral(_ context.Context, in chat.Interaction, content string) error {
	_, err := m.record(Call{Method: MethodFollowupEphemeral, ChannelID: in.ChannelID, Content: content})
	return err
}

var _ chat.Messenger = (*Messenger)(nil)
