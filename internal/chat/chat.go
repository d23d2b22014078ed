// Package chat defines the platform-neutral messaging types the bot core
// depends on. The discord package provides the gateway implementation.
package chat

import (
	"context"
	"errors"
)

// Delivery errors reported by Messenger implementations.
var (
	ErrNotFound  = errors.New("chat: not found")
	ErrForbidden = errors.New("chat: forbidden")
)

// Message is an inbound text message.
type Message struct {
	ID          string
	ChannelID   string
	GuildID     string
	AuthorID    string
	AuthorName  string
	AuthorIsBot bool
	Content     string
	// Direct is set for private channels.
	Direct bool
	// MentionsBot is set when the bot user is among the message mentions.
	MentionsBot bool
}

// Interaction is a component callback: a button press or a menu selection.
type Interaction struct {
	ID        string
	ChannelID string
	MessageID string
	UserID    string
	CustomID  string
	Values    []string
	// MessageContent is the current text of the message the component sits on.
	MessageContent string
	// Handle is the platform value needed to answer the interaction.
	Handle any
}

// User is a resolved platform user.
type User struct {
	ID   string
	Name string
	Bot  bool
}

// Mention renders the inline mention for a user.
func Mention(userID string) string {
	return "<@" + userID + ">"
}

// MessageHandler processes an inbound message.
type MessageHandler func(ctx context.Context, msg Message)

// InteractionHandler processes a component interaction.
type InteractionHandler func(ctx context.Context, in Interaction)

// Messenger is the outbound half of the gateway. Message-returning calls
// report the ID of the created message.
type Messenger interface {
	Send(ctx context.Context, channelID, content string) (string, error)
	// Reply sends content as a reply referencing msg.
	Reply(ctx context.Context, msg Message, content string) (string, error)
	SendComponents(ctx context.Context, channelID, content string, components []Component) (string, error)
	SendEmbed(ctx context.Context, channelID string, embed Embed) (string, error)
	// Edit replaces the content and the full component set of a message. Nil
	// components removes them.
	Edit(ctx context.Context, channelID, messageID, content string, components []Component) error
	Delete(ctx context.Context, channelID, messageID string) error
	React(ctx context.Context, channelID, messageID, emoji string) error
	Typing(ctx context.Context, channelID string) error

	DirectMessage(ctx context.Context, userID, content string) error
	DirectEmbed(ctx context.Context, userID string, embed Embed) error
	ResolveUser(ctx context.Context, userID string) (User, error)

	// RespondEphemeral answers an interaction with a notice only the
	// interacting user sees.
	RespondEphemeral(ctx context.Context, in Interaction, content string) error
	// RespondUpdate answers an interaction by editing the message it came from.
	// Empty content keeps the current text.
	RespondUpdate(ctx context.Context, in Interaction, content string, components []Component) error
	FollowupFile(ctx context.Context, in Interaction, file File) error
	FollowupEphemeral(ctx context.Context, in Interaction, content string) error
}
