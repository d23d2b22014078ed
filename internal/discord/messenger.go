package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/jenbot/jenbot/internal/chat"
)

var _ chat.Messenger = (*Gateway)(nil)

func (g *Gateway) Send(ctx context.Context, channelID, content string) (string, error) {
	m, err := g.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return "", mapError(err)
	}
	return m.ID, nil
}

func (g *Gateway) Reply(ctx context.Context, msg chat.Message, content string) (string, error) {
	ref := &discordgo.MessageReference{MessageID: msg.ID, ChannelID: msg.ChannelID, GuildID: msg.GuildID}
	m, err := g.session.ChannelMessageSendReply(msg.ChannelID, content, ref, discordgo.WithContext(ctx))
	if err != nil {
		return "", mapError(err)
	}
	return m.ID, nil
}

func (g *Gateway) SendComponents(ctx context.Context, channelID, content string, components []chat.Component) (string, error) {
	m, err := g.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    content,
		Components: toComponents(components),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", mapError(err)
	}
	return m.ID, nil
}

func (g *Gateway) SendEmbed(ctx context.Context, channelID string, embed chat.Embed) (string, error) {
	m, err := g.session.ChannelMessageSendEmbed(channelID, toEmbed(embed), discordgo.WithContext(ctx))
	if err != nil {
		return "", mapError(err)
	}
	return m.ID, nil
}

func (g *Gateway) Edit(ctx context.Context, channelID, messageID, content string, components []chat.Component) error {
	rendered := toComponents(components)
	_, err := g.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Content:    &content,
		Components: &rendered,
	}, discordgo.WithContext(ctx))
	return mapError(err)
}

func (g *Gateway) Delete(ctx context.Context, channelID, messageID string) error {
	return mapError(g.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)))
}

func (g *Gateway) React(ctx context.Context, channelID, messageID, emoji string) error {
	return mapError(g.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)))
}

func (g *Gateway) Typing(ctx context.Context, channelID string) error {
	return mapError(g.session.ChannelTyping(channelID, discordgo.WithContext(ctx)))
}

func (g *Gateway) dmChannel(ctx context.Context, userID string) (string, error) {
	ch, err := g.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to open direct channel with %s: %w", userID, mapError(err))
	}
	return ch.ID, nil
}

func (g *Gateway) DirectMessage(ctx context.Context, userID, content string) error {
	channelID, err := g.dmChannel(ctx, userID)
	if err != nil {
		return err
	}
	_, err = g.Send(ctx, channelID, content)
	return err
}

func (g *Gateway) DirectEmbed(ctx context.Context, userID string, embed chat.Embed) error {
	channelID, err := g.dmChannel(ctx, userID)
	if err != nil {
		return err
	}
	_, err = g.SendEmbed(ctx, channelID, embed)
	return err
}

func (g *Gateway) ResolveUser(ctx context.Context, userID string) (chat.User, error) {
	u, err := g.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		return chat.User{}, mapError(err)
	}
	return chat.User{ID: u.ID, Name: u.Username, Bot: u.Bot}, nil
}

func interactionOf(in chat.Interaction) (*discordgo.Interaction, error) {
	i, ok := in.Handle.(*discordgo.Interaction)
	if !ok || i == nil {
		return nil, errors.New("interaction does not carry a discord handle")
	}
	return i, nil
}

func (g *Gateway) RespondEphemeral(ctx context.Context, in chat.Interaction, content string) error {
	i, err := interactionOf(in)
	if err != nil {
		return err
	}
	return mapError(g.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx)))
}

func (g *Gateway) RespondUpdate(ctx context.Context, in chat.Interaction, content string, components []chat.Component) error {
	i, err := interactionOf(in)
	if err != nil {
		return err
	}
	if content == "" {
		content = in.MessageContent
	}
	return mapError(g.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: toComponents(components),
		},
	}, discordgo.WithContext(ctx)))
}

func (g *Gateway) FollowupFile(ctx context.Context, in chat.Interaction, file chat.File) error {
	i, err := interactionOf(in)
	if err != nil {
		return err
	}
	_, err = g.session.FollowupMessageCreate(i, true, &discordgo.WebhookParams{
		Files: []*discordgo.File{{
			Name:        file.Name,
			ContentType: file.ContentType,
			Reader:      bytes.NewReader(file.Data),
		}},
	}, discordgo.WithContext(ctx))
	return mapError(err)
}

func (g *Gateway) FollowupEphemeral(ctx context.Context, in chat.Interaction, content string) error {
	i, err := interactionOf(in)
	if err != nil {
		return err
	}
	_, err = g.session.FollowupMessageCreate(i, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}, discordgo.WithContext(ctx))
	return mapError(err)
}
