package discord

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/jenbot/jenbot/internal/chat"
)

func toMessage(m *discordgo.Message, selfID string) chat.Message {
	msg := chat.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Content:   m.Content,
		Direct:    m.GuildID == "",
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorName = m.Author.Username
		msg.AuthorIsBot = m.Author.Bot
	}
	if selfID != "" {
		for _, u := range m.Mentions {
			if u != nil && u.ID == selfID {
				msg.MentionsBot = true
				break
			}
		}
	}
	return msg
}

func toInteraction(i *discordgo.Interaction) chat.Interaction {
	in := chat.Interaction{
		ID:        i.ID,
		ChannelID: i.ChannelID,
		Handle:    i,
	}
	switch {
	case i.Member != nil && i.Member.User != nil:
		in.UserID = i.Member.User.ID
	case i.User != nil:
		in.UserID = i.User.ID
	}
	if i.Message != nil {
		in.MessageID = i.Message.ID
		in.MessageContent = i.Message.Content
	}
	if i.Type == discordgo.InteractionMessageComponent {
		data := i.MessageComponentData()
		in.CustomID = data.CustomID
		in.Values = data.Values
	}
	return in
}

// toComponents renders each component on its own action row. The result is
// never nil so an edit with no components clears them.
func toComponents(components []chat.Component) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, len(components))
	for _, c := range components {
		switch c := c.(type) {
		case chat.Button:
			rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    c.Label,
					Style:    discordgo.PrimaryButton,
					Disabled: c.Disabled,
					CustomID: c.CustomID,
				},
			}})
		case chat.SelectMenu:
			options := make([]discordgo.SelectMenuOption, len(c.Options))
			for i, o := range c.Options {
				options[i] = discordgo.SelectMenuOption{Label: o.Label, Value: o.Value}
				if o.Emoji != "" {
					options[i].Emoji = &discordgo.ComponentEmoji{Name: o.Emoji}
				}
			}
			rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    c.CustomID,
					Placeholder: c.Placeholder,
					MaxValues:   1,
					Options:     options,
				},
			}})
		}
	}
	return rows
}

func toEmbed(e chat.Embed) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	if e.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return embed
}

// mapError tags REST failures with the chat sentinel errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		switch rest.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", chat.ErrNotFound, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %w", chat.ErrForbidden, err)
		}
	}
	return err
}
