package horoscope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jenbot/jenbot/internal/chat"
	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/zodiac"
)

// Deliverer fetches a reading and posts it to a destination.
type Deliverer struct {
	messenger chat.Messenger
	fetcher   Fetcher
	msgs      config.MessagesConfig
	logger    *slog.Logger
}

// NewDeliverer returns a Deliverer.
func NewDeliverer(m chat.Messenger, f Fetcher, msgs config.MessagesConfig, log *slog.Logger) *Deliverer {
	if log == nil {
		log = slog.Default()
	}
	return &Deliverer{messenger: m, fetcher: f, msgs: msgs, logger: log.With("component", "horoscope_deliverer")}
}

// Deliver posts today's reading for sign to dest. Channel destinations get a
// progress notice first; direct deliveries do not. When the reading cannot be
// fetched an apology is posted to dest and the fetch error is returned.
func (d *Deliverer) Deliver(ctx context.Context, dest chat.Destination, sign zodiac.Sign) error {
	if err := d.notice(ctx, dest, sign); err != nil {
		return fmt.Errorf("failed to post horoscope notice: %w", err)
	}

	reading, err := d.fetcher.Daily(ctx, sign)
	if err != nil {
		d.logger.WarnContext(ctx, "Horoscope fetch failed", "sign", sign, "error", err)
		apology := d.msgs.HoroscopeError
		if errors.Is(err, ErrUnavailable) {
			apology = d.msgs.HoroscopeUnavailable
		}
		if sendErr := d.text(ctx, dest, apology); sendErr != nil {
			d.logger.ErrorContext(ctx, "Failed to post horoscope apology", "sign", sign, "error", sendErr)
		}
		return err
	}

	if err := d.embed(ctx, dest, d.Embed(sign, reading)); err != nil {
		return fmt.Errorf("failed to post horoscope: %w", err)
	}
	return nil
}

// Embed renders a reading card.
func (d *Deliverer) Embed(sign zodiac.Sign, r Reading) chat.Embed {
	text := r.Text
	if text == "" {
		text = d.msgs.HoroscopeEmpty
	}
	return chat.Embed{
		Title:       fmt.Sprintf(d.msgs.HoroscopeTitle, sign),
		Description: text,
		Footer:      fmt.Sprintf(d.msgs.HoroscopeFooter, r.Date),
		Color:       chat.ColorPurple,
	}
}

func (d *Deliverer) notice(ctx context.Context, dest chat.Destination, sign zodiac.Sign) error {
	switch dest := dest.(type) {
	case chat.ToChannel:
		mention := ""
		if dest.MentionUserID != "" {
			mention = chat.Mention(dest.MentionUserID) + ", "
		}
		_, err := d.messenger.Send(ctx, dest.ChannelID, fmt.Sprintf(d.msgs.HoroscopeFetching, mention, sign))
		return err
	case chat.ToContext:
		trigger := chat.Message{ID: dest.MessageID, ChannelID: dest.ChannelID}
		_, err := d.messenger.Reply(ctx, trigger, fmt.Sprintf(d.msgs.HoroscopeFetching, chat.Mention(dest.UserID)+", ", sign))
		return err
	case chat.ToUser:
		return nil
	default:
		return fmt.Errorf("unsupported destination %T", dest)
	}
}

func (d *Deliverer) text(ctx context.Context, dest chat.Destination, content string) error {
	switch dest := dest.(type) {
	case chat.ToChannel:
		_, err := d.messenger.Send(ctx, dest.ChannelID, content)
		return err
	case chat.ToContext:
		_, err := d.messenger.Send(ctx, dest.ChannelID, content)
		return err
	case chat.ToUser:
		return d.messenger.DirectMessage(ctx, dest.UserID, content)
	default:
		return fmt.Errorf("unsupported destination %T", dest)
	}
}

func (d *Deliverer) embed(ctx context.Context, dest chat.Destination, e chat.Embed) error {
	switch dest := dest.(type) {
	case chat.ToChannel:
		_, err := d.messenger.SendEmbed(ctx, dest.ChannelID, e)
		return err
	case chat.ToContext:
		_, err := d.messenger.SendEmbed(ctx, dest.ChannelID, e)
		return err
	case chat.ToUser:
		return d.messenger.DirectEmbed(ctx, dest.UserID, e)
	default:
		return fmt.Errorf("unsupported destination %T", dest)
	}
}
