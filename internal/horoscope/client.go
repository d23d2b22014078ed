// Package horoscope fetches daily readings and delivers them to channels or
// users.
package horoscope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/webapi"
	"github.com/jenbot/jenbot/internal/zodiac"
)

// ErrUnavailable means the API answered without a reading.
var ErrUnavailable = errors.New("horoscope unavailable")

// Reading is one day's horoscope.
type Reading struct {
	Text string
	Date string
}

// Fetcher returns today's reading for a sign.
type Fetcher interface {
	Daily(ctx context.Context, sign zodiac.Sign) (Reading, error)
}

type dailyResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    *struct {
		Date          string `json:"date"`
		HoroscopeData string `json:"horoscope_data"`
	} `json:"data"`
}

// Client calls the horoscope API.
type Client struct {
	api      *webapi.Client
	endpoint string
	day      string
	title    cases.Caser
}

// NewClient returns a client for cfg.
func NewClient(cfg config.HoroscopeConfig, log *slog.Logger) *Client {
	return &Client{
		api:      webapi.New("horoscope", cfg.Timeout, log),
		endpoint: cfg.URL,
		day:      cfg.Day,
		title:    cases.Title(language.English),
	}
}

// Daily fetches the reading for sign. An answer without success or data is
// ErrUnavailable; transport and decoding failures are returned wrapped.
func (c *Client) Daily(ctx context.Context, sign zodiac.Sign) (Reading, error) {
	q := url.Values{
		"sign": {c.title.String(strings.ToLower(string(sign)))},
		"day":  {c.day},
	}

	var resp dailyResponse
	if err := c.api.GetJSON(ctx, c.endpoint, q, &resp); err != nil {
		return Reading{}, fmt.Errorf("failed to fetch horoscope for %s: %w", sign, err)
	}
	if !resp.Success || resp.Data == nil {
		return Reading{}, fmt.Errorf("%w: sign %s, status %d", ErrUnavailable, sign, resp.Status)
	}
	return Reading{Text: resp.Data.HoroscopeData, Date: resp.Data.Date}, nil
}
