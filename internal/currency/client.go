package currency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/webapi"
)

// ErrNoRates is returned when a response lacks the rates field.
var ErrNoRates = errors.New("response has no rates")

// Rates is a latest-rates snapshot for one base currency.
type Rates struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// History maps ISO dates to the rates of each requested symbol.
type History struct {
	Rates map[string]map[string]decimal.Decimal `json:"rates"`
}

// Point is one day of a rate series.
type Point struct {
	Date string
	Rate decimal.Decimal
}

// Series returns the target's rates in ascending date order. Dates lacking
// the target are skipped.
func (h History) Series(target string) []Point {
	dates := make([]string, 0, len(h.Rates))
	for d := range h.Rates {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	points := make([]Point, 0, len(dates))
	for _, d := range dates {
		if rate, ok := h.Rates[d][target]; ok {
			points = append(points, Point{Date: d, Rate: rate})
		}
	}
	return points
}

// Client queries the exchange rate APIs.
type Client struct {
	api        *webapi.Client
	historyAPI *webapi.Client
	latestURL  string
	historyURL string
	flights    singleflight.Group
	logger     *slog.Logger
}

// NewClient returns a client for the configured endpoints.
func NewClient(cfg config.CurrencyConfig, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		api:        webapi.New("currency_latest", cfg.Timeout, log),
		historyAPI: webapi.New("currency_history", cfg.Timeout, log),
		latestURL:  cfg.LatestURL,
		historyURL: cfg.HistoryURL,
		logger:     log.With("component", "currency_client"),
	}
}

// Latest fetches the current rates of base, restricted to target when set.
func (c *Client) Latest(ctx context.Context, base, target string) (Rates, error) {
	q := url.Values{"base": {base}}
	if target != "" {
		q.Set("to", target)
	}

	var r Rates
	if err := c.api.GetJSON(ctx, c.latestURL, q, &r); err != nil {
		return Rates{}, fmt.Errorf("failed to fetch rates for %s: %w", base, err)
	}
	if r.Rates == nil {
		return Rates{}, fmt.Errorf("failed to fetch rates for %s: %w", base, ErrNoRates)
	}
	if r.Base == "" {
		r.Base = base
	}
	return r, nil
}

// History fetches the recent daily rates of base against target. Concurrent
// identical requests share one upstream call.
func (c *Client) History(ctx context.Context, base, target string) (History, error) {
	key := base + "/" + target
	v, err, shared := c.flights.Do(key, func() (any, error) {
		// detached: the result is shared by every waiting caller
		var h History
		q := url.Values{"base": {base}, "symbols": {target}}
		if err := c.historyAPI.GetJSON(context.WithoutCancel(ctx), c.historyURL, q, &h); err != nil {
			return History{}, err
		}
		return h, nil
	})
	if shared {
		c.logger.DebugContext(ctx, "Shared history lookup", "base", base, "target", target)
	}
	if err != nil {
		return History{}, fmt.Errorf("failed to fetch history for %s: %w", key, err)
	}
	return v.(History), nil
}
