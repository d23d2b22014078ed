package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenbot/jenbot/internal/config"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		base   string
		amount string
		target string
	}{
		{"usd", "USD", "1", ""},
		{"usd100", "USD", "100", ""},
		{"usd myr", "USD", "1", "MYR"},
		{"usd100 myr", "USD", "100", "MYR"},
		{"usd 100 myr", "USD", "100", "MYR"},
		{"usd50 myr", "USD", "50", "MYR"},
		{"usd50 10 myr", "USD", "10", "MYR"},
		{"usd 2.5", "USD", "2.5", ""},
		{"Eur12.75 gbp extra tokens", "EUR", "12.75", "GBP"},
		{"usd. jpy", "USD", "1", "JPY"},
		{"  jpy   ", "JPY", "1", ""},
		{"usd 10.", "USD", "1", "10."},
		{"usd5.", "USD", "5", ""},
		{"usd.5 eur", "USD", "0.5", "EUR"},
		{"usd12345678901234567.89 myr", "USD", "12345678901234567.89", "MYR"},
		{"usd 0.1 myr", "USD", "0.1", "MYR"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			cmd, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.base, cmd.Base)
			assert.True(t, decimal.RequireFromString(tt.amount).Equal(cmd.Amount), "amount %s", cmd.Amount)
			assert.Equal(t, tt.target, cmd.Target)
		})
	}
}

func TestParseRejects(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "u", "hello", "us-d", "100usd", "usd100x", "dollars myr"} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, ErrNotCurrency, raw)
	}
}

func TestRatesFormatting(t *testing.T) {
	t.Parallel()

	r := Rates{Base: "USD", Rates: map[string]decimal.Decimal{
		"MYR": decimal.RequireFromString("4.7123"),
		"EUR": decimal.RequireFromString("0.9"),
	}}

	got, ok := r.Convert(decimal.NewFromInt(100), "MYR")
	require.True(t, ok)
	assert.Equal(t, "471.2300", FormatResult(got))

	_, ok = r.Convert(decimal.NewFromInt(1), "XXX")
	assert.False(t, ok)

	assert.Equal(t, []string{"  - EUR: 1.8000", "  - MYR: 9.4246"}, r.TableLines(decimal.NewFromInt(2)))
	assert.Equal(t, "2.50", FormatAmount(decimal.RequireFromString("2.5")))
}

func TestHistorySeries(t *testing.T) {
	t.Parallel()

	h := History{Rates: map[string]map[string]decimal.Decimal{
		"2024-01-03": {"MYR": decimal.RequireFromString("4.7")},
		"2024-01-01": {"MYR": decimal.RequireFromString("4.5")},
		"2024-01-02": {"EUR": decimal.RequireFromString("0.9")},
	}}

	series := h.Series("MYR")
	require.Len(t, series, 2)
	assert.Equal(t, "2024-01-01", series[0].Date)
	assert.Equal(t, "2024-01-03", series[1].Date)
	assert.Empty(t, History{}.Series("MYR"))
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(config.CurrencyConfig{
		LatestURL:  srv.URL + "/latest",
		HistoryURL: srv.URL + "/history",
		Timeout:    time.Second,
	}, nil)
}

func TestClientLatest(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("base") {
		case "USD":
			assert.Equal(t, "MYR", r.URL.Query().Get("to"))
			_, _ = w.Write([]byte(`{"amount":1.0,"base":"USD","date":"2024-05-01","rates":{"MYR":4.7512}}`))
		case "NOR":
			_, _ = w.Write([]byte(`{"base":"NOR","date":"2024-05-01"}`))
		default:
			http.NotFound(w, r)
		}
	}))

	r, err := c.Latest(context.Background(), "USD", "MYR")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", r.Date)
	assert.True(t, decimal.RequireFromString("4.7512").Equal(r.Rates["MYR"]))

	_, err = c.Latest(context.Background(), "NOR", "")
	assert.ErrorIs(t, err, ErrNoRates)

	_, err = c.Latest(context.Background(), "ZZZ", "")
	assert.Error(t, err)
}

func TestClientHistorySharesConcurrentLookups(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	release := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "MYR", r.URL.Query().Get("symbols"))
		<-release
		_, _ = w.Write([]byte(`{"rates":{"2024-01-02":{"MYR":4.6},"2024-01-01":{"MYR":4.5}}}`))
	}))

	const callers = 5
	var wg sync.WaitGroup
	results := make([]History, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := c.History(context.Background(), "USD", "MYR")
			assert.NoError(t, err)
			results[i] = h
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for _, h := range results {
		assert.Len(t, h.Series("MYR"), 2)
	}
}
