// Package config loads jenbot configuration from a YAML file, JENBOT_*
// environment variables and an optional .env file, applies defaults for
// every optional key and validates the result.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	AI        AIConfig        `mapstructure:"ai"`
	Currency  CurrencyConfig  `mapstructure:"currency"`
	Horoscope HoroscopeConfig `mapstructure:"horoscope"`
	Store     StoreConfig     `mapstructure:"store"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Selection SelectionConfig `mapstructure:"selection"`
	Reply     ReplyConfig     `mapstructure:"reply"`
	Health    HealthConfig    `mapstructure:"health"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// DiscordConfig holds gateway credentials and command surface settings.
type DiscordConfig struct {
	Token         string `mapstructure:"token"          validate:"required"`
	OwnerID       string `mapstructure:"owner_id"       validate:"omitempty,numeric"`
	CommandPrefix string `mapstructure:"command_prefix" validate:"required"`
}

// AIConfig selects and tunes the text generation provider. An empty APIKey
// disables the AI path.
type AIConfig struct {
	Provider   string        `mapstructure:"provider"    validate:"oneof=gemini openai"`
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"       validate:"required"`
	BaseURL    string        `mapstructure:"base_url"    validate:"omitempty,url"`
	MinDelay   time.Duration `mapstructure:"min_delay"   validate:"min=0s"`
	Timeout    time.Duration `mapstructure:"timeout"     validate:"min=1s,max=10m"`
	MaxRetries int           `mapstructure:"max_retries" validate:"min=0,max=10"`
	RetryDelay time.Duration `mapstructure:"retry_delay" validate:"min=0s"`
}

// CurrencyConfig points at the latest and historical rate APIs.
type CurrencyConfig struct {
	LatestURL  string        `mapstructure:"latest_url"  validate:"required,url"`
	HistoryURL string        `mapstructure:"history_url" validate:"required,url"`
	Timeout    time.Duration `mapstructure:"timeout"     validate:"min=1s,max=5m"`
}

// HoroscopeConfig points at the daily horoscope API.
type HoroscopeConfig struct {
	URL     string        `mapstructure:"url"     validate:"required,url"`
	Day     string        `mapstructure:"day"     validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1s,max=5m"`
}

// StoreConfig selects the preference store backend. Path is used by the json
// and sqlite drivers, DSN by postgres.
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=json sqlite postgres"`
	Path   string `mapstructure:"path"   validate:"required_unless=Driver postgres"`
	DSN    string `mapstructure:"dsn"    validate:"required_if=Driver postgres"`
}

// SchedulerConfig anchors the daily job to a time of day in a timezone.
type SchedulerConfig struct {
	DailyTime string `mapstructure:"daily_time" validate:"required"`
	Timezone  string `mapstructure:"timezone"   validate:"required"`
}

// SelectionConfig controls interactive sign menus.
type SelectionConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1s,max=15m"`
}

// ReplyConfig bounds outbound message sizes and pacing.
type ReplyConfig struct {
	MaxLength         int           `mapstructure:"max_length"          validate:"min=1"`
	ChunkSize         int           `mapstructure:"chunk_size"          validate:"min=1,ltefield=MaxLength"`
	BlockLimit        int           `mapstructure:"block_limit"         validate:"min=1,ltefield=MaxLength"`
	Pace              time.Duration `mapstructure:"pace"                validate:"min=0s"`
	CooldownNoticeTTL time.Duration `mapstructure:"cooldown_notice_ttl" validate:"min=0s"`
	TipTTL            time.Duration `mapstructure:"tip_ttl"             validate:"min=0s"`
}

// HealthConfig controls the optional HTTP health endpoint.
type HealthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"required_if=Enabled true"`
}

// MessagesConfig holds every user-facing string. Values containing verbs are
// fmt format strings; the comment on each field lists its arguments.
type MessagesConfig struct {
	DirectMessageOnly string `mapstructure:"direct_message_only" validate:"required"`
	GeneralError      string `mapstructure:"general_error"       validate:"required"`
	OwnerOnly         string `mapstructure:"owner_only"          validate:"required"`

	AIOffline     string `mapstructure:"ai_offline"      validate:"required"`
	AIEmptyPrompt string `mapstructure:"ai_empty_prompt" validate:"required"`
	AICooldown    string `mapstructure:"ai_cooldown"     validate:"required"` // seconds float
	AIError       string `mapstructure:"ai_error"        validate:"required"`

	CurrencyFetching    string `mapstructure:"currency_fetching"     validate:"required"` // base
	CurrencyHeader      string `mapstructure:"currency_header"       validate:"required"` // amount, base, date
	CurrencyResult      string `mapstructure:"currency_result"       validate:"required"` // amount, base, result, target
	CurrencyRateMissing string `mapstructure:"currency_rate_missing" validate:"required"` // target
	CurrencyFetchError  string `mapstructure:"currency_fetch_error"  validate:"required"` // base

	HistoryButton     string `mapstructure:"history_button"     validate:"required"`
	HistoryGenerating string `mapstructure:"history_generating" validate:"required"`
	HistoryEmpty      string `mapstructure:"history_empty"      validate:"required"`
	HistoryError      string `mapstructure:"history_error"      validate:"required"`

	SelectionPlaceholder string `mapstructure:"selection_placeholder" validate:"required"`
	SelectionNotOwner    string `mapstructure:"selection_not_owner"   validate:"required"`
	SelectionExpired     string `mapstructure:"selection_expired"     validate:"required"`
	SignRegistered       string `mapstructure:"sign_registered"       validate:"required"` // sign
	SignUpdated          string `mapstructure:"sign_updated"          validate:"required"` // sign

	RegisterPrompt   string `mapstructure:"register_prompt"   validate:"required"` // mention
	RegisterTip      string `mapstructure:"register_tip"      validate:"required"` // prefix
	ModifyPrompt     string `mapstructure:"modify_prompt"     validate:"required"` // mention
	RemoveDone       string `mapstructure:"remove_done"       validate:"required"` // prefix
	RemoveMissing    string `mapstructure:"remove_missing"    validate:"required"`
	TestRunning      string `mapstructure:"test_running"      validate:"required"` // sign
	TestUnregistered string `mapstructure:"test_unregistered" validate:"required"` // prefix

	HoroscopeFetching    string `mapstructure:"horoscope_fetching"    validate:"required"` // mention, sign
	HoroscopeUnavailable string `mapstructure:"horoscope_unavailable" validate:"required"`
	HoroscopeError       string `mapstructure:"horoscope_error"       validate:"required"`
	HoroscopeTitle       string `mapstructure:"horoscope_title"       validate:"required"` // sign
	HoroscopeFooter      string `mapstructure:"horoscope_footer"      validate:"required"` // date
	HoroscopeEmpty       string `mapstructure:"horoscope_empty"       validate:"required"`

	HelpFooter string `mapstructure:"help_footer"`
}
