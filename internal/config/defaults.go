package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Default values for optional configuration keys.
const (
	DefaultLogLevel      = "info"
	DefaultCommandPrefix = "!"

	DefaultAIProvider   = "gemini"
	DefaultAIModel      = "gemini-1.5-flash"
	DefaultAIMinDelay   = 1100 * time.Millisecond
	DefaultAITimeout    = 2 * time.Minute
	DefaultAIMaxRetries = 3
	DefaultAIRetryDelay = time.Second

	DefaultCurrencyLatestURL  = "https://api.frankfurter.dev/v1/latest"
	DefaultCurrencyHistoryURL = "https://currencyhistoryapi.tinaleewx99.workers.dev/"
	DefaultCurrencyTimeout    = 15 * time.Second

	DefaultHoroscopeURL     = "https://horoscope-app-api.vercel.app/api/v1/get-horoscope/daily"
	DefaultHoroscopeDay     = "TODAY"
	DefaultHoroscopeTimeout = 15 * time.Second

	DefaultStoreDriver = "json"
	DefaultStorePath   = "horoscope_users.json"

	DefaultSchedulerDailyTime = "00:00"
	DefaultSchedulerTimezone  = "UTC"

	DefaultSelectionTimeout = 2 * time.Minute

	DefaultReplyMaxLength         = 2000 // Discord's message content limit
	DefaultReplyChunkSize         = 1990
	DefaultReplyBlockLimit        = 1900
	DefaultReplyPace              = time.Second
	DefaultReplyCooldownNoticeTTL = 5 * time.Second
	DefaultReplyTipTTL            = 20 * time.Second

	DefaultHealthAddr = ":8080"
)

// DefaultMessages are the built-in user-facing strings.
var DefaultMessages = MessagesConfig{
	DirectMessageOnly: "Sorry, I only operate in server channels. Please interact with me there!",
	GeneralError:      "Sorry, something went wrong. Please try again later.",
	OwnerOnly:         "⛔ This command can only be used by the bot owner.",

	AIOffline:     "My AI brain is currently offline. Please try again later.",
	AIEmptyPrompt: "Hello! Mention me with a question to get an AI response.",
	AICooldown:    "I'm thinking... please wait %.1fs before asking again.",
	AIError:       "I'm sorry, I encountered an error while trying to think.",

	CurrencyFetching:    "Fetching exchange rates for **%s**...",
	CurrencyHeader:      "**Exchange Rates for %s %s (as of %s):**",
	CurrencyResult:      "**%s %s = %s %s**",
	CurrencyRateMissing: "Could not find rate for `%s`.",
	CurrencyFetchError:  "Sorry, I couldn't fetch exchange rates for `%s`.",

	HistoryButton:     "📈 Show History",
	HistoryGenerating: "Generating Graph...",
	HistoryEmpty:      "Sorry, no historical data found.",
	HistoryError:      "Sorry, an error occurred while creating the graph.",

	SelectionPlaceholder: "Choose your zodiac sign...",
	SelectionNotOwner:    "This menu is not for you.",
	SelectionExpired:     "This menu has expired. Please run the command again.",
	SignRegistered:       "✅ Your sign is registered as **%s**!",
	SignUpdated:          "✅ Your sign is updated to **%s**!",

	RegisterPrompt:   "Welcome, %s! Please select your sign to register:",
	RegisterTip:      "*(Tip: Use `%smod` to update your sign.)*",
	ModifyPrompt:     "%s, please select your new sign:",
	RemoveDone:       "✅ Your record has been deleted. Use `%sreg` to register again.",
	RemoveMissing:    "You don't have a registered sign to delete.",
	TestRunning:      "✅ Running a test for your sign: **%s**.",
	TestUnregistered: "⚠️ You are not registered. Use `%sreg` first.",

	HoroscopeFetching:    "%sfetching today's horoscope for **%s**...",
	HoroscopeUnavailable: "Sorry, I couldn't retrieve the horoscope right now.",
	HoroscopeError:       "Sorry, there was an error connecting to the horoscope service.",
	HoroscopeTitle:       "✨ Daily Horoscope for %s ✨",
	HoroscopeFooter:      "Date: %s",
	HoroscopeEmpty:       "No horoscope data found.",

	HelpFooter: "Made with ❤️ by Jenny",
}

// setDefaults registers every key so environment overrides are visible to
// Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", false)

	v.SetDefault("discord.token", "")
	v.SetDefault("discord.owner_id", "")
	v.SetDefault("discord.command_prefix", DefaultCommandPrefix)

	v.SetDefault("ai.provider", DefaultAIProvider)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", DefaultAIModel)
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.min_delay", DefaultAIMinDelay)
	v.SetDefault("ai.timeout", DefaultAITimeout)
	v.SetDefault("ai.max_retries", DefaultAIMaxRetries)
	v.SetDefault("ai.retry_delay", DefaultAIRetryDelay)

	v.SetDefault("currency.latest_url", DefaultCurrencyLatestURL)
	v.SetDefault("currency.history_url", DefaultCurrencyHistoryURL)
	v.SetDefault("currency.timeout", DefaultCurrencyTimeout)

	v.SetDefault("horoscope.url", DefaultHoroscopeURL)
	v.SetDefault("horoscope.day", DefaultHoroscopeDay)
	v.SetDefault("horoscope.timeout", DefaultHoroscopeTimeout)

	v.SetDefault("store.driver", DefaultStoreDriver)
	v.SetDefault("store.path", DefaultStorePath)
	v.SetDefault("store.dsn", "")

	v.SetDefault("scheduler.daily_time", DefaultSchedulerDailyTime)
	v.SetDefault("scheduler.timezone", DefaultSchedulerTimezone)

	v.SetDefault("selection.timeout", DefaultSelectionTimeout)

	v.SetDefault("reply.max_length", DefaultReplyMaxLength)
	v.SetDefault("reply.chunk_size", DefaultReplyChunkSize)
	v.SetDefault("reply.block_limit", DefaultReplyBlockLimit)
	v.SetDefault("reply.pace", DefaultReplyPace)
	v.SetDefault("reply.cooldown_notice_ttl", DefaultReplyCooldownNoticeTTL)
	v.SetDefault("reply.tip_ttl", DefaultReplyTipTTL)

	v.SetDefault("health.enabled", false)
	v.SetDefault("health.addr", DefaultHealthAddr)

	m := DefaultMessages
	v.SetDefault("messages.direct_message_only", m.DirectMessageOnly)
	v.SetDefault("messages.general_error", m.GeneralError)
	v.SetDefault("messages.owner_only", m.OwnerOnly)
	v.SetDefault("messages.ai_offline", m.AIOffline)
	v.SetDefault("messages.ai_empty_prompt", m.AIEmptyPrompt)
	v.SetDefault("messages.ai_cooldown", m.AICooldown)
	v.SetDefault("messages.ai_error", m.AIError)
	v.SetDefault("messages.currency_fetching", m.CurrencyFetching)
	v.SetDefault("messages.currency_header", m.CurrencyHeader)
	v.SetDefault("messages.currency_result", m.CurrencyResult)
	v.SetDefault("messages.currency_rate_missing", m.CurrencyRateMissing)
	v.SetDefault("messages.currency_fetch_error", m.CurrencyFetchError)
	v.SetDefault("messages.history_button", m.HistoryButton)
	v.SetDefault("messages.history_generating", m.HistoryGenerating)
	v.SetDefault("messages.history_empty", m.HistoryEmpty)
	v.SetDefault("messages.history_error", m.HistoryError)
	v.SetDefault("messages.selection_placeholder", m.SelectionPlaceholder)
	v.SetDefault("messages.selection_not_owner", m.SelectionNotOwner)
	v.SetDefault("messages.selection_expired", m.SelectionExpired)
	v.SetDefault("messages.sign_registered", m.SignRegistered)
	v.SetDefault("messages.sign_updated", m.SignUpdated)
	v.SetDefault("messages.register_prompt", m.RegisterPrompt)
	v.SetDefault("messages.register_tip", m.RegisterTip)
	v.SetDefault("messages.modify_prompt", m.ModifyPrompt)
	v.SetDefault("messages.remove_done", m.RemoveDone)
	v.SetDefault("messages.remove_missing", m.RemoveMissing)
	v.SetDefault("messages.test_running", m.TestRunning)
	v.SetDefault("messages.test_unregistered", m.TestUnregistered)
	v.SetDefault("messages.horoscope_fetching", m.HoroscopeFetching)
	v.SetDefault("messages.horoscope_unavailable", m.HoroscopeUnavailable)
	v.SetDefault("messages.horoscope_error", m.HoroscopeError)
	v.SetDefault("messages.horoscope_title", m.HoroscopeTitle)
	v.SetDefault("messages.horoscope_footer", m.HoroscopeFooter)
	v.SetDefault("messages.horoscope_empty", m.HoroscopeEmpty)
	v.SetDefault("messages.help_footer", m.HelpFooter)
}

// Defaults returns a Config holding every default value. It is not validated;
// in particular Discord.Token is empty.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("config defaults do not decode: %v", err))
	}
	return cfg
}
