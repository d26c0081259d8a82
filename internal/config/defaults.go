package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel = "info"
	DefaultLogJSON  = true

	// Chat defaults
	DefaultPlatform  = PlatformDiscord
	DefaultPrefix    = "!"
	DefaultChunkSize = 2000 // Discord's maximum message length

	// AI defaults
	DefaultProvider           = ProviderOpenAI
	DefaultPersona            = "Discord bot"
	DefaultTemperature        = 0.7
	DefaultMaxTokens          = 1000
	DefaultMaxHistoryLength   = 4000
	DefaultMaxInputLength     = 4096
	DefaultSummaryMaxTokens   = 1000
	DefaultSummaryTemperature = 0.7
	DefaultRoleMaxTokens      = 4096
	DefaultAIRequestTimeout   = 2 * time.Minute

	// OpenAI defaults
	DefaultOpenAIBaseURL      = "https://api.openai.com/v1"
	DefaultOpenAIChatModel    = "gpt-4o-mini"
	DefaultOpenAIImageModel   = "dall-e-3"
	DefaultOpenAIImageSize    = "1024x1024"
	DefaultOpenAIImageQuality = "standard"
	DefaultOpenAIMaxRetries   = 2
	DefaultOpenAIRetryDelay   = time.Second

	// Gemini defaults
	DefaultGeminiModel = "gemini-2.0-flash"

	// History defaults
	DefaultHistoryBackend = BackendMemory
	DefaultHistoryIdleTTL = time.Duration(0) // never expire
	DefaultDatabaseDSN    = "file:riffbot?mode=memory&cache=shared"
)

// Task names known to the scheduler.
const (
	TaskHistoryJanitor = "history_janitor"
	TaskSQLMaintenance = "sql_maintenance"
)

// DefaultTasks lists the scheduled tasks and their default schedules.
var DefaultTasks = map[string]TaskConfig{
	TaskHistoryJanitor: {Enabled: false, Schedule: "0 */10 * * * *"},
	TaskSQLMaintenance: {Enabled: false, Schedule: "0 0 4 * * *"},
}

// DefaultMessages holds the stock user-facing texts.
var DefaultMessages = MessagesConfig{
	UnknownCommand:   "The command you entered does not exist. Please try again.",
	MissingArgument:  "A required argument is missing. Please check your command and try again.",
	BadArgument:      "Invalid argument provided. Please check your input and try again.",
	UnexpectedError:  "An unexpected error occurred: %v",
	InvalidInput:     "Invalid input. Please make sure the text is within the character limit.",
	InvalidMaxTokens: "Invalid max tokens value. Please enter an integer between 1 and 4096.",
	MaxTokensSet:     "Max tokens set to %d.",
	InvalidTemp:      "Invalid temperature value. Please enter a value between 0 and 1.",
	TempSet:          "Temperature set to %s.",
	RoleSet:          "Role set to %s.",
	RoleUnchanged:    "Couldn't come up with a new role, still playing: %s",
	HistoryCleared:   "Your conversation history has been cleared.",
	ImageError:       "Couldn't send random gif: %v",
	HelpHeader:       "Available commands:",
}

// setDefaults registers default values for every configuration key so that
// environment overrides are picked up by viper.Unmarshal.
func setDefaults(v viperSetter) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", DefaultLogJSON)

	v.SetDefault("chat.platform", DefaultPlatform)
	v.SetDefault("chat.prefix", DefaultPrefix)
	v.SetDefault("chat.chunk_size", DefaultChunkSize)

	v.SetDefault("discord.token", "")
	v.SetDefault("telegram.token", "")

	v.SetDefault("ai.provider", DefaultProvider)
	v.SetDefault("ai.default_persona", DefaultPersona)
	v.SetDefault("ai.default_temperature", DefaultTemperature)
	v.SetDefault("ai.default_max_tokens", DefaultMaxTokens)
	v.SetDefault("ai.max_history_length", DefaultMaxHistoryLength)
	v.SetDefault("ai.max_input_length", DefaultMaxInputLength)
	v.SetDefault("ai.summary_max_tokens", DefaultSummaryMaxTokens)
	v.SetDefault("ai.summary_temperature", DefaultSummaryTemperature)
	v.SetDefault("ai.role_max_tokens", DefaultRoleMaxTokens)
	v.SetDefault("ai.request_timeout", DefaultAIRequestTimeout)

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", DefaultOpenAIBaseURL)
	v.SetDefault("openai.chat_model", DefaultOpenAIChatModel)
	v.SetDefault("openai.image_model", DefaultOpenAIImageModel)
	v.SetDefault("openai.image_size", DefaultOpenAIImageSize)
	v.SetDefault("openai.image_quality", DefaultOpenAIImageQuality)
	v.SetDefault("openai.max_retries", DefaultOpenAIMaxRetries)
	v.SetDefault("openai.retry_delay", DefaultOpenAIRetryDelay)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", DefaultGeminiModel)

	v.SetDefault("history.backend", DefaultHistoryBackend)
	v.SetDefault("history.idle_ttl", DefaultHistoryIdleTTL)
	v.SetDefault("database.dsn", DefaultDatabaseDSN)

	v.SetDefault("scheduler.tasks", map[string]any{
		TaskHistoryJanitor: map[string]any{
			"enabled":  DefaultTasks[TaskHistoryJanitor].Enabled,
			"schedule": DefaultTasks[TaskHistoryJanitor].Schedule,
		},
		TaskSQLMaintenance: map[string]any{
			"enabled":  DefaultTasks[TaskSQLMaintenance].Enabled,
			"schedule": DefaultTasks[TaskSQLMaintenance].Schedule,
		},
	})

	v.SetDefault("server.addr", "")

	v.SetDefault("messages.unknown_command", DefaultMessages.UnknownCommand)
	v.SetDefault("messages.missing_argument", DefaultMessages.MissingArgument)
	v.SetDefault("messages.bad_argument", DefaultMessages.BadArgument)
	v.SetDefault("messages.unexpected_error", DefaultMessages.UnexpectedError)
	v.SetDefault("messages.invalid_input", DefaultMessages.InvalidInput)
	v.SetDefault("messages.invalid_max_tokens", DefaultMessages.InvalidMaxTokens)
	v.SetDefault("messages.max_tokens_set", DefaultMessages.MaxTokensSet)
	v.SetDefault("messages.invalid_temp", DefaultMessages.InvalidTemp)
	v.SetDefault("messages.temp_set", DefaultMessages.TempSet)
	v.SetDefault("messages.role_set", DefaultMessages.RoleSet)
	v.SetDefault("messages.role_unchanged", DefaultMessages.RoleUnchanged)
	v.SetDefault("messages.history_cleared", DefaultMessages.HistoryCleared)
	v.SetDefault("messages.image_error", DefaultMessages.ImageError)
	v.SetDefault("messages.help_header", DefaultMessages.HelpHeader)
}

type viperSetter interface {
	SetDefault(key string, value any)
}
