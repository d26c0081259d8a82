// Package config provides configuration loading, validation, and management
// for the bot. It reads defaults, an optional config.yaml file and environment
// variables, and validates the result before any component is started.
package config

import (
	"errors"
	"time"
)

// ErrConfiguration is wrapped by every error returned from LoadConfig.
var ErrConfiguration = errors.New("configuration error")

// Supported chat platforms.
const (
	PlatformDiscord  = "discord"
	PlatformTelegram = "telegram"
)

// Supported text completion providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Supported conversation history backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config is the root configuration of the bot.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	AI        AIConfig        `mapstructure:"ai"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	History   HistoryConfig   `mapstructure:"history"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Server    ServerConfig    `mapstructure:"server"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls the slog handler.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// ChatConfig holds settings shared by every chat platform adapter.
type ChatConfig struct {
	Platform  string `mapstructure:"platform"   validate:"required,oneof=discord telegram"`
	Prefix    string `mapstructure:"prefix"     validate:"required"`
	ChunkSize int    `mapstructure:"chunk_size" validate:"min=1,max=4096"`
}

// DiscordConfig holds Discord credentials. The token comes from DISCORD_TOKEN.
type DiscordConfig struct {
	Token string `mapstructure:"token"`
}

// TelegramConfig holds Telegram credentials. The token comes from TELEGRAM_TOKEN.
type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

// AIConfig holds provider selection and the startup values of the runtime
// bot settings.
type AIConfig struct {
	Provider           string        `mapstructure:"provider"            validate:"required,oneof=openai gemini"`
	DefaultPersona     string        `mapstructure:"default_persona"`
	DefaultTemperature float32       `mapstructure:"default_temperature" validate:"min=0,max=1"`
	DefaultMaxTokens   int           `mapstructure:"default_max_tokens"  validate:"min=1,max=4096"`
	MaxHistoryLength   int           `mapstructure:"max_history_length"  validate:"min=1"`
	MaxInputLength     int           `mapstructure:"max_input_length"    validate:"min=1"`
	SummaryMaxTokens   int           `mapstructure:"summary_max_tokens"  validate:"min=1,max=4096"`
	SummaryTemperature float32       `mapstructure:"summary_temperature" validate:"min=0,max=1"`
	RoleMaxTokens      int           `mapstructure:"role_max_tokens"     validate:"min=1,max=4096"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"     validate:"min=1s,max=10m"`
}

// OpenAIConfig configures the OpenAI chat completion and image clients.
// The API key comes from OPENAI_API_KEY.
type OpenAIConfig struct {
	APIKey       string        `mapstructure:"api_key"       validate:"required"`
	BaseURL      string        `mapstructure:"base_url"      validate:"required,url"`
	ChatModel    string        `mapstructure:"chat_model"    validate:"required"`
	ImageModel   string        `mapstructure:"image_model"   validate:"required"`
	ImageSize    string        `mapstructure:"image_size"    validate:"required"`
	ImageQuality string        `mapstructure:"image_quality" validate:"required"`
	MaxRetries   int           `mapstructure:"max_retries"   validate:"min=0,max=10"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"   validate:"max=1m"`
}

// GeminiConfig configures the optional Gemini text completion client.
// The API key comes from GEMINI_API_KEY.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// HistoryConfig selects the conversation store backend.
type HistoryConfig struct {
	Backend string        `mapstructure:"backend"  validate:"required,oneof=memory sqlite"`
	IdleTTL time.Duration `mapstructure:"idle_ttl" validate:"min=0"`
}

// DatabaseConfig configures the SQLite history backend. Only in-memory
// databases are accepted.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn" validate:"required,sqlitememory"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig describes one scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// ServerConfig configures the health endpoint. An empty Addr disables it.
type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"`
}

// MessagesConfig holds every user-facing text the bot sends on its own.
type MessagesConfig struct {
	UnknownCommand   string `mapstructure:"unknown_command"    validate:"required"`
	MissingArgument  string `mapstructure:"missing_argument"   validate:"required"`
	BadArgument      string `mapstructure:"bad_argument"       validate:"required"`
	UnexpectedError  string `mapstructure:"unexpected_error"   validate:"required"`
	InvalidInput     string `mapstructure:"invalid_input"      validate:"required"`
	InvalidMaxTokens string `mapstructure:"invalid_max_tokens" validate:"required"`
	MaxTokensSet     string `mapstructure:"max_tokens_set"     validate:"required"`
	InvalidTemp      string `mapstructure:"invalid_temp"       validate:"required"`
	TempSet          string `mapstructure:"temp_set"           validate:"required"`
	RoleSet          string `mapstructure:"role_set"           validate:"required"`
	RoleUnchanged    string `mapstructure:"role_unchanged"     validate:"required"`
	HistoryCleared   string `mapstructure:"history_cleared"    validate:"required"`
	ImageError       string `mapstructure:"image_error"        validate:"required"`
	HelpHeader       string `mapstructure:"help_header"        validate:"required"`
}
