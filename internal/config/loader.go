package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Environment variables read without the BOT_ prefix.
const (
	EnvDiscordToken  = "DISCORD_TOKEN"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvTelegramToken = "TELEGRAM_TOKEN"
	EnvGeminiKey     = "GEMINI_API_KEY"
)

// LoadConfig loads and validates configuration from:
// 1. Default values
// 2. the YAML file at path (optional, a missing file is not an error)
// 3. BOT_* environment variables (e.g. BOT_CHAT_PREFIX)
// 4. the credential variables DISCORD_TOKEN, OPENAI_API_KEY, TELEGRAM_TOKEN and GEMINI_API_KEY
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"discord.token":  EnvDiscordToken,
		"openai.api_key": EnvOpenAIKey,
		"telegram.token": EnvTelegramToken,
		"gemini.api_key": EnvGeminiKey,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %v", ErrConfiguration, env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: failed to read config file %s: %v", ErrConfiguration, path, err)
		}
		slog.Info("Configuration file not found, using defaults and environment", "path", path)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	slog.Debug("Configuration loaded",
		"platform", cfg.Chat.Platform,
		"provider", cfg.AI.Provider,
		"history_backend", cfg.History.Backend,
		"chat_model", cfg.OpenAI.ChatModel,
		"image_model", cfg.OpenAI.ImageModel)

	return cfg, nil
}
