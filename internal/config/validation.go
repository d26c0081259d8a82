package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks struct-level constraints and the credentials required by
// the selected platform and provider.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("sqlitememory", isSQLiteMemoryDSN); err != nil {
		return fmt.Errorf("failed to register validation: %w", err)
	}

	if err := validate.Struct(c); err != nil {
		return err
	}

	switch c.Chat.Platform {
	case PlatformDiscord:
		if c.Discord.Token == "" {
			return fmt.Errorf("%s is required for the %s platform", EnvDiscordToken, PlatformDiscord)
		}
	case PlatformTelegram:
		if c.Telegram.Token == "" {
			return fmt.Errorf("%s is required for the %s platform", EnvTelegramToken, PlatformTelegram)
		}
	}

	if c.AI.Provider == ProviderGemini {
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%s is required for the %s provider", EnvGeminiKey, ProviderGemini)
		}
		if c.Gemini.Model == "" {
			return fmt.Errorf("gemini.model is required for the %s provider", ProviderGemini)
		}
	}

	if task, ok := c.Scheduler.Tasks[TaskHistoryJanitor]; ok && task.Enabled && c.History.IdleTTL <= 0 {
		return fmt.Errorf("task %s requires history.idle_ttl > 0", TaskHistoryJanitor)
	}
	if task, ok := c.Scheduler.Tasks[TaskSQLMaintenance]; ok && task.Enabled && c.History.Backend != BackendSQLite {
		return fmt.Errorf("task %s requires the %s history backend", TaskSQLMaintenance, BackendSQLite)
	}

	return nil
}

// isSQLiteMemoryDSN accepts only DSNs that open an in-memory SQLite database,
// so conversation history never outlives the process.
func isSQLiteMemoryDSN(fl validator.FieldLevel) bool {
	return IsMemoryDSN(fl.Field().String())
}

// IsMemoryDSN reports whether dsn names an in-memory SQLite database.
func IsMemoryDSN(dsn string) bool {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:") {
		return true
	}
	if !strings.HasPrefix(dsn, "file:") {
		return false
	}
	_, query, found := strings.Cut(dsn, "?")
	if !found {
		return false
	}
	for _, param := range strings.Split(query, "&") {
		if param == "mode=memory" {
			return true
		}
	}
	return false
}
