package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config собирает настройки процесса: сначала значения по умолчанию,
// потом YAML-файл (если задан CONFIG_FILE), потом переменные окружения.
type Config struct {
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
	TelegramMode   string `yaml:"telegram_mode"` // polling | webhook

	MinPlayersCount int `yaml:"min_players_count"`

	DBDriver   string `yaml:"db_driver"` // postgres | sqlite | memory
	DBURL      string `yaml:"db_url"`
	SQLitePath string `yaml:"sqlite_path"`

	RedisURL      string        `yaml:"redis_url"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`

	HTTPAddr   string `yaml:"http_addr"`
	CronSecret string `yaml:"cron_secret"`

	Timezone         string        `yaml:"timezone"`
	SchedulerEnabled bool          `yaml:"scheduler_enabled"`
	CloseVotingTime  string        `yaml:"close_voting_time"`
	PinDelay         time.Duration `yaml:"pin_delay"`

	LogFormat string `yaml:"log_format"`
}

func defaults() Config {
	return Config{
		TelegramMode:     "polling",
		MinPlayersCount:  10,
		DBDriver:         "postgres",
		SQLitePath:       "volley.db",
		CacheTTL:         5 * time.Minute,
		HTTPAddr:         ":8080",
		Timezone:         "UTC",
		SchedulerEnabled: true,
		CloseVotingTime:  "09:00",
		PinDelay:         5 * time.Second,
		LogFormat:        "text",
	}
}

// Load читает конфигурацию. Отсутствие .env не считается ошибкой.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("Не найден .env, используем переменные окружения")
	}

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := readFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config read: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config unmarshal: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	envString("TELEGRAM_BOT_TOKEN", &cfg.TelegramToken)
	envString("TELEGRAM_MODE", &cfg.TelegramMode)
	envString("DB_DRIVER", &cfg.DBDriver)
	envString("DB_URL", &cfg.DBURL)
	envString("SQLITE_PATH", &cfg.SQLitePath)
	envString("REDIS_URL", &cfg.RedisURL)
	envString("REDIS_PASSWORD", &cfg.RedisPassword)
	envString("HTTP_ADDR", &cfg.HTTPAddr)
	envString("CRON_SECRET", &cfg.CronSecret)
	envString("TIMEZONE", &cfg.Timezone)
	envString("CLOSE_VOTING_TIME", &cfg.CloseVotingTime)
	envString("LOG_FORMAT", &cfg.LogFormat)
	cfg.SchedulerEnabled = envBool("SCHEDULER_ENABLED", cfg.SchedulerEnabled)

	if v, ok := os.LookupEnv("TELEGRAM_CHAT_ID"); ok && strings.TrimSpace(v) != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}
	if err := envInt("MIN_PLAYERS_COUNT", &cfg.MinPlayersCount); err != nil {
		return err
	}
	if err := envInt("REDIS_DB", &cfg.RedisDB); err != nil {
		return err
	}
	if err := envDuration("CACHE_TTL", &cfg.CacheTTL); err != nil {
		return err
	}
	return envDuration("PIN_DELAY", &cfg.PinDelay)
}

// Validate проверяет значения, без которых процесс не стартует.
func (c *Config) Validate() error {
	if c.MinPlayersCount < 0 {
		return fmt.Errorf("MIN_PLAYERS_COUNT must not be negative")
	}
	switch c.DBDriver {
	case "postgres":
		if c.DBURL == "" {
			return fmt.Errorf("DB_URL is required for postgres driver")
		}
	case "sqlite", "memory":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	switch c.TelegramMode {
	case "polling", "webhook":
	default:
		return fmt.Errorf("unknown TELEGRAM_MODE %q", c.TelegramMode)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE: %w", err)
	}
	return nil
}

// Location возвращает часовой пояс, в котором считаются дни недели и время голосований.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func envString(name string, dst *string) {
	if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func envInt(name string, dst *int) error {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = n
	return nil
}

func envDuration(name string, dst *time.Duration) error {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
