package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"

	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
	StoreMySQL  = "mysql"
)

type Config struct {
	Env           string         `yaml:"env"`
	TelegramToken string         `yaml:"telegram_token"`
	Mode          string         `yaml:"mode"`
	Webhook       WebhookConfig  `yaml:"webhook"`
	Store         StoreConfig    `yaml:"store"`
	Calendar      CalendarConfig `yaml:"calendar"`
	Form          FormConfig     `yaml:"form"`
	Log           LogConfig      `yaml:"log"`
}

type WebhookConfig struct {
	URL    string `yaml:"url"`
	Listen string `yaml:"listen"`
	Secret string `yaml:"secret"`
}

type StoreConfig struct {
	Kind      string `yaml:"kind"`
	File      string `yaml:"file"`
	RedisAddr string `yaml:"redis_addr"`
	RedisKey  string `yaml:"redis_key"`
	SQLDSN    string `yaml:"sql_dsn"`
}

type CalendarConfig struct {
	ID              string `yaml:"id"`
	CredentialsFile string `yaml:"credentials_file"`
	BaseURL         string `yaml:"base_url"`
}

type FormConfig struct {
	URL         string `yaml:"url"`
	NameField   string `yaml:"name_field"`
	ReasonField string `yaml:"reason_field"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{}
	if path := os.Getenv("BOT_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if cfg, err = Parse(data); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse разбирает YAML-файл конфигурации; переменные окружения применяются поверх в Load.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() {
	setFromEnv(&c.Env, "APP_ENV")
	setFromEnv(&c.TelegramToken, "TELEGRAM_TOKEN")
	setFromEnv(&c.Mode, "BOT_MODE")
	setFromEnv(&c.Webhook.URL, "WEBHOOK_URL")
	setFromEnv(&c.Webhook.Listen, "WEBHOOK_LISTEN")
	setFromEnv(&c.Webhook.Secret, "WEBHOOK_SECRET")
	setFromEnv(&c.Store.Kind, "STATE_STORE")
	setFromEnv(&c.Store.File, "STATE_FILE")
	setFromEnv(&c.Store.RedisAddr, "REDIS_ADDR")
	setFromEnv(&c.Store.RedisKey, "REDIS_KEY")
	setFromEnv(&c.Store.SQLDSN, "SQL_DSN")
	setFromEnv(&c.Calendar.ID, "CALENDAR_ID")
	setFromEnv(&c.Calendar.CredentialsFile, "CALENDAR_CREDENTIALS_FILE")
	setFromEnv(&c.Form.URL, "FORM_URL")
	setFromEnv(&c.Form.NameField, "FORM_NAME_FIELD")
	setFromEnv(&c.Form.ReasonField, "FORM_REASON_FIELD")
	setFromEnv(&c.Log.Level, "LOG_LEVEL")
	setFromEnv(&c.Log.Format, "LOG_FORMAT")
}

func (c *Config) applyDefaults() {
	setDefault(&c.Env, "development")
	setDefault(&c.Mode, ModePolling)
	setDefault(&c.Webhook.Listen, ":8080")
	setDefault(&c.Store.Kind, StoreFile)
	setDefault(&c.Store.File, "data.json")
	setDefault(&c.Store.RedisKey, "wfhbot:state")
	setDefault(&c.Log.Level, "info")
	if c.Log.Format == "" {
		c.Log.Format = "text"
		if c.IsProduction() {
			c.Log.Format = "json"
		}
	}
}

func (c *Config) validate() error {
	var errs []error

	switch c.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.Webhook.URL == "" {
			errs = append(errs, errors.New("WEBHOOK_URL is required in webhook mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown BOT_MODE %q", c.Mode))
	}

	switch c.Store.Kind {
	case StoreFile, StoreMemory:
	case StoreRedis:
		if c.Store.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for redis store"))
		}
	case StoreSQLite, StoreMySQL:
		if c.Store.SQLDSN == "" {
			errs = append(errs, fmt.Errorf("SQL_DSN is required for %s store", c.Store.Kind))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STATE_STORE %q", c.Store.Kind))
	}

	if c.Calendar.ID != "" && c.Calendar.CredentialsFile == "" {
		errs = append(errs, errors.New("CALENDAR_CREDENTIALS_FILE is required when CALENDAR_ID is set"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		*dst = val
	}
}

func setDefault(dst *string, val string) {
	if *dst == "" {
		*dst = val
	}
}
