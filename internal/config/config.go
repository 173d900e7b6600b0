package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type StoreDriver string

const (
	StoreDriverSupabase StoreDriver = "supabase"
	StoreDriverPostgres StoreDriver = "postgres"
)

// TimeZone is the location calendar dates are computed in.
var TimeZone = time.UTC

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"UTC"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Store struct {
		Driver      StoreDriver `env:"STORE_DRIVER" envDefault:"supabase"`
		SupabaseURL string      `env:"SUPABASE_URL"`
		SupabaseKey string      `env:"SUPABASE_KEY"`
		DatabaseURL string      `env:"DATABASE_URL"`
	}

	AI struct {
		Endpoint string        `env:"AI_ENDPOINT" envDefault:"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"`
		APIKey   string        `env:"GEMINI_API_KEY"`
		RelayURL string        `env:"AI_RELAY_URL"`
		Timeout  time.Duration `env:"AI_TIMEOUT" envDefault:"20s"`
	}

	Relay struct {
		Enabled        bool    `env:"RELAY_ENABLED" envDefault:"true"`
		RateLimitRPS   float64 `env:"RELAY_RATE_LIMIT_RPS" envDefault:"5"`
		RateLimitBurst int     `env:"RELAY_RATE_LIMIT_BURST" envDefault:"10"`
	}

	Slots struct {
		WindowsString string `env:"SLOT_WINDOWS" envDefault:"09:00-12:00,13:00-16:00"`
		Minutes       int    `env:"SLOT_MINUTES" envDefault:"30"`
		HorizonDays   int    `env:"SLOT_HORIZON_DAYS" envDefault:"14"`
		Windows       []domain.SlotWindow
	}

	Auth struct {
		JWTSecret     string        `env:"JWT_SECRET" envDefault:"local-development-secret"`
		TokenTTL      time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"8h"`
		AdminUsername string        `env:"AUTH_ADMIN_USERNAME" envDefault:"admin"`
		AdminPassword string        `env:"AUTH_ADMIN_PASSWORD" envDefault:"admin"`
		// plaintext | bcrypt
		HashMode string `env:"AUTH_HASH_MODE" envDefault:"plaintext"`
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		URL      string `env:"RABBITMQ_URL"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"triage"`
		Queue    string `env:"RABBITMQ_QUEUE"`
		Source   string `env:"RABBITMQ_SOURCE" envDefault:"triage"`
	}

	Cache struct {
		Enabled   bool `env:"CACHE_ENABLED" envDefault:"true"`
		SlotsSize int  `env:"CACHE_SLOTS_SIZE" envDefault:"1000"`
	}

	Redis struct {
		URL     string `env:"REDIS_URL"`
		Reports int    `env:"REPORTS_CACHE_SIZE" envDefault:"500"`
	}
}

// NewConfig читает .env (если есть) и переменные окружения
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))
	cfg.Store.Driver = StoreDriver(strings.ToLower(string(cfg.Store.Driver)))

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config.timezone: %w", err)
	}
	TimeZone = loc

	windows, err := ParseSlotWindows(cfg.Slots.WindowsString)
	if err != nil {
		return nil, fmt.Errorf("config.slots: %w", err)
	}
	cfg.Slots.Windows = windows

	if cfg.Slots.Minutes <= 0 {
		return nil, fmt.Errorf("config.slots: SLOT_MINUTES must be positive, got %d", cfg.Slots.Minutes)
	}
	if cfg.Slots.HorizonDays <= 0 {
		return nil, fmt.Errorf("config.slots: SLOT_HORIZON_DAYS must be positive, got %d", cfg.Slots.HorizonDays)
	}

	// Без RabbitMQ слушать некого
	if cfg.RabbitMQ.URL == "" {
		cfg.RabbitMQ.Enabled = false
	}

	return cfg, nil
}

func ParseSlotWindows(raw string) ([]domain.SlotWindow, error) {
	windows := make([]domain.SlotWindow, 0)
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		window, err := domain.ParseSlotWindow(part)
		if err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("no slot windows configured")
	}
	return windows, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}

// AIConfigured reports whether the classifier has any way to reach the model.
func (c *Config) AIConfigured() bool {
	return c.AI.RelayURL != "" || c.AI.APIKey != ""
}
