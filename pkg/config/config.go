package config

import (
	"fmt"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Storage struct {
		Driver string `env:"STORAGE_DRIVER" env-default:"postgres"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Sqlite struct {
		Path string `env:"SQLITE_PATH" env-default:"./insta-competitor.db"`
	}
	Telegram struct {
		Token string `env:"TELEGRAM_TOKEN"`
	}
	Apify struct {
		Token        string `env:"APIFY_TOKEN"`
		ReelActor    string `env:"APIFY_REEL_ACTOR" env-default:"apify~instagram-reel-scraper"`
		HashtagActor string `env:"APIFY_HASHTAG_ACTOR" env-default:"apify~instagram-hashtag-scraper"`
		BaseURL      string `env:"APIFY_BASE_URL" env-default:"https://api.apify.com/v2"`
	}
	Scraper struct {
		MinViews      int `env:"SCRAPER_MIN_VIEWS" env-default:"1000"`
		MaxAgeDays    int `env:"SCRAPER_MAX_AGE_DAYS" env-default:"14"`
		Limit         int `env:"SCRAPER_LIMIT" env-default:"50"`
		ScheduleHours int `env:"SCRAPER_SCHEDULE_HOURS" env-default:"0"`
	}
}

var (
	once sync.Once
	cfg  *Config
	err  error
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if readErr := cleanenv.ReadEnv(cfg); readErr != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			err = fmt.Errorf("failed to read configuration: %w\n%s", readErr, help)
			return
		}
		err = cfg.validate()
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate fails fast on settings whose absence would otherwise surface as an
// opaque runtime error deep inside a handler.
func (c *Config) validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	switch c.Storage.Driver {
	case "postgres":
		if c.Postgres.Host == "" || c.Postgres.Name == "" {
			return fmt.Errorf("POSTGRES_HOST and POSTGRES_NAME are required when STORAGE_DRIVER=postgres")
		}
	case "sqlite":
		if c.Sqlite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORAGE_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER: %q", c.Storage.Driver)
	}
	if c.Apify.Token == "" {
		return fmt.Errorf("APIFY_TOKEN is required")
	}
	return nil
}

// PostgresDSN builds the connection string used by both pgx and goose.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}
