package config

import (
	"log"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogMode    string `envconfig:"LOG_MODE" default:"development"`
	LogFile    string `envconfig:"LOG_FILE" default:""`
	Location   string `envconfig:"POS_LOCATION" default:"Africa/Dakar"` // 일 경계 기준 타임존
	Currency   string `envconfig:"POS_CURRENCY" default:"FCFA"`
	ReportDays int    `envconfig:"POS_REPORT_DAYS" default:"8"`
	SeedDemo   bool   `envconfig:"POS_SEED_DEMO" default:"true"`
}

// Load reads .env.local when APP_ENV is "local", then processes the environment.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") == "local" {
		if err := godotenv.Load(".env.local"); err != nil {
			log.Printf("Warning: .env.local not loaded: %v. Relying on system environment variables.", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.ReportDays < 1 {
		cfg.ReportDays = 8
	}
	return &cfg, nil
}

// TimeLocation resolves the configured zone, falling back to time.Local.
func (c *Config) TimeLocation() *time.Location {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return time.Local
	}
	return loc
}
