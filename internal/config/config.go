package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment
// variables. Every field maps 1:1 to an env var.
type Config struct {
	Env string `mapstructure:"APP_ENV"` // development | production

	// Storage — DATA_DIR is the profile of this process: one employee
	// session, one ledger per restaurant.
	DataDir string `mapstructure:"DATA_DIR"`

	// Change bus: local | file | redis
	BusDriver string `mapstructure:"BUS_DRIVER"`
	RedisURL  string `mapstructure:"REDIS_URL"`

	// Session signing
	SessionSecret string `mapstructure:"SESSION_SECRET"`

	// Workstation refresh fallback intervals, seconds. The cozinha runs
	// the short interval; the other surfaces tolerate a longer one.
	CozinhaRefreshSeconds  int `mapstructure:"COZINHA_REFRESH_SECONDS"`
	CaixaRefreshSeconds    int `mapstructure:"CAIXA_REFRESH_SECONDS"`
	SalaoRefreshSeconds    int `mapstructure:"SALAO_REFRESH_SECONDS"`
	RecepcaoRefreshSeconds int `mapstructure:"RECEPCAO_REFRESH_SECONDS"`

	// Shift reports
	WorkerPoolSize    int    `mapstructure:"WORKER_POOL_SIZE"`
	ReportStoragePath string `mapstructure:"REPORT_STORAGE_PATH"`
	SMTPHost          string `mapstructure:"SMTP_HOST"`
	SMTPPort          int    `mapstructure:"SMTP_PORT"`
	SMTPUser          string `mapstructure:"SMTP_USER"`
	SMTPPassword      string `mapstructure:"SMTP_PASSWORD"`
}

func (c *Config) CozinhaRefresh() time.Duration {
	return time.Duration(c.CozinhaRefreshSeconds) * time.Second
}

func (c *Config) CaixaRefresh() time.Duration {
	return time.Duration(c.CaixaRefreshSeconds) * time.Second
}

func (c *Config) SalaoRefresh() time.Duration {
	return time.Duration(c.SalaoRefreshSeconds) * time.Second
}

func (c *Config) RecepcaoRefresh() time.Duration {
	return time.Duration(c.RecepcaoRefreshSeconds) * time.Second
}

// Load reads configuration from environment variables (and optional .env
// file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("BUS_DRIVER", "file")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("SESSION_SECRET", "sitechama-dev-secret")
	viper.SetDefault("COZINHA_REFRESH_SECONDS", 4)
	viper.SetDefault("CAIXA_REFRESH_SECONDS", 10)
	viper.SetDefault("SALAO_REFRESH_SECONDS", 10)
	viper.SetDefault("RECEPCAO_REFRESH_SECONDS", 10)
	viper.SetDefault("WORKER_POOL_SIZE", 2)
	viper.SetDefault("REPORT_STORAGE_PATH", "/tmp/sitechama/relatorios")
	viper.SetDefault("SMTP_PORT", 587)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
