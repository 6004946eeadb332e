package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Session  SessionConfig
	Planning PlanningConfig
	DB       DBConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Port           string
	Env            string
	MaxUploadBytes int64
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// PlanningConfig holds the defaults applied when a request omits a control.
type PlanningConfig struct {
	DefaultGrowthRate    int
	DefaultBacklogTarget int
}

type DBConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// Defaults applied when a setting is missing or out of range.
const (
	DefaultGrowthRate    = 10
	DefaultBacklogTarget = 100
	DefaultMaxUploadMB   = 10
	DefaultSessionTTL    = 2 * time.Hour

	MinGrowthRate = 0
	MaxGrowthRate = 50
)

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_MAX_UPLOAD_MB", DefaultMaxUploadMB)
	v.SetDefault("SESSION_SECRET", "change-me")
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("PLANNING_DEFAULT_GROWTH_RATE", DefaultGrowthRate)
	v.SetDefault("PLANNING_DEFAULT_BACKLOG_TARGET", DefaultBacklogTarget)
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("DB_ENABLED", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
}

func fromViper(v *viper.Viper) *Config {
	sessionTTL, err := time.ParseDuration(v.GetString("SESSION_TTL"))
	if err != nil || sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}

	maxUploadMB := v.GetInt64("APP_MAX_UPLOAD_MB")
	if maxUploadMB <= 0 {
		maxUploadMB = DefaultMaxUploadMB
	}

	growthRate := v.GetInt("PLANNING_DEFAULT_GROWTH_RATE")
	if growthRate < MinGrowthRate || growthRate > MaxGrowthRate {
		growthRate = DefaultGrowthRate
	}

	backlogTarget := v.GetInt("PLANNING_DEFAULT_BACKLOG_TARGET")
	if backlogTarget < 0 {
		backlogTarget = DefaultBacklogTarget
	}

	return &Config{
		App: AppConfig{
			Port:           v.GetString("APP_PORT"),
			Env:            v.GetString("APP_ENV"),
			MaxUploadBytes: maxUploadMB << 20,
		},
		Session: SessionConfig{
			Secret: v.GetString("SESSION_SECRET"),
			TTL:    sessionTTL,
		},
		Planning: PlanningConfig{
			DefaultGrowthRate:    growthRate,
			DefaultBacklogTarget: backlogTarget,
		},
		DB: DBConfig{
			Enabled:  v.GetBool("DB_ENABLED"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
	}
}
