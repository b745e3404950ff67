package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout  time.Duration
	PoolMaxConns    int32
	PoolMinConns    int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment via viper. Required keys are
// validated up front so a misconfigured deployment fails at startup, not on
// the first request.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "talent-match")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("DB_POOL_MAX_CONNS", 16)
	v.SetDefault("DB_POOL_MIN_CONNS", 2)
	v.SetDefault("DB_POOL_MAX_CONN_LIFETIME", "30m")
	v.SetDefault("DB_POOL_MAX_CONN_IDLE_TIME", "5m")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("JWT_ACCESS_EXPIRES_IN", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", "168h")

	cfg := Config{
		App: AppConfig{
			AppName:     strings.TrimSpace(v.GetString("APP_NAME")),
			Environment: strings.TrimSpace(v.GetString("APP_ENV")),
			HTTPPort:    strings.TrimSpace(v.GetString("HTTP_PORT")),
		},
		Database: DatabaseConfig{
			DBHost:          strings.TrimSpace(v.GetString("DB_HOST")),
			DBPort:          strings.TrimSpace(v.GetString("DB_PORT")),
			DBName:          strings.TrimSpace(v.GetString("DB_NAME")),
			DBUser:          strings.TrimSpace(v.GetString("DB_USER")),
			DBPassword:      v.GetString("DB_PASSWORD"),
			DBSSLMode:       strings.TrimSpace(v.GetString("DB_SSL_MODE")),
			ConnectTimeout:  v.GetDuration("DB_CONNECT_TIMEOUT"),
			PoolMaxConns:    v.GetInt32("DB_POOL_MAX_CONNS"),
			PoolMinConns:    v.GetInt32("DB_POOL_MIN_CONNS"),
			MaxConnLifetime: v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
			MaxConnIdleTime: v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		},
		Redis: RedisConfig{
			Host:     strings.TrimSpace(v.GetString("REDIS_HOST")),
			Port:     strings.TrimSpace(v.GetString("REDIS_PORT")),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		JWT: JWTConfig{
			AccessSecret:     v.GetString("JWT_ACCESS_SECRET"),
			RefreshSecret:    v.GetString("JWT_REFRESH_SECRET"),
			AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
			RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
		},
	}

	var missing []string
	req := func(key, val string) {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, key)
		}
	}
	req("DB_NAME", cfg.Database.DBName)
	req("DB_USER", cfg.Database.DBUser)
	req("JWT_ACCESS_SECRET", cfg.JWT.AccessSecret)
	req("JWT_REFRESH_SECRET", cfg.JWT.RefreshSecret)

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}
