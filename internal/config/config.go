package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Provider ProviderConfig
	Identity IdentityConfig
	Poller   PollerConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type IdentityConfig struct {
	BaseURL string
	AnonKey string
	Timeout time.Duration
}

type PollerConfig struct {
	Enabled             bool
	Interval            time.Duration
	NonTerminalStatuses []string
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "finetune_gateway")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("PROVIDER_BASE_URL", "https://api.cohere.ai")
	v.SetDefault("PROVIDER_API_KEY", "")
	v.SetDefault("PROVIDER_TIMEOUT", "60s")
	v.SetDefault("IDENTITY_BASE_URL", "http://localhost:9999")
	v.SetDefault("IDENTITY_ANON_KEY", "")
	v.SetDefault("IDENTITY_TIMEOUT", "10s")
	v.SetDefault("POLLER_ENABLED", true)
	v.SetDefault("POLLER_INTERVAL", "30s")
	v.SetDefault("POLLER_NONTERMINAL_STATUSES", "pending,training")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: parseDuration(v.GetString("DB_CONN_MAX_LIFETIME"), 30*time.Minute),
		},
		Provider: ProviderConfig{
			BaseURL: v.GetString("PROVIDER_BASE_URL"),
			APIKey:  v.GetString("PROVIDER_API_KEY"),
			Timeout: parseDuration(v.GetString("PROVIDER_TIMEOUT"), 60*time.Second),
		},
		Identity: IdentityConfig{
			BaseURL: v.GetString("IDENTITY_BASE_URL"),
			AnonKey: v.GetString("IDENTITY_ANON_KEY"),
			Timeout: parseDuration(v.GetString("IDENTITY_TIMEOUT"), 10*time.Second),
		},
		Poller: PollerConfig{
			Enabled:             v.GetBool("POLLER_ENABLED"),
			Interval:            parseDuration(v.GetString("POLLER_INTERVAL"), 30*time.Second),
			NonTerminalStatuses: splitList(v.GetString("POLLER_NONTERMINAL_STATUSES")),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
