package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mcdev12/courtside/go/clients"
	"gopkg.in/yaml.v3"
)

// SourceConfig holds connection settings for one external API
type SourceConfig struct {
	BaseURL  string        `yaml:"base_url"`
	APIToken string        `yaml:"api_token"`
	Timeout  time.Duration `yaml:"timeout"`
}

// NotificationConfig controls where user-visible notifications go
type NotificationConfig struct {
	// Timeout is how long a toast stays on screen
	Timeout       time.Duration `yaml:"timeout"`
	NATSURL       string        `yaml:"nats_url"`
	SubjectPrefix string        `yaml:"subject_prefix"`
}

// Config is the host process configuration
type Config struct {
	Port          int                                    `yaml:"port"`
	LogLevel      string                                 `yaml:"log_level"`
	Sources       map[clients.ExternalSource]SourceConfig `yaml:"sources"`
	Notifications NotificationConfig                     `yaml:"notifications"`
}

const (
	DefaultPort                = 8080
	DefaultTimeout             = 30 * time.Second
	DefaultNotificationTimeout = 2500 * time.Millisecond
	DefaultSubjectPrefix       = "courtside.notifications"
)

// Load reads the YAML file at path (a missing file is not an error), fills
// defaults, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Source returns the settings for source, with defaults filled in
func (c *Config) Source(source clients.ExternalSource) SourceConfig {
	return c.Sources[source]
}

// Validate rejects unknown sources and out of range ports
func (c *Config) Validate() error {
	for source := range c.Sources {
		if !clients.ValidateExternalSource(source) {
			return fmt.Errorf("unknown source %q", source)
		}
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Sources == nil {
		c.Sources = make(map[clients.ExternalSource]SourceConfig)
	}
	for source := range clients.GetActiveExternalSources() {
		sc := c.Sources[source]
		if sc.BaseURL == "" {
			sc.BaseURL = clients.DefaultBaseURL(source)
		}
		if sc.Timeout == 0 {
			sc.Timeout = DefaultTimeout
		}
		c.Sources[source] = sc
	}
	if c.Notifications.Timeout == 0 {
		c.Notifications.Timeout = DefaultNotificationTimeout
	}
	if c.Notifications.SubjectPrefix == "" {
		c.Notifications.SubjectPrefix = DefaultSubjectPrefix
	}
}

func (c *Config) applyEnv() {
	c.Port = getEnvAsInt("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	custom := c.Sources[clients.ExternalSourceCustom]
	custom.BaseURL = getEnv("CUSTOM_API_URL", custom.BaseURL)
	custom.APIToken = getEnv("CUSTOM_API_TOKEN", custom.APIToken)
	c.Sources[clients.ExternalSourceCustom] = custom

	espn := c.Sources[clients.ExternalSourceESPN]
	espn.BaseURL = getEnv("ESPN_API_URL", espn.BaseURL)
	c.Sources[clients.ExternalSourceESPN] = espn

	c.Notifications.NATSURL = getEnv("NATS_URL", c.Notifications.NATSURL)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}
