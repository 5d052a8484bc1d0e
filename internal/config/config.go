// Package config provides YAML-based configuration loading for manna.
// Secrets are never stored in the file; they come from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level manna configuration, loaded from config.yaml.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Devotion  DevotionConfig  `yaml:"devotion"`
	Channels  ChannelsConfig  `yaml:"channels"`
}

// ServerConfig holds webhook server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig selects the storage backend. Driver "sqlite" uses Path;
// "mysql" uses the connection fields.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Database string `yaml:"database"`
}

// Duration wraps time.Duration so YAML values like "30s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// SchedulerConfig holds delivery loop settings.
type SchedulerConfig struct {
	Interval Duration `yaml:"interval"`
	Timezone string   `yaml:"timezone"`
}

// DevotionConfig holds AI formatting settings. The API key itself comes
// from OPENAI_API_KEY.
type DevotionConfig struct {
	Model    string `yaml:"model"`
	Doctrine string `yaml:"doctrine"`
}

// ChannelsConfig holds non-secret delivery channel settings. Tokens come
// from the environment (TWILIO_AUTH_TOKEN, SLACK_BOT_TOKEN, DISCORD_BOT_TOKEN).
type ChannelsConfig struct {
	TwilioFrom string `yaml:"twilio_from"`
	Slack      bool   `yaml:"slack"`
	Discord    bool   `yaml:"discord"`
}

// Secrets carries credentials read from the environment.
type Secrets struct {
	TwilioAccountSID string
	TwilioAuthToken  string
	OpenAIKey        string
	BibleAPIKey      string
	SlackBotToken    string
	DiscordBotToken  string
	MySQLPassword    string
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// EnvSecrets reads all credentials from the environment.
func EnvSecrets() Secrets {
	return Secrets{
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		BibleAPIKey:      os.Getenv("BIBLE_API_KEY"),
		SlackBotToken:    os.Getenv("SLACK_BOT_TOKEN"),
		DiscordBotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
		MySQLPassword:    os.Getenv("MYSQL_PASSWORD"),
	}
}

// Location resolves the scheduler timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Scheduler.Timezone == "" || c.Scheduler.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Scheduler.Timezone, err)
	}
	return loc, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "manna.db"
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Database == "" {
		c.Database.Database = "manna"
	}
	if c.Scheduler.Interval == 0 {
		c.Scheduler.Interval = Duration(30 * time.Second)
	}
	if c.Devotion.Model == "" {
		c.Devotion.Model = "gpt-4o-mini"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not sqlite or mysql", c.Database.Driver))
	}
	if c.Database.Driver == "mysql" && c.Database.User == "" {
		errs = append(errs, "database.user is required for mysql")
	}
	if c.Scheduler.Interval < 0 {
		errs = append(errs, "scheduler.interval must not be negative")
	}
	if c.Scheduler.Timezone != "" {
		if _, err := c.Location(); err != nil {
			errs = append(errs, fmt.Sprintf("scheduler.timezone %q is not a valid IANA zone", c.Scheduler.Timezone))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
