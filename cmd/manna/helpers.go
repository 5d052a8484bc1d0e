package main

import (
	"errors"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/rjcarver/manna/internal/config"
	"github.com/rjcarver/manna/internal/db"
	"github.com/rjcarver/manna/internal/delivery"
	"github.com/rjcarver/manna/internal/delivery/discord"
	"github.com/rjcarver/manna/internal/delivery/slack"
	"github.com/rjcarver/manna/internal/delivery/twilio"
	"github.com/rjcarver/manna/internal/devotion"
	"github.com/rjcarver/manna/internal/scripture"
	"github.com/rjcarver/manna/internal/store"
)

const defaultConfigPath = "manna.yaml"

// loadConfig reads the config file. A missing file at the default path
// falls back to built-in defaults so the CLI works out of the box.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == defaultConfigPath {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// openDB connects to the configured database backend.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.Database.Driver == "mysql" {
		sec := config.EnvSecrets()
		return db.OpenMySQL(cfg.Database.User, sec.MySQLPassword,
			cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	}
	return db.Open(cfg.Database.Path)
}

// openStore loads config, connects and migrates, and returns a ready Store.
func openStore(configPath string) (*config.Config, *store.Store, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	conn, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(conn); err != nil {
		return nil, nil, err
	}
	st, err := store.New(conn)
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}

// buildDevotion wires the AI formatting service from config and secrets.
func buildDevotion(cfg *config.Config) *devotion.Service {
	sec := config.EnvSecrets()
	client := devotion.NewClient(sec.OpenAIKey)
	client.SetModel(cfg.Devotion.Model)
	return devotion.NewService(client, cfg.Devotion.Doctrine)
}

// buildScripture wires the passage lookup service from secrets.
func buildScripture() *scripture.Service {
	return scripture.NewService(config.EnvSecrets().BibleAPIKey)
}

// buildSender wires the delivery router: SMS via Twilio as the default
// channel, plus Slack and Discord when enabled.
func buildSender(cfg *config.Config) (delivery.Sender, error) {
	sec := config.EnvSecrets()

	sms, err := twilio.New(twilio.Opts{
		AccountSID: sec.TwilioAccountSID,
		AuthToken:  sec.TwilioAuthToken,
		From:       cfg.Channels.TwilioFrom,
	})
	if err != nil {
		return nil, fmt.Errorf("configure twilio: %w", err)
	}

	router := delivery.NewRouter(sms)

	if cfg.Channels.Slack {
		s, err := slack.New(slack.Opts{BotToken: sec.SlackBotToken})
		if err != nil {
			return nil, fmt.Errorf("configure slack: %w", err)
		}
		router.Register("slack", s)
	}
	if cfg.Channels.Discord {
		d, err := discord.New(discord.Opts{BotToken: sec.DiscordBotToken})
		if err != nil {
			return nil, fmt.Errorf("configure discord: %w", err)
		}
		router.Register("discord", d)
	}
	return router, nil
}
