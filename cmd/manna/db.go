package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rjcarver/manna/internal/config"
	"github.com/rjcarver/manna/internal/db"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the manna database",
		Long:  "Creates or migrates all tables in the configured database backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.Database.Driver == "mysql" {
		sec := config.EnvSecrets()
		if err := db.PingMySQL(cmd.Context(), cfg.Database.User, sec.MySQLPassword,
			cfg.Database.Host, cfg.Database.Port, cfg.Database.Database); err != nil {
			return err
		}
	}

	conn, err := openDB(cfg)
	if err != nil {
		return err
	}
	if cfg.Database.Driver == "mysql" {
		fmt.Fprintf(out, "Connected to MySQL at %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	} else {
		fmt.Fprintf(out, "Opened SQLite database %s\n", cfg.Database.Path)
	}

	if err := db.AutoMigrate(conn); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	fmt.Fprintln(out, "\nManna database initialized successfully.")
	return nil
}
