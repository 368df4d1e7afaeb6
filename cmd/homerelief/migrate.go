package main

import (
	"fmt"

	"homerelief/internal/db"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var stepsFlag = &cli.IntFlag{
	Name:  "steps",
	Usage: "Number of migrations to apply, 0 for all",
}

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Manage the database schema",
	Subcommands: []*cli.Command{
		{
			Name:  "up",
			Usage: "Apply pending migrations",
			Flags: []cli.Flag{stepsFlag},
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}

				if err := db.MigrateUp(cfg.DatabaseURL, c.Int("steps")); err != nil {
					return fmt.Errorf("failed to migrate up: %w", err)
				}

				return logVersion(cfg.DatabaseURL)
			},
		},
		{
			Name:  "down",
			Usage: "Roll back migrations",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "steps",
					Usage: "Number of migrations to roll back, 0 for all",
					Value: 1,
				},
			},
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}

				if err := db.MigrateDown(cfg.DatabaseURL, c.Int("steps")); err != nil {
					return fmt.Errorf("failed to migrate down: %w", err)
				}

				return logVersion(cfg.DatabaseURL)
			},
		},
		{
			Name:  "version",
			Usage: "Print the applied migration version",
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}

				return logVersion(cfg.DatabaseURL)
			},
		},
	},
}

func logVersion(databaseURL string) error {
	version, dirty, err := db.MigrationVersion(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration status")

	return nil
}
