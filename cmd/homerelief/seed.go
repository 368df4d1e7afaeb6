package main

import (
	"context"
	"fmt"

	"homerelief/internal/db"
	"homerelief/internal/divisions"
	"homerelief/internal/logging"
	"homerelief/internal/seed"
	"homerelief/internal/store"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with sample relief records",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "Records to create per kind",
			Value:   25,
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "Random seed, the same seed yields the same records",
			Value: 1,
		},
		&cli.BoolFlag{
			Name:  "reset",
			Usage: "Delete previously seeded records first",
		},
		&cli.BoolFlag{
			Name:  "print",
			Usage: "Print the generated records instead of inserting them",
		},
	},
	Action: func(c *cli.Context) error {
		catalog, err := divisions.Default()
		if err != nil {
			return fmt.Errorf("failed to load administrative divisions: %w", err)
		}

		data := seed.Generate(catalog, c.Int("count"), c.Uint64("seed"))

		if c.Bool("print") {
			pp.Println(data)
			return nil
		}

		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, flush, err := logging.New(cfg)
		if err != nil {
			return err
		}
		defer flush()

		ctx := context.Background()

		pool, err := db.Connect(ctx, logger, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logger.Info("Connected to database")

		repos := seed.Repositories{
			DamageReports:   store.NewDamageReportRepository(pool),
			DonationOffers:  store.NewDonationOfferRepository(pool),
			VolunteerOffers: store.NewVolunteerOfferRepository(pool),
		}

		if err := seed.Apply(ctx, pool, repos, data, c.Bool("reset"), logger); err != nil {
			return fmt.Errorf("failed to seed records: %w", err)
		}

		logger.WithField("count", c.Int("count")).Info("Records seeded successfully")

		return nil
	},
}
