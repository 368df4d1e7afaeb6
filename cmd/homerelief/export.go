package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"homerelief/internal/collection"
	"homerelief/internal/db"
	"homerelief/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var exportCommand = &cli.Command{
	Name:  "export",
	Usage: "Export records as CSV using the dashboard filters",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "kind",
			Usage: "reports, donors or volunteers",
			Value: "reports",
		},
		&cli.StringFlag{
			Name:  "search",
			Usage: "Free text search",
		},
		&cli.StringSliceFlag{
			Name:  "filter",
			Usage: "Filter as name=value, repeatable (e.g. --filter district=Colombo)",
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "Sort column",
		},
		&cli.BoolFlag{
			Name:  "asc",
			Usage: "Sort ascending instead of descending",
		},
		&cli.IntFlag{
			Name:  "page-size",
			Usage: "Rows fetched per page",
			Value: 500,
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Output file, stdout when empty",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		state, err := exportState(c)
		if err != nil {
			return err
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, logrus.StandardLogger(), cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		var out io.Writer = os.Stdout
		name := "stdout"
		if path := c.String("out"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			defer f.Close()
			out, name = f, path
		}

		size := c.Int("page-size")

		var n int
		switch c.String("kind") {
		case "reports":
			view := collection.NewView(collection.DamageReportSchema(size), store.NewDamageReportRepository(pool))
			n, err = exportAll(ctx, view, state, collection.DamageReportColumns, out)
		case "donors":
			view := collection.NewView(collection.DonationOfferSchema(size), store.NewDonationOfferRepository(pool))
			n, err = exportAll(ctx, view, state, collection.DonationOfferColumns, out)
		case "volunteers":
			view := collection.NewView(collection.VolunteerOfferSchema(size), store.NewVolunteerOfferRepository(pool))
			n, err = exportAll(ctx, view, state, collection.VolunteerOfferColumns, out)
		default:
			return fmt.Errorf("unknown kind %q", c.String("kind"))
		}
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"kind":  c.String("kind"),
			"count": n,
			"out":   name,
		}).Info("export complete")

		return nil
	},
}

func exportState(c *cli.Context) (collection.State, error) {
	state := collection.State{
		Search:  c.String("search"),
		Filters: map[string]string{},
		Page:    1,
	}

	for _, raw := range c.StringSlice("filter") {
		name, value, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return state, fmt.Errorf("filter %q must be name=value", raw)
		}
		state.Filters[name] = value
	}

	if col := c.String("sort"); col != "" {
		state.Sort = collection.Sort{Column: col, Desc: !c.Bool("asc")}
	}

	return state, nil
}

// exportAll walks every page of the query and writes one CSV.
func exportAll[T collection.Record](ctx context.Context, view *collection.View[T], state collection.State, columns []collection.Column[T], out io.Writer) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if err := view.Apply(ctx, state); err != nil {
		return 0, err
	}

	rows := view.Records()
	for page := 2; page <= view.PageCount(); page++ {
		if err := view.SetPage(ctx, page); err != nil {
			return 0, err
		}
		rows = append(rows, view.Records()...)
	}

	if err := collection.WriteCSV(out, columns, rows); err != nil {
		return 0, fmt.Errorf("failed to write csv: %w", err)
	}

	return len(rows), nil
}
