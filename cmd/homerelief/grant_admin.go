package main

import (
	"context"
	"errors"
	"fmt"

	"homerelief/internal/db"
	"homerelief/internal/store"
	"homerelief/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var grantAdminCommand = &cli.Command{
	Name:  "grant-admin",
	Usage: "Give a Cognito user access to the admin dashboard",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "user",
			Aliases:  []string{"u"},
			Usage:    "Cognito user id (the token subject)",
			Required: true,
		},
	},
	Action: func(c *cli.Context) error {
		userID := c.String("user")
		if userID == "" {
			return errors.New("user id is required")
		}

		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, logrus.StandardLogger(), cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		if err := store.NewRoleRepository(pool).Grant(ctx, userID, types.RoleAdmin); err != nil {
			return fmt.Errorf("failed to grant admin role: %w", err)
		}

		logrus.WithField("user_id", userID).Info("admin role granted")
		return nil
	},
}
