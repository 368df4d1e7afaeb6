package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homerelief/internal/db"
	"homerelief/internal/divisions"
	"homerelief/internal/i18n"
	"homerelief/internal/logging"
	"homerelief/internal/mailer"
	"homerelief/internal/realtime"
	"homerelief/internal/server"
	"homerelief/internal/storage"
	"homerelief/internal/store"
	"homerelief/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Start the HTTP server",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "migrate",
			Usage: "Apply pending migrations before serving",
		},
	},
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	logger, flush, err := logging.New(config)
	if err != nil {
		return err
	}
	defer flush()

	if cCtx.Bool("migrate") {
		if err := db.MigrateUp(config.DatabaseURL, 0); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	cognitoClient := cognitoidentityprovider.NewFromConfig(awsConfig)

	pool, err := db.Connect(ctx, logger, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	repos := server.Repositories{
		DamageReports:   store.NewDamageReportRepository(pool),
		DonationOffers:  store.NewDonationOfferRepository(pool),
		VolunteerOffers: store.NewVolunteerOfferRepository(pool),
		Roles:           store.NewRoleRepository(pool),
		Stats:           store.NewStatsRepository(pool),
	}

	hub := realtime.NewHub(pool, logger, time.Duration(config.RealtimeRetrySec)*time.Second)
	go func() {
		if err := hub.Run(ctx); err != nil {
			logger.WithError(err).Error("realtime hub stopped")
		}
	}()

	uploader, err := newUploader(config, awsConfig)
	if err != nil {
		return err
	}

	bundle, err := i18n.New()
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}

	catalog, err := divisions.Default()
	if err != nil {
		return fmt.Errorf("failed to load administrative divisions: %w", err)
	}

	jwkCache, err := jwk.NewCache(context.Background(), httprc.NewClient())
	if err != nil {
		return fmt.Errorf("failed to initilaize jwk cache: %w", err)
	}

	jwksURL := fmt.Sprintf("%s/.well-known/jwks.json", config.CognitoIssuerURL)

	err = jwkCache.Register(context.Background(), jwksURL)
	if err != nil {
		return fmt.Errorf("failed to register cognito jwk with cache: %w", err)
	}

	srv, err := server.New(
		config,
		logger,
		cognitoClient,
		repos,
		hub,
		uploader,
		mailer.New(config, logger),
		bundle,
		catalog,
		jwkCache,
		jwksURL,
	)
	if err != nil {
		return err
	}

	go srv.SweepViews(ctx, time.Minute)

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

func newUploader(config *types.Config, awsConfig aws.Config) (storage.Uploader, error) {
	switch config.StorageBackend {
	case "s3":
		if config.S3Bucket == "" {
			return nil, errors.New("S3_BUCKET is required for the s3 storage backend")
		}
		return storage.NewS3Storage(s3.NewFromConfig(awsConfig), config.S3Bucket, config.S3PublicBaseURL), nil
	case "supabase":
		if config.SupabaseProjectID == "" || config.SupabaseAPIKey == "" {
			return nil, errors.New("SUPABASE_PROJECT_ID and SUPABASE_API_KEY are required for the supabase storage backend")
		}
		return storage.NewSupabaseStorage(config.SupabaseProjectID, config.SupabaseAPIKey, config.SupabaseBucket), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.StorageBackend)
	}
}
