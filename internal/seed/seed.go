package seed

import (
	"context"
	"fmt"
	"time"

	"homerelief/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type Repositories struct {
	DamageReports   *store.DamageReportRepository
	DonationOffers  *store.DonationOfferRepository
	VolunteerOffers *store.VolunteerOfferRepository
}

var resetStatements = []string{
	`DELETE FROM relief.damage_reports WHERE phone_number LIKE '` + PhonePrefix + `%'`,
	`DELETE FROM relief.donation_offers WHERE phone LIKE '` + PhonePrefix + `%'`,
	`DELETE FROM relief.volunteer_offers WHERE phone_number LIKE '` + PhonePrefix + `%'`,
}

// Apply inserts the dataset. With reset, rows from earlier seeds are deleted
// first. Records flagged verified are verified after insert since creation
// always starts unverified.
func Apply(ctx context.Context, pool *pgxpool.Pool, repos Repositories, data Dataset, reset bool, logger *logrus.Logger) error {
	if reset {
		for _, stmt := range resetStatements {
			result, err := pool.Exec(ctx, stmt)
			if err != nil {
				return fmt.Errorf("failed to reset seeded records: %w", err)
			}
			logger.WithField("rows", result.RowsAffected()).Info("removed seeded records")
		}
	}

	now := time.Now().UTC()

	var verifiedReports []string
	for _, report := range data.DamageReports {
		verified := report.Verified
		if err := repos.DamageReports.CreateDamageReport(ctx, report); err != nil {
			return fmt.Errorf("failed to seed damage report: %w", err)
		}
		if verified {
			verifiedReports = append(verifiedReports, report.ID)
		}
	}
	if len(verifiedReports) > 0 {
		if err := repos.DamageReports.SetVerified(ctx, verifiedReports, true, now); err != nil {
			return fmt.Errorf("failed to verify seeded damage reports: %w", err)
		}
	}

	var verifiedOffers []string
	for _, offer := range data.DonationOffers {
		verified := offer.Verified
		if err := repos.DonationOffers.CreateDonationOffer(ctx, offer); err != nil {
			return fmt.Errorf("failed to seed donation offer: %w", err)
		}
		if verified {
			verifiedOffers = append(verifiedOffers, offer.ID)
		}
	}
	if len(verifiedOffers) > 0 {
		if err := repos.DonationOffers.SetVerified(ctx, verifiedOffers, true, now); err != nil {
			return fmt.Errorf("failed to verify seeded donation offers: %w", err)
		}
	}

	for _, offer := range data.VolunteerOffers {
		if err := repos.VolunteerOffers.CreateVolunteerOffer(ctx, offer); err != nil {
			return fmt.Errorf("failed to seed volunteer offer: %w", err)
		}
	}

	logger.WithFields(logrus.Fields{
		"damage_reports":   len(data.DamageReports),
		"donation_offers":  len(data.DonationOffers),
		"volunteer_offers": len(data.VolunteerOffers),
	}).Info("seeded records")

	return nil
}
