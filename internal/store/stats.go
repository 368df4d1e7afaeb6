package store

import (
	"context"
	"fmt"

	"homerelief/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// Counts returns exact row counts of every record kind.
func (r *StatsRepository) Counts(ctx context.Context) (types.RecordCounts, error) {
	var counts types.RecordCounts

	targets := map[types.RecordKind]*int{
		types.KindDamageReport:   &counts.DamageReports,
		types.KindDonationOffer:  &counts.DonationOffers,
		types.KindVolunteerOffer: &counts.VolunteerOffers,
	}

	for kind, dst := range targets {
		query, args, err := psql().Select("count(*)").From(tableName(kind)).ToSql()
		if err != nil {
			return counts, fmt.Errorf("failed to generate count query for %s: %w", kind, err)
		}

		if err := pgxscan.Get(ctx, r.pool, dst, query, args...); err != nil {
			return counts, fmt.Errorf("failed to count %s: %w", kind, err)
		}
	}

	return counts, nil
}
