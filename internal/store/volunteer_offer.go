package store

import (
	"context"
	"fmt"
	"time"

	"homerelief/internal/collection"
	"homerelief/internal/utils"
	"homerelief/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	volunteerOfferTableName = tableName(types.KindVolunteerOffer)
	volunteerOfferColumns   = utils.StructTagValues(types.VolunteerOffer{})
)

// VolunteerOfferRepository has no verification writer; volunteer offers are
// read-only for admins.
type VolunteerOfferRepository struct {
	pool *pgxpool.Pool
}

func NewVolunteerOfferRepository(pool *pgxpool.Pool) *VolunteerOfferRepository {
	return &VolunteerOfferRepository{pool: pool}
}

func (r *VolunteerOfferRepository) Fetch(ctx context.Context, q collection.Query) (*collection.Result[*types.VolunteerOffer], error) {
	records, total, err := fetchPage[types.VolunteerOffer](ctx, r.pool, volunteerOfferTableName, volunteerOfferColumns, q)
	if err != nil {
		return nil, err
	}

	return &collection.Result[*types.VolunteerOffer]{Records: records, Total: total}, nil
}

func (r *VolunteerOfferRepository) VolunteerOffer(ctx context.Context, id string) (*types.VolunteerOffer, error) {
	query, args, err := psql().Select(volunteerOfferColumns...).From(volunteerOfferTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate volunteer offer query: %w", err)
	}

	var offer = new(types.VolunteerOffer)
	err = pgxscan.Get(ctx, r.pool, offer, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrRecordNotFound
	}

	return offer, nil
}

func (r *VolunteerOfferRepository) CreateVolunteerOffer(ctx context.Context, offer *types.VolunteerOffer) error {
	offer.ID = utils.NanoID()
	offer.CreatedAt = time.Now().UTC()

	query, args, err := psql().Insert(volunteerOfferTableName).SetMap(utils.StructToMap(offer)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert volunteer offer query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create volunteer offer")
}
