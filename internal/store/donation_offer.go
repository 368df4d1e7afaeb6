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
	donationOfferTableName = tableName(types.KindDonationOffer)
	donationOfferColumns   = utils.StructTagValues(types.DonationOffer{})
)

type DonationOfferRepository struct {
	pool *pgxpool.Pool
}

func NewDonationOfferRepository(pool *pgxpool.Pool) *DonationOfferRepository {
	return &DonationOfferRepository{pool: pool}
}

func (r *DonationOfferRepository) Fetch(ctx context.Context, q collection.Query) (*collection.Result[*types.DonationOffer], error) {
	records, total, err := fetchPage[types.DonationOffer](ctx, r.pool, donationOfferTableName, donationOfferColumns, q)
	if err != nil {
		return nil, err
	}

	return &collection.Result[*types.DonationOffer]{Records: records, Total: total}, nil
}

func (r *DonationOfferRepository) DonationOffer(ctx context.Context, id string) (*types.DonationOffer, error) {
	query, args, err := psql().Select(donationOfferColumns...).From(donationOfferTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donation offer query: %w", err)
	}

	var offer = new(types.DonationOffer)
	err = pgxscan.Get(ctx, r.pool, offer, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrRecordNotFound
	}

	return offer, nil
}

func (r *DonationOfferRepository) CreateDonationOffer(ctx context.Context, offer *types.DonationOffer) error {
	now := time.Now().UTC()
	offer.ID = utils.NanoID()
	offer.Verified = false
	offer.CreatedAt = now
	offer.UpdatedAt = now

	query, args, err := psql().Insert(donationOfferTableName).SetMap(utils.StructToMap(offer)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donation offer query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create donation offer")
}

func (r *DonationOfferRepository) SetVerified(ctx context.Context, ids []string, verified bool, at time.Time) error {
	return setVerified(ctx, r.pool, donationOfferTableName, ids, verified, at)
}
