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
	damageReportTableName = tableName(types.KindDamageReport)
	damageReportColumns   = utils.StructTagValues(types.DamageReport{})
)

type DamageReportRepository struct {
	pool *pgxpool.Pool
}

func NewDamageReportRepository(pool *pgxpool.Pool) *DamageReportRepository {
	return &DamageReportRepository{pool: pool}
}

func (r *DamageReportRepository) Fetch(ctx context.Context, q collection.Query) (*collection.Result[*types.DamageReport], error) {
	records, total, err := fetchPage[types.DamageReport](ctx, r.pool, damageReportTableName, damageReportColumns, q)
	if err != nil {
		return nil, err
	}

	return &collection.Result[*types.DamageReport]{Records: records, Total: total}, nil
}

func (r *DamageReportRepository) DamageReport(ctx context.Context, id string) (*types.DamageReport, error) {
	query, args, err := psql().Select(damageReportColumns...).From(damageReportTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate damage report query: %w", err)
	}

	var report = new(types.DamageReport)
	err = pgxscan.Get(ctx, r.pool, report, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrRecordNotFound
	}

	return report, nil
}

func (r *DamageReportRepository) CreateDamageReport(ctx context.Context, report *types.DamageReport) error {
	now := time.Now().UTC()
	report.ID = utils.NanoID()
	report.Verified = false
	report.CreatedAt = now
	report.UpdatedAt = now
	if report.EssentialNeeds == nil {
		report.EssentialNeeds = []string{}
	}

	query, args, err := psql().Insert(damageReportTableName).SetMap(utils.StructToMap(report)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert damage report query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create damage report")
}

func (r *DamageReportRepository) SetVerified(ctx context.Context, ids []string, verified bool, at time.Time) error {
	return setVerified(ctx, r.pool, damageReportTableName, ids, verified, at)
}
