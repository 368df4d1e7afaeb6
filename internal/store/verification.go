package store

import (
	"context"
	"fmt"
	"time"

	"homerelief/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

func verifySQL(table string, ids []string, verified bool, at time.Time) (string, []any, error) {
	return psql().Update(table).
		Set("verified", verified).
		Set("updated_at", at).
		Where(sq.Eq{"id": ids}).
		ToSql()
}

// setVerified updates one or many rows in a single statement. Concurrent
// writers are not detected; the last update wins.
func setVerified(ctx context.Context, pool *pgxpool.Pool, table string, ids []string, verified bool, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := verifySQL(table, ids, verified, at)
	if err != nil {
		return fmt.Errorf("failed to generate verify query for %s: %w", table, err)
	}

	tag, err := pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update verification on %s: %w", table, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrRecordNotFound
	}

	return nil
}
