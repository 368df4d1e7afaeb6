package store

import (
	"context"
	"fmt"

	"homerelief/internal/collection"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

// fetchPage runs a collection query against table and scans one page of T.
func fetchPage[T any](ctx context.Context, pool *pgxpool.Pool, table string, columns []string, q collection.Query) ([]*T, *int, error) {
	pageQ, countQ, err := pageSQL(table, columns, q)
	if err != nil {
		return nil, nil, err
	}

	query, args, err := pageQ.ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate %s page query: %w", table, err)
	}

	var records = make([]*T, 0, q.Limit)
	if err := pgxscan.Select(ctx, pool, &records, query, args...); err != nil {
		return nil, nil, fmt.Errorf("failed to select %s page: %w", table, err)
	}

	if countQ == nil {
		return records, nil, nil
	}

	query, args, err = countQ.ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate %s count query: %w", table, err)
	}

	var total int
	if err := pgxscan.Get(ctx, pool, &total, query, args...); err != nil {
		return nil, nil, fmt.Errorf("failed to count %s: %w", table, err)
	}

	return records, &total, nil
}
