package store

import (
	"fmt"
	"slices"
	"strings"

	"homerelief/internal/collection"
	"homerelief/pkg/types"

	sq "github.com/Masterminds/squirrel"
)

const schemaName = "relief"

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func tableName(kind types.RecordKind) string {
	return fmt.Sprintf("%s.%s", schemaName, kind)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereClause turns a collection query into squirrel predicates. Every column
// must be one of the table's columns.
func whereClause(q collection.Query, columns []string) (sq.And, error) {
	where := sq.And{}

	if q.Search != nil {
		pattern := "%" + likeEscaper.Replace(q.Search.Term) + "%"
		or := sq.Or{}
		for _, col := range q.Search.Columns {
			if !slices.Contains(columns, col) {
				return nil, fmt.Errorf("search %s: %w", col, types.ErrUnknownColumn)
			}
			or = append(or, sq.ILike{col: pattern})
		}
		where = append(where, or)
	}

	for _, p := range q.Where {
		if !slices.Contains(columns, p.Column) {
			return nil, fmt.Errorf("filter %s: %w", p.Column, types.ErrUnknownColumn)
		}

		switch p.Op {
		case collection.OpContains:
			where = append(where, sq.Expr(fmt.Sprintf("? = ANY(%s)", p.Column), p.Value))
		default:
			where = append(where, sq.Eq{p.Column: p.Value})
		}
	}

	return where, nil
}

// pageSQL renders the page query and, when q.Count is set, the matching count
// query. The id column breaks ties so pagination is stable.
func pageSQL(table string, columns []string, q collection.Query) (page sq.SelectBuilder, count *sq.SelectBuilder, err error) {
	where, err := whereClause(q, columns)
	if err != nil {
		return page, nil, err
	}

	order := q.Order
	if !slices.Contains(columns, order.Column) {
		return page, nil, fmt.Errorf("order %s: %w", order.Column, types.ErrUnknownColumn)
	}

	dir := "ASC"
	if order.Desc {
		dir = "DESC"
	}

	page = psql().Select(columns...).From(table).
		OrderBy(fmt.Sprintf("%s %s", order.Column, dir), fmt.Sprintf("id %s", dir))

	if q.Limit > 0 {
		page = page.Limit(uint64(q.Limit)).Offset(uint64(q.Offset))
	}

	if len(where) > 0 {
		page = page.Where(where)
	}

	if q.Count {
		c := psql().Select("count(*)").From(table)
		if len(where) > 0 {
			c = c.Where(where)
		}
		count = &c
	}

	return page, count, nil
}
