package store

import (
	"context"
	"fmt"
	"time"

	"homerelief/internal/utils"
	"homerelief/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userRoleTableName = schemaName + ".user_roles"

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func hasRoleSQL(userID string, role types.Role) (string, []any, error) {
	return psql().Select("count(*) > 0").From(userRoleTableName).
		Where(sq.Eq{"user_id": userID, "role": role}).
		ToSql()
}

func (r *RoleRepository) HasRole(ctx context.Context, userID string, role types.Role) (bool, error) {
	query, args, err := hasRoleSQL(userID, role)
	if err != nil {
		return false, fmt.Errorf("failed to generate role query: %w", err)
	}

	var exists bool
	if err := pgxscan.Get(ctx, r.pool, &exists, query, args...); err != nil {
		return false, fmt.Errorf("failed to look up role for user %s: %w", userID, err)
	}

	return exists, nil
}

func (r *RoleRepository) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return r.HasRole(ctx, userID, types.RoleAdmin)
}

func (r *RoleRepository) Grant(ctx context.Context, userID string, role types.Role) error {
	grant := &types.UserRole{UserID: userID, Role: role, CreatedAt: time.Now().UTC()}

	query, args, err := psql().Insert(userRoleTableName).
		SetMap(utils.StructToMap(grant)).
		Suffix("ON CONFLICT (user_id, role) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate grant role query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to grant role")
}
