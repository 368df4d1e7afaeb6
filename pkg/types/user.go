package types

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
)

type UserRole struct {
	UserID    string    `db:"user_id"`
	Role      Role      `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}
