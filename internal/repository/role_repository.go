package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type roleRepository struct {
	db *sqlx.DB
}

func NewRoleRepository(db *sqlx.DB) RoleRepository {
	return &roleRepository{db: db}
}

// HasRole reports whether a (user, role) row exists. An empty result is a
// plain false, only driver failures are errors.
func (r *roleRepository) HasRole(ctx context.Context, userID, role string) (bool, error) {
	var found string

	query := `SELECT role FROM user_roles WHERE user_id = $1 AND role = $2 LIMIT 1`

	err := r.db.GetContext(ctx, &found, query, userID, role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking role: %w", err)
	}

	return true, nil
}

func (r *roleRepository) Grant(ctx context.Context, userID, role string) error {
	query := `
		INSERT INTO user_roles (id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, role) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), userID, role, time.Now())
	if err != nil {
		return fmt.Errorf("error granting role: %w", err)
	}

	return nil
}
