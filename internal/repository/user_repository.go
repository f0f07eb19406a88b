package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/auth"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	DeleteByUsername(ctx context.Context, username string) (int64, error)
	ListUsernamesByRole(ctx context.Context, role auth.Role, limit, offset int) ([]string, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, password_hash, roles)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		auth.RoleNames(user.Roles),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT id, username, password_hash, roles, created_at, updated_at
        FROM users WHERE username=$1`

	var user domain.User
	var roleNames []string
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&roleNames,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	roles, err := parseRoles(roleNames)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return &user, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM users WHERE username=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	const query = `DELETE FROM users WHERE username=$1`

	cmd, err := r.pool.Exec(ctx, query, username)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *userRepository) ListUsernamesByRole(ctx context.Context, role auth.Role, limit, offset int) ([]string, error) {
	const query = `
        SELECT username FROM users
        WHERE $1 = ANY(roles)
        ORDER BY username
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, role.String(), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		usernames = append(usernames, username)
	}
	return usernames, rows.Err()
}

func parseRoles(names []string) ([]auth.Role, error) {
	roles := make([]auth.Role, 0, len(names))
	for _, name := range names {
		role, err := auth.ParseRole(name)
		if err != nil {
			return nil, fmt.Errorf("stored role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, nil
}
