package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
)

// OfficeRepository defines persistence access for offices.
type OfficeRepository interface {
	List(ctx context.Context) ([]domain.Office, error)
	GetByName(ctx context.Context, name string) (*domain.Office, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, office *domain.Office) error
	UpdateName(ctx context.Context, currentName, newName string) (*domain.Office, error)
	DeleteByName(ctx context.Context, name string) error
}

type officeRepository struct {
	pool *pgxpool.Pool
}

// NewOfficeRepository returns a Postgres-backed implementation.
func NewOfficeRepository(pool *pgxpool.Pool) OfficeRepository {
	return &officeRepository{pool: pool}
}

func (r *officeRepository) List(ctx context.Context) ([]domain.Office, error) {
	const query = `SELECT id, name FROM offices ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offices []domain.Office
	for rows.Next() {
		var office domain.Office
		if err := rows.Scan(&office.ID, &office.Name); err != nil {
			return nil, err
		}
		offices = append(offices, office)
	}
	return offices, rows.Err()
}

func (r *officeRepository) GetByName(ctx context.Context, name string) (*domain.Office, error) {
	const query = `SELECT id, name FROM offices WHERE name=$1`

	var office domain.Office
	if err := r.pool.QueryRow(ctx, query, name).Scan(&office.ID, &office.Name); err != nil {
		return nil, err
	}
	return &office, nil
}

func (r *officeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM offices WHERE name=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *officeRepository) Create(ctx context.Context, office *domain.Office) error {
	const query = `INSERT INTO offices (name) VALUES ($1) RETURNING id`

	return r.pool.QueryRow(ctx, query, office.Name).Scan(&office.ID)
}

func (r *officeRepository) UpdateName(ctx context.Context, currentName, newName string) (*domain.Office, error) {
	const query = `UPDATE offices SET name=$1 WHERE name=$2 RETURNING id, name`

	var office domain.Office
	if err := r.pool.QueryRow(ctx, query, newName, currentName).Scan(&office.ID, &office.Name); err != nil {
		return nil, err
	}
	return &office, nil
}

func (r *officeRepository) DeleteByName(ctx context.Context, name string) error {
	const query = `DELETE FROM offices WHERE name=$1`

	cmd, err := r.pool.Exec(ctx, query, name)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
