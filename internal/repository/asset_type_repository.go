package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
)

// AssetTypeRepository defines persistence access for asset types.
type AssetTypeRepository interface {
	List(ctx context.Context) ([]domain.AssetType, error)
	GetByID(ctx context.Context, id int64) (*domain.AssetType, error)
	GetByName(ctx context.Context, name string) (*domain.AssetType, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, assetType *domain.AssetType) error
	Update(ctx context.Context, assetType *domain.AssetType) error
	Delete(ctx context.Context, id int64) error
}

type assetTypeRepository struct {
	pool *pgxpool.Pool
}

// NewAssetTypeRepository returns a Postgres-backed implementation.
func NewAssetTypeRepository(pool *pgxpool.Pool) AssetTypeRepository {
	return &assetTypeRepository{pool: pool}
}

func (r *assetTypeRepository) List(ctx context.Context) ([]domain.AssetType, error) {
	const query = `SELECT id, name, description FROM asset_types ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []domain.AssetType
	for rows.Next() {
		var assetType domain.AssetType
		if err := rows.Scan(&assetType.ID, &assetType.Name, &assetType.Description); err != nil {
			return nil, err
		}
		types = append(types, assetType)
	}
	return types, rows.Err()
}

func (r *assetTypeRepository) GetByID(ctx context.Context, id int64) (*domain.AssetType, error) {
	const query = `SELECT id, name, description FROM asset_types WHERE id=$1`

	var assetType domain.AssetType
	if err := r.pool.QueryRow(ctx, query, id).Scan(&assetType.ID, &assetType.Name, &assetType.Description); err != nil {
		return nil, err
	}
	return &assetType, nil
}

func (r *assetTypeRepository) GetByName(ctx context.Context, name string) (*domain.AssetType, error) {
	const query = `SELECT id, name, description FROM asset_types WHERE name=$1`

	var assetType domain.AssetType
	if err := r.pool.QueryRow(ctx, query, name).Scan(&assetType.ID, &assetType.Name, &assetType.Description); err != nil {
		return nil, err
	}
	return &assetType, nil
}

func (r *assetTypeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM asset_types WHERE name=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *assetTypeRepository) Create(ctx context.Context, assetType *domain.AssetType) error {
	const query = `INSERT INTO asset_types (name, description) VALUES ($1, $2) RETURNING id`

	return r.pool.QueryRow(ctx, query, assetType.Name, assetType.Description).Scan(&assetType.ID)
}

func (r *assetTypeRepository) Update(ctx context.Context, assetType *domain.AssetType) error {
	const query = `UPDATE asset_types SET name=$1, description=$2 WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, assetType.Name, assetType.Description, assetType.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assetTypeRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM asset_types WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
