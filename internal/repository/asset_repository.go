package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
)

// AssetRepository defines persistence access for assets. All reads resolve
// the office and asset type names alongside the row.
type AssetRepository interface {
	List(ctx context.Context) ([]domain.Asset, error)
	GetBySerialNumber(ctx context.Context, serialNumber string) (*domain.Asset, error)
	ListByOfficeName(ctx context.Context, officeName string) ([]domain.Asset, error)
	ListByAssetTypeName(ctx context.Context, assetTypeName string) ([]domain.Asset, error)
	ExistsBySerialNumber(ctx context.Context, serialNumber string) (bool, error)
	Create(ctx context.Context, asset *domain.Asset) error
	Update(ctx context.Context, asset *domain.Asset) error
	UpdateOffice(ctx context.Context, assetID, officeID int64) error
	DeleteBySerialNumber(ctx context.Context, serialNumber string) error
}

type assetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository returns a Postgres-backed implementation.
func NewAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &assetRepository{pool: pool}
}

const assetSelect = `
        SELECT a.id, a.serial_number, a.purchase_date,
               a.asset_type_id, t.name, a.office_id, o.name
        FROM assets a
        JOIN asset_types t ON t.id = a.asset_type_id
        JOIN offices o ON o.id = a.office_id`

func (r *assetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	rows, err := r.pool.Query(ctx, assetSelect+` ORDER BY a.serial_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssets(rows)
}

func (r *assetRepository) GetBySerialNumber(ctx context.Context, serialNumber string) (*domain.Asset, error) {
	var asset domain.Asset
	if err := r.pool.QueryRow(ctx, assetSelect+` WHERE a.serial_number=$1`, serialNumber).Scan(
		&asset.ID,
		&asset.SerialNumber,
		&asset.PurchaseDate,
		&asset.AssetTypeID,
		&asset.AssetTypeName,
		&asset.OfficeID,
		&asset.OfficeName,
	); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) ListByOfficeName(ctx context.Context, officeName string) ([]domain.Asset, error) {
	rows, err := r.pool.Query(ctx, assetSelect+` WHERE o.name=$1 ORDER BY a.serial_number`, officeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssets(rows)
}

func (r *assetRepository) ListByAssetTypeName(ctx context.Context, assetTypeName string) ([]domain.Asset, error) {
	rows, err := r.pool.Query(ctx, assetSelect+` WHERE t.name=$1 ORDER BY a.serial_number`, assetTypeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssets(rows)
}

func (r *assetRepository) ExistsBySerialNumber(ctx context.Context, serialNumber string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM assets WHERE serial_number=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, serialNumber).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	const query = `
        INSERT INTO assets (serial_number, purchase_date, asset_type_id, office_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		asset.SerialNumber,
		asset.PurchaseDate,
		asset.AssetTypeID,
		asset.OfficeID,
	).Scan(&asset.ID)
}

func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	const query = `
        UPDATE assets SET serial_number=$1, purchase_date=$2, asset_type_id=$3, office_id=$4
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		asset.SerialNumber,
		asset.PurchaseDate,
		asset.AssetTypeID,
		asset.OfficeID,
		asset.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assetRepository) UpdateOffice(ctx context.Context, assetID, officeID int64) error {
	const query = `UPDATE assets SET office_id=$1 WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, officeID, assetID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assetRepository) DeleteBySerialNumber(ctx context.Context, serialNumber string) error {
	const query = `DELETE FROM assets WHERE serial_number=$1`

	cmd, err := r.pool.Exec(ctx, query, serialNumber)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAssets(rows pgx.Rows) ([]domain.Asset, error) {
	var assets []domain.Asset
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(
			&asset.ID,
			&asset.SerialNumber,
			&asset.PurchaseDate,
			&asset.AssetTypeID,
			&asset.AssetTypeName,
			&asset.OfficeID,
			&asset.OfficeName,
		); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}
