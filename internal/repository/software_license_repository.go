package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
)

// SoftwareLicenseRepository defines persistence access for licenses and the
// license-to-asset installation table.
type SoftwareLicenseRepository interface {
	List(ctx context.Context) ([]domain.SoftwareLicense, error)
	GetByName(ctx context.Context, softwareName string) (*domain.SoftwareLicense, error)
	ExistsByName(ctx context.Context, softwareName string) (bool, error)
	Create(ctx context.Context, license *domain.SoftwareLicense) error
	Update(ctx context.Context, license *domain.SoftwareLicense) error
	DeleteByName(ctx context.Context, softwareName string) error

	CountInstallations(ctx context.Context, licenseID int64) (int, error)
	IsInstalled(ctx context.Context, licenseID, assetID int64) (bool, error)
	Install(ctx context.Context, licenseID, assetID int64) error
	Uninstall(ctx context.Context, licenseID, assetID int64) error
	ListByAssetID(ctx context.Context, assetID int64) ([]domain.SoftwareLicense, error)
	ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]domain.SoftwareLicense, error)
}

type softwareLicenseRepository struct {
	pool *pgxpool.Pool
}

// NewSoftwareLicenseRepository returns a Postgres-backed implementation.
func NewSoftwareLicenseRepository(pool *pgxpool.Pool) SoftwareLicenseRepository {
	return &softwareLicenseRepository{pool: pool}
}

const licenseSelect = `SELECT id, software_name, max_installations, expiration_date FROM software_licenses`

func (r *softwareLicenseRepository) List(ctx context.Context) ([]domain.SoftwareLicense, error) {
	rows, err := r.pool.Query(ctx, licenseSelect+` ORDER BY software_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLicenses(rows)
}

func (r *softwareLicenseRepository) GetByName(ctx context.Context, softwareName string) (*domain.SoftwareLicense, error) {
	var license domain.SoftwareLicense
	if err := r.pool.QueryRow(ctx, licenseSelect+` WHERE software_name=$1`, softwareName).Scan(
		&license.ID,
		&license.SoftwareName,
		&license.MaxInstallations,
		&license.ExpirationDate,
	); err != nil {
		return nil, err
	}
	return &license, nil
}

func (r *softwareLicenseRepository) ExistsByName(ctx context.Context, softwareName string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM software_licenses WHERE software_name=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, softwareName).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *softwareLicenseRepository) Create(ctx context.Context, license *domain.SoftwareLicense) error {
	const query = `
        INSERT INTO software_licenses (software_name, max_installations, expiration_date)
        VALUES ($1, $2, $3)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		license.SoftwareName,
		license.MaxInstallations,
		license.ExpirationDate,
	).Scan(&license.ID)
}

func (r *softwareLicenseRepository) Update(ctx context.Context, license *domain.SoftwareLicense) error {
	const query = `
        UPDATE software_licenses SET software_name=$1, max_installations=$2, expiration_date=$3
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		license.SoftwareName,
		license.MaxInstallations,
		license.ExpirationDate,
		license.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *softwareLicenseRepository) DeleteByName(ctx context.Context, softwareName string) error {
	const query = `DELETE FROM software_licenses WHERE software_name=$1`

	cmd, err := r.pool.Exec(ctx, query, softwareName)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *softwareLicenseRepository) CountInstallations(ctx context.Context, licenseID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM assets_licenses WHERE license_id=$1`

	var count int
	if err := r.pool.QueryRow(ctx, query, licenseID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *softwareLicenseRepository) IsInstalled(ctx context.Context, licenseID, assetID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM assets_licenses WHERE license_id=$1 AND asset_id=$2)`

	var installed bool
	if err := r.pool.QueryRow(ctx, query, licenseID, assetID).Scan(&installed); err != nil {
		return false, err
	}
	return installed, nil
}

func (r *softwareLicenseRepository) Install(ctx context.Context, licenseID, assetID int64) error {
	const query = `INSERT INTO assets_licenses (license_id, asset_id) VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, licenseID, assetID)
	return err
}

func (r *softwareLicenseRepository) Uninstall(ctx context.Context, licenseID, assetID int64) error {
	const query = `DELETE FROM assets_licenses WHERE license_id=$1 AND asset_id=$2`

	cmd, err := r.pool.Exec(ctx, query, licenseID, assetID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *softwareLicenseRepository) ListByAssetID(ctx context.Context, assetID int64) ([]domain.SoftwareLicense, error) {
	const query = `
        SELECT l.id, l.software_name, l.max_installations, l.expiration_date
        FROM software_licenses l
        JOIN assets_licenses al ON al.license_id = l.id
        WHERE al.asset_id=$1
        ORDER BY l.software_name`

	rows, err := r.pool.Query(ctx, query, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLicenses(rows)
}

func (r *softwareLicenseRepository) ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]domain.SoftwareLicense, error) {
	rows, err := r.pool.Query(ctx, licenseSelect+` WHERE expiration_date < $1 ORDER BY expiration_date`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLicenses(rows)
}

func scanLicenses(rows pgx.Rows) ([]domain.SoftwareLicense, error) {
	var licenses []domain.SoftwareLicense
	for rows.Next() {
		var license domain.SoftwareLicense
		if err := rows.Scan(
			&license.ID,
			&license.SoftwareName,
			&license.MaxInstallations,
			&license.ExpirationDate,
		); err != nil {
			return nil, err
		}
		licenses = append(licenses, license)
	}
	return licenses, rows.Err()
}
