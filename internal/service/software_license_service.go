package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/cache"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/events"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/normalize"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/repository"
	apperrors "github.com/RominaTrazziSpindox/CIAMS-project/pkg/util"
)

// SoftwareLicenseInput carries the writable license fields.
type SoftwareLicenseInput struct {
	SoftwareName     string
	MaxInstallations *int32
	ExpirationDate   time.Time
}

// SoftwareLicenseService coordinates license CRUD and the installation
// compliance rules.
type SoftwareLicenseService struct {
	licenses   repository.SoftwareLicenseRepository
	assets     repository.AssetRepository
	cache      *cache.Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewSoftwareLicenseService constructs the service.
func NewSoftwareLicenseService(
	licenses repository.SoftwareLicenseRepository,
	assets repository.AssetRepository,
	c *cache.Cache,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *SoftwareLicenseService {
	return &SoftwareLicenseService{
		licenses:   licenses,
		assets:     assets,
		cache:      c,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns all licenses.
func (s *SoftwareLicenseService) List(ctx context.Context) ([]domain.SoftwareLicense, error) {
	const key = cache.PrefixLicenses + ":all"

	var cached []domain.SoftwareLicense
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	licenses, err := s.licenses.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, licenses)
	return licenses, nil
}

// GetByName returns one license by its normalized software name.
func (s *SoftwareLicenseService) GetByName(ctx context.Context, softwareName string) (*domain.SoftwareLicense, error) {
	normalized := normalize.Key(softwareName)

	license, err := s.licenses.GetByName(ctx, normalized)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("software license", map[string]any{"softwareName": normalized})
		}
		return nil, err
	}
	return license, nil
}

// Create persists a new license after normalization and a uniqueness check.
func (s *SoftwareLicenseService) Create(ctx context.Context, input SoftwareLicenseInput) (*domain.SoftwareLicense, error) {
	name := normalize.Key(input.SoftwareName)
	if name == "" {
		return nil, apperrors.NewValidationError("software name is required", nil)
	}
	if input.ExpirationDate.IsZero() {
		return nil, apperrors.NewValidationError("expiration date is required", nil)
	}
	if input.MaxInstallations != nil && *input.MaxInstallations <= 0 {
		return nil, apperrors.NewValidationError("max installations must be positive", nil)
	}

	exists, err := s.licenses.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("software license already exists", map[string]any{"softwareName": name})
	}

	license := &domain.SoftwareLicense{
		SoftwareName:     name,
		MaxInstallations: input.MaxInstallations,
		ExpirationDate:   input.ExpirationDate,
	}
	if err := s.licenses.Create(ctx, license); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixLicenses)
	s.logger.Info("software license created", zap.String("softwareName", license.SoftwareName))
	return license, nil
}

// Update replaces a license's mutable fields, keyed by its current name.
func (s *SoftwareLicenseService) Update(ctx context.Context, currentName string, input SoftwareLicenseInput) (*domain.SoftwareLicense, error) {
	name := normalize.Key(input.SoftwareName)
	if name == "" {
		return nil, apperrors.NewValidationError("software name is required", nil)
	}

	existing, err := s.GetByName(ctx, currentName)
	if err != nil {
		return nil, err
	}

	if existing.SoftwareName != name {
		exists, err := s.licenses.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewConflict("software license already exists", map[string]any{"softwareName": name})
		}
	}

	existing.SoftwareName = name
	existing.MaxInstallations = input.MaxInstallations
	existing.ExpirationDate = input.ExpirationDate
	if err := s.licenses.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixLicenses)
	s.logger.Info("software license updated", zap.String("softwareName", existing.SoftwareName))
	return existing, nil
}

// Delete removes a license by software name.
func (s *SoftwareLicenseService) Delete(ctx context.Context, softwareName string) error {
	normalized := normalize.Key(softwareName)

	if err := s.licenses.DeleteByName(ctx, normalized); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("software license", map[string]any{"softwareName": normalized})
		}
		return err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixLicenses)
	s.logger.Info("software license deleted", zap.String("softwareName", normalized))
	return nil
}

// Install puts a license on an asset after the compliance checks: the
// license must be unexpired, not already on the asset, and under its seat
// limit.
func (s *SoftwareLicenseService) Install(ctx context.Context, actor, softwareName, serialNumber string) (*domain.SoftwareLicense, error) {
	license, asset, err := s.resolvePair(ctx, softwareName, serialNumber)
	if err != nil {
		return nil, err
	}

	if license.Expired(s.now()) {
		return nil, apperrors.NewConflict("software license is expired", map[string]any{"softwareName": license.SoftwareName})
	}

	installed, err := s.licenses.IsInstalled(ctx, license.ID, asset.ID)
	if err != nil {
		return nil, err
	}
	if installed {
		return nil, apperrors.NewConflict("software already installed on this asset", map[string]any{
			"softwareName": license.SoftwareName,
			"serialNumber": asset.SerialNumber,
		})
	}

	if license.MaxInstallations != nil {
		count, err := s.licenses.CountInstallations(ctx, license.ID)
		if err != nil {
			return nil, err
		}
		if count >= int(*license.MaxInstallations) {
			return nil, apperrors.NewConflict("maximum number of installations reached", map[string]any{
				"softwareName": license.SoftwareName,
			})
		}
	}

	if err := s.licenses.Install(ctx, license.ID, asset.ID); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixLicenses)
	s.cache.InvalidatePrefix(ctx, cache.PrefixAssets)
	s.publish(ctx, events.EventLicenseInstalled, actor, license.SoftwareName, asset.SerialNumber)
	s.logger.Info("software license installed",
		zap.String("softwareName", license.SoftwareName),
		zap.String("serialNumber", asset.SerialNumber),
	)
	return license, nil
}

// Uninstall removes a license from an asset.
func (s *SoftwareLicenseService) Uninstall(ctx context.Context, actor, softwareName, serialNumber string) error {
	license, asset, err := s.resolvePair(ctx, softwareName, serialNumber)
	if err != nil {
		return err
	}

	if err := s.licenses.Uninstall(ctx, license.ID, asset.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewConflict("software is not installed on this asset", map[string]any{
				"softwareName": license.SoftwareName,
				"serialNumber": asset.SerialNumber,
			})
		}
		return err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixLicenses)
	s.cache.InvalidatePrefix(ctx, cache.PrefixAssets)
	s.publish(ctx, events.EventLicenseUninstalled, actor, license.SoftwareName, asset.SerialNumber)
	s.logger.Info("software license uninstalled",
		zap.String("softwareName", license.SoftwareName),
		zap.String("serialNumber", asset.SerialNumber),
	)
	return nil
}

// ListForAsset returns the licenses installed on one asset.
func (s *SoftwareLicenseService) ListForAsset(ctx context.Context, serialNumber string) ([]domain.SoftwareLicense, error) {
	serial := normalize.Key(serialNumber)

	asset, err := s.assets.GetBySerialNumber(ctx, serial)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("asset", map[string]any{"serialNumber": serial})
		}
		return nil, err
	}
	return s.licenses.ListByAssetID(ctx, asset.ID)
}

// ExpiringSoon reports licenses lapsing within the given number of days.
func (s *SoftwareLicenseService) ExpiringSoon(ctx context.Context, withinDays int) ([]domain.SoftwareLicense, error) {
	if withinDays <= 0 {
		withinDays = 30
	}
	cutoff := s.now().AddDate(0, 0, withinDays)
	return s.licenses.ListExpiringBefore(ctx, cutoff)
}

func (s *SoftwareLicenseService) resolvePair(ctx context.Context, softwareName, serialNumber string) (*domain.SoftwareLicense, *domain.Asset, error) {
	license, err := s.GetByName(ctx, softwareName)
	if err != nil {
		return nil, nil, err
	}

	serial := normalize.Key(serialNumber)
	asset, err := s.assets.GetBySerialNumber(ctx, serial)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("asset", map[string]any{"serialNumber": serial})
		}
		return nil, nil, err
	}
	return license, asset, nil
}

func (s *SoftwareLicenseService) publish(ctx context.Context, eventType events.EventType, actor, softwareName, serialNumber string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:     eventType,
		Resource: softwareName,
		Actor:    actor,
		Payload: events.LicenseInstallPayload{
			SoftwareName: softwareName,
			SerialNumber: serialNumber,
		},
	})
}
