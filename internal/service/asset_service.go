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

// AssetInput carries the writable asset fields. Office and asset type are
// referenced by their normalized names.
type AssetInput struct {
	SerialNumber  string
	PurchaseDate  *time.Time
	AssetTypeName string
	OfficeName    string
}

// AssetDetails bundles an asset with the licenses installed on it.
type AssetDetails struct {
	Asset    domain.Asset
	Licenses []domain.SoftwareLicense
}

// AssetService coordinates asset CRUD and movements between offices.
type AssetService struct {
	assets     repository.AssetRepository
	assetTypes repository.AssetTypeRepository
	offices    repository.OfficeRepository
	licenses   repository.SoftwareLicenseRepository
	cache      *cache.Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AssetDependencies bundles collaborators for the asset service.
type AssetDependencies struct {
	AssetRepo     repository.AssetRepository
	AssetTypeRepo repository.AssetTypeRepository
	OfficeRepo    repository.OfficeRepository
	LicenseRepo   repository.SoftwareLicenseRepository
	Cache         *cache.Cache
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// NewAssetService constructs the service.
func NewAssetService(deps AssetDependencies) *AssetService {
	return &AssetService{
		assets:     deps.AssetRepo,
		assetTypes: deps.AssetTypeRepo,
		offices:    deps.OfficeRepo,
		licenses:   deps.LicenseRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// List returns all assets.
func (s *AssetService) List(ctx context.Context) ([]domain.Asset, error) {
	const key = cache.PrefixAssets + ":all"

	var cached []domain.Asset
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	assets, err := s.assets.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, assets)
	return assets, nil
}

// ListByOffice returns the assets located in one office.
func (s *AssetService) ListByOffice(ctx context.Context, officeName string) ([]domain.Asset, error) {
	return s.assets.ListByOfficeName(ctx, normalize.Key(officeName))
}

// ListByAssetType returns the assets of one type.
func (s *AssetService) ListByAssetType(ctx context.Context, assetTypeName string) ([]domain.Asset, error) {
	return s.assets.ListByAssetTypeName(ctx, normalize.Key(assetTypeName))
}

// GetBySerialNumber returns one asset by its normalized serial number.
func (s *AssetService) GetBySerialNumber(ctx context.Context, serialNumber string) (*domain.Asset, error) {
	normalized := normalize.Key(serialNumber)
	key := cache.PrefixAssets + ":serial:" + normalized

	var cached domain.Asset
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	asset, err := s.assets.GetBySerialNumber(ctx, normalized)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("asset", map[string]any{"serialNumber": normalized})
		}
		return nil, err
	}
	s.cache.SetJSON(ctx, key, asset)
	return asset, nil
}

// GetDetails returns an asset together with its installed licenses.
func (s *AssetService) GetDetails(ctx context.Context, serialNumber string) (*AssetDetails, error) {
	asset, err := s.GetBySerialNumber(ctx, serialNumber)
	if err != nil {
		return nil, err
	}

	licenses, err := s.licenses.ListByAssetID(ctx, asset.ID)
	if err != nil {
		return nil, err
	}
	return &AssetDetails{Asset: *asset, Licenses: licenses}, nil
}

// Create persists a new asset. The serial number must be unique and the
// referenced office and asset type must exist.
func (s *AssetService) Create(ctx context.Context, actor string, input AssetInput) (*domain.Asset, error) {
	serial := normalize.Key(input.SerialNumber)
	if serial == "" {
		return nil, apperrors.NewValidationError("serial number is required", nil)
	}

	exists, err := s.assets.ExistsBySerialNumber(ctx, serial)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("asset serial number already exists", map[string]any{"serialNumber": serial})
	}

	office, assetType, err := s.resolveReferences(ctx, input.OfficeName, input.AssetTypeName)
	if err != nil {
		return nil, err
	}

	asset := &domain.Asset{
		SerialNumber:  serial,
		PurchaseDate:  input.PurchaseDate,
		AssetTypeID:   assetType.ID,
		AssetTypeName: assetType.Name,
		OfficeID:      office.ID,
		OfficeName:    office.Name,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixAssets)
	s.publish(ctx, events.EventAssetCreated, serial, actor, nil)
	s.logger.Info("asset created", zap.String("serialNumber", asset.SerialNumber))
	return asset, nil
}

// Update replaces an asset's mutable fields, keyed by its current serial
// number.
func (s *AssetService) Update(ctx context.Context, actor, currentSerialNumber string, input AssetInput) (*domain.Asset, error) {
	currentSerial := normalize.Key(currentSerialNumber)
	newSerial := normalize.Key(input.SerialNumber)
	if newSerial == "" {
		return nil, apperrors.NewValidationError("serial number is required", nil)
	}

	existing, err := s.assets.GetBySerialNumber(ctx, currentSerial)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("asset", map[string]any{"serialNumber": currentSerial})
		}
		return nil, err
	}

	if currentSerial != newSerial {
		exists, err := s.assets.ExistsBySerialNumber(ctx, newSerial)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewConflict("asset serial number already exists", map[string]any{"serialNumber": newSerial})
		}
	}

	office, assetType, err := s.resolveReferences(ctx, input.OfficeName, input.AssetTypeName)
	if err != nil {
		return nil, err
	}

	existing.SerialNumber = newSerial
	existing.PurchaseDate = input.PurchaseDate
	existing.AssetTypeID = assetType.ID
	existing.AssetTypeName = assetType.Name
	existing.OfficeID = office.ID
	existing.OfficeName = office.Name
	if err := s.assets.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixAssets)
	s.publish(ctx, events.EventAssetUpdated, newSerial, actor, nil)
	s.logger.Info("asset updated",
		zap.String("oldSerial", currentSerial),
		zap.String("newSerial", newSerial),
	)
	return existing, nil
}

// MoveToOffice relocates an asset to another office, rejecting no-op moves.
func (s *AssetService) MoveToOffice(ctx context.Context, actor, serialNumber, officeName string) (*domain.Asset, error) {
	serial := normalize.Key(serialNumber)
	targetOffice := normalize.Key(officeName)

	asset, err := s.assets.GetBySerialNumber(ctx, serial)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("asset", map[string]any{"serialNumber": serial})
		}
		return nil, err
	}

	office, err := s.offices.GetByName(ctx, targetOffice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("office", map[string]any{"name": targetOffice})
		}
		return nil, err
	}

	if asset.OfficeID == office.ID {
		return nil, apperrors.NewConflict("asset is already assigned to this office", map[string]any{
			"serialNumber": serial,
			"office":       targetOffice,
		})
	}

	if err := s.assets.UpdateOffice(ctx, asset.ID, office.ID); err != nil {
		return nil, err
	}

	fromOffice := asset.OfficeName
	asset.OfficeID = office.ID
	asset.OfficeName = office.Name

	s.cache.InvalidatePrefix(ctx, cache.PrefixAssets)
	s.publish(ctx, events.EventAssetMoved, serial, actor, events.AssetMovedPayload{
		FromOffice: fromOffice,
		ToOffice:   office.Name,
	})
	s.logger.Info("asset moved",
		zap.String("serialNumber", serial),
		zap.String("office", office.Name),
	)
	return asset, nil
}

// Delete removes an asset by serial number.
func (s *AssetService) Delete(ctx context.Context, actor, serialNumber string) error {
	serial := normalize.Key(serialNumber)

	if err := s.assets.DeleteBySerialNumber(ctx, serial); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("asset", map[string]any{"serialNumber": serial})
		}
		return err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixAssets)
	s.publish(ctx, events.EventAssetDeleted, serial, actor, nil)
	s.logger.Info("asset deleted", zap.String("serialNumber", serial))
	return nil
}

func (s *AssetService) resolveReferences(ctx context.Context, officeName, assetTypeName string) (*domain.Office, *domain.AssetType, error) {
	office, err := s.offices.GetByName(ctx, normalize.Key(officeName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("office", map[string]any{"name": normalize.Key(officeName)})
		}
		return nil, nil, err
	}

	assetType, err := s.assetTypes.GetByName(ctx, normalize.Key(assetTypeName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("asset type", map[string]any{"name": normalize.Key(assetTypeName)})
		}
		return nil, nil, err
	}
	return office, assetType, nil
}

func (s *AssetService) publish(ctx context.Context, eventType events.EventType, resource, actor string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:     eventType,
		Resource: resource,
		Actor:    actor,
		Payload:  payload,
	})
}
