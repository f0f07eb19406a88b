package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/cache"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/normalize"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/repository"
	apperrors "github.com/RominaTrazziSpindox/CIAMS-project/pkg/util"
)

// AssetTypeInput carries the writable asset type fields.
type AssetTypeInput struct {
	Name        string
	Description *string
}

// AssetTypeService coordinates asset type CRUD.
type AssetTypeService struct {
	assetTypes repository.AssetTypeRepository
	cache      *cache.Cache
	logger     *zap.Logger
}

// NewAssetTypeService constructs the service.
func NewAssetTypeService(assetTypes repository.AssetTypeRepository, c *cache.Cache, logger *zap.Logger) *AssetTypeService {
	return &AssetTypeService{assetTypes: assetTypes, cache: c, logger: logger}
}

// List returns all asset types.
func (s *AssetTypeService) List(ctx context.Context) ([]domain.AssetType, error) {
	const key = cache.PrefixAssetTypes + ":all"

	var cached []domain.AssetType
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	types, err := s.assetTypes.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, types)
	return types, nil
}

// GetByID returns one asset type.
func (s *AssetTypeService) GetByID(ctx context.Context, id int64) (*domain.AssetType, error) {
	assetType, err := s.assetTypes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("asset type", map[string]any{"id": id})
		}
		return nil, err
	}
	return assetType, nil
}

// Create persists a new asset type after normalization and a uniqueness
// check.
func (s *AssetTypeService) Create(ctx context.Context, input AssetTypeInput) (*domain.AssetType, error) {
	name := normalize.Key(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("asset type name is required", nil)
	}

	exists, err := s.assetTypes.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("asset type name already exists", map[string]any{"name": name})
	}

	assetType := &domain.AssetType{
		Name:        name,
		Description: normalize.TextPtr(input.Description),
	}
	if err := s.assetTypes.Create(ctx, assetType); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixAssetTypes)
	s.logger.Info("asset type created", zap.String("name", assetType.Name))
	return assetType, nil
}

// Update replaces an asset type's mutable fields.
func (s *AssetTypeService) Update(ctx context.Context, id int64, input AssetTypeInput) (*domain.AssetType, error) {
	name := normalize.Key(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("asset type name is required", nil)
	}

	existing, err := s.assetTypes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("asset type", map[string]any{"id": id})
		}
		return nil, err
	}

	if existing.Name != name {
		exists, err := s.assetTypes.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewConflict("asset type name already exists", map[string]any{"name": name})
		}
	}

	existing.Name = name
	existing.Description = normalize.TextPtr(input.Description)
	if err := s.assetTypes.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixAssetTypes)
	s.cache.InvalidatePrefix(ctx, cache.PrefixAssets)
	s.logger.Info("asset type updated", zap.Int64("id", id), zap.String("name", existing.Name))
	return existing, nil
}

// Delete removes an asset type by id.
func (s *AssetTypeService) Delete(ctx context.Context, id int64) error {
	if err := s.assetTypes.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("asset type", map[string]any{"id": id})
		}
		return err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixAssetTypes)
	s.logger.Info("asset type deleted", zap.Int64("id", id))
	return nil
}
