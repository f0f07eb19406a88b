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

// OfficeService coordinates office CRUD. Office names are normalized before
// every lookup and uniqueness check.
type OfficeService struct {
	offices repository.OfficeRepository
	cache   *cache.Cache
	logger  *zap.Logger
}

// NewOfficeService constructs the service.
func NewOfficeService(offices repository.OfficeRepository, c *cache.Cache, logger *zap.Logger) *OfficeService {
	return &OfficeService{offices: offices, cache: c, logger: logger}
}

// List returns all offices, served from cache when warm.
func (s *OfficeService) List(ctx context.Context) ([]domain.Office, error) {
	const key = cache.PrefixOffices + ":all"

	var cached []domain.Office
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	offices, err := s.offices.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, offices)
	return offices, nil
}

// GetByName returns one office by its normalized name.
func (s *OfficeService) GetByName(ctx context.Context, name string) (*domain.Office, error) {
	normalized := normalize.Key(name)
	key := cache.PrefixOffices + ":name:" + normalized

	var cached domain.Office
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	office, err := s.offices.GetByName(ctx, normalized)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("office", map[string]any{"name": normalized})
		}
		return nil, err
	}
	s.cache.SetJSON(ctx, key, office)
	return office, nil
}

// Create persists a new office after normalization and a uniqueness check.
func (s *OfficeService) Create(ctx context.Context, name string) (*domain.Office, error) {
	normalized := normalize.Key(name)
	if normalized == "" {
		return nil, apperrors.NewValidationError("office name is required", nil)
	}

	exists, err := s.offices.ExistsByName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("office name already exists", map[string]any{"name": normalized})
	}

	office := &domain.Office{Name: normalized}
	if err := s.offices.Create(ctx, office); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixOffices)
	s.logger.Info("office created", zap.String("name", office.Name))
	return office, nil
}

// Rename updates an office's name, guarding against collisions with other
// offices.
func (s *OfficeService) Rename(ctx context.Context, currentName, newName string) (*domain.Office, error) {
	normalizedCurrent := normalize.Key(currentName)
	normalizedNew := normalize.Key(newName)
	if normalizedNew == "" {
		return nil, apperrors.NewValidationError("office name is required", nil)
	}

	if normalizedCurrent != normalizedNew {
		exists, err := s.offices.ExistsByName(ctx, normalizedNew)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewConflict("office name already exists", map[string]any{"name": normalizedNew})
		}
	}

	office, err := s.offices.UpdateName(ctx, normalizedCurrent, normalizedNew)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("office", map[string]any{"name": normalizedCurrent})
		}
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixOffices)
	s.cache.InvalidatePrefix(ctx, cache.PrefixAssets)
	s.logger.Info("office renamed", zap.String("from", normalizedCurrent), zap.String("to", normalizedNew))
	return office, nil
}

// Delete removes an office by name.
func (s *OfficeService) Delete(ctx context.Context, name string) error {
	normalized := normalize.Key(name)

	if err := s.offices.DeleteByName(ctx, normalized); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("office", map[string]any{"name": normalized})
		}
		return err
	}

	s.cache.InvalidatePrefix(ctx, cache.PrefixOffices)
	s.logger.Info("office deleted", zap.String("name", normalized))
	return nil
}
