package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
)

type fakeAssetTypeRepo struct {
	nextID int64
	types  map[int64]*domain.AssetType
}

func newFakeAssetTypeRepo() *fakeAssetTypeRepo {
	return &fakeAssetTypeRepo{nextID: 1, types: map[int64]*domain.AssetType{}}
}

func (r *fakeAssetTypeRepo) List(context.Context) ([]domain.AssetType, error) {
	out := make([]domain.AssetType, 0, len(r.types))
	for _, assetType := range r.types {
		out = append(out, *assetType)
	}
	return out, nil
}

func (r *fakeAssetTypeRepo) GetByID(_ context.Context, id int64) (*domain.AssetType, error) {
	assetType, ok := r.types[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *assetType
	return &copied, nil
}

func (r *fakeAssetTypeRepo) GetByName(_ context.Context, name string) (*domain.AssetType, error) {
	for _, assetType := range r.types {
		if assetType.Name == name {
			copied := *assetType
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAssetTypeRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, assetType := range r.types {
		if assetType.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAssetTypeRepo) Create(_ context.Context, assetType *domain.AssetType) error {
	assetType.ID = r.nextID
	r.nextID++
	copied := *assetType
	r.types[assetType.ID] = &copied
	return nil
}

func (r *fakeAssetTypeRepo) Update(_ context.Context, assetType *domain.AssetType) error {
	if _, ok := r.types[assetType.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *assetType
	r.types[assetType.ID] = &copied
	return nil
}

func (r *fakeAssetTypeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.types[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.types, id)
	return nil
}

func newTestAssetTypeService() (*AssetTypeService, *fakeAssetTypeRepo) {
	repo := newFakeAssetTypeRepo()
	return NewAssetTypeService(repo, nil, zap.NewNop()), repo
}

func strPtr(s string) *string { return &s }

func TestAssetTypeCreate(t *testing.T) {
	svc, _ := newTestAssetTypeService()
	ctx := context.Background()

	assetType, err := svc.Create(ctx, AssetTypeInput{
		Name:        "  Laptop  ",
		Description: strPtr("  portable   workstation "),
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if assetType.Name != "laptop" {
		t.Errorf("Name = %q, want %q", assetType.Name, "laptop")
	}
	if assetType.Description == nil || *assetType.Description != "portable workstation" {
		t.Errorf("Description = %v, want %q", assetType.Description, "portable workstation")
	}

	// Variant spellings of the same key collide.
	_, err = svc.Create(ctx, AssetTypeInput{Name: "LAPTOP"})
	assertDomainCode(t, err, "CONFLICT")

	_, err = svc.Create(ctx, AssetTypeInput{Name: "   "})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestAssetTypeGetByID(t *testing.T) {
	svc, _ := newTestAssetTypeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, AssetTypeInput{Name: "monitor"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	assetType, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if assetType.Name != "monitor" {
		t.Errorf("Name = %q, want monitor", assetType.Name)
	}

	_, err = svc.GetByID(ctx, 404)
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestAssetTypeUpdate(t *testing.T) {
	svc, _ := newTestAssetTypeService()
	ctx := context.Background()

	laptop, err := svc.Create(ctx, AssetTypeInput{Name: "laptop"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := svc.Create(ctx, AssetTypeInput{Name: "monitor"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Renaming onto another type's name is a collision.
	_, err = svc.Update(ctx, laptop.ID, AssetTypeInput{Name: "Monitor"})
	assertDomainCode(t, err, "CONFLICT")

	// Keeping the current name only touches the description.
	updated, err := svc.Update(ctx, laptop.ID, AssetTypeInput{
		Name:        " LAPTOP ",
		Description: strPtr("refreshed"),
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Name != "laptop" {
		t.Errorf("Name = %q, want laptop", updated.Name)
	}
	if updated.Description == nil || *updated.Description != "refreshed" {
		t.Errorf("Description = %v, want refreshed", updated.Description)
	}

	_, err = svc.Update(ctx, 404, AssetTypeInput{Name: "tablet"})
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestAssetTypeDelete(t *testing.T) {
	svc, _ := newTestAssetTypeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, AssetTypeInput{Name: "printer"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	assertDomainCode(t, svc.Delete(ctx, created.ID), "NOT_FOUND")
}
