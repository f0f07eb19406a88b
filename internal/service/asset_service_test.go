package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/domain"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/events"
)

func newTestAssetService(t *testing.T) (*AssetService, *fakeAssetRepo, *recordingDispatcher) {
	t.Helper()

	officeRepo := newFakeOfficeRepo()
	assetTypeRepo := newFakeAssetTypeRepo()
	assetRepo := newFakeAssetRepo()
	licenseRepo := newFakeLicenseRepo()
	dispatcher := &recordingDispatcher{}

	ctx := context.Background()
	_ = officeRepo.Create(ctx, &domain.Office{Name: "milan"})
	_ = officeRepo.Create(ctx, &domain.Office{Name: "rome"})
	_ = assetTypeRepo.Create(ctx, &domain.AssetType{Name: "laptop"})

	svc := NewAssetService(AssetDependencies{
		AssetRepo:     assetRepo,
		AssetTypeRepo: assetTypeRepo,
		OfficeRepo:    officeRepo,
		LicenseRepo:   licenseRepo,
		Dispatcher:    dispatcher,
		Logger:        zap.NewNop(),
	})
	return svc, assetRepo, dispatcher
}

func laptopInput(serial string) AssetInput {
	return AssetInput{
		SerialNumber:  serial,
		AssetTypeName: "Laptop",
		OfficeName:    "Milan",
	}
}

func TestAssetCreate(t *testing.T) {
	svc, _, dispatcher := newTestAssetService(t)
	ctx := context.Background()

	purchased := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	input := laptopInput("  SN-100 ")
	input.PurchaseDate = &purchased

	asset, err := svc.Create(ctx, "alice", input)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if asset.SerialNumber != "sn-100" {
		t.Errorf("SerialNumber = %q, want %q", asset.SerialNumber, "sn-100")
	}
	if asset.OfficeName != "milan" || asset.AssetTypeName != "laptop" {
		t.Errorf("references = (%q, %q), want (milan, laptop)", asset.OfficeName, asset.AssetTypeName)
	}
	if asset.PurchaseDate == nil || !asset.PurchaseDate.Equal(purchased) {
		t.Errorf("PurchaseDate = %v, want %v", asset.PurchaseDate, purchased)
	}

	if len(dispatcher.published) != 1 || dispatcher.published[0].Type != events.EventAssetCreated {
		t.Fatalf("published events = %+v, want one %s", dispatcher.published, events.EventAssetCreated)
	}
	if dispatcher.published[0].Actor != "alice" {
		t.Errorf("event actor = %q, want alice", dispatcher.published[0].Actor)
	}
}

func TestAssetCreateValidation(t *testing.T) {
	svc, _, _ := newTestAssetService(t)

	_, err := svc.Create(context.Background(), "alice", laptopInput("   "))
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestAssetCreateDuplicateSerial(t *testing.T) {
	svc, _, _ := newTestAssetService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", laptopInput("sn-100")); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// The same serial under a different spelling is still a duplicate.
	_, err := svc.Create(ctx, "alice", laptopInput(" SN-100 "))
	assertDomainCode(t, err, "CONFLICT")
}

func TestAssetCreateUnknownReferences(t *testing.T) {
	svc, _, _ := newTestAssetService(t)
	ctx := context.Background()

	badOffice := laptopInput("sn-100")
	badOffice.OfficeName = "atlantis"
	_, err := svc.Create(ctx, "alice", badOffice)
	assertDomainCode(t, err, "NOT_FOUND")

	badType := laptopInput("sn-100")
	badType.AssetTypeName = "hovercraft"
	_, err = svc.Create(ctx, "alice", badType)
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestAssetUpdate(t *testing.T) {
	svc, _, dispatcher := newTestAssetService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", laptopInput("sn-100")); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := svc.Create(ctx, "alice", laptopInput("sn-200")); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	updated := laptopInput("SN-101")
	updated.OfficeName = "Rome"
	asset, err := svc.Update(ctx, "alice", "sn-100", updated)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if asset.SerialNumber != "sn-101" {
		t.Errorf("SerialNumber = %q, want sn-101", asset.SerialNumber)
	}
	if asset.OfficeName != "rome" {
		t.Errorf("OfficeName = %q, want rome", asset.OfficeName)
	}

	last := dispatcher.published[len(dispatcher.published)-1]
	if last.Type != events.EventAssetUpdated {
		t.Errorf("last event = %s, want %s", last.Type, events.EventAssetUpdated)
	}

	// Renaming onto another asset's serial is a collision.
	_, err = svc.Update(ctx, "alice", "sn-101", laptopInput("sn-200"))
	assertDomainCode(t, err, "CONFLICT")

	// Keeping the current serial is not.
	if _, err := svc.Update(ctx, "alice", "sn-101", laptopInput(" SN-101 ")); err != nil {
		t.Errorf("Update() to own serial error: %v", err)
	}

	_, err = svc.Update(ctx, "alice", "sn-404", laptopInput("sn-500"))
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestAssetMoveToOffice(t *testing.T) {
	svc, _, dispatcher := newTestAssetService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", laptopInput("sn-100")); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	asset, err := svc.MoveToOffice(ctx, "alice", "SN-100", " ROME ")
	if err != nil {
		t.Fatalf("MoveToOffice() error: %v", err)
	}
	if asset.OfficeName != "rome" {
		t.Errorf("OfficeName = %q, want rome", asset.OfficeName)
	}

	last := dispatcher.published[len(dispatcher.published)-1]
	if last.Type != events.EventAssetMoved {
		t.Fatalf("last event = %s, want %s", last.Type, events.EventAssetMoved)
	}
	payload, ok := last.Payload.(events.AssetMovedPayload)
	if !ok {
		t.Fatalf("payload type = %T, want AssetMovedPayload", last.Payload)
	}
	if payload.FromOffice != "milan" || payload.ToOffice != "rome" {
		t.Errorf("payload = %+v, want milan -> rome", payload)
	}
}

func TestAssetMoveToSameOfficeRejected(t *testing.T) {
	svc, _, dispatcher := newTestAssetService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", laptopInput("sn-100")); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	published := len(dispatcher.published)

	_, err := svc.MoveToOffice(ctx, "alice", "sn-100", "milan")
	assertDomainCode(t, err, "CONFLICT")

	if len(dispatcher.published) != published {
		t.Error("rejected move still published an event")
	}
}

func TestAssetMoveUnknownTargets(t *testing.T) {
	svc, _, _ := newTestAssetService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", laptopInput("sn-100")); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	_, err := svc.MoveToOffice(ctx, "alice", "sn-404", "rome")
	assertDomainCode(t, err, "NOT_FOUND")

	_, err = svc.MoveToOffice(ctx, "alice", "sn-100", "atlantis")
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestAssetDelete(t *testing.T) {
	svc, _, dispatcher := newTestAssetService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", laptopInput("sn-100")); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if err := svc.Delete(ctx, "alice", " SN-100 "); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	last := dispatcher.published[len(dispatcher.published)-1]
	if last.Type != events.EventAssetDeleted {
		t.Errorf("last event = %s, want %s", last.Type, events.EventAssetDeleted)
	}

	assertDomainCode(t, svc.Delete(ctx, "alice", "sn-100"), "NOT_FOUND")
}

func TestAssetGetBySerialNumber(t *testing.T) {
	svc, _, _ := newTestAssetService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", laptopInput("sn-100")); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	asset, err := svc.GetBySerialNumber(ctx, " SN-100 ")
	if err != nil {
		t.Fatalf("GetBySerialNumber() error: %v", err)
	}
	if asset.SerialNumber != "sn-100" {
		t.Errorf("SerialNumber = %q, want sn-100", asset.SerialNumber)
	}

	_, err = svc.GetBySerialNumber(ctx, "sn-404")
	assertDomainCode(t, err, "NOT_FOUND")
}
