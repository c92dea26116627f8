package payment

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

const (
	testOwnerID   = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	testDriverID  = "11111111-1111-1111-1111-111111111111"
	testVehicleID = "33333333-3333-3333-3333-333333333333"
)

type fakePaymentRepo struct {
	receipts map[string]*Receipt
	drivers  map[string]bool
	vehicles map[string]bool
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		receipts: make(map[string]*Receipt),
		drivers:  make(map[string]bool),
		vehicles: make(map[string]bool),
	}
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, ownerID, id string) (*Receipt, error) {
	receipt, ok := r.receipts[id]
	if !ok || receipt.OwnerID != ownerID {
		return nil, ErrReceiptNotFound
	}
	copied := *receipt
	return &copied, nil
}

func (r *fakePaymentRepo) List(ctx context.Context, ownerID string) ([]ReceiptWithLinks, error) {
	out := make([]ReceiptWithLinks, 0)
	for _, receipt := range r.receipts {
		if receipt.OwnerID == ownerID {
			out = append(out, ReceiptWithLinks{Receipt: *receipt})
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Create(ctx context.Context, receipt *Receipt) error {
	copied := *receipt
	r.receipts[receipt.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, ownerID, id string) error {
	receipt, ok := r.receipts[id]
	if !ok || receipt.OwnerID != ownerID {
		return ErrReceiptNotFound
	}
	delete(r.receipts, id)
	return nil
}

func (r *fakePaymentRepo) DriverExists(ctx context.Context, ownerID, driverID string) (bool, error) {
	return r.drivers[ownerID+"/"+driverID], nil
}

func (r *fakePaymentRepo) VehicleExists(ctx context.Context, ownerID, vehicleID string) (bool, error) {
	return r.vehicles[ownerID+"/"+vehicleID], nil
}

type fakeUploader struct {
	paths []string
	url   string
	err   error
}

func (u *fakeUploader) Upload(ctx context.Context, path, contentType string, size int64, r io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.paths = append(u.paths, path)
	return u.url, nil
}

func validReceiptInput(driverID, vehicleID *string) CreateReceiptInput {
	return CreateReceiptInput{
		OwnerID:     testOwnerID,
		DriverID:    driverID,
		VehicleID:   vehicleID,
		Filename:    "receipt.PNG",
		ContentType: "image/png",
		Size:        2048,
	}
}

func strptr(s string) *string { return &s }

func TestCreateReceiptSuccess(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.drivers[testOwnerID+"/"+testDriverID] = true
	store := &fakeUploader{url: "https://cdn.example/receipt.png"}
	svc := NewService(repo, store)

	receipt, err := svc.Create(context.Background(), validReceiptInput(strptr(testDriverID), nil), strings.NewReader("fake-bytes"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if receipt.ImageURL != store.url {
		t.Fatalf("expected image url, got %q", receipt.ImageURL)
	}
	if receipt.DriverID == nil || *receipt.DriverID != testDriverID {
		t.Fatalf("expected driver link, got %v", receipt.DriverID)
	}
	if len(store.paths) != 1 || !strings.HasPrefix(store.paths[0], "receipts/") {
		t.Fatalf("expected upload under receipts/, got %v", store.paths)
	}
	if !strings.HasSuffix(store.paths[0], ".png") {
		t.Fatalf("expected lowercase extension, got %v", store.paths)
	}
	if repo.receipts[receipt.ID] == nil {
		t.Fatalf("receipt not stored")
	}
}

func TestCreateReceiptRequiresLink(t *testing.T) {
	svc := NewService(newFakePaymentRepo(), &fakeUploader{})

	blank := " "
	_, err := svc.Create(context.Background(), validReceiptInput(&blank, nil), strings.NewReader("x"))
	if !errors.Is(err, ErrLinkRequired) {
		t.Fatalf("expected ErrLinkRequired, got %v", err)
	}
}

func TestCreateReceiptUnknownDriver(t *testing.T) {
	svc := NewService(newFakePaymentRepo(), &fakeUploader{})

	_, err := svc.Create(context.Background(), validReceiptInput(strptr(testDriverID), nil), strings.NewReader("x"))
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestCreateReceiptUnknownVehicle(t *testing.T) {
	svc := NewService(newFakePaymentRepo(), &fakeUploader{})

	_, err := svc.Create(context.Background(), validReceiptInput(nil, strptr(testVehicleID)), strings.NewReader("x"))
	if !errors.Is(err, ErrUnknownVehicle) {
		t.Fatalf("expected ErrUnknownVehicle, got %v", err)
	}
}

func TestCreateReceiptRejectsNonImage(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.drivers[testOwnerID+"/"+testDriverID] = true
	svc := NewService(repo, &fakeUploader{})

	input := validReceiptInput(strptr(testDriverID), nil)
	input.ContentType = "application/pdf"

	_, err := svc.Create(context.Background(), input, strings.NewReader("x"))
	if !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}
}

func TestCreateReceiptRequiresImage(t *testing.T) {
	svc := NewService(newFakePaymentRepo(), &fakeUploader{})

	input := validReceiptInput(strptr(testDriverID), nil)
	input.Size = 0

	_, err := svc.Create(context.Background(), input, strings.NewReader(""))
	if !errors.Is(err, ErrImageRequired) {
		t.Fatalf("expected ErrImageRequired, got %v", err)
	}
}

func TestCreateReceiptUploadFailureNotStored(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.drivers[testOwnerID+"/"+testDriverID] = true
	store := &fakeUploader{err: errors.New("bucket down")}
	svc := NewService(repo, store)

	_, err := svc.Create(context.Background(), validReceiptInput(strptr(testDriverID), nil), strings.NewReader("x"))
	if err == nil {
		t.Fatalf("expected upload error")
	}
	if len(repo.receipts) != 0 {
		t.Fatalf("failed upload must not store a receipt")
	}
}

func TestDeleteReceiptSuccess(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.vehicles[testOwnerID+"/"+testVehicleID] = true
	svc := NewService(repo, &fakeUploader{url: "https://cdn.example/receipt.png"})

	receipt, err := svc.Create(context.Background(), validReceiptInput(nil, strptr(testVehicleID)), strings.NewReader("x"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), testOwnerID, receipt.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.receipts) != 0 {
		t.Fatalf("receipt not deleted")
	}
}

func TestDeleteReceiptNotFound(t *testing.T) {
	svc := NewService(newFakePaymentRepo(), &fakeUploader{})

	err := svc.Delete(context.Background(), testOwnerID, "missing")
	if !errors.Is(err, ErrReceiptNotFound) {
		t.Fatalf("expected ErrReceiptNotFound, got %v", err)
	}
}
