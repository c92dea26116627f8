package payment

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const receiptPathPrefix = "receipts"

type Service struct {
	repo  Repository
	store Uploader
}

func NewService(repo Repository, store Uploader) *Service {
	return &Service{repo: repo, store: store}
}

func (s *Service) List(ctx context.Context, ownerID string) ([]ReceiptWithLinks, error) {
	return s.repo.List(ctx, ownerID)
}

// Create uploads the receipt image and records it. At least one of the
// driver and vehicle links must be set, and both must belong to the
// owner when present.
func (s *Service) Create(ctx context.Context, input CreateReceiptInput, image io.Reader) (*Receipt, error) {
	if image == nil || input.Size == 0 {
		return nil, ErrImageRequired
	}
	if !strings.HasPrefix(input.ContentType, "image/") {
		return nil, ErrNotAnImage
	}

	input.DriverID = normalizeRef(input.DriverID)
	input.VehicleID = normalizeRef(input.VehicleID)
	if input.DriverID == nil && input.VehicleID == nil {
		return nil, ErrLinkRequired
	}

	if input.DriverID != nil {
		exists, err := s.repo.DriverExists(ctx, input.OwnerID, *input.DriverID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrUnknownDriver
		}
	}
	if input.VehicleID != nil {
		exists, err := s.repo.VehicleExists(ctx, input.OwnerID, *input.VehicleID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrUnknownVehicle
		}
	}

	path := receiptPathPrefix + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(input.Filename))
	url, err := s.store.Upload(ctx, path, input.ContentType, input.Size, image)
	if err != nil {
		return nil, err
	}

	receipt := Receipt{
		ID:        uuid.NewString(),
		OwnerID:   input.OwnerID,
		ImageURL:  url,
		DriverID:  input.DriverID,
		VehicleID: input.VehicleID,
	}
	if err := s.repo.Create(ctx, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.repo.GetByID(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, ownerID, id)
}

func normalizeRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	id := strings.TrimSpace(*ref)
	if id == "" {
		return nil
	}
	return &id
}
