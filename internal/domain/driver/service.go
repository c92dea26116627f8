package driver

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo  Repository
	store Uploader
}

func NewService(repo Repository, store Uploader) *Service {
	return &Service{repo: repo, store: store}
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*Driver, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// First returns the owner's oldest driver record, used as the designating
// driver on designation letters.
func (s *Service) First(ctx context.Context, ownerID string) (*Driver, error) {
	return s.repo.First(ctx, ownerID)
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Driver, error) {
	return s.repo.List(ctx, ownerID)
}

func (s *Service) Create(ctx context.Context, input CreateDriverInput) (*Driver, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if input.FirstName == "" || input.LastName == "" {
		return nil, ErrNameRequired
	}

	status := input.Status
	if status == "" {
		status = StatusActive
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	d := Driver{
		ID:                uuid.NewString(),
		OwnerID:           input.OwnerID,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Phone:             strings.TrimSpace(input.Phone),
		Email:             strings.TrimSpace(input.Email),
		Status:            status,
		AddressStreet:     input.AddressStreet,
		AddressPostalCode: input.AddressPostalCode,
		AddressCity:       input.AddressCity,
		LicenseNumber:     strings.TrimSpace(input.LicenseNumber),
		BirthDate:         input.BirthDate,
		BirthPlace:        input.BirthPlace,
		LicenseIssuedOn:   input.LicenseIssuedOn,
		LicenseIssuedBy:   input.LicenseIssuedBy,
	}
	if err := s.repo.Create(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Service) Update(ctx context.Context, input UpdateDriverInput) (*Driver, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if input.FirstName == "" || input.LastName == "" {
		return nil, ErrNameRequired
	}
	if !ValidStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	d, err := s.repo.GetByID(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}

	d.FirstName = input.FirstName
	d.LastName = input.LastName
	d.Phone = strings.TrimSpace(input.Phone)
	d.Email = strings.TrimSpace(input.Email)
	d.Status = input.Status
	d.AddressStreet = input.AddressStreet
	d.AddressPostalCode = input.AddressPostalCode
	d.AddressCity = input.AddressCity
	d.LicenseNumber = strings.TrimSpace(input.LicenseNumber)
	d.BirthDate = input.BirthDate
	d.BirthPlace = input.BirthPlace
	d.LicenseIssuedOn = input.LicenseIssuedOn
	d.LicenseIssuedBy = input.LicenseIssuedBy

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the driver. Any assigned vehicle is released inside the
// same transaction, so a deleted driver can never leave a vehicle stuck
// in the assigned state.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		d, err := tx.GetByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if d.VehicleID != nil {
			if err := tx.ReleaseVehicle(ctx, ownerID, *d.VehicleID); err != nil {
				return err
			}
		}
		return tx.Delete(ctx, ownerID, id)
	})
}

// AttachPhoto uploads a profile or license photo and records its public
// URL on the driver.
func (s *Service) AttachPhoto(ctx context.Context, ownerID, id string, upload PhotoUpload, r io.Reader) (*Driver, error) {
	if !ValidPhotoKind(upload.Kind) {
		return nil, ErrInvalidPhotoKind
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, ErrNotAnImage
	}

	d, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	path := upload.Kind + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(upload.Filename))
	url, err := s.store.Upload(ctx, path, upload.ContentType, upload.Size, r)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePhotoURL(ctx, ownerID, id, upload.Kind, url); err != nil {
		return nil, err
	}

	if upload.Kind == PhotoProfile {
		d.ProfilePhotoURL = url
	} else {
		d.LicensePhotoURL = url
	}
	return d, nil
}
