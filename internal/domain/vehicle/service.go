package vehicle

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*Vehicle, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID string, filter ListFilter) ([]Vehicle, error) {
	return s.repo.List(ctx, ownerID, filter)
}

func (s *Service) Create(ctx context.Context, input CreateVehicleInput) (*Vehicle, error) {
	input.Plate = strings.TrimSpace(input.Plate)
	if input.Plate == "" {
		return nil, ErrPlateRequired
	}

	status := input.Status
	if status == "" {
		status = StatusAvailable
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	v := Vehicle{
		ID:              uuid.NewString(),
		OwnerID:         input.OwnerID,
		Plate:           input.Plate,
		Model:           strings.TrimSpace(input.Model),
		Status:          status,
		InspectionFrom:  input.InspectionFrom,
		InspectionUntil: input.InspectionUntil,
	}
	if err := s.repo.Create(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Service) Update(ctx context.Context, input UpdateVehicleInput) (*Vehicle, error) {
	input.Plate = strings.TrimSpace(input.Plate)
	if input.Plate == "" {
		return nil, ErrPlateRequired
	}
	if !ValidStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	v, err := s.repo.GetByID(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}

	v.Plate = input.Plate
	v.Model = strings.TrimSpace(input.Model)
	v.Status = input.Status
	v.InspectionFrom = input.InspectionFrom
	v.InspectionUntil = input.InspectionUntil

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Delete removes the vehicle and clears any driver reference to it in the
// same transaction, so no driver is left pointing at a missing vehicle.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetByID(ctx, ownerID, id); err != nil {
			return err
		}
		if err := tx.ClearDriverReferences(ctx, ownerID, id); err != nil {
			return err
		}
		return tx.Delete(ctx, ownerID, id)
	})
}
