package fine

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

func (s *Service) Get(ctx context.Context, ownerID, id string) (*Fine, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID string) ([]FineWithDriver, error) {
	return s.repo.List(ctx, ownerID)
}

func (s *Service) Create(ctx context.Context, input CreateFineInput) (*Fine, error) {
	if err := s.validate(ctx, input.OwnerID, &input.DriverID, input.Place, input.VehiclePlate, input.Nature, input.Amount); err != nil {
		return nil, err
	}
	if input.IssuedOn.IsZero() {
		return nil, ErrDateRequired
	}

	f := Fine{
		ID:           uuid.NewString(),
		OwnerID:      input.OwnerID,
		DriverID:     input.DriverID,
		IssuedOn:     input.IssuedOn,
		Place:        strings.TrimSpace(input.Place),
		Amount:       input.Amount,
		VehiclePlate: strings.TrimSpace(input.VehiclePlate),
		Nature:       strings.TrimSpace(input.Nature),
	}
	if err := s.repo.Create(ctx, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Service) Update(ctx context.Context, input UpdateFineInput) (*Fine, error) {
	if err := s.validate(ctx, input.OwnerID, &input.DriverID, input.Place, input.VehiclePlate, input.Nature, input.Amount); err != nil {
		return nil, err
	}
	if input.IssuedOn.IsZero() {
		return nil, ErrDateRequired
	}

	f, err := s.repo.GetByID(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}

	f.DriverID = input.DriverID
	f.IssuedOn = input.IssuedOn
	f.Place = strings.TrimSpace(input.Place)
	f.Amount = input.Amount
	f.VehiclePlate = strings.TrimSpace(input.VehiclePlate)
	f.Nature = strings.TrimSpace(input.Nature)

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.repo.GetByID(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, ownerID, id)
}

// validate normalizes the optional driver reference and checks the
// required form fields. An empty driver id becomes nil; a non-empty one
// must point at a driver of the same owner.
func (s *Service) validate(ctx context.Context, ownerID string, driverID **string, place, plate, nature string, amount float64) error {
	if *driverID != nil {
		id := strings.TrimSpace(**driverID)
		if id == "" {
			*driverID = nil
		} else {
			exists, err := s.repo.DriverExists(ctx, ownerID, id)
			if err != nil {
				return err
			}
			if !exists {
				return ErrUnknownDriver
			}
			*driverID = &id
		}
	}

	if strings.TrimSpace(place) == "" {
		return ErrPlaceRequired
	}
	if strings.TrimSpace(plate) == "" {
		return ErrPlateRequired
	}
	if strings.TrimSpace(nature) == "" {
		return ErrNatureRequired
	}
	if amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}
