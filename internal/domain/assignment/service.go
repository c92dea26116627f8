package assignment

import (
	"context"
	"strings"

	"fleetdesk-go/internal/domain/driver"
	"fleetdesk-go/internal/domain/vehicle"
)

// Service keeps Driver.VehicleID and Vehicle.Status mutually consistent.
// A vehicle is assigned iff exactly one driver references it; releasing
// an assignment restores availability unless the vehicle was moved to
// maintenance in the meantime.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Entry combines a driver with the vehicle it references, if any.
type Entry struct {
	Driver  driver.Driver
	Vehicle *vehicle.Vehicle
}

// Overview is the data behind the assignment screen: every driver with
// its current vehicle, the count of unassigned drivers, and the vehicles
// still open for assignment.
type Overview struct {
	Entries           []Entry
	UnassignedDrivers int
	OpenVehicles      []vehicle.Vehicle
}

// Assign links a driver to an available vehicle. It rejects a driver that
// already holds a vehicle and a vehicle that is not available, including
// one in maintenance. Both writes happen in one transaction; two
// concurrent assigns to the same vehicle cannot both succeed because the
// claim is guarded on the current status.
func (s *Service) Assign(ctx context.Context, ownerID, driverID, vehicleID string) error {
	driverID = strings.TrimSpace(driverID)
	vehicleID = strings.TrimSpace(vehicleID)
	if driverID == "" {
		return ErrDriverRequired
	}
	if vehicleID == "" {
		return ErrVehicleRequired
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		d, err := tx.GetDriver(ctx, ownerID, driverID)
		if err != nil {
			return err
		}
		if d.VehicleID != nil {
			return ErrDriverAlreadyAssigned
		}

		if _, err := tx.GetVehicle(ctx, ownerID, vehicleID); err != nil {
			return err
		}

		claimed, err := tx.ClaimVehicle(ctx, ownerID, vehicleID)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrVehicleUnavailable
		}

		return tx.SetDriverVehicle(ctx, ownerID, driverID, &vehicleID)
	})
}

// Unassign clears the driver's vehicle and releases it. A driver without
// a vehicle is a no-op, not an error.
func (s *Service) Unassign(ctx context.Context, ownerID, driverID string) error {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return ErrDriverRequired
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		d, err := tx.GetDriver(ctx, ownerID, driverID)
		if err != nil {
			return err
		}
		if d.VehicleID == nil {
			return nil
		}

		released := *d.VehicleID
		if err := tx.SetDriverVehicle(ctx, ownerID, driverID, nil); err != nil {
			return err
		}
		return tx.ReleaseVehicle(ctx, ownerID, released)
	})
}

// ChangeVehicle moves the driver to another vehicle. An empty target
// behaves as Unassign; the current vehicle is a no-op. The old vehicle is
// freed and the new one claimed in the same transaction.
func (s *Service) ChangeVehicle(ctx context.Context, ownerID, driverID, newVehicleID string) error {
	driverID = strings.TrimSpace(driverID)
	newVehicleID = strings.TrimSpace(newVehicleID)
	if driverID == "" {
		return ErrDriverRequired
	}
	if newVehicleID == "" {
		return s.Unassign(ctx, ownerID, driverID)
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		d, err := tx.GetDriver(ctx, ownerID, driverID)
		if err != nil {
			return err
		}
		if d.VehicleID != nil && *d.VehicleID == newVehicleID {
			return nil
		}

		if _, err := tx.GetVehicle(ctx, ownerID, newVehicleID); err != nil {
			return err
		}

		claimed, err := tx.ClaimVehicle(ctx, ownerID, newVehicleID)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrVehicleUnavailable
		}

		if err := tx.SetDriverVehicle(ctx, ownerID, driverID, &newVehicleID); err != nil {
			return err
		}

		if d.VehicleID != nil {
			return tx.ReleaseVehicle(ctx, ownerID, *d.VehicleID)
		}
		return nil
	})
}

// GetOverview assembles the assignment screen data. Open vehicles are
// filtered by vehicle.IsAvailable alone; a vehicle is never offered just
// because no driver happens to reference it.
func (s *Service) GetOverview(ctx context.Context, ownerID string) (*Overview, error) {
	drivers, err := s.repo.ListDrivers(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.repo.ListVehicles(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]vehicle.Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}

	overview := Overview{
		Entries: make([]Entry, 0, len(drivers)),
	}
	for _, d := range drivers {
		entry := Entry{Driver: d}
		if d.VehicleID != nil {
			if v, ok := byID[*d.VehicleID]; ok {
				entry.Vehicle = &v
			}
		}
		if entry.Vehicle == nil {
			overview.UnassignedDrivers++
		}
		overview.Entries = append(overview.Entries, entry)
	}

	for _, v := range vehicles {
		if vehicle.IsAvailable(v) {
			overview.OpenVehicles = append(overview.OpenVehicles, v)
		}
	}

	return &overview, nil
}
