package assignment

import (
	"context"

	"fleetdesk-go/internal/domain/driver"
	"fleetdesk-go/internal/domain/vehicle"
)

// Repository spans the driver and vehicle tables. Every workflow
// operation runs inside a single Transaction so the two sides of an
// assignment can never diverge.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetDriver(ctx context.Context, ownerID, driverID string) (*driver.Driver, error)
	GetVehicle(ctx context.Context, ownerID, vehicleID string) (*vehicle.Vehicle, error)
	ListDrivers(ctx context.Context, ownerID string) ([]driver.Driver, error)
	ListVehicles(ctx context.Context, ownerID string) ([]vehicle.Vehicle, error)
	SetDriverVehicle(ctx context.Context, ownerID, driverID string, vehicleID *string) error
	// ClaimVehicle flips available -> assigned and reports whether a row
	// was hit. The status guard in the predicate is what makes two racing
	// claims on the same vehicle impossible: the loser sees false.
	ClaimVehicle(ctx context.Context, ownerID, vehicleID string) (bool, error)
	// ReleaseVehicle flips assigned -> available. A vehicle in
	// maintenance is left untouched.
	ReleaseVehicle(ctx context.Context, ownerID, vehicleID string) error
}
