package fine

import "context"

type Repository interface {
	GetByID(ctx context.Context, ownerID, id string) (*Fine, error)
	// List returns the owner's fines newest infraction first, each with
	// the responsible driver's name joined in for display.
	List(ctx context.Context, ownerID string) ([]FineWithDriver, error)
	Create(ctx context.Context, f *Fine) error
	Update(ctx context.Context, f *Fine) error
	Delete(ctx context.Context, ownerID, id string) error
	DriverExists(ctx context.Context, ownerID, driverID string) (bool, error)
}
