package vehicle

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetByID(ctx context.Context, ownerID, id string) (*Vehicle, error)
	List(ctx context.Context, ownerID string, filter ListFilter) ([]Vehicle, error)
	Create(ctx context.Context, v *Vehicle) error
	Update(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, ownerID, id string) error
	// ClearDriverReferences nulls assigned_vehicle_id on every driver of
	// the owner that references the vehicle.
	ClearDriverReferences(ctx context.Context, ownerID, vehicleID string) error
}
