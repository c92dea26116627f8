package driver

import (
	"context"
	"io"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetByID(ctx context.Context, ownerID, id string) (*Driver, error)
	// First returns the owner's oldest driver record. It backs the
	// designating-driver lookup of the designation letter.
	First(ctx context.Context, ownerID string) (*Driver, error)
	List(ctx context.Context, ownerID string) ([]Driver, error)
	Create(ctx context.Context, d *Driver) error
	Update(ctx context.Context, d *Driver) error
	UpdatePhotoURL(ctx context.Context, ownerID, id, kind, url string) error
	Delete(ctx context.Context, ownerID, id string) error
	// ReleaseVehicle flips the vehicle back to available, but only when
	// its current status is assigned. A vehicle in maintenance keeps its
	// status.
	ReleaseVehicle(ctx context.Context, ownerID, vehicleID string) error
}

// Uploader stores a blob and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, path, contentType string, size int64, r io.Reader) (string, error)
}
