package payment

import (
	"context"
	"io"
)

type Repository interface {
	GetByID(ctx context.Context, ownerID, id string) (*Receipt, error)
	// List returns the owner's receipts newest first with driver and
	// vehicle display data joined in.
	List(ctx context.Context, ownerID string) ([]ReceiptWithLinks, error)
	Create(ctx context.Context, r *Receipt) error
	Delete(ctx context.Context, ownerID, id string) error
	DriverExists(ctx context.Context, ownerID, driverID string) (bool, error)
	VehicleExists(ctx context.Context, ownerID, vehicleID string) (bool, error)
}

// Uploader stores a blob and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, path, contentType string, size int64, r io.Reader) (string, error)
}
