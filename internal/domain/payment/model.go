package payment

import "time"

// Receipt is an uploaded payment proof image, linked to a driver, a
// vehicle, or both.
type Receipt struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	OwnerID   string    `gorm:"type:uuid;index;not null"`
	ImageURL  string    `gorm:"not null"`
	DriverID  *string   `gorm:"type:uuid;index"`
	VehicleID *string   `gorm:"type:uuid;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Receipt) TableName() string { return "payment_receipts" }

// ReceiptWithLinks carries the display joins to the linked driver and
// vehicle.
type ReceiptWithLinks struct {
	Receipt
	DriverFirstName *string
	DriverLastName  *string
	VehiclePlate    *string
	VehicleModel    *string
}

type CreateReceiptInput struct {
	OwnerID     string
	DriverID    *string
	VehicleID   *string
	Filename    string
	ContentType string
	Size        int64
}
