package fine

import "time"

type Fine struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	OwnerID      string    `gorm:"type:uuid;index;not null"`
	DriverID     *string   `gorm:"type:uuid;index"`
	IssuedOn     time.Time `gorm:"type:date;not null"`
	Place        string    `gorm:"not null"`
	Amount       float64   `gorm:"type:numeric(10,2);not null"`
	VehiclePlate string    `gorm:"not null"`
	Nature       string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// FineWithDriver carries the display join to the responsible driver. The
// vehicle is referenced by plate string on purpose, so there is no
// vehicle join.
type FineWithDriver struct {
	Fine
	DriverFirstName *string
	DriverLastName  *string
}

type CreateFineInput struct {
	OwnerID      string
	DriverID     *string
	IssuedOn     time.Time
	Place        string
	Amount       float64
	VehiclePlate string
	Nature       string
}

type UpdateFineInput struct {
	ID           string
	OwnerID      string
	DriverID     *string
	IssuedOn     time.Time
	Place        string
	Amount       float64
	VehiclePlate string
	Nature       string
}
