package vehicle

import "time"

// Vehicle availability states. Assigned and maintenance are both
// unavailable for assignment; they are distinct so that releasing an
// assignment cannot clobber a vehicle that is in the shop.
const (
	StatusAvailable   = "available"
	StatusAssigned    = "assigned"
	StatusMaintenance = "maintenance"
)

type Vehicle struct {
	ID              string     `gorm:"type:uuid;primaryKey"`
	OwnerID         string     `gorm:"type:uuid;index;not null"`
	Plate           string     `gorm:"not null"`
	Model           string     `gorm:""`
	Status          string     `gorm:"type:varchar(16);not null;default:available"`
	InspectionFrom  *time.Time `gorm:"type:date"`
	InspectionUntil *time.Time `gorm:"type:date"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

// IsAvailable is the single authoritative availability predicate. Every
// surface that offers a vehicle for assignment filters by it.
func IsAvailable(v Vehicle) bool {
	return v.Status == StatusAvailable
}

func ValidStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusAssigned, StatusMaintenance:
		return true
	}
	return false
}

type ListFilter struct {
	AvailableOnly bool
}

type CreateVehicleInput struct {
	OwnerID         string
	Plate           string
	Model           string
	Status          string
	InspectionFrom  *time.Time
	InspectionUntil *time.Time
}

type UpdateVehicleInput struct {
	ID              string
	OwnerID         string
	Plate           string
	Model           string
	Status          string
	InspectionFrom  *time.Time
	InspectionUntil *time.Time
}
