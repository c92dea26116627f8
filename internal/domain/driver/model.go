package driver

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnLeave  = "on_leave"
)

// Photo kinds accepted by AttachPhoto. They double as storage path
// prefixes.
const (
	PhotoProfile = "photo_profil"
	PhotoLicense = "photo_permis"
)

type Driver struct {
	ID                string     `gorm:"type:uuid;primaryKey"`
	OwnerID           string     `gorm:"type:uuid;index;not null"`
	FirstName         string     `gorm:"not null"`
	LastName          string     `gorm:"not null"`
	Phone             string     `gorm:""`
	Email             string     `gorm:""`
	Status            string     `gorm:"type:varchar(16);not null;default:active"`
	AddressStreet     string     `gorm:""`
	AddressPostalCode string     `gorm:""`
	AddressCity       string     `gorm:""`
	LicenseNumber     string     `gorm:""`
	BirthDate         *time.Time `gorm:"type:date"`
	BirthPlace        string     `gorm:""`
	LicenseIssuedOn   *time.Time `gorm:"type:date"`
	LicenseIssuedBy   string     `gorm:""`
	ProfilePhotoURL   string     `gorm:""`
	LicensePhotoURL   string     `gorm:""`
	VehicleID         *string    `gorm:"type:uuid;column:assigned_vehicle_id;index"`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime"`
}

func (d Driver) FullName() string {
	if d.FirstName == "" {
		return d.LastName
	}
	return d.FirstName + " " + d.LastName
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusOnLeave:
		return true
	}
	return false
}

func ValidPhotoKind(kind string) bool {
	return kind == PhotoProfile || kind == PhotoLicense
}

type CreateDriverInput struct {
	OwnerID           string
	FirstName         string
	LastName          string
	Phone             string
	Email             string
	Status            string
	AddressStreet     string
	AddressPostalCode string
	AddressCity       string
	LicenseNumber     string
	BirthDate         *time.Time
	BirthPlace        string
	LicenseIssuedOn   *time.Time
	LicenseIssuedBy   string
}

type UpdateDriverInput struct {
	ID                string
	OwnerID           string
	FirstName         string
	LastName          string
	Phone             string
	Email             string
	Status            string
	AddressStreet     string
	AddressPostalCode string
	AddressCity       string
	LicenseNumber     string
	BirthDate         *time.Time
	BirthPlace        string
	LicenseIssuedOn   *time.Time
	LicenseIssuedBy   string
}

type PhotoUpload struct {
	Kind        string
	Filename    string
	ContentType string
	Size        int64
}
