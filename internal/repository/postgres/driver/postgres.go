package driver

import (
	"context"
	"errors"

	driverdomain "fleetdesk-go/internal/domain/driver"
	vehicledomain "fleetdesk-go/internal/domain/vehicle"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(driverdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*driverdomain.Driver, error) {
	var d driverdomain.Driver
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, driverdomain.ErrDriverNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) First(ctx context.Context, ownerID string) (*driverdomain.Driver, error) {
	var d driverdomain.Driver
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, driverdomain.ErrDriverNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]driverdomain.Driver, error) {
	var drivers []driverdomain.Driver
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *PostgresRepository) Create(ctx context.Context, d *driverdomain.Driver) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *PostgresRepository) Update(ctx context.Context, d *driverdomain.Driver) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *PostgresRepository) UpdatePhotoURL(ctx context.Context, ownerID, id, kind, url string) error {
	column := "profile_photo_url"
	if kind == driverdomain.PhotoLicense {
		column = "license_photo_url"
	}
	result := r.db.WithContext(ctx).Model(&driverdomain.Driver{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Update(column, url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return driverdomain.ErrDriverNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	return r.db.WithContext(ctx).
		Delete(&driverdomain.Driver{}, "owner_id = ? AND id = ?", ownerID, id).Error
}

func (r *PostgresRepository) ReleaseVehicle(ctx context.Context, ownerID, vehicleID string) error {
	return r.db.WithContext(ctx).Model(&vehicledomain.Vehicle{}).
		Where("owner_id = ? AND id = ? AND status = ?", ownerID, vehicleID, vehicledomain.StatusAssigned).
		Update("status", vehicledomain.StatusAvailable).Error
}
