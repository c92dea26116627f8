package assignment

import (
	"context"
	"errors"

	assignmentdomain "fleetdesk-go/internal/domain/assignment"
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

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(assignmentdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetDriver(ctx context.Context, ownerID, driverID string) (*driverdomain.Driver, error) {
	var d driverdomain.Driver
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, driverID).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, driverdomain.ErrDriverNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) GetVehicle(ctx context.Context, ownerID, vehicleID string) (*vehicledomain.Vehicle, error) {
	var v vehicledomain.Vehicle
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, vehicleID).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, vehicledomain.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PostgresRepository) ListDrivers(ctx context.Context, ownerID string) ([]driverdomain.Driver, error) {
	var drivers []driverdomain.Driver
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *PostgresRepository) ListVehicles(ctx context.Context, ownerID string) ([]vehicledomain.Vehicle, error) {
	var vehicles []vehicledomain.Vehicle
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *PostgresRepository) SetDriverVehicle(ctx context.Context, ownerID, driverID string, vehicleID *string) error {
	result := r.db.WithContext(ctx).Model(&driverdomain.Driver{}).
		Where("owner_id = ? AND id = ?", ownerID, driverID).
		Update("assigned_vehicle_id", vehicleID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return driverdomain.ErrDriverNotFound
	}
	return nil
}

// ClaimVehicle guards the status flip on the current status, so only one
// of two concurrent claims can hit the row.
func (r *PostgresRepository) ClaimVehicle(ctx context.Context, ownerID, vehicleID string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&vehicledomain.Vehicle{}).
		Where("owner_id = ? AND id = ? AND status = ?", ownerID, vehicleID, vehicledomain.StatusAvailable).
		Update("status", vehicledomain.StatusAssigned)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) ReleaseVehicle(ctx context.Context, ownerID, vehicleID string) error {
	return r.db.WithContext(ctx).Model(&vehicledomain.Vehicle{}).
		Where("owner_id = ? AND id = ? AND status = ?", ownerID, vehicleID, vehicledomain.StatusAssigned).
		Update("status", vehicledomain.StatusAvailable).Error
}
