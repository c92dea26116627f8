package vehicle

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

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(vehicledomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*vehicledomain.Vehicle, error) {
	var v vehicledomain.Vehicle
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, vehicledomain.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string, filter vehicledomain.ListFilter) ([]vehicledomain.Vehicle, error) {
	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc")
	if filter.AvailableOnly {
		query = query.Where("status = ?", vehicledomain.StatusAvailable)
	}

	var vehicles []vehicledomain.Vehicle
	if err := query.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *PostgresRepository) Create(ctx context.Context, v *vehicledomain.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *PostgresRepository) Update(ctx context.Context, v *vehicledomain.Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	return r.db.WithContext(ctx).
		Delete(&vehicledomain.Vehicle{}, "owner_id = ? AND id = ?", ownerID, id).Error
}

func (r *PostgresRepository) ClearDriverReferences(ctx context.Context, ownerID, vehicleID string) error {
	return r.db.WithContext(ctx).Model(&driverdomain.Driver{}).
		Where("owner_id = ? AND assigned_vehicle_id = ?", ownerID, vehicleID).
		Update("assigned_vehicle_id", nil).Error
}
