package fine

import (
	"context"
	"errors"
	"time"

	driverdomain "fleetdesk-go/internal/domain/driver"
	finedomain "fleetdesk-go/internal/domain/fine"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*finedomain.Fine, error) {
	var f finedomain.Fine
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, finedomain.ErrFineNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]finedomain.FineWithDriver, error) {
	type fineRow struct {
		ID              string    `gorm:"column:id"`
		OwnerID         string    `gorm:"column:owner_id"`
		DriverID        *string   `gorm:"column:driver_id"`
		IssuedOn        time.Time `gorm:"column:issued_on"`
		Place           string    `gorm:"column:place"`
		Amount          float64   `gorm:"column:amount"`
		VehiclePlate    string    `gorm:"column:vehicle_plate"`
		Nature          string    `gorm:"column:nature"`
		CreatedAt       time.Time `gorm:"column:created_at"`
		UpdatedAt       time.Time `gorm:"column:updated_at"`
		DriverFirstName *string   `gorm:"column:driver_first_name"`
		DriverLastName  *string   `gorm:"column:driver_last_name"`
	}

	var rows []fineRow
	if err := r.db.WithContext(ctx).
		Table("fines").
		Select("fines.*, drivers.first_name as driver_first_name, drivers.last_name as driver_last_name").
		Joins("left join drivers on drivers.id = fines.driver_id").
		Where("fines.owner_id = ?", ownerID).
		Order("fines.issued_on desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	fines := make([]finedomain.FineWithDriver, 0, len(rows))
	for _, row := range rows {
		fines = append(fines, finedomain.FineWithDriver{
			Fine: finedomain.Fine{
				ID:           row.ID,
				OwnerID:      row.OwnerID,
				DriverID:     row.DriverID,
				IssuedOn:     row.IssuedOn,
				Place:        row.Place,
				Amount:       row.Amount,
				VehiclePlate: row.VehiclePlate,
				Nature:       row.Nature,
				CreatedAt:    row.CreatedAt,
				UpdatedAt:    row.UpdatedAt,
			},
			DriverFirstName: row.DriverFirstName,
			DriverLastName:  row.DriverLastName,
		})
	}
	return fines, nil
}

func (r *PostgresRepository) Create(ctx context.Context, f *finedomain.Fine) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *PostgresRepository) Update(ctx context.Context, f *finedomain.Fine) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	return r.db.WithContext(ctx).
		Delete(&finedomain.Fine{}, "owner_id = ? AND id = ?", ownerID, id).Error
}

func (r *PostgresRepository) DriverExists(ctx context.Context, ownerID, driverID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&driverdomain.Driver{}).
		Where("owner_id = ? AND id = ?", ownerID, driverID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
