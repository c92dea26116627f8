package payment

import (
	"context"
	"errors"
	"time"

	driverdomain "fleetdesk-go/internal/domain/driver"
	paymentdomain "fleetdesk-go/internal/domain/payment"
	vehicledomain "fleetdesk-go/internal/domain/vehicle"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*paymentdomain.Receipt, error) {
	var receipt paymentdomain.Receipt
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, paymentdomain.ErrReceiptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]paymentdomain.ReceiptWithLinks, error) {
	type receiptRow struct {
		ID              string    `gorm:"column:id"`
		OwnerID         string    `gorm:"column:owner_id"`
		ImageURL        string    `gorm:"column:image_url"`
		DriverID        *string   `gorm:"column:driver_id"`
		VehicleID       *string   `gorm:"column:vehicle_id"`
		CreatedAt       time.Time `gorm:"column:created_at"`
		DriverFirstName *string   `gorm:"column:driver_first_name"`
		DriverLastName  *string   `gorm:"column:driver_last_name"`
		VehiclePlate    *string   `gorm:"column:vehicle_plate"`
		VehicleModel    *string   `gorm:"column:vehicle_model"`
	}

	var rows []receiptRow
	if err := r.db.WithContext(ctx).
		Table("payment_receipts").
		Select(`payment_receipts.*,
			drivers.first_name as driver_first_name,
			drivers.last_name as driver_last_name,
			vehicles.plate as vehicle_plate,
			vehicles.model as vehicle_model`).
		Joins("left join drivers on drivers.id = payment_receipts.driver_id").
		Joins("left join vehicles on vehicles.id = payment_receipts.vehicle_id").
		Where("payment_receipts.owner_id = ?", ownerID).
		Order("payment_receipts.created_at desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	receipts := make([]paymentdomain.ReceiptWithLinks, 0, len(rows))
	for _, row := range rows {
		receipts = append(receipts, paymentdomain.ReceiptWithLinks{
			Receipt: paymentdomain.Receipt{
				ID:        row.ID,
				OwnerID:   row.OwnerID,
				ImageURL:  row.ImageURL,
				DriverID:  row.DriverID,
				VehicleID: row.VehicleID,
				CreatedAt: row.CreatedAt,
			},
			DriverFirstName: row.DriverFirstName,
			DriverLastName:  row.DriverLastName,
			VehiclePlate:    row.VehiclePlate,
			VehicleModel:    row.VehicleModel,
		})
	}
	return receipts, nil
}

func (r *PostgresRepository) Create(ctx context.Context, receipt *paymentdomain.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	return r.db.WithContext(ctx).
		Delete(&paymentdomain.Receipt{}, "owner_id = ? AND id = ?", ownerID, id).Error
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

func (r *PostgresRepository) VehicleExists(ctx context.Context, ownerID, vehicleID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&vehicledomain.Vehicle{}).
		Where("owner_id = ? AND id = ?", ownerID, vehicleID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
