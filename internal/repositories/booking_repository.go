package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gompa/internal/models/db_models"
)

type BookingRepository interface {
	Create(ctx context.Context, b *db_models.BookingRequest) error
	UpdatePayment(ctx context.Context, id uuid.UUID, status db_models.BookingStatus, orderID, reason string) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.BookingRequest, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]db_models.BookingRequest, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.BookingRequest, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *db_models.BookingRequest) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookingRepository) UpdatePayment(ctx context.Context, id uuid.UUID, status db_models.BookingStatus, orderID, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&db_models.BookingRequest{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":           status,
				"payment_order_id": orderID,
				"failure_reason":   reason,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update booking: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetByID returns nil, nil when no booking has the id.
func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.BookingRequest, error) {
	var b db_models.BookingRequest
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]db_models.BookingRequest, error) {
	var out []db_models.BookingRequest
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *bookingRepository) List(ctx context.Context, page, pageSize int) ([]db_models.BookingRequest, error) {
	var out []db_models.BookingRequest
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
