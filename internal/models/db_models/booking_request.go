package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BookingType string

const (
	BookingHotel     BookingType = "hotel"
	BookingDining    BookingType = "dining"
	BookingTours     BookingType = "tours"
	BookingTransport BookingType = "transport"
)

type BookingStatus string

const (
	BookingRecorded       BookingStatus = "recorded"
	BookingPaymentPending BookingStatus = "payment_pending"
	BookingPaymentFailed  BookingStatus = "payment_failed"
)

type BookingRequest struct {
	BaseModel
	AccountID  *uuid.UUID     `gorm:"type:uuid;index"` // nil for guests
	Type       BookingType    `gorm:"size:16;index"`
	LandmarkID string         `gorm:"size:64;index"`
	Item       datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Bill       datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	TotalINR   int64
	Currency   string        `gorm:"size:3;default:'INR'"`
	Status     BookingStatus `gorm:"size:24;index"`

	// Gateway fields
	Provider       string `gorm:"index"`
	PaymentOrderID string `gorm:"index"`
	FailureReason  string
}
