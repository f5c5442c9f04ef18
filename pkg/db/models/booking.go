package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/netwave-iq/netwave-backend/pkg/enums"
)

// Booking is a customer request for a service consultation. Payment flow
// transitions are confined to status/payment_status plus the transaction
// columns; the row itself is never deleted by the payment flow.
type Booking struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName  string              `gorm:"column:customer_name;type:text;not null"`
	CustomerEmail string              `gorm:"column:customer_email;type:text;not null"`
	CustomerPhone string              `gorm:"column:customer_phone;type:text;not null"`
	ServiceID     *uuid.UUID          `gorm:"column:service_id;type:uuid"`
	ServiceName   string              `gorm:"column:service_name;type:text;not null"`
	PreferredDate *time.Time          `gorm:"column:preferred_date"`
	Locale        enums.Locale        `gorm:"column:locale;type:text;not null;default:'ar'"`
	Status        enums.BookingStatus `gorm:"column:status;type:booking_status;not null;default:'awaiting_payment'"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;type:payment_status;not null;default:'pending'"`
	Amount        decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	TransactionID *string             `gorm:"column:transaction_id;type:text"`
	PaidAt        *time.Time          `gorm:"column:paid_at"`
	FailureReason *string             `gorm:"column:failure_reason;type:text"`
	Notes         *string             `gorm:"column:notes;type:text"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// IsTerminal reports whether the payment flow is done with this booking.
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}
