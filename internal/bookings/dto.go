package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
)

// CreateBookingInput is the public booking form payload.
type CreateBookingInput struct {
	CustomerName  string     `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerEmail string     `json:"customer_email" validate:"required,email"`
	CustomerPhone string     `json:"customer_phone" validate:"required"`
	ServiceID     *uuid.UUID `json:"service_id,omitempty"`
	PreferredDate *time.Time `json:"preferred_date,omitempty"`
	Locale        string     `json:"locale,omitempty"`
	Notes         *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// CreateBookingResult returns the persisted booking plus the gateway
// redirect the customer must follow.
type CreateBookingResult struct {
	Booking    BookingDTO `json:"booking"`
	PaymentURL string     `json:"payment_url"`
}

// BookingDTO is the transport shape for bookings.
type BookingDTO struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	ServiceID     *uuid.UUID      `json:"service_id,omitempty"`
	ServiceName   string          `json:"service_name"`
	PreferredDate *time.Time      `json:"preferred_date,omitempty"`
	Locale        string          `json:"locale"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	FailureReason *string         `json:"failure_reason,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// FromModel converts a booking row into its transport shape.
func FromModel(b *models.Booking) BookingDTO {
	return BookingDTO{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		ServiceID:     b.ServiceID,
		ServiceName:   b.ServiceName,
		PreferredDate: b.PreferredDate,
		Locale:        b.Locale.String(),
		Status:        b.Status.String(),
		PaymentStatus: b.PaymentStatus.String(),
		Amount:        b.Amount,
		TransactionID: b.TransactionID,
		PaidAt:        b.PaidAt,
		FailureReason: b.FailureReason,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ListResult wraps returned bookings and the cursor for the next page.
type ListResult struct {
	Items  []BookingDTO `json:"items"`
	Cursor string       `json:"cursor"`
}
