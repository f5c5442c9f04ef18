package payloads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/netwave-iq/netwave-backend/pkg/enums"
)

// BookingConfirmedEvent is emitted in the payment transaction once a
// booking reaches confirmed/paid.
type BookingConfirmedEvent struct {
	BookingID     uuid.UUID       `json:"booking_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	ServiceName   string          `json:"service_name"`
	Amount        decimal.Decimal `json:"amount"`
	Locale        enums.Locale    `json:"locale"`
	TransactionID string          `json:"transaction_id"`
	PaidAt        time.Time       `json:"paid_at"`
}

// BookingCanceledEvent reports a payment that terminally failed.
type BookingCanceledEvent struct {
	BookingID     uuid.UUID    `json:"booking_id"`
	CustomerName  string       `json:"customer_name"`
	CustomerEmail string       `json:"customer_email"`
	ServiceName   string       `json:"service_name"`
	Locale        enums.Locale `json:"locale"`
	TransactionID string       `json:"transaction_id"`
	Reason        string       `json:"reason,omitempty"`
}

// PurchaseRecordedEvent signals a new file entitlement.
type PurchaseRecordedEvent struct {
	PurchaseID    uuid.UUID       `json:"purchase_id"`
	FileID        uuid.UUID       `json:"file_id"`
	FileTitle     string          `json:"file_title"`
	UserID        string          `json:"user_id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	PurchasedAt   time.Time       `json:"purchased_at"`
}
