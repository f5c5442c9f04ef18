package payments

import (
	"github.com/google/uuid"

	"github.com/netwave-iq/netwave-backend/internal/bookings"
)

// BookingCallbackParams carries the gateway redirect query values.
type BookingCallbackParams struct {
	BookingID     uuid.UUID
	TransactionID string
	Token         string
}

// BookingCallbackResult reports the reconciled booking state.
type BookingCallbackResult struct {
	Booking bookings.BookingDTO `json:"booking"`
	// AlreadyFinal is set when the callback arrived after the booking
	// had reached a terminal state; the response carries the recorded
	// outcome and nothing was mutated.
	AlreadyFinal bool `json:"already_final"`
	// Pending is set when the gateway still reports the transaction as
	// in flight; the booking stays open for a later callback.
	Pending bool `json:"pending"`
}

// FileCallbackParams carries the file purchase redirect query values.
type FileCallbackParams struct {
	FileID        uuid.UUID
	UserID        string
	TransactionID string
	Token         string
}

// FileCallbackResult returns the entitlement plus download details.
type FileCallbackResult struct {
	PurchaseID    uuid.UUID `json:"purchase_id"`
	FileID        uuid.UUID `json:"file_id"`
	Title         string    `json:"title"`
	FileURL       string    `json:"file_url"`
	FileName      string    `json:"file_name"`
	AlreadyOwned  bool      `json:"already_owned"`
	TransactionID string    `json:"transaction_id"`
}
