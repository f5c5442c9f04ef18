package purchases

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
)

// InitiatePurchaseInput starts a file checkout.
type InitiatePurchaseInput struct {
	FileID uuid.UUID `json:"-"`
	UserID string    `json:"user_id" validate:"required,min=1,max=120"`
	Locale string    `json:"locale,omitempty"`
}

// InitiatePurchaseResult returns either the payment redirect or, when an
// entitlement already exists, the existing purchase.
type InitiatePurchaseResult struct {
	PaymentURL       string       `json:"payment_url,omitempty"`
	TransactionID    string       `json:"transaction_id,omitempty"`
	AlreadyPurchased bool         `json:"already_purchased"`
	Purchase         *PurchaseDTO `json:"purchase,omitempty"`
}

// PurchaseDTO is the transport shape for entitlements.
type PurchaseDTO struct {
	ID            uuid.UUID       `json:"id"`
	FileID        uuid.UUID       `json:"file_id"`
	UserID        string          `json:"user_id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	PurchasedAt   time.Time       `json:"purchased_at"`
}

// FromModel converts a purchase row into its transport shape.
func FromModel(p *models.Purchase) PurchaseDTO {
	return PurchaseDTO{
		ID:            p.ID,
		FileID:        p.FileID,
		UserID:        p.UserID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Status:        p.Status.String(),
		PurchasedAt:   p.PurchasedAt,
	}
}

// ListResult wraps returned purchases and the cursor for the next page.
type ListResult struct {
	Items  []PurchaseDTO `json:"items"`
	Cursor string        `json:"cursor"`
}
