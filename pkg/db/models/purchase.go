package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/netwave-iq/netwave-backend/pkg/enums"
)

// Purchase is a digital file entitlement. Existence of the row is the
// entitlement; the unique index on (file_id, user_id, transaction_id)
// makes duplicate callback deliveries insert nothing.
type Purchase struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FileID        uuid.UUID            `gorm:"column:file_id;type:uuid;not null;uniqueIndex:idx_purchases_file_user_txn"`
	UserID        string               `gorm:"column:user_id;type:text;not null;uniqueIndex:idx_purchases_file_user_txn"`
	TransactionID string               `gorm:"column:transaction_id;type:text;not null;uniqueIndex:idx_purchases_file_user_txn"`
	Amount        decimal.Decimal      `gorm:"column:amount;type:numeric(12,2);not null"`
	Status        enums.PurchaseStatus `gorm:"column:status;type:purchase_status;not null;default:'completed'"`
	PurchasedAt   time.Time            `gorm:"column:purchased_at;not null"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
}
