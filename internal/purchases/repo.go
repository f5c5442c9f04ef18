package purchases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
	"github.com/netwave-iq/netwave-backend/pkg/pagination"
)

// Repository exposes purchase (entitlement) persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// CreateIfAbsent inserts the purchase unless a row for the same
	// (file, user, transaction) already exists, and returns the row that
	// ended up in the table.
	CreateIfAbsent(ctx context.Context, purchase *models.Purchase) (*models.Purchase, error)
	HasEntitlement(ctx context.Context, fileID uuid.UUID, userID string) (bool, error)
	FindByFileAndUser(ctx context.Context, fileID uuid.UUID, userID string) (*models.Purchase, error)
	ListByUser(ctx context.Context, userID string) ([]models.Purchase, error)
	List(ctx context.Context, params ListPurchasesParams) ([]models.Purchase, *pagination.Cursor, error)
	Count(ctx context.Context) (int64, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a purchases repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// ListPurchasesParams filters the admin purchase listing.
type ListPurchasesParams struct {
	Limit  int
	Cursor *pagination.Cursor
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) CreateIfAbsent(ctx context.Context, purchase *models.Purchase) (*models.Purchase, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "file_id"}, {Name: "user_id"}, {Name: "transaction_id"}},
			DoNothing: true,
		}).
		Create(purchase).Error
	if err != nil {
		return nil, err
	}

	var existing models.Purchase
	err = r.db.WithContext(ctx).
		First(&existing, "file_id = ? AND user_id = ? AND transaction_id = ?",
			purchase.FileID, purchase.UserID, purchase.TransactionID).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *repositoryImpl) HasEntitlement(ctx context.Context, fileID uuid.UUID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Purchase{}).
		Where("file_id = ? AND user_id = ? AND status = ?", fileID, userID, "completed").
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repositoryImpl) FindByFileAndUser(ctx context.Context, fileID uuid.UUID, userID string) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.db.WithContext(ctx).
		First(&purchase, "file_id = ? AND user_id = ?", fileID, userID).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchased_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *repositoryImpl) List(ctx context.Context, params ListPurchasesParams) ([]models.Purchase, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Purchase{})
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var purchases []models.Purchase
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&purchases).Error; err != nil {
		return nil, nil, err
	}

	if len(purchases) > normalized {
		purchases = purchases[:normalized]
		// The cursor points at the last returned row; the follow-up
		// query resumes strictly after it.
		last := purchases[normalized-1]
		return purchases, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return purchases, nil, nil
}

func (r *repositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Purchase{}).Count(&count).Error
	return count, err
}

func (r *repositoryImpl) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Purchase{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("status = ?", enums.PurchaseStatusCompleted).
		Where("purchased_at >= ? AND purchased_at < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
