package bookings

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

// Repository exposes booking persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	SetTransaction(ctx context.Context, id uuid.UUID, transactionID string) error
	Save(ctx context.Context, booking *models.Booking) error
	List(ctx context.Context, params ListBookingsParams) ([]models.Booking, *pagination.Cursor, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context) (map[enums.BookingStatus]int64, error)
	Recent(ctx context.Context, limit int) ([]models.Booking, error)
	FindAwaitingPaymentBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
	PaidRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a bookings repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// ListBookingsParams filters the admin booking listing.
type ListBookingsParams struct {
	Status *enums.BookingStatus
	Limit  int
	Cursor *pagination.Cursor
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate row-locks the booking for the duration of the
// surrounding transaction so concurrent callbacks serialize.
func (r *repositoryImpl) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repositoryImpl) SetTransaction(ctx context.Context, id uuid.UUID, transactionID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		UpdateColumn("transaction_id", transactionID).Error
}

func (r *repositoryImpl) Save(ctx context.Context, booking *models.Booking) error {
	booking.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *repositoryImpl) List(ctx context.Context, params ListBookingsParams) ([]models.Booking, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Booking{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&bookings).Error; err != nil {
		return nil, nil, err
	}

	if len(bookings) > normalized {
		bookings = bookings[:normalized]
		// The cursor points at the last returned row; the follow-up
		// query resumes strictly after it.
		last := bookings[normalized-1]
		return bookings, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return bookings, nil, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) CountByStatus(ctx context.Context) (map[enums.BookingStatus]int64, error) {
	type statusCount struct {
		Status enums.BookingStatus
		Count  int64
	}
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[enums.BookingStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// FindAwaitingPaymentBefore lists bookings still waiting on payment that
// were created before the cutoff.
func (r *repositoryImpl) FindAwaitingPaymentBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", enums.BookingStatusAwaitingPayment, cutoff).
		Order("created_at ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repositoryImpl) Recent(ctx context.Context, limit int) ([]models.Booking, error) {
	if limit <= 0 {
		limit = 5
	}
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

func (r *repositoryImpl) PaidRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("payment_status = ?", enums.PaymentStatusPaid).
		Where("paid_at >= ? AND paid_at < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
