package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
)

func setupBookingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS bookings (
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  service_id TEXT,
  service_name TEXT NOT NULL,
  preferred_date DATETIME,
  locale TEXT NOT NULL DEFAULT 'ar',
  status TEXT NOT NULL DEFAULT 'awaiting_payment',
  payment_status TEXT NOT NULL DEFAULT 'pending',
  amount NUMERIC NOT NULL,
  transaction_id TEXT,
  paid_at DATETIME,
  failure_reason TEXT,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM bookings").Error)
	return db
}

func createBooking(t *testing.T, db *gorm.DB, name string, status enums.BookingStatus, created time.Time) *models.Booking {
	t.Helper()

	booking := &models.Booking{
		ID:            uuid.New(),
		CustomerName:  name,
		CustomerEmail: "customer@example.com",
		CustomerPhone: "+9647700000000",
		ServiceName:   "استشارة تسويقية",
		Locale:        enums.LocaleArabic,
		Status:        status,
		PaymentStatus: enums.PaymentStatusPending,
		Amount:        decimal.NewFromInt(50000),
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

func markPaid(t *testing.T, db *gorm.DB, booking *models.Booking, amount decimal.Decimal, paidAt time.Time) {
	t.Helper()

	booking.Status = enums.BookingStatusConfirmed
	booking.PaymentStatus = enums.PaymentStatusPaid
	booking.Amount = amount
	booking.PaidAt = &paidAt
	require.NoError(t, db.Save(booking).Error)
}

func TestFindByID(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := createBooking(t, db, "سارة أحمد", enums.BookingStatusAwaitingPayment, time.Now().UTC())

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "سارة أحمد", found.CustomerName)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSetTransaction(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	booking := createBooking(t, db, "علي حسين", enums.BookingStatusAwaitingPayment, time.Now().UTC())

	require.NoError(t, repo.SetTransaction(ctx, booking.ID, "zc-txn-100"))

	found, err := repo.FindByID(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, found.TransactionID)
	assert.Equal(t, "zc-txn-100", *found.TransactionID)
}

func TestListFiltersByStatus(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	createBooking(t, db, "زينب كريم", enums.BookingStatusConfirmed, base)
	createBooking(t, db, "محمد جاسم", enums.BookingStatusAwaitingPayment, base.Add(time.Minute))
	createBooking(t, db, "نور صالح", enums.BookingStatusConfirmed, base.Add(2*time.Minute))

	status := enums.BookingStatusConfirmed
	rows, next, err := repo.List(ctx, ListBookingsParams{Status: &status, Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, next)
	assert.Equal(t, "نور صالح", rows[0].CustomerName)
	assert.Equal(t, "زينب كريم", rows[1].CustomerName)
}

func TestListPaginatesWithCursor(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		createBooking(t, db, "عميل", enums.BookingStatusAwaitingPayment, base.Add(time.Duration(i)*time.Minute))
	}

	first, cursor, err := repo.List(ctx, ListBookingsParams{Limit: 3})
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.NotNil(t, cursor)

	second, last, err := repo.List(ctx, ListBookingsParams{Limit: 3, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Nil(t, last)

	seen := map[uuid.UUID]bool{}
	for _, row := range append(first, second...) {
		assert.False(t, seen[row.ID])
		seen[row.ID] = true
	}
}

func TestDelete(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	booking := createBooking(t, db, "سارة أحمد", enums.BookingStatusCanceled, time.Now().UTC())

	found, err := repo.Delete(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.Delete(ctx, booking.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCountByStatus(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	createBooking(t, db, "أ", enums.BookingStatusConfirmed, now)
	createBooking(t, db, "ب", enums.BookingStatusConfirmed, now.Add(time.Second))
	createBooking(t, db, "ج", enums.BookingStatusCanceled, now.Add(2*time.Second))

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[enums.BookingStatusConfirmed])
	assert.Equal(t, int64(1), counts[enums.BookingStatusCanceled])
	assert.Zero(t, counts[enums.BookingStatusPending])
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	createBooking(t, db, "الأقدم", enums.BookingStatusConfirmed, base)
	createBooking(t, db, "الأوسط", enums.BookingStatusConfirmed, base.Add(time.Minute))
	createBooking(t, db, "الأحدث", enums.BookingStatusConfirmed, base.Add(2*time.Minute))

	rows, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "الأحدث", rows[0].CustomerName)
	assert.Equal(t, "الأوسط", rows[1].CustomerName)
}

func TestPaidRevenueBetween(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	monthStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	inside := createBooking(t, db, "داخل الشهر", enums.BookingStatusAwaitingPayment, monthStart)
	markPaid(t, db, inside, decimal.NewFromInt(75000), monthStart.Add(48*time.Hour))

	alsoInside := createBooking(t, db, "داخل الشهر أيضا", enums.BookingStatusAwaitingPayment, monthStart)
	markPaid(t, db, alsoInside, decimal.NewFromInt(25000), monthStart.Add(10*24*time.Hour))

	outside := createBooking(t, db, "خارج الشهر", enums.BookingStatusAwaitingPayment, monthStart)
	markPaid(t, db, outside, decimal.NewFromInt(90000), monthStart.AddDate(0, 1, 2))

	// unpaid rows never count
	createBooking(t, db, "غير مدفوع", enums.BookingStatusAwaitingPayment, monthStart)

	total, err := repo.PaidRevenueBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(100000)), "got %s", total)
}
