package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
)

type fakeBookingStats struct {
	byStatus     map[enums.BookingStatus]int64
	recent       []models.Booking
	revenue      decimal.Decimal
	revenueFrom  time.Time
	revenueTo    time.Time
	byStatusErr  error
	recentLimits []int
}

func (f *fakeBookingStats) CountByStatus(ctx context.Context) (map[enums.BookingStatus]int64, error) {
	return f.byStatus, f.byStatusErr
}

func (f *fakeBookingStats) Recent(ctx context.Context, limit int) ([]models.Booking, error) {
	f.recentLimits = append(f.recentLimits, limit)
	return f.recent, nil
}

func (f *fakeBookingStats) PaidRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	f.revenueFrom = from
	f.revenueTo = to
	return f.revenue, nil
}

type fakePurchaseStats struct {
	count   int64
	revenue decimal.Decimal
}

func (f *fakePurchaseStats) Count(ctx context.Context) (int64, error) { return f.count, nil }

func (f *fakePurchaseStats) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return f.revenue, nil
}

type fakeCounter struct {
	count int64
	err   error
}

func (f *fakeCounter) Count(ctx context.Context) (int64, error) { return f.count, f.err }

type fakeUnreadCounter struct {
	count int64
}

func (f *fakeUnreadCounter) CountUnread(ctx context.Context) (int64, error) { return f.count, nil }

func newTestService(t *testing.T, bookings *fakeBookingStats, purchases *fakePurchaseStats) *service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		Bookings:      bookings,
		Purchases:     purchases,
		Services:      &fakeCounter{count: 4},
		Files:         &fakeCounter{count: 9},
		Users:         &fakeCounter{count: 2},
		Notifications: &fakeUnreadCounter{count: 3},
	})
	require.NoError(t, err)
	return svc.(*service)
}

func TestStatsAggregatesTotals(t *testing.T) {
	bookings := &fakeBookingStats{
		byStatus: map[enums.BookingStatus]int64{
			enums.BookingStatusConfirmed:       7,
			enums.BookingStatusAwaitingPayment: 2,
			enums.BookingStatusCanceled:        1,
		},
		recent:  []models.Booking{{ID: uuid.New(), CustomerName: "سارة أحمد"}},
		revenue: decimal.NewFromInt(350000),
	}
	purchases := &fakePurchaseStats{count: 12, revenue: decimal.NewFromInt(75000)}

	svc := newTestService(t, bookings, purchases)
	svc.now = func() time.Time { return time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC) }

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.TotalBookings)
	assert.Equal(t, int64(7), stats.BookingsByStatus[enums.BookingStatusConfirmed])
	assert.Equal(t, int64(4), stats.TotalServices)
	assert.Equal(t, int64(9), stats.TotalFiles)
	assert.Equal(t, int64(12), stats.TotalPurchases)
	assert.Equal(t, int64(2), stats.TotalAdminUsers)
	assert.Equal(t, int64(3), stats.UnreadNotifications)
	assert.True(t, stats.MonthlyRevenue.Equal(decimal.NewFromInt(425000)))
	require.Len(t, stats.RecentBookings, 1)
	assert.Equal(t, "سارة أحمد", stats.RecentBookings[0].CustomerName)
	assert.Equal(t, []int{recentBookingsLimit}, bookings.recentLimits)
}

func TestStatsUsesCalendarMonthBounds(t *testing.T) {
	bookings := &fakeBookingStats{byStatus: map[enums.BookingStatus]int64{}}
	svc := newTestService(t, bookings, &fakePurchaseStats{})
	svc.now = func() time.Time { return time.Date(2026, time.January, 31, 23, 59, 0, 0, time.UTC) }

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), bookings.revenueFrom)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), bookings.revenueTo)
}

func TestStatsPropagatesDependencyError(t *testing.T) {
	bookings := &fakeBookingStats{byStatusErr: errors.New("connection reset")}
	svc := newTestService(t, bookings, &fakePurchaseStats{})

	_, err := svc.Stats(context.Background())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
}
