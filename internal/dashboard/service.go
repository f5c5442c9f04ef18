package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
)

const recentBookingsLimit = 5

// bookingStats is the slice of the bookings repository the dashboard reads.
type bookingStats interface {
	CountByStatus(ctx context.Context) (map[enums.BookingStatus]int64, error)
	Recent(ctx context.Context, limit int) ([]models.Booking, error)
	PaidRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

type purchaseStats interface {
	Count(ctx context.Context) (int64, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

type rowCounter interface {
	Count(ctx context.Context) (int64, error)
}

type unreadCounter interface {
	CountUnread(ctx context.Context) (int64, error)
}

// Stats is the admin dashboard snapshot.
type Stats struct {
	BookingsByStatus    map[enums.BookingStatus]int64 `json:"bookings_by_status"`
	TotalBookings       int64                         `json:"total_bookings"`
	TotalServices       int64                         `json:"total_services"`
	TotalFiles          int64                         `json:"total_files"`
	TotalPurchases      int64                         `json:"total_purchases"`
	TotalAdminUsers     int64                         `json:"total_admin_users"`
	UnreadNotifications int64                         `json:"unread_notifications"`
	MonthlyRevenue      decimal.Decimal               `json:"monthly_revenue"`
	RecentBookings      []models.Booking              `json:"recent_bookings"`
}

// Service aggregates back-office statistics.
type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

// ServiceParams bundles dashboard dependencies.
type ServiceParams struct {
	Bookings      bookingStats
	Purchases     purchaseStats
	Services      rowCounter
	Files         rowCounter
	Users         rowCounter
	Notifications unreadCounter
}

type service struct {
	params ServiceParams
	now    func() time.Time
}

// NewService wires dashboard dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Bookings == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	if params.Purchases == nil {
		return nil, fmt.Errorf("purchases repository required")
	}
	if params.Services == nil {
		return nil, fmt.Errorf("services repository required")
	}
	if params.Files == nil {
		return nil, fmt.Errorf("files repository required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	return &service{params: params, now: time.Now}, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	byStatus, err := s.params.Bookings.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count bookings")
	}
	var totalBookings int64
	for _, count := range byStatus {
		totalBookings += count
	}

	services, err := s.params.Services.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count services")
	}
	files, err := s.params.Files.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count files")
	}
	purchaseCount, err := s.params.Purchases.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count purchases")
	}
	admins, err := s.params.Users.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count admin users")
	}
	unread, err := s.params.Notifications.CountUnread(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}

	monthStart, monthEnd := monthBounds(s.now().UTC())
	bookingRevenue, err := s.params.Bookings.PaidRevenueBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum booking revenue")
	}
	purchaseRevenue, err := s.params.Purchases.RevenueBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum purchase revenue")
	}

	recent, err := s.params.Bookings.Recent(ctx, recentBookingsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recent bookings")
	}

	return &Stats{
		BookingsByStatus:    byStatus,
		TotalBookings:       totalBookings,
		TotalServices:       services,
		TotalFiles:          files,
		TotalPurchases:      purchaseCount,
		TotalAdminUsers:     admins,
		UnreadNotifications: unread,
		MonthlyRevenue:      bookingRevenue.Add(purchaseRevenue),
		RecentBookings:      recent,
	}, nil
}

// monthBounds returns the half-open [start, end) UTC range of the calendar
// month containing now.
func monthBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
