package cron

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/google/uuid"
	"github.com/netwave-iq/netwave-backend/internal/bookings"
	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
	"github.com/netwave-iq/netwave-backend/pkg/outbox"
	"github.com/netwave-iq/netwave-backend/pkg/outbox/payloads"
)

const bookingExpiryDays = 3

const bookingExpiryReason = "payment window expired"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxEmitter interface {
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type staleBookingReader interface {
	FindAwaitingPaymentBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
}

type transactionalBookingRepo interface {
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Save(ctx context.Context, booking *models.Booking) error
}

type bookingRepoFactory func(tx *gorm.DB) transactionalBookingRepo

func defaultBookingRepo(tx *gorm.DB) transactionalBookingRepo {
	return bookings.NewRepository(tx)
}

// BookingExpiryJobParams configure the stale booking sweeper.
type BookingExpiryJobParams struct {
	Logger        *logger.Logger
	DB            txRunner
	PendingReader staleBookingReader
	Outbox        outboxEmitter
	RepoFactory   bookingRepoFactory
	ExpiryDays    int
}

// NewBookingExpiryJob builds the cron job that cancels bookings whose
// payment was never completed.
func NewBookingExpiryJob(params BookingExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.PendingReader == nil {
		return nil, fmt.Errorf("stale booking reader required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox service required")
	}
	repoFactory := params.RepoFactory
	if repoFactory == nil {
		repoFactory = defaultBookingRepo
	}
	expiryDays := params.ExpiryDays
	if expiryDays <= 0 {
		expiryDays = bookingExpiryDays
	}
	return &bookingExpiryJob{
		logg:          params.Logger,
		db:            params.DB,
		pendingReader: params.PendingReader,
		outbox:        params.Outbox,
		repoFactory:   repoFactory,
		expiryDays:    expiryDays,
		now:           time.Now,
	}, nil
}

type bookingExpiryJob struct {
	logg          *logger.Logger
	db            txRunner
	pendingReader staleBookingReader
	outbox        outboxEmitter
	repoFactory   bookingRepoFactory
	expiryDays    int
	now           func() time.Time
}

func (j *bookingExpiryJob) Name() string { return "booking-expiry" }

func (j *bookingExpiryJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.expiryDays) * 24 * time.Hour)
	stale, err := j.pendingReader.FindAwaitingPaymentBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("query stale bookings: %w", err)
	}
	count := 0
	for _, booking := range stale {
		if err := j.expireBooking(ctx, booking); err != nil {
			return err
		}
		count++
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":      cutoff,
		"expiry_days": j.expiryDays,
		"count":       count,
	})
	j.logg.Info(logCtx, "booking expiry loop complete")
	return nil
}

func (j *bookingExpiryJob) expireBooking(ctx context.Context, booking models.Booking) error {
	return j.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := j.repoFactory(tx)
		current, err := repo.FindByIDForUpdate(ctx, booking.ID)
		if err != nil {
			return err
		}
		// The payment flow may have resolved the booking between the
		// list query and this row lock.
		if current.Status != enums.BookingStatusAwaitingPayment {
			return nil
		}
		now := j.now().UTC()
		reason := bookingExpiryReason
		current.Status = enums.BookingStatusCanceled
		current.PaymentStatus = enums.PaymentStatusFailed
		current.FailureReason = &reason
		current.UpdatedAt = now
		if err := repo.Save(ctx, current); err != nil {
			return err
		}
		transactionID := ""
		if current.TransactionID != nil {
			transactionID = *current.TransactionID
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventBookingCanceled,
			AggregateType: enums.AggregateBooking,
			AggregateID:   current.ID,
			Version:       1,
			OccurredAt:    now,
			Data: payloads.BookingCanceledEvent{
				BookingID:     current.ID,
				CustomerName:  current.CustomerName,
				CustomerEmail: current.CustomerEmail,
				ServiceName:   current.ServiceName,
				Locale:        current.Locale,
				TransactionID: transactionID,
				Reason:        bookingExpiryReason,
			},
		}
		return j.outbox.EmitIfNotExists(ctx, tx, event)
	})
}
