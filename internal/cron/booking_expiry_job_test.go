package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
	"github.com/netwave-iq/netwave-backend/pkg/outbox"
	"github.com/netwave-iq/netwave-backend/pkg/outbox/payloads"
)

func TestBookingExpiryJobCancelsStaleBookings(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	booking := models.Booking{
		ID:            uuid.New(),
		CustomerName:  "علي حسن",
		CustomerEmail: "ali@example.com",
		ServiceName:   "حملة إعلانية",
		Locale:        enums.LocaleArabic,
		Status:        enums.BookingStatusAwaitingPayment,
		PaymentStatus: enums.PaymentStatusPending,
	}
	repo := &fakeTransactionalBookingRepo{booking: booking}
	emitter := &fakeBookingOutbox{}
	reader := &fakeStaleBookingReader{bookings: []models.Booking{booking}}
	job := newBookingExpiryJob(t, reader, repo, emitter)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	expectedCutoff := now.Add(-bookingExpiryDays * 24 * time.Hour)
	if !reader.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, reader.lastCutoff)
	}
	if repo.saved == nil {
		t.Fatal("expected booking to be saved")
	}
	if repo.saved.Status != enums.BookingStatusCanceled {
		t.Fatalf("expected canceled status, got %s", repo.saved.Status)
	}
	if repo.saved.PaymentStatus != enums.PaymentStatusFailed {
		t.Fatalf("expected failed payment status, got %s", repo.saved.PaymentStatus)
	}
	if repo.saved.FailureReason == nil || *repo.saved.FailureReason != bookingExpiryReason {
		t.Fatalf("expected failure reason %q, got %v", bookingExpiryReason, repo.saved.FailureReason)
	}
	if len(emitter.events) != 1 {
		t.Fatalf("expected one outbox event, got %d", len(emitter.events))
	}
	event := emitter.events[0]
	if event.EventType != enums.EventBookingCanceled {
		t.Fatalf("expected booking canceled event, got %s", event.EventType)
	}
	payload, ok := event.Data.(payloads.BookingCanceledEvent)
	if !ok {
		t.Fatalf("expected BookingCanceledEvent payload, got %T", event.Data)
	}
	if payload.Reason != bookingExpiryReason {
		t.Fatalf("expected reason %q, got %q", bookingExpiryReason, payload.Reason)
	}
}

func TestBookingExpiryJobSkipsResolvedBooking(t *testing.T) {
	booking := models.Booking{
		ID:     uuid.New(),
		Status: enums.BookingStatusAwaitingPayment,
	}
	// Between the list query and the row lock the payment flow confirmed
	// the booking.
	confirmed := booking
	confirmed.Status = enums.BookingStatusConfirmed
	repo := &fakeTransactionalBookingRepo{booking: confirmed}
	emitter := &fakeBookingOutbox{}
	reader := &fakeStaleBookingReader{bookings: []models.Booking{booking}}
	job := newBookingExpiryJob(t, reader, repo, emitter)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if repo.saved != nil {
		t.Fatal("expected no save on resolved booking")
	}
	if len(emitter.events) != 0 {
		t.Fatalf("expected no events, got %d", len(emitter.events))
	}
}

func TestBookingExpiryJobPropagatesReaderError(t *testing.T) {
	reader := &fakeStaleBookingReader{err: errors.New("boom")}
	job := newBookingExpiryJob(t, reader, &fakeTransactionalBookingRepo{}, &fakeBookingOutbox{})

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func newBookingExpiryJob(t *testing.T, reader *fakeStaleBookingReader, repo *fakeTransactionalBookingRepo, emitter *fakeBookingOutbox) *bookingExpiryJob {
	t.Helper()
	jobIface, err := NewBookingExpiryJob(BookingExpiryJobParams{
		Logger:        logger.New(logger.Options{ServiceName: "test"}),
		DB:            bookingFakeTxRunner{},
		PendingReader: reader,
		Outbox:        emitter,
		RepoFactory: func(tx *gorm.DB) transactionalBookingRepo {
			return repo
		},
	})
	if err != nil {
		t.Fatalf("NewBookingExpiryJob: %v", err)
	}
	job, ok := jobIface.(*bookingExpiryJob)
	if !ok {
		t.Fatalf("expected bookingExpiryJob, got %T", jobIface)
	}
	return job
}

type fakeStaleBookingReader struct {
	bookings   []models.Booking
	lastCutoff time.Time
	err        error
}

func (f *fakeStaleBookingReader) FindAwaitingPaymentBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	f.lastCutoff = cutoff
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

type fakeTransactionalBookingRepo struct {
	booking models.Booking
	saved   *models.Booking
}

func (f *fakeTransactionalBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	copied := f.booking
	return &copied, nil
}

func (f *fakeTransactionalBookingRepo) Save(ctx context.Context, booking *models.Booking) error {
	f.saved = booking
	return nil
}

type fakeBookingOutbox struct {
	events []outbox.DomainEvent
}

func (f *fakeBookingOutbox) EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	f.events = append(f.events, event)
	return nil
}

type bookingFakeTxRunner struct{}

func (bookingFakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}
