package payments

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/netwave-iq/netwave-backend/internal/bookings"
	"github.com/netwave-iq/netwave-backend/internal/purchases"
	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
	"github.com/netwave-iq/netwave-backend/pkg/outbox"
	"github.com/netwave-iq/netwave-backend/pkg/pagination"
	"github.com/netwave-iq/netwave-backend/pkg/zaincash"
)

type stubTxRunner struct{}

func (s *stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubGateway struct {
	result *zaincash.VerificationResult
	err    error
	calls  int
}

func (s *stubGateway) VerifyTransaction(ctx context.Context, transactionID, token string) (*zaincash.VerificationResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubEmitter struct {
	events []outbox.DomainEvent
}

func (s *stubEmitter) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

type stubBookingsRepo struct {
	booking *models.Booking
	saves   int
}

func (s *stubBookingsRepo) WithTx(tx *gorm.DB) bookings.Repository { return s }

func (s *stubBookingsRepo) Create(ctx context.Context, booking *models.Booking) error {
	s.booking = booking
	return nil
}

func (s *stubBookingsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return s.FindByIDForUpdate(ctx, id)
}

func (s *stubBookingsRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	if s.booking == nil || s.booking.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.booking
	return &copied, nil
}

func (s *stubBookingsRepo) SetTransaction(ctx context.Context, id uuid.UUID, transactionID string) error {
	return nil
}

func (s *stubBookingsRepo) Save(ctx context.Context, booking *models.Booking) error {
	s.saves++
	s.booking = booking
	return nil
}

func (s *stubBookingsRepo) List(ctx context.Context, params bookings.ListBookingsParams) ([]models.Booking, *pagination.Cursor, error) {
	return nil, nil, nil
}

func (s *stubBookingsRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return false, nil
}

func (s *stubBookingsRepo) CountByStatus(ctx context.Context) (map[enums.BookingStatus]int64, error) {
	return nil, nil
}

func (s *stubBookingsRepo) Recent(ctx context.Context, limit int) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubBookingsRepo) FindAwaitingPaymentBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubBookingsRepo) PaidRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubPurchasesRepo struct {
	rows []*models.Purchase
}

func (s *stubPurchasesRepo) WithTx(tx *gorm.DB) purchases.Repository { return s }

func (s *stubPurchasesRepo) CreateIfAbsent(ctx context.Context, purchase *models.Purchase) (*models.Purchase, error) {
	for _, row := range s.rows {
		if row.FileID == purchase.FileID && row.UserID == purchase.UserID && row.TransactionID == purchase.TransactionID {
			return row, nil
		}
	}
	copied := *purchase
	s.rows = append(s.rows, &copied)
	return &copied, nil
}

func (s *stubPurchasesRepo) HasEntitlement(ctx context.Context, fileID uuid.UUID, userID string) (bool, error) {
	return false, nil
}

func (s *stubPurchasesRepo) FindByFileAndUser(ctx context.Context, fileID uuid.UUID, userID string) (*models.Purchase, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPurchasesRepo) ListByUser(ctx context.Context, userID string) ([]models.Purchase, error) {
	return nil, nil
}

func (s *stubPurchasesRepo) List(ctx context.Context, params purchases.ListPurchasesParams) ([]models.Purchase, *pagination.Cursor, error) {
	return nil, nil, nil
}

func (s *stubPurchasesRepo) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (s *stubPurchasesRepo) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubFileFinder struct {
	file *models.File
}

func (s *stubFileFinder) FindPublishedByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	if s.file == nil || s.file.ID != id || !s.file.Published {
		return nil, gorm.ErrRecordNotFound
	}
	return s.file, nil
}

type fixture struct {
	service   Service
	gateway   *stubGateway
	emitter   *stubEmitter
	bookings  *stubBookingsRepo
	purchases *stubPurchasesRepo
	files     *stubFileFinder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		gateway:   &stubGateway{},
		emitter:   &stubEmitter{},
		bookings:  &stubBookingsRepo{},
		purchases: &stubPurchasesRepo{},
		files:     &stubFileFinder{},
	}
	service, err := NewService(ServiceParams{
		DB:        &stubTxRunner{},
		Bookings:  f.bookings,
		Purchases: f.purchases,
		Files:     f.files,
		Gateway:   f.gateway,
		Events:    f.emitter,
		Logger:    logger.New(logger.Options{ServiceName: "payments-test", Output: io.Discard}),
	})
	require.NoError(t, err)
	f.service = service
	return f
}

func openBooking() *models.Booking {
	return &models.Booking{
		ID:            uuid.New(),
		CustomerName:  "سارة أحمد",
		CustomerEmail: "sara@example.com",
		CustomerPhone: "+9647701234567",
		ServiceName:   "استشارة تسويقية",
		Locale:        enums.LocaleArabic,
		Status:        enums.BookingStatusAwaitingPayment,
		PaymentStatus: enums.PaymentStatusPending,
		Amount:        decimal.NewFromInt(50000),
	}
}

func TestService_ReconcileBookingConfirms(t *testing.T) {
	f := newFixture(t)
	booking := openBooking()
	f.bookings.booking = booking
	f.gateway.result = &zaincash.VerificationResult{
		TransactionID: "zc-100",
		Status:        enums.TransactionStatusSuccess,
	}

	result, err := f.service.ReconcileBooking(context.Background(), BookingCallbackParams{
		BookingID:     booking.ID,
		TransactionID: "zc-100",
	})
	require.NoError(t, err)
	assert.False(t, result.AlreadyFinal)
	assert.False(t, result.Pending)
	assert.Equal(t, enums.BookingStatusConfirmed.String(), result.Booking.Status)
	assert.Equal(t, enums.PaymentStatusPaid.String(), result.Booking.PaymentStatus)

	stored := f.bookings.booking
	require.NotNil(t, stored.TransactionID)
	assert.Equal(t, "zc-100", *stored.TransactionID)
	require.NotNil(t, stored.PaidAt)

	require.Len(t, f.emitter.events, 1)
	event := f.emitter.events[0]
	assert.Equal(t, enums.EventBookingConfirmed, event.EventType)
	assert.Equal(t, enums.AggregateBooking, event.AggregateType)
	assert.Equal(t, booking.ID, event.AggregateID)
}

func TestService_ReconcileBookingSecondCallbackIsNoOp(t *testing.T) {
	f := newFixture(t)
	booking := openBooking()
	f.bookings.booking = booking
	f.gateway.result = &zaincash.VerificationResult{
		TransactionID: "zc-200",
		Status:        enums.TransactionStatusSuccess,
	}

	first, err := f.service.ReconcileBooking(context.Background(), BookingCallbackParams{
		BookingID:     booking.ID,
		TransactionID: "zc-200",
	})
	require.NoError(t, err)
	require.False(t, first.AlreadyFinal)
	savesAfterFirst := f.bookings.saves
	require.Len(t, f.emitter.events, 1)

	second, err := f.service.ReconcileBooking(context.Background(), BookingCallbackParams{
		BookingID:     booking.ID,
		TransactionID: "zc-200",
	})
	require.NoError(t, err)
	assert.True(t, second.AlreadyFinal)
	assert.Equal(t, enums.BookingStatusConfirmed.String(), second.Booking.Status)
	assert.Equal(t, savesAfterFirst, f.bookings.saves)
	assert.Len(t, f.emitter.events, 1)
}

func TestService_ReconcileBookingPendingLeavesOpen(t *testing.T) {
	f := newFixture(t)
	booking := openBooking()
	f.bookings.booking = booking
	f.gateway.result = &zaincash.VerificationResult{
		TransactionID: "zc-300",
		Status:        enums.TransactionStatusPending,
	}

	result, err := f.service.ReconcileBooking(context.Background(), BookingCallbackParams{
		BookingID:     booking.ID,
		TransactionID: "zc-300",
	})
	require.NoError(t, err)
	assert.True(t, result.Pending)
	assert.Equal(t, enums.BookingStatusAwaitingPayment.String(), result.Booking.Status)
	assert.Zero(t, f.bookings.saves)
	assert.Empty(t, f.emitter.events)
}

func TestService_ReconcileBookingFailureCancels(t *testing.T) {
	f := newFixture(t)
	booking := openBooking()
	f.bookings.booking = booking
	f.gateway.result = &zaincash.VerificationResult{
		TransactionID: "zc-400",
		Status:        enums.TransactionStatusFailed,
		Message:       "insufficient funds",
	}

	result, err := f.service.ReconcileBooking(context.Background(), BookingCallbackParams{
		BookingID:     booking.ID,
		TransactionID: "zc-400",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.BookingStatusCanceled.String(), result.Booking.Status)
	assert.Equal(t, enums.PaymentStatusFailed.String(), result.Booking.PaymentStatus)

	stored := f.bookings.booking
	require.NotNil(t, stored.FailureReason)
	assert.Equal(t, "insufficient funds", *stored.FailureReason)

	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, enums.EventBookingCanceled, f.emitter.events[0].EventType)
}

func TestService_ReconcileBookingGatewayErrorLeavesRecordUntouched(t *testing.T) {
	f := newFixture(t)
	booking := openBooking()
	f.bookings.booking = booking
	f.gateway.err = pkgerrors.New(pkgerrors.CodeDependency, "gateway unavailable")

	_, err := f.service.ReconcileBooking(context.Background(), BookingCallbackParams{
		BookingID:     booking.ID,
		TransactionID: "zc-500",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
	assert.Zero(t, f.bookings.saves)
	assert.Equal(t, enums.BookingStatusAwaitingPayment, f.bookings.booking.Status)
}

func TestService_ReconcileBookingNotFound(t *testing.T) {
	f := newFixture(t)
	f.gateway.result = &zaincash.VerificationResult{Status: enums.TransactionStatusSuccess}

	_, err := f.service.ReconcileBooking(context.Background(), BookingCallbackParams{
		BookingID:     uuid.New(),
		TransactionID: "zc-600",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestService_ReconcileBookingValidatesParams(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ReconcileBooking(context.Background(), BookingCallbackParams{
		TransactionID: "zc-700",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = f.service.ReconcileBooking(context.Background(), BookingCallbackParams{
		BookingID: uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Zero(t, f.gateway.calls)
}

func publishedFile() *models.File {
	return &models.File{
		ID:        uuid.New(),
		Title:     "دليل التسويق الرقمي",
		Price:     decimal.NewFromInt(25000),
		FileURL:   "https://cdn.example.com/guides/digital-marketing.pdf",
		FileName:  "digital-marketing.pdf",
		Published: true,
	}
}

func TestService_ReconcileFilePurchaseRecordsEntitlement(t *testing.T) {
	f := newFixture(t)
	file := publishedFile()
	f.files.file = file
	f.gateway.result = &zaincash.VerificationResult{
		TransactionID: "zc-800",
		Status:        enums.TransactionStatusSuccess,
	}

	result, err := f.service.ReconcileFilePurchase(context.Background(), FileCallbackParams{
		FileID:        file.ID,
		UserID:        "user-1",
		TransactionID: "zc-800",
	})
	require.NoError(t, err)
	assert.False(t, result.AlreadyOwned)
	assert.Equal(t, file.ID, result.FileID)
	assert.Equal(t, file.FileURL, result.FileURL)
	assert.Equal(t, file.FileName, result.FileName)

	require.Len(t, f.purchases.rows, 1)
	stored := f.purchases.rows[0]
	assert.Equal(t, "user-1", stored.UserID)
	assert.Equal(t, enums.PurchaseStatusCompleted, stored.Status)
	assert.True(t, file.Price.Equal(stored.Amount))

	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, enums.EventPurchaseRecorded, f.emitter.events[0].EventType)
}

func TestService_ReconcileFilePurchaseDuplicateReturnsExisting(t *testing.T) {
	f := newFixture(t)
	file := publishedFile()
	f.files.file = file
	f.gateway.result = &zaincash.VerificationResult{
		TransactionID: "zc-900",
		Status:        enums.TransactionStatusSuccess,
	}
	params := FileCallbackParams{
		FileID:        file.ID,
		UserID:        "user-1",
		TransactionID: "zc-900",
	}

	first, err := f.service.ReconcileFilePurchase(context.Background(), params)
	require.NoError(t, err)
	require.False(t, first.AlreadyOwned)

	second, err := f.service.ReconcileFilePurchase(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, second.AlreadyOwned)
	assert.Equal(t, first.PurchaseID, second.PurchaseID)
	assert.Len(t, f.purchases.rows, 1)
	assert.Len(t, f.emitter.events, 1)
}

func TestService_ReconcileFilePurchaseDeclinedWritesNothing(t *testing.T) {
	f := newFixture(t)
	file := publishedFile()
	f.files.file = file
	f.gateway.result = &zaincash.VerificationResult{
		TransactionID: "zc-1000",
		Status:        enums.TransactionStatusFailed,
	}

	_, err := f.service.ReconcileFilePurchase(context.Background(), FileCallbackParams{
		FileID:        file.ID,
		UserID:        "user-1",
		TransactionID: "zc-1000",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodePaymentDeclined, pkgerrors.As(err).Code())
	assert.Empty(t, f.purchases.rows)
	assert.Empty(t, f.emitter.events)
}

func TestService_ReconcileFilePurchaseUnknownFile(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ReconcileFilePurchase(context.Background(), FileCallbackParams{
		FileID:        uuid.New(),
		UserID:        "user-1",
		TransactionID: "zc-1100",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
	assert.Zero(t, f.gateway.calls)
}
