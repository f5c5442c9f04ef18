package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/netwave-iq/netwave-backend/internal/bookings"
	"github.com/netwave-iq/netwave-backend/internal/purchases"
	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
	"github.com/netwave-iq/netwave-backend/pkg/metrics"
	"github.com/netwave-iq/netwave-backend/pkg/outbox"
	"github.com/netwave-iq/netwave-backend/pkg/outbox/payloads"
	"github.com/netwave-iq/netwave-backend/pkg/zaincash"
)

// Service reconciles gateway callbacks against payment records. All
// record mutation happens inside a single transaction with the target
// row locked, so a replayed or concurrent callback observes the already
// recorded outcome instead of applying side effects twice.
type Service interface {
	ReconcileBooking(ctx context.Context, params BookingCallbackParams) (*BookingCallbackResult, error)
	ReconcileFilePurchase(ctx context.Context, params FileCallbackParams) (*FileCallbackResult, error)
}

type gatewayVerifier interface {
	VerifyTransaction(ctx context.Context, transactionID, token string) (*zaincash.VerificationResult, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type fileFinder interface {
	FindPublishedByID(ctx context.Context, id uuid.UUID) (*models.File, error)
}

type service struct {
	db        txRunner
	bookings  bookings.Repository
	purchases purchases.Repository
	files     fileFinder
	gateway   gatewayVerifier
	events    eventEmitter
	metrics   *metrics.PaymentMetrics
	logg      *logger.Logger
	now       func() time.Time
}

// ServiceParams bundles reconciler dependencies.
type ServiceParams struct {
	DB        txRunner
	Bookings  bookings.Repository
	Purchases purchases.Repository
	Files     fileFinder
	Gateway   gatewayVerifier
	Events    eventEmitter
	Metrics   *metrics.PaymentMetrics
	Logger    *logger.Logger
}

// NewService wires the callback reconciler.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Bookings == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	if params.Purchases == nil {
		return nil, fmt.Errorf("purchases repository required")
	}
	if params.Files == nil {
		return nil, fmt.Errorf("files repository required")
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if params.Events == nil {
		return nil, fmt.Errorf("event emitter required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		db:        params.DB,
		bookings:  params.Bookings,
		purchases: params.Purchases,
		files:     params.Files,
		gateway:   params.Gateway,
		events:    params.Events,
		metrics:   params.Metrics,
		logg:      params.Logger,
		now:       time.Now,
	}, nil
}

func (s *service) ReconcileBooking(ctx context.Context, params BookingCallbackParams) (*BookingCallbackResult, error) {
	if params.BookingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}
	transactionID := strings.TrimSpace(params.TransactionID)
	if transactionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}

	logCtx := s.logg.WithTransactionID(s.logg.WithBookingID(ctx, params.BookingID.String()), transactionID)

	// The gateway is consulted before any record is touched; a gateway
	// outage therefore leaves the booking untouched and retryable.
	verification, err := s.gateway.VerifyTransaction(ctx, transactionID, params.Token)
	if err != nil {
		s.countBooking("dependency_error")
		return nil, err
	}

	var result BookingCallbackResult
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.bookings.WithTx(tx)
		booking, err := repo.FindByIDForUpdate(ctx, params.BookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find booking")
		}

		if booking.IsTerminal() {
			result = BookingCallbackResult{Booking: bookings.FromModel(booking), AlreadyFinal: true}
			return nil
		}

		switch verification.Status {
		case enums.TransactionStatusSuccess:
			now := s.now().UTC()
			booking.Status = enums.BookingStatusConfirmed
			booking.PaymentStatus = enums.PaymentStatusPaid
			booking.TransactionID = &transactionID
			booking.PaidAt = &now
			booking.FailureReason = nil
			if err := repo.Save(ctx, booking); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm booking")
			}
			event := payloads.BookingConfirmedEvent{
				BookingID:     booking.ID,
				CustomerName:  booking.CustomerName,
				CustomerEmail: booking.CustomerEmail,
				ServiceName:   booking.ServiceName,
				Amount:        booking.Amount,
				Locale:        booking.Locale,
				TransactionID: transactionID,
				PaidAt:        now,
			}
			if err := s.events.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventBookingConfirmed,
				AggregateType: enums.AggregateBooking,
				AggregateID:   booking.ID,
				Data:          event,
				Version:       1,
				OccurredAt:    now,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue confirmation event")
			}
			result = BookingCallbackResult{Booking: bookings.FromModel(booking)}
			return nil

		case enums.TransactionStatusPending:
			// Keep the record open; a later callback settles it.
			result = BookingCallbackResult{Booking: bookings.FromModel(booking), Pending: true}
			return nil

		default:
			booking.Status = enums.BookingStatusCanceled
			booking.PaymentStatus = enums.PaymentStatusFailed
			booking.TransactionID = &transactionID
			reason := verification.Message
			if reason == "" {
				reason = "payment was not completed"
			}
			booking.FailureReason = &reason
			if err := repo.Save(ctx, booking); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel booking")
			}
			if err := s.events.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventBookingCanceled,
				AggregateType: enums.AggregateBooking,
				AggregateID:   booking.ID,
				Data: payloads.BookingCanceledEvent{
					BookingID:     booking.ID,
					CustomerName:  booking.CustomerName,
					CustomerEmail: booking.CustomerEmail,
					ServiceName:   booking.ServiceName,
					Locale:        booking.Locale,
					TransactionID: transactionID,
					Reason:        reason,
				},
				Version:    1,
				OccurredAt: s.now().UTC(),
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue cancellation event")
			}
			result = BookingCallbackResult{Booking: bookings.FromModel(booking)}
			return nil
		}
	})
	if err != nil {
		s.countBooking("error")
		return nil, err
	}

	switch {
	case result.AlreadyFinal:
		s.logg.Info(logCtx, "booking already settled, callback ignored")
		s.countBooking("replay")
	case result.Pending:
		s.logg.Info(logCtx, "transaction still pending, booking left open")
		s.countBooking("pending")
	case result.Booking.Status == enums.BookingStatusConfirmed.String():
		s.logg.Info(logCtx, "booking confirmed")
		s.countBooking("confirmed")
	default:
		s.logg.Info(logCtx, "booking canceled after failed payment")
		s.countBooking("canceled")
	}
	return &result, nil
}

func (s *service) ReconcileFilePurchase(ctx context.Context, params FileCallbackParams) (*FileCallbackResult, error) {
	if params.FileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file id required")
	}
	userID := strings.TrimSpace(params.UserID)
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	transactionID := strings.TrimSpace(params.TransactionID)
	if transactionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}

	logCtx := s.logg.WithTransactionID(s.logg.WithFields(ctx, map[string]any{
		"file_id": params.FileID.String(),
		"user_id": userID,
	}), transactionID)

	file, err := s.files.FindPublishedByID(ctx, params.FileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup file")
	}

	verification, err := s.gateway.VerifyTransaction(ctx, transactionID, params.Token)
	if err != nil {
		s.countFile("dependency_error")
		return nil, err
	}
	if verification.Status != enums.TransactionStatusSuccess {
		s.countFile("declined")
		// No record is written; absence of the entitlement is the
		// failure state.
		return nil, pkgerrors.New(pkgerrors.CodePaymentDeclined, "payment was not completed")
	}

	var result FileCallbackResult
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.purchases.WithTx(tx)
		now := s.now().UTC()
		purchase := &models.Purchase{
			ID:            uuid.New(),
			FileID:        file.ID,
			UserID:        userID,
			TransactionID: transactionID,
			Amount:        file.Price,
			Status:        enums.PurchaseStatusCompleted,
			PurchasedAt:   now,
		}
		stored, err := repo.CreateIfAbsent(ctx, purchase)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record purchase")
		}

		alreadyOwned := stored.ID != purchase.ID
		if !alreadyOwned {
			if err := s.events.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventPurchaseRecorded,
				AggregateType: enums.AggregatePurchase,
				AggregateID:   stored.ID,
				Data: payloads.PurchaseRecordedEvent{
					PurchaseID:    stored.ID,
					FileID:        file.ID,
					FileTitle:     file.Title,
					UserID:        userID,
					TransactionID: transactionID,
					Amount:        file.Price,
					PurchasedAt:   now,
				},
				Version:    1,
				OccurredAt: now,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue purchase event")
			}
		}

		result = FileCallbackResult{
			PurchaseID:    stored.ID,
			FileID:        file.ID,
			Title:         file.Title,
			FileURL:       file.FileURL,
			FileName:      file.FileName,
			AlreadyOwned:  alreadyOwned,
			TransactionID: stored.TransactionID,
		}
		return nil
	})
	if err != nil {
		s.countFile("error")
		return nil, err
	}

	if result.AlreadyOwned {
		s.logg.Info(logCtx, "duplicate purchase callback, existing entitlement returned")
		s.countFile("replay")
	} else {
		s.logg.Info(logCtx, "file purchase recorded")
		s.countFile("recorded")
	}
	return &result, nil
}

func (s *service) countBooking(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncReconciliation("booking", result)
}

func (s *service) countFile(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncReconciliation("file_purchase", result)
}
