package bookings

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/netwave-iq/netwave-backend/pkg/config"
	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
	"github.com/netwave-iq/netwave-backend/pkg/pagination"
	"github.com/netwave-iq/netwave-backend/pkg/zaincash"
)

// Matches local and international numbers the booking form accepts.
// Separators are stripped before matching so only digits count.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

const defaultServiceName = "استشارة عامة"

// Service defines booking initiation and back-office operations.
type Service interface {
	Create(ctx context.Context, input CreateBookingInput) (*CreateBookingResult, error)
	Get(ctx context.Context, id uuid.UUID) (*BookingDTO, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, target enums.BookingStatus) (*BookingDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListParams configures pagination and filtering for the admin listing.
type ListParams struct {
	Status string
	Limit  int
	Cursor string
}

type paymentGateway interface {
	CreateTransaction(ctx context.Context, params zaincash.CreateTransactionParams) (*zaincash.Transaction, error)
}

type serviceCatalog interface {
	FindPublishedByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
}

type service struct {
	repo     Repository
	catalog  serviceCatalog
	gateway  paymentGateway
	site     config.SiteConfig
	bookings config.BookingConfig
	logg     *logger.Logger
}

// ServiceParams bundles booking service dependencies.
type ServiceParams struct {
	Repo          Repository
	Catalog       serviceCatalog
	Gateway       paymentGateway
	SiteConfig    config.SiteConfig
	BookingConfig config.BookingConfig
	Logger        *logger.Logger
}

// NewService wires booking dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("service catalog required")
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     params.Repo,
		catalog:  params.Catalog,
		gateway:  params.Gateway,
		site:     params.SiteConfig,
		bookings: params.BookingConfig,
		logg:     params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateBookingInput) (*CreateBookingResult, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	locale, err := enums.ParseLocale(strings.TrimSpace(input.Locale))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported locale")
	}

	amount, err := s.bookings.DefaultAmount()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "booking amount misconfigured")
	}
	serviceName := defaultServiceName
	if input.ServiceID != nil {
		svc, err := s.catalog.FindPublishedByID(ctx, *input.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup service")
		}
		serviceName = svc.Title
		if svc.Price.Sign() > 0 {
			amount = svc.Price
		}
	}

	booking := &models.Booking{
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(input.CustomerEmail)),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		ServiceID:     input.ServiceID,
		ServiceName:   serviceName,
		PreferredDate: input.PreferredDate,
		Locale:        locale,
		Status:        enums.BookingStatusAwaitingPayment,
		PaymentStatus: enums.PaymentStatusPending,
		Amount:        amount,
		Notes:         input.Notes,
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
	}

	logCtx := s.logg.WithBookingID(ctx, booking.ID.String())
	s.logg.Info(logCtx, "booking created, initiating payment")

	redirectURL := fmt.Sprintf("%s/payment/callback?booking_id=%s",
		strings.TrimRight(s.site.PublicBaseURL, "/"), booking.ID)
	txn, err := s.gateway.CreateTransaction(ctx, zaincash.CreateTransactionParams{
		Amount:      amount,
		ServiceType: fmt.Sprintf("NetWave: %s", serviceName),
		OrderID:     booking.ID.String(),
		RedirectURL: redirectURL,
		Lang:        locale,
	})
	if err != nil {
		// The booking stays in awaiting_payment so a retry can pick it up.
		s.logg.Error(logCtx, "payment initiation failed", err)
		return nil, err
	}

	if err := s.repo.SetTransaction(ctx, booking.ID, txn.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record transaction id")
	}
	booking.TransactionID = &txn.ID

	return &CreateBookingResult{
		Booking:    FromModel(booking),
		PaymentURL: txn.URL,
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find booking")
	}
	dto := FromModel(booking)
	return &dto, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := ListBookingsParams{Limit: params.Limit}
	if params.Status != "" {
		status, err := enums.ParseBookingStatus(params.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		query.Status = &status
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}

	items := make([]BookingDTO, 0, len(rows))
	for i := range rows {
		items = append(items, FromModel(&rows[i]))
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: items, Cursor: cursor}, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, target enums.BookingStatus) (*BookingDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid booking status")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find booking")
	}

	if !booking.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move booking from %s to %s", booking.Status, target))
	}

	booking.Status = target
	if target == enums.BookingStatusCanceled && booking.PaymentStatus == enums.PaymentStatusPending {
		booking.PaymentStatus = enums.PaymentStatusFailed
		reason := "canceled by admin"
		booking.FailureReason = &reason
	}
	if err := s.repo.Save(ctx, booking); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking")
	}

	dto := FromModel(booking)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete booking")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	return nil
}

func (s *service) validateInput(input CreateBookingInput) error {
	name := strings.TrimSpace(input.CustomerName)
	if len([]rune(name)) < 2 {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name must be at least 2 characters")
	}
	phone := phoneSeparators.Replace(strings.TrimSpace(input.CustomerPhone))
	if !phonePattern.MatchString(phone) {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone is not a valid number")
	}
	if input.PreferredDate != nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if input.PreferredDate.Before(today) {
			return pkgerrors.New(pkgerrors.CodeValidation, "preferred date cannot be in the past")
		}
	}
	return nil
}
