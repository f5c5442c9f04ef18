package purchases

import (
	"context"
	"errors"
	"fmt"
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

// Service defines purchase initiation and listing operations.
type Service interface {
	Initiate(ctx context.Context, input InitiatePurchaseInput) (*InitiatePurchaseResult, error)
	ListByUser(ctx context.Context, userID string) ([]PurchaseDTO, error)
	List(ctx context.Context, limit int, cursor string) (*ListResult, error)
}

type paymentGateway interface {
	CreateTransaction(ctx context.Context, params zaincash.CreateTransactionParams) (*zaincash.Transaction, error)
}

type fileFinder interface {
	FindPublishedByID(ctx context.Context, id uuid.UUID) (*models.File, error)
}

type service struct {
	repo    Repository
	files   fileFinder
	gateway paymentGateway
	site    config.SiteConfig
	logg    *logger.Logger
	now     func() time.Time
}

// ServiceParams bundles purchase service dependencies.
type ServiceParams struct {
	Repo       Repository
	Files      fileFinder
	Gateway    paymentGateway
	SiteConfig config.SiteConfig
	Logger     *logger.Logger
}

// NewService wires purchase dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("purchases repository required")
	}
	if params.Files == nil {
		return nil, fmt.Errorf("files repository required")
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    params.Repo,
		files:   params.Files,
		gateway: params.Gateway,
		site:    params.SiteConfig,
		logg:    params.Logger,
		now:     time.Now,
	}, nil
}

func (s *service) Initiate(ctx context.Context, input InitiatePurchaseInput) (*InitiatePurchaseResult, error) {
	if input.FileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file id required")
	}
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	file, err := s.files.FindPublishedByID(ctx, input.FileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup file")
	}

	// An existing entitlement short-circuits checkout instead of charging
	// the user a second time.
	existing, err := s.repo.FindByFileAndUser(ctx, file.ID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup purchase")
	}
	if existing != nil && existing.Status == enums.PurchaseStatusCompleted {
		dto := FromModel(existing)
		return &InitiatePurchaseResult{
			AlreadyPurchased: true,
			Purchase:         &dto,
		}, nil
	}

	locale, err := enums.ParseLocale(strings.TrimSpace(input.Locale))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported locale")
	}

	orderID := fmt.Sprintf("file_%s_%d", file.ID, s.now().Unix())
	redirectURL := fmt.Sprintf("%s/files/callback?file_id=%s&user_id=%s",
		strings.TrimRight(s.site.PublicBaseURL, "/"), file.ID, userID)
	txn, err := s.gateway.CreateTransaction(ctx, zaincash.CreateTransactionParams{
		Amount:      file.Price,
		ServiceType: fmt.Sprintf("NetWave File: %s", file.Title),
		OrderID:     orderID,
		RedirectURL: redirectURL,
		Lang:        locale,
	})
	if err != nil {
		s.logg.Error(ctx, "file purchase initiation failed", err)
		return nil, err
	}

	return &InitiatePurchaseResult{
		PaymentURL:    txn.URL,
		TransactionID: txn.ID,
	}, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]PurchaseDTO, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchases")
	}
	items := make([]PurchaseDTO, 0, len(rows))
	for i := range rows {
		items = append(items, FromModel(&rows[i]))
	}
	return items, nil
}

func (s *service) List(ctx context.Context, limit int, cursor string) (*ListResult, error) {
	query := ListPurchasesParams{Limit: limit}
	if cursor != "" {
		parsed, err := pagination.ParseCursor(cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = parsed
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchases")
	}

	items := make([]PurchaseDTO, 0, len(rows))
	for i := range rows {
		items = append(items, FromModel(&rows[i]))
	}
	encoded := ""
	if next != nil {
		encoded = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: items, Cursor: encoded}, nil
}
