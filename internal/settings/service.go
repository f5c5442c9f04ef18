package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
)

// UpdateInput carries the admin settings form.
type UpdateInput struct {
	SiteName            string          `json:"site_name" validate:"required,min=1,max=160"`
	SiteNameEn          *string         `json:"site_name_en,omitempty" validate:"omitempty,max=160"`
	ContactEmail        string          `json:"contact_email" validate:"required,email"`
	ContactPhone        *string         `json:"contact_phone,omitempty" validate:"omitempty,max=32"`
	WhatsAppNumber      *string         `json:"whatsapp_number,omitempty" validate:"omitempty,max=32"`
	InstagramURL        *string         `json:"instagram_url,omitempty" validate:"omitempty,url"`
	FacebookURL         *string         `json:"facebook_url,omitempty" validate:"omitempty,url"`
	TelegramURL         *string         `json:"telegram_url,omitempty" validate:"omitempty,url"`
	DefaultLocale       string          `json:"default_locale" validate:"required,oneof=ar en"`
	DefaultBookingPrice decimal.Decimal `json:"default_booking_price"`
}

// PublicSettings is the subset exposed on the public site.
type PublicSettings struct {
	SiteName       string  `json:"site_name"`
	SiteNameEn     *string `json:"site_name_en,omitempty"`
	ContactEmail   string  `json:"contact_email"`
	ContactPhone   *string `json:"contact_phone,omitempty"`
	WhatsAppNumber *string `json:"whatsapp_number,omitempty"`
	InstagramURL   *string `json:"instagram_url,omitempty"`
	FacebookURL    *string `json:"facebook_url,omitempty"`
	TelegramURL    *string `json:"telegram_url,omitempty"`
	DefaultLocale  string  `json:"default_locale"`
}

// Defaults seed the settings row before an admin saves one.
type Defaults struct {
	SiteName      string
	ContactEmail  string
	DefaultLocale string
	BookingPrice  decimal.Decimal
}

// Service reads and updates the single site settings row.
type Service interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Public(ctx context.Context) (*PublicSettings, error)
	Update(ctx context.Context, input UpdateInput) (*models.SiteSettings, error)
	DefaultBookingPrice(ctx context.Context) (decimal.Decimal, error)
}

type service struct {
	repo     Repository
	defaults Defaults
}

// NewService wires settings dependencies.
func NewService(repo Repository, defaults Defaults) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if defaults.SiteName == "" {
		defaults.SiteName = "نت ويف"
	}
	if defaults.DefaultLocale == "" {
		defaults.DefaultLocale = "ar"
	}
	if defaults.BookingPrice.Sign() <= 0 {
		defaults.BookingPrice = decimal.NewFromInt(50000)
	}
	return &service{repo: repo, defaults: defaults}, nil
}

// Get returns the stored row, falling back to configured defaults when no
// admin has saved settings yet. The fallback is not persisted.
func (s *service) Get(ctx context.Context) (*models.SiteSettings, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.defaultRow(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	return row, nil
}

func (s *service) Public(ctx context.Context) (*PublicSettings, error) {
	row, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &PublicSettings{
		SiteName:       row.SiteName,
		SiteNameEn:     row.SiteNameEn,
		ContactEmail:   row.ContactEmail,
		ContactPhone:   row.ContactPhone,
		WhatsAppNumber: row.WhatsAppNumber,
		InstagramURL:   row.InstagramURL,
		FacebookURL:    row.FacebookURL,
		TelegramURL:    row.TelegramURL,
		DefaultLocale:  row.DefaultLocale,
	}, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.SiteSettings, error) {
	if input.DefaultBookingPrice.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "default booking price must be positive")
	}
	row := &models.SiteSettings{
		SiteName:            strings.TrimSpace(input.SiteName),
		SiteNameEn:          input.SiteNameEn,
		ContactEmail:        strings.TrimSpace(input.ContactEmail),
		ContactPhone:        input.ContactPhone,
		WhatsAppNumber:      input.WhatsAppNumber,
		InstagramURL:        input.InstagramURL,
		FacebookURL:         input.FacebookURL,
		TelegramURL:         input.TelegramURL,
		DefaultLocale:       input.DefaultLocale,
		DefaultBookingPrice: input.DefaultBookingPrice,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save settings")
	}
	return row, nil
}

// DefaultBookingPrice returns the booking price admins configured, or the
// deployment default when the settings row does not exist yet.
func (s *service) DefaultBookingPrice(ctx context.Context) (decimal.Decimal, error) {
	row, err := s.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if row.DefaultBookingPrice.Sign() <= 0 {
		return s.defaults.BookingPrice, nil
	}
	return row.DefaultBookingPrice, nil
}

func (s *service) defaultRow() *models.SiteSettings {
	return &models.SiteSettings{
		ID:                  settingsRowID,
		SiteName:            s.defaults.SiteName,
		ContactEmail:        s.defaults.ContactEmail,
		DefaultLocale:       s.defaults.DefaultLocale,
		DefaultBookingPrice: s.defaults.BookingPrice,
	}
}
