package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
)

// ServiceDTO is the transport shape for catalog services.
type ServiceDTO struct {
	ID          uuid.UUID       `json:"id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	TitleEn     *string         `json:"title_en,omitempty"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Duration    *string         `json:"duration,omitempty"`
	Icon        *string         `json:"icon,omitempty"`
	Featured    bool            `json:"featured"`
	Published   bool            `json:"published"`
	SortOrder   int             `json:"sort_order"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// UpsertServiceInput carries admin create/update fields for a service.
type UpsertServiceInput struct {
	Slug        string          `json:"slug" validate:"required,min=2,max=80"`
	Title       string          `json:"title" validate:"required,min=2,max=160"`
	TitleEn     *string         `json:"title_en,omitempty" validate:"omitempty,max=160"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Duration    *string         `json:"duration,omitempty"`
	Icon        *string         `json:"icon,omitempty"`
	Featured    bool            `json:"featured"`
	Published   *bool           `json:"published,omitempty"`
	SortOrder   int             `json:"sort_order"`
}

// FromModel converts a service row into its transport shape.
func FromModel(s *models.Service) ServiceDTO {
	return ServiceDTO{
		ID:          s.ID,
		Slug:        s.Slug,
		Title:       s.Title,
		TitleEn:     s.TitleEn,
		Description: s.Description,
		Price:       s.Price,
		Duration:    s.Duration,
		Icon:        s.Icon,
		Featured:    s.Featured,
		Published:   s.Published,
		SortOrder:   s.SortOrder,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
