package files

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
)

// FileDTO is the public transport shape. It never carries the download URL.
type FileDTO struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	TitleEn     *string         `json:"title_en,omitempty"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	FileName    string          `json:"file_name"`
	Category    *string         `json:"category,omitempty"`
	Published   bool            `json:"published"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DownloadDTO is returned only to entitled users.
type DownloadDTO struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	FileURL  string    `json:"file_url"`
	FileName string    `json:"file_name"`
}

// UpsertFileInput carries admin create/update fields for a file.
type UpsertFileInput struct {
	Title       string          `json:"title" validate:"required,min=2,max=160"`
	TitleEn     *string         `json:"title_en,omitempty" validate:"omitempty,max=160"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	FileURL     string          `json:"file_url" validate:"required,url"`
	FileName    string          `json:"file_name" validate:"required,max=255"`
	Category    *string         `json:"category,omitempty" validate:"omitempty,max=80"`
	Published   *bool           `json:"published,omitempty"`
}

// FromModel converts a file row into its public transport shape.
func FromModel(f *models.File) FileDTO {
	return FileDTO{
		ID:          f.ID,
		Title:       f.Title,
		TitleEn:     f.TitleEn,
		Description: f.Description,
		Price:       f.Price,
		FileName:    f.FileName,
		Category:    f.Category,
		Published:   f.Published,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
