package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// File is a purchasable digital asset listed in the store.
type File struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string          `gorm:"column:title;type:text;not null"`
	TitleEn     *string         `gorm:"column:title_en;type:text"`
	Description *string         `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	FileURL     string          `gorm:"column:file_url;type:text;not null"`
	FileName    string          `gorm:"column:file_name;type:text;not null"`
	Category    *string         `gorm:"column:category;type:text"`
	Published   bool            `gorm:"column:published;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
