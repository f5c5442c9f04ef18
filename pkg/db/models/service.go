package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a bookable offering on the marketing site.
type Service struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug        string          `gorm:"column:slug;type:text;not null;uniqueIndex"`
	Title       string          `gorm:"column:title;type:text;not null"`
	TitleEn     *string         `gorm:"column:title_en;type:text"`
	Description *string         `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Duration    *string         `gorm:"column:duration;type:text"`
	Icon        *string         `gorm:"column:icon;type:text"`
	Featured    bool            `gorm:"column:featured;not null;default:false"`
	Published   bool            `gorm:"column:published;not null"`
	SortOrder   int             `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
