package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SiteSettings is the single-row site configuration. The row is keyed at
// ID 1 and upserted in place.
type SiteSettings struct {
	ID                  int             `gorm:"column:id;primaryKey"`
	SiteName            string          `gorm:"column:site_name;type:text;not null"`
	SiteNameEn          *string         `gorm:"column:site_name_en;type:text"`
	ContactEmail        string          `gorm:"column:contact_email;type:text;not null"`
	ContactPhone        *string         `gorm:"column:contact_phone;type:text"`
	WhatsAppNumber      *string         `gorm:"column:whatsapp_number;type:text"`
	InstagramURL        *string         `gorm:"column:instagram_url;type:text"`
	FacebookURL         *string         `gorm:"column:facebook_url;type:text"`
	TelegramURL         *string         `gorm:"column:telegram_url;type:text"`
	DefaultLocale       string          `gorm:"column:default_locale;type:text;not null;default:'ar'"`
	DefaultBookingPrice decimal.Decimal `gorm:"column:default_booking_price;type:numeric(12,2);not null"`
	UpdatedAt           time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
