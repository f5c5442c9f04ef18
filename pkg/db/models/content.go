package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups files and tools on the public site.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug      string    `gorm:"column:slug;type:text;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;type:text;not null"`
	NameEn    *string   `gorm:"column:name_en;type:text"`
	Icon      *string   `gorm:"column:icon;type:text"`
	Published bool      `gorm:"column:published;not null"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// FAQ is a bilingual question/answer pair.
type FAQ struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Question   string    `gorm:"column:question;type:text;not null"`
	QuestionEn *string   `gorm:"column:question_en;type:text"`
	Answer     string    `gorm:"column:answer;type:text;not null"`
	AnswerEn   *string   `gorm:"column:answer_en;type:text"`
	Published  bool      `gorm:"column:published;not null"`
	SortOrder  int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Testimonial is a customer quote shown on the landing page.
type Testimonial struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Author     string    `gorm:"column:author;type:text;not null"`
	Role       *string   `gorm:"column:role;type:text"`
	Quote      string    `gorm:"column:quote;type:text;not null"`
	QuoteEn    *string   `gorm:"column:quote_en;type:text"`
	Rating     int       `gorm:"column:rating;not null;default:5"`
	AvatarURL  *string   `gorm:"column:avatar_url;type:text"`
	Published  bool      `gorm:"column:published;not null"`
	SortOrder  int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Tool is a free resource linked from the site.
type Tool struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string     `gorm:"column:title;type:text;not null"`
	TitleEn     *string    `gorm:"column:title_en;type:text"`
	Description *string    `gorm:"column:description;type:text"`
	URL         string     `gorm:"column:url;type:text;not null"`
	Icon        *string    `gorm:"column:icon;type:text"`
	CategoryID  *uuid.UUID `gorm:"column:category_id;type:uuid"`
	Published   bool       `gorm:"column:published;not null"`
	SortOrder   int        `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
