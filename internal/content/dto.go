package content

import (
	"github.com/google/uuid"
)

// UpsertCategoryInput carries admin create/update fields for a category.
type UpsertCategoryInput struct {
	Slug      string  `json:"slug" validate:"required,min=2,max=80"`
	Name      string  `json:"name" validate:"required,min=1,max=160"`
	NameEn    *string `json:"name_en,omitempty" validate:"omitempty,max=160"`
	Icon      *string `json:"icon,omitempty"`
	Published *bool   `json:"published,omitempty"`
	SortOrder int     `json:"sort_order"`
}

// UpsertFAQInput carries admin create/update fields for an FAQ entry.
type UpsertFAQInput struct {
	Question   string  `json:"question" validate:"required,min=3"`
	QuestionEn *string `json:"question_en,omitempty"`
	Answer     string  `json:"answer" validate:"required,min=3"`
	AnswerEn   *string `json:"answer_en,omitempty"`
	Published  *bool   `json:"published,omitempty"`
	SortOrder  int     `json:"sort_order"`
}

// UpsertTestimonialInput carries admin create/update fields for a testimonial.
type UpsertTestimonialInput struct {
	Author    string  `json:"author" validate:"required,min=1,max=160"`
	Role      *string `json:"role,omitempty" validate:"omitempty,max=160"`
	Quote     string  `json:"quote" validate:"required,min=3"`
	QuoteEn   *string `json:"quote_en,omitempty"`
	Rating    int     `json:"rating" validate:"min=1,max=5"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Published *bool   `json:"published,omitempty"`
	SortOrder int     `json:"sort_order"`
}

// UpsertToolInput carries admin create/update fields for a free tool entry.
type UpsertToolInput struct {
	Title       string     `json:"title" validate:"required,min=2,max=160"`
	TitleEn     *string    `json:"title_en,omitempty" validate:"omitempty,max=160"`
	Description *string    `json:"description,omitempty"`
	URL         string     `json:"url" validate:"required,url"`
	Icon        *string    `json:"icon,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Published   *bool      `json:"published,omitempty"`
	SortOrder   int        `json:"sort_order"`
}
