package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
)

// Landing bundles every published collection for the public landing page.
type Landing struct {
	Categories   []models.Category    `json:"categories"`
	FAQs         []models.FAQ         `json:"faqs"`
	Testimonials []models.Testimonial `json:"testimonials"`
	Tools        []models.Tool        `json:"tools"`
}

// Service defines public listing and admin CRUD for site content.
type Service interface {
	Landing(ctx context.Context) (*Landing, error)
	ListPublishedCategories(ctx context.Context) ([]models.Category, error)
	ListPublishedFAQs(ctx context.Context) ([]models.FAQ, error)
	ListPublishedTestimonials(ctx context.Context) ([]models.Testimonial, error)
	ListPublishedTools(ctx context.Context) ([]models.Tool, error)

	ListAllCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, input UpsertCategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input UpsertCategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListAllFAQs(ctx context.Context) ([]models.FAQ, error)
	CreateFAQ(ctx context.Context, input UpsertFAQInput) (*models.FAQ, error)
	UpdateFAQ(ctx context.Context, id uuid.UUID, input UpsertFAQInput) (*models.FAQ, error)
	DeleteFAQ(ctx context.Context, id uuid.UUID) error

	ListAllTestimonials(ctx context.Context) ([]models.Testimonial, error)
	CreateTestimonial(ctx context.Context, input UpsertTestimonialInput) (*models.Testimonial, error)
	UpdateTestimonial(ctx context.Context, id uuid.UUID, input UpsertTestimonialInput) (*models.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id uuid.UUID) error

	ListAllTools(ctx context.Context) ([]models.Tool, error)
	CreateTool(ctx context.Context, input UpsertToolInput) (*models.Tool, error)
	UpdateTool(ctx context.Context, id uuid.UUID, input UpsertToolInput) (*models.Tool, error)
	DeleteTool(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService wires content dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("content repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Landing(ctx context.Context) (*Landing, error) {
	categories, err := s.ListPublishedCategories(ctx)
	if err != nil {
		return nil, err
	}
	faqs, err := s.ListPublishedFAQs(ctx)
	if err != nil {
		return nil, err
	}
	testimonials, err := s.ListPublishedTestimonials(ctx)
	if err != nil {
		return nil, err
	}
	tools, err := s.ListPublishedTools(ctx)
	if err != nil {
		return nil, err
	}
	return &Landing{
		Categories:   categories,
		FAQs:         faqs,
		Testimonials: testimonials,
		Tools:        tools,
	}, nil
}

func (s *service) ListPublishedCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.ListPublishedCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

func (s *service) ListPublishedFAQs(ctx context.Context) ([]models.FAQ, error) {
	rows, err := s.repo.ListPublishedFAQs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list faqs")
	}
	return rows, nil
}

func (s *service) ListPublishedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	rows, err := s.repo.ListPublishedTestimonials(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list testimonials")
	}
	return rows, nil
}

func (s *service) ListPublishedTools(ctx context.Context) ([]models.Tool, error) {
	rows, err := s.repo.ListPublishedTools(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tools")
	}
	return rows, nil
}

func (s *service) ListAllCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.ListAllCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

func (s *service) CreateCategory(ctx context.Context, input UpsertCategoryInput) (*models.Category, error) {
	row := &models.Category{
		ID:        uuid.New(),
		Slug:      strings.ToLower(strings.TrimSpace(input.Slug)),
		Name:      strings.TrimSpace(input.Name),
		NameEn:    input.NameEn,
		Icon:      input.Icon,
		Published: publishedOrDefault(input.Published),
		SortOrder: input.SortOrder,
	}
	if err := s.repo.CreateCategory(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return row, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input UpsertCategoryInput) (*models.Category, error) {
	row, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	row.Name = strings.TrimSpace(input.Name)
	row.NameEn = input.NameEn
	row.Icon = input.Icon
	if input.Published != nil {
		row.Published = *input.Published
	}
	row.SortOrder = input.SortOrder
	if err := s.repo.SaveCategory(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return row, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	found, err := s.repo.DeleteCategory(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return nil
}

func (s *service) ListAllFAQs(ctx context.Context) ([]models.FAQ, error) {
	rows, err := s.repo.ListAllFAQs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list faqs")
	}
	return rows, nil
}

func (s *service) CreateFAQ(ctx context.Context, input UpsertFAQInput) (*models.FAQ, error) {
	row := &models.FAQ{
		ID:         uuid.New(),
		Question:   strings.TrimSpace(input.Question),
		QuestionEn: input.QuestionEn,
		Answer:     strings.TrimSpace(input.Answer),
		AnswerEn:   input.AnswerEn,
		Published:  publishedOrDefault(input.Published),
		SortOrder:  input.SortOrder,
	}
	if err := s.repo.CreateFAQ(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create faq")
	}
	return row, nil
}

func (s *service) UpdateFAQ(ctx context.Context, id uuid.UUID, input UpsertFAQInput) (*models.FAQ, error) {
	row, err := s.findFAQ(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Question = strings.TrimSpace(input.Question)
	row.QuestionEn = input.QuestionEn
	row.Answer = strings.TrimSpace(input.Answer)
	row.AnswerEn = input.AnswerEn
	if input.Published != nil {
		row.Published = *input.Published
	}
	row.SortOrder = input.SortOrder
	if err := s.repo.SaveFAQ(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update faq")
	}
	return row, nil
}

func (s *service) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "faq id required")
	}
	found, err := s.repo.DeleteFAQ(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete faq")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "faq not found")
	}
	return nil
}

func (s *service) ListAllTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	rows, err := s.repo.ListAllTestimonials(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list testimonials")
	}
	return rows, nil
}

func (s *service) CreateTestimonial(ctx context.Context, input UpsertTestimonialInput) (*models.Testimonial, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	row := &models.Testimonial{
		ID:        uuid.New(),
		Author:    strings.TrimSpace(input.Author),
		Role:      input.Role,
		Quote:     strings.TrimSpace(input.Quote),
		QuoteEn:   input.QuoteEn,
		Rating:    input.Rating,
		AvatarURL: input.AvatarURL,
		Published: publishedOrDefault(input.Published),
		SortOrder: input.SortOrder,
	}
	if err := s.repo.CreateTestimonial(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create testimonial")
	}
	return row, nil
}

func (s *service) UpdateTestimonial(ctx context.Context, id uuid.UUID, input UpsertTestimonialInput) (*models.Testimonial, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	row, err := s.findTestimonial(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Author = strings.TrimSpace(input.Author)
	row.Role = input.Role
	row.Quote = strings.TrimSpace(input.Quote)
	row.QuoteEn = input.QuoteEn
	row.Rating = input.Rating
	row.AvatarURL = input.AvatarURL
	if input.Published != nil {
		row.Published = *input.Published
	}
	row.SortOrder = input.SortOrder
	if err := s.repo.SaveTestimonial(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update testimonial")
	}
	return row, nil
}

func (s *service) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "testimonial id required")
	}
	found, err := s.repo.DeleteTestimonial(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete testimonial")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "testimonial not found")
	}
	return nil
}

func (s *service) ListAllTools(ctx context.Context) ([]models.Tool, error) {
	rows, err := s.repo.ListAllTools(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tools")
	}
	return rows, nil
}

func (s *service) CreateTool(ctx context.Context, input UpsertToolInput) (*models.Tool, error) {
	row := &models.Tool{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		TitleEn:     input.TitleEn,
		Description: input.Description,
		URL:         strings.TrimSpace(input.URL),
		Icon:        input.Icon,
		CategoryID:  input.CategoryID,
		Published:   publishedOrDefault(input.Published),
		SortOrder:   input.SortOrder,
	}
	if err := s.repo.CreateTool(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create tool")
	}
	return row, nil
}

func (s *service) UpdateTool(ctx context.Context, id uuid.UUID, input UpsertToolInput) (*models.Tool, error) {
	row, err := s.findTool(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Title = strings.TrimSpace(input.Title)
	row.TitleEn = input.TitleEn
	row.Description = input.Description
	row.URL = strings.TrimSpace(input.URL)
	row.Icon = input.Icon
	row.CategoryID = input.CategoryID
	if input.Published != nil {
		row.Published = *input.Published
	}
	row.SortOrder = input.SortOrder
	if err := s.repo.SaveTool(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update tool")
	}
	return row, nil
}

func (s *service) DeleteTool(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "tool id required")
	}
	found, err := s.repo.DeleteTool(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete tool")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "tool not found")
	}
	return nil
}

func (s *service) findCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	row, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find category")
	}
	return row, nil
}

func (s *service) findFAQ(ctx context.Context, id uuid.UUID) (*models.FAQ, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "faq id required")
	}
	row, err := s.repo.FindFAQByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "faq not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find faq")
	}
	return row, nil
}

func (s *service) findTestimonial(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "testimonial id required")
	}
	row, err := s.repo.FindTestimonialByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "testimonial not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find testimonial")
	}
	return row, nil
}

func (s *service) findTool(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tool id required")
	}
	row, err := s.repo.FindToolByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tool not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find tool")
	}
	return row, nil
}

func publishedOrDefault(value *bool) bool {
	if value == nil {
		return true
	}
	return *value
}
