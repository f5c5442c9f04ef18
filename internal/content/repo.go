package content

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
)

// Repository exposes persistence for the site content collections.
type Repository interface {
	ListPublishedCategories(ctx context.Context) ([]models.Category, error)
	ListAllCategories(ctx context.Context) ([]models.Category, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, row *models.Category) error
	SaveCategory(ctx context.Context, row *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error)

	ListPublishedFAQs(ctx context.Context) ([]models.FAQ, error)
	ListAllFAQs(ctx context.Context) ([]models.FAQ, error)
	FindFAQByID(ctx context.Context, id uuid.UUID) (*models.FAQ, error)
	CreateFAQ(ctx context.Context, row *models.FAQ) error
	SaveFAQ(ctx context.Context, row *models.FAQ) error
	DeleteFAQ(ctx context.Context, id uuid.UUID) (bool, error)

	ListPublishedTestimonials(ctx context.Context) ([]models.Testimonial, error)
	ListAllTestimonials(ctx context.Context) ([]models.Testimonial, error)
	FindTestimonialByID(ctx context.Context, id uuid.UUID) (*models.Testimonial, error)
	CreateTestimonial(ctx context.Context, row *models.Testimonial) error
	SaveTestimonial(ctx context.Context, row *models.Testimonial) error
	DeleteTestimonial(ctx context.Context, id uuid.UUID) (bool, error)

	ListPublishedTools(ctx context.Context) ([]models.Tool, error)
	ListAllTools(ctx context.Context) ([]models.Tool, error)
	FindToolByID(ctx context.Context, id uuid.UUID) (*models.Tool, error)
	CreateTool(ctx context.Context, row *models.Tool) error
	SaveTool(ctx context.Context, row *models.Tool) error
	DeleteTool(ctx context.Context, id uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a content repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

const contentOrder = "sort_order ASC, created_at ASC"

func (r *repositoryImpl) ListPublishedCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).Where("published = ?", true).Order(contentOrder).Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) ListAllCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).Order(contentOrder).Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var row models.Category
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repositoryImpl) CreateCategory(ctx context.Context, row *models.Category) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repositoryImpl) SaveCategory(ctx context.Context, row *models.Category) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *repositoryImpl) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) ListPublishedFAQs(ctx context.Context) ([]models.FAQ, error) {
	var rows []models.FAQ
	err := r.db.WithContext(ctx).Where("published = ?", true).Order(contentOrder).Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) ListAllFAQs(ctx context.Context) ([]models.FAQ, error) {
	var rows []models.FAQ
	err := r.db.WithContext(ctx).Order(contentOrder).Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) FindFAQByID(ctx context.Context, id uuid.UUID) (*models.FAQ, error) {
	var row models.FAQ
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repositoryImpl) CreateFAQ(ctx context.Context, row *models.FAQ) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repositoryImpl) SaveFAQ(ctx context.Context, row *models.FAQ) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *repositoryImpl) DeleteFAQ(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.FAQ{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) ListPublishedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	var rows []models.Testimonial
	err := r.db.WithContext(ctx).Where("published = ?", true).Order(contentOrder).Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) ListAllTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	var rows []models.Testimonial
	err := r.db.WithContext(ctx).Order(contentOrder).Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) FindTestimonialByID(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	var row models.Testimonial
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repositoryImpl) CreateTestimonial(ctx context.Context, row *models.Testimonial) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repositoryImpl) SaveTestimonial(ctx context.Context, row *models.Testimonial) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *repositoryImpl) DeleteTestimonial(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Testimonial{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) ListPublishedTools(ctx context.Context) ([]models.Tool, error) {
	var rows []models.Tool
	err := r.db.WithContext(ctx).Where("published = ?", true).Order(contentOrder).Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) ListAllTools(ctx context.Context) ([]models.Tool, error) {
	var rows []models.Tool
	err := r.db.WithContext(ctx).Order(contentOrder).Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) FindToolByID(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	var row models.Tool
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repositoryImpl) CreateTool(ctx context.Context, row *models.Tool) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repositoryImpl) SaveTool(ctx context.Context, row *models.Tool) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *repositoryImpl) DeleteTool(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Tool{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
