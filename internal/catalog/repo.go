package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
)

// Repository exposes service catalog persistence operations.
type Repository interface {
	Create(ctx context.Context, svc *models.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	FindPublishedByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*models.Service, error)
	ListPublished(ctx context.Context) ([]models.Service, error)
	ListAll(ctx context.Context) ([]models.Service, error)
	Save(ctx context.Context, svc *models.Service) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a catalog repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *repositoryImpl) FindPublishedByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, "id = ? AND published = ?", id, true).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *repositoryImpl) FindPublishedBySlug(ctx context.Context, slug string) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, "slug = ? AND published = ?", slug, true).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *repositoryImpl) ListPublished(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("sort_order ASC, created_at ASC").
		Find(&services).Error
	return services, err
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, created_at ASC").
		Find(&services).Error
	return services, err
}

func (r *repositoryImpl) Save(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Save(svc).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Service{}).Count(&count).Error
	return count, err
}
