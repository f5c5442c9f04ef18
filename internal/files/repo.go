package files

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
)

// Repository exposes file persistence operations.
type Repository interface {
	Create(ctx context.Context, file *models.File) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.File, error)
	FindPublishedByID(ctx context.Context, id uuid.UUID) (*models.File, error)
	ListPublished(ctx context.Context, category string) ([]models.File, error)
	ListAll(ctx context.Context) ([]models.File, error)
	Save(ctx context.Context, file *models.File) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a files repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, file *models.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	var file models.File
	if err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *repositoryImpl) FindPublishedByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	var file models.File
	if err := r.db.WithContext(ctx).First(&file, "id = ? AND published", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *repositoryImpl) ListPublished(ctx context.Context, category string) ([]models.File, error) {
	query := r.db.WithContext(ctx).Where("published = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var files []models.File
	err := query.Order("created_at DESC").Find(&files).Error
	return files, err
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]models.File, error) {
	var files []models.File
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&files).Error
	return files, err
}

func (r *repositoryImpl) Save(ctx context.Context, file *models.File) error {
	return r.db.WithContext(ctx).Save(file).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.File{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.File{}).Count(&count).Error
	return count, err
}
