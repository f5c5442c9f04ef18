package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
)

// settingsRowID keys the single configuration row.
const settingsRowID = 1

// Repository persists the single site settings row.
type Repository interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Upsert(ctx context.Context, row *models.SiteSettings) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Get(ctx context.Context) (*models.SiteSettings, error) {
	var row models.SiteSettings
	err := r.db.WithContext(ctx).First(&row, "id = ?", settingsRowID).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repositoryImpl) Upsert(ctx context.Context, row *models.SiteSettings) error {
	row.ID = settingsRowID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(row).Error
}
