package catalog

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

// Service defines public listing and admin CRUD for the catalog.
type Service interface {
	ListPublished(ctx context.Context) ([]ServiceDTO, error)
	GetBySlug(ctx context.Context, slug string) (*ServiceDTO, error)
	ListAll(ctx context.Context) ([]ServiceDTO, error)
	Create(ctx context.Context, input UpsertServiceInput) (*ServiceDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertServiceInput) (*ServiceDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService wires catalog dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListPublished(ctx context.Context) ([]ServiceDTO, error) {
	rows, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list services")
	}
	return toDTOs(rows), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*ServiceDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service slug required")
	}
	row, err := s.repo.FindPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find service")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *service) ListAll(ctx context.Context) ([]ServiceDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list services")
	}
	return toDTOs(rows), nil
}

func (s *service) Create(ctx context.Context, input UpsertServiceInput) (*ServiceDTO, error) {
	if input.Price.Sign() < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	published := true
	if input.Published != nil {
		published = *input.Published
	}
	row := &models.Service{
		Slug:        normalizeSlug(input.Slug),
		Title:       strings.TrimSpace(input.Title),
		TitleEn:     input.TitleEn,
		Description: input.Description,
		Price:       input.Price,
		Duration:    input.Duration,
		Icon:        input.Icon,
		Featured:    input.Featured,
		Published:   published,
		SortOrder:   input.SortOrder,
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create service")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertServiceInput) (*ServiceDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service id required")
	}
	if input.Price.Sign() < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find service")
	}

	row.Slug = normalizeSlug(input.Slug)
	row.Title = strings.TrimSpace(input.Title)
	row.TitleEn = input.TitleEn
	row.Description = input.Description
	row.Price = input.Price
	row.Duration = input.Duration
	row.Icon = input.Icon
	row.Featured = input.Featured
	if input.Published != nil {
		row.Published = *input.Published
	}
	row.SortOrder = input.SortOrder

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update service")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "service id required")
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete service")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
	}
	return nil
}

func toDTOs(rows []models.Service) []ServiceDTO {
	items := make([]ServiceDTO, 0, len(rows))
	for i := range rows {
		items = append(items, FromModel(&rows[i]))
	}
	return items
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
