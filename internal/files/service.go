package files

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

// Service defines public file listing, entitlement-gated downloads, and
// admin CRUD.
type Service interface {
	ListPublished(ctx context.Context, category string) ([]FileDTO, error)
	Download(ctx context.Context, fileID uuid.UUID, userID string) (*DownloadDTO, error)
	ListAll(ctx context.Context) ([]FileDTO, error)
	Create(ctx context.Context, input UpsertFileInput) (*FileDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertFileInput) (*FileDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type entitlementChecker interface {
	HasEntitlement(ctx context.Context, fileID uuid.UUID, userID string) (bool, error)
}

type service struct {
	repo         Repository
	entitlements entitlementChecker
}

// NewService wires file dependencies.
func NewService(repo Repository, entitlements entitlementChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("files repository required")
	}
	if entitlements == nil {
		return nil, fmt.Errorf("entitlement checker required")
	}
	return &service{repo: repo, entitlements: entitlements}, nil
}

func (s *service) ListPublished(ctx context.Context, category string) ([]FileDTO, error) {
	rows, err := s.repo.ListPublished(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list files")
	}
	return toDTOs(rows), nil
}

// Download returns the signed asset location for a user who owns the
// file. Unentitled users get a FORBIDDEN, not a NOT_FOUND, so the
// frontend can route them to purchase.
func (s *service) Download(ctx context.Context, fileID uuid.UUID, userID string) (*DownloadDTO, error) {
	if fileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file id required")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	file, err := s.repo.FindPublishedByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find file")
	}

	entitled, err := s.entitlements.HasEntitlement(ctx, fileID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check entitlement")
	}
	if !entitled {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "file has not been purchased")
	}

	return &DownloadDTO{
		ID:       file.ID,
		Title:    file.Title,
		FileURL:  file.FileURL,
		FileName: file.FileName,
	}, nil
}

func (s *service) ListAll(ctx context.Context) ([]FileDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list files")
	}
	return toDTOs(rows), nil
}

func (s *service) Create(ctx context.Context, input UpsertFileInput) (*FileDTO, error) {
	if input.Price.Sign() < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	published := true
	if input.Published != nil {
		published = *input.Published
	}
	row := &models.File{
		Title:       strings.TrimSpace(input.Title),
		TitleEn:     input.TitleEn,
		Description: input.Description,
		Price:       input.Price,
		FileURL:     strings.TrimSpace(input.FileURL),
		FileName:    strings.TrimSpace(input.FileName),
		Category:    input.Category,
		Published:   published,
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create file")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertFileInput) (*FileDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file id required")
	}
	if input.Price.Sign() < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find file")
	}

	row.Title = strings.TrimSpace(input.Title)
	row.TitleEn = input.TitleEn
	row.Description = input.Description
	row.Price = input.Price
	row.FileURL = strings.TrimSpace(input.FileURL)
	row.FileName = strings.TrimSpace(input.FileName)
	row.Category = input.Category
	if input.Published != nil {
		row.Published = *input.Published
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update file")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "file id required")
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete file")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
	}
	return nil
}

func toDTOs(rows []models.File) []FileDTO {
	items := make([]FileDTO, 0, len(rows))
	for i := range rows {
		items = append(items, FromModel(&rows[i]))
	}
	return items
}
