package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/netwave-iq/netwave-backend/api/responses"
	"github.com/netwave-iq/netwave-backend/api/validators"
	"github.com/netwave-iq/netwave-backend/internal/content"
	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
)

// Landing bundles every published content collection for the public site.
func Landing(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		landing, err := svc.Landing(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, landing)
	}
}

func listContent[T any](svc content.Service, logg *logger.Logger, fetch func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		items, err := fetch(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func createContent[I any, T any](svc content.Service, logg *logger.Logger, create func(context.Context, I) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		var body I
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func updateContent[I any, T any](svc content.Service, logg *logger.Logger, param string, update func(context.Context, uuid.UUID, I) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		id, err := pathUUID(r, param)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body I
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func deleteContent(svc content.Service, logg *logger.Logger, param string, remove func(context.Context, uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		id, err := pathUUID(r, param)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := remove(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ListCategories(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent[models.Category](svc, logg, func(ctx context.Context) ([]models.Category, error) {
		return svc.ListPublishedCategories(ctx)
	})
}

func ListFAQs(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent[models.FAQ](svc, logg, func(ctx context.Context) ([]models.FAQ, error) {
		return svc.ListPublishedFAQs(ctx)
	})
}

func ListTestimonials(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent[models.Testimonial](svc, logg, func(ctx context.Context) ([]models.Testimonial, error) {
		return svc.ListPublishedTestimonials(ctx)
	})
}

func ListTools(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent[models.Tool](svc, logg, func(ctx context.Context) ([]models.Tool, error) {
		return svc.ListPublishedTools(ctx)
	})
}

func AdminListCategories(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent[models.Category](svc, logg, func(ctx context.Context) ([]models.Category, error) {
		return svc.ListAllCategories(ctx)
	})
}

func AdminCreateCategory(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return createContent(svc, logg, func(ctx context.Context, input content.UpsertCategoryInput) (*models.Category, error) {
		return svc.CreateCategory(ctx, input)
	})
}

func AdminUpdateCategory(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return updateContent(svc, logg, "categoryId", func(ctx context.Context, id uuid.UUID, input content.UpsertCategoryInput) (*models.Category, error) {
		return svc.UpdateCategory(ctx, id, input)
	})
}

func AdminDeleteCategory(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteContent(svc, logg, "categoryId", func(ctx context.Context, id uuid.UUID) error {
		return svc.DeleteCategory(ctx, id)
	})
}

func AdminListFAQs(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent[models.FAQ](svc, logg, func(ctx context.Context) ([]models.FAQ, error) {
		return svc.ListAllFAQs(ctx)
	})
}

func AdminCreateFAQ(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return createContent(svc, logg, func(ctx context.Context, input content.UpsertFAQInput) (*models.FAQ, error) {
		return svc.CreateFAQ(ctx, input)
	})
}

func AdminUpdateFAQ(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return updateContent(svc, logg, "faqId", func(ctx context.Context, id uuid.UUID, input content.UpsertFAQInput) (*models.FAQ, error) {
		return svc.UpdateFAQ(ctx, id, input)
	})
}

func AdminDeleteFAQ(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteContent(svc, logg, "faqId", func(ctx context.Context, id uuid.UUID) error {
		return svc.DeleteFAQ(ctx, id)
	})
}

func AdminListTestimonials(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent[models.Testimonial](svc, logg, func(ctx context.Context) ([]models.Testimonial, error) {
		return svc.ListAllTestimonials(ctx)
	})
}

func AdminCreateTestimonial(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return createContent(svc, logg, func(ctx context.Context, input content.UpsertTestimonialInput) (*models.Testimonial, error) {
		return svc.CreateTestimonial(ctx, input)
	})
}

func AdminUpdateTestimonial(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return updateContent(svc, logg, "testimonialId", func(ctx context.Context, id uuid.UUID, input content.UpsertTestimonialInput) (*models.Testimonial, error) {
		return svc.UpdateTestimonial(ctx, id, input)
	})
}

func AdminDeleteTestimonial(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteContent(svc, logg, "testimonialId", func(ctx context.Context, id uuid.UUID) error {
		return svc.DeleteTestimonial(ctx, id)
	})
}

func AdminListTools(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return listContent[models.Tool](svc, logg, func(ctx context.Context) ([]models.Tool, error) {
		return svc.ListAllTools(ctx)
	})
}

func AdminCreateTool(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return createContent(svc, logg, func(ctx context.Context, input content.UpsertToolInput) (*models.Tool, error) {
		return svc.CreateTool(ctx, input)
	})
}

func AdminUpdateTool(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return updateContent(svc, logg, "toolId", func(ctx context.Context, id uuid.UUID, input content.UpsertToolInput) (*models.Tool, error) {
		return svc.UpdateTool(ctx, id, input)
	})
}

func AdminDeleteTool(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteContent(svc, logg, "toolId", func(ctx context.Context, id uuid.UUID) error {
		return svc.DeleteTool(ctx, id)
	})
}
