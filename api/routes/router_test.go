package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/netwave-iq/netwave-backend/internal/auth"
	"github.com/netwave-iq/netwave-backend/internal/bookings"
	"github.com/netwave-iq/netwave-backend/internal/catalog"
	"github.com/netwave-iq/netwave-backend/internal/content"
	"github.com/netwave-iq/netwave-backend/internal/dashboard"
	"github.com/netwave-iq/netwave-backend/internal/files"
	"github.com/netwave-iq/netwave-backend/internal/notifications"
	"github.com/netwave-iq/netwave-backend/internal/payments"
	"github.com/netwave-iq/netwave-backend/internal/purchases"
	"github.com/netwave-iq/netwave-backend/internal/settings"
	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	pkgAuth "github.com/netwave-iq/netwave-backend/pkg/auth"
	"github.com/netwave-iq/netwave-backend/pkg/auth/session"
	"github.com/netwave-iq/netwave-backend/pkg/config"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
	"github.com/netwave-iq/netwave-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListPublished(ctx context.Context) ([]catalog.ServiceDTO, error) {
	return []catalog.ServiceDTO{}, nil
}

func (stubCatalogService) GetBySlug(ctx context.Context, slug string) (*catalog.ServiceDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) ListAll(ctx context.Context) ([]catalog.ServiceDTO, error) {
	return []catalog.ServiceDTO{}, nil
}

func (stubCatalogService) Create(ctx context.Context, input catalog.UpsertServiceInput) (*catalog.ServiceDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) Update(ctx context.Context, id uuid.UUID, input catalog.UpsertServiceInput) (*catalog.ServiceDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubFilesService struct{}

func (stubFilesService) ListPublished(ctx context.Context, category string) ([]files.FileDTO, error) {
	return []files.FileDTO{}, nil
}

func (stubFilesService) Download(ctx context.Context, fileID uuid.UUID, userID string) (*files.DownloadDTO, error) {
	panic("unimplemented")
}

func (stubFilesService) ListAll(ctx context.Context) ([]files.FileDTO, error) {
	return []files.FileDTO{}, nil
}

func (stubFilesService) Create(ctx context.Context, input files.UpsertFileInput) (*files.FileDTO, error) {
	panic("unimplemented")
}

func (stubFilesService) Update(ctx context.Context, id uuid.UUID, input files.UpsertFileInput) (*files.FileDTO, error) {
	panic("unimplemented")
}

func (stubFilesService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubBookingsService struct{}

func (stubBookingsService) Create(ctx context.Context, input bookings.CreateBookingInput) (*bookings.CreateBookingResult, error) {
	panic("unimplemented")
}

func (stubBookingsService) Get(ctx context.Context, id uuid.UUID) (*bookings.BookingDTO, error) {
	panic("unimplemented")
}

func (stubBookingsService) List(ctx context.Context, params bookings.ListParams) (*bookings.ListResult, error) {
	return &bookings.ListResult{}, nil
}

func (stubBookingsService) UpdateStatus(ctx context.Context, id uuid.UUID, target enums.BookingStatus) (*bookings.BookingDTO, error) {
	panic("unimplemented")
}

func (stubBookingsService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubPurchasesService struct{}

func (stubPurchasesService) Initiate(ctx context.Context, input purchases.InitiatePurchaseInput) (*purchases.InitiatePurchaseResult, error) {
	panic("unimplemented")
}

func (stubPurchasesService) ListByUser(ctx context.Context, userID string) ([]purchases.PurchaseDTO, error) {
	return []purchases.PurchaseDTO{}, nil
}

func (stubPurchasesService) List(ctx context.Context, limit int, cursor string) (*purchases.ListResult, error) {
	return &purchases.ListResult{}, nil
}

type stubPaymentsService struct{}

func (stubPaymentsService) ReconcileBooking(ctx context.Context, params payments.BookingCallbackParams) (*payments.BookingCallbackResult, error) {
	panic("unimplemented")
}

func (stubPaymentsService) ReconcileFilePurchase(ctx context.Context, params payments.FileCallbackParams) (*payments.FileCallbackResult, error) {
	panic("unimplemented")
}

type stubContentService struct{}

func (stubContentService) Landing(ctx context.Context) (*content.Landing, error) {
	return &content.Landing{}, nil
}

func (stubContentService) ListPublishedCategories(ctx context.Context) ([]models.Category, error) {
	return []models.Category{}, nil
}

func (stubContentService) ListPublishedFAQs(ctx context.Context) ([]models.FAQ, error) {
	return []models.FAQ{}, nil
}

func (stubContentService) ListPublishedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return []models.Testimonial{}, nil
}

func (stubContentService) ListPublishedTools(ctx context.Context) ([]models.Tool, error) {
	return []models.Tool{}, nil
}

func (stubContentService) ListAllCategories(ctx context.Context) ([]models.Category, error) {
	return []models.Category{}, nil
}

func (stubContentService) CreateCategory(ctx context.Context, input content.UpsertCategoryInput) (*models.Category, error) {
	panic("unimplemented")
}

func (stubContentService) UpdateCategory(ctx context.Context, id uuid.UUID, input content.UpsertCategoryInput) (*models.Category, error) {
	panic("unimplemented")
}

func (stubContentService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubContentService) ListAllFAQs(ctx context.Context) ([]models.FAQ, error) {
	return []models.FAQ{}, nil
}

func (stubContentService) CreateFAQ(ctx context.Context, input content.UpsertFAQInput) (*models.FAQ, error) {
	panic("unimplemented")
}

func (stubContentService) UpdateFAQ(ctx context.Context, id uuid.UUID, input content.UpsertFAQInput) (*models.FAQ, error) {
	panic("unimplemented")
}

func (stubContentService) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubContentService) ListAllTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return []models.Testimonial{}, nil
}

func (stubContentService) CreateTestimonial(ctx context.Context, input content.UpsertTestimonialInput) (*models.Testimonial, error) {
	panic("unimplemented")
}

func (stubContentService) UpdateTestimonial(ctx context.Context, id uuid.UUID, input content.UpsertTestimonialInput) (*models.Testimonial, error) {
	panic("unimplemented")
}

func (stubContentService) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubContentService) ListAllTools(ctx context.Context) ([]models.Tool, error) {
	return []models.Tool{}, nil
}

func (stubContentService) CreateTool(ctx context.Context, input content.UpsertToolInput) (*models.Tool, error) {
	panic("unimplemented")
}

func (stubContentService) UpdateTool(ctx context.Context, id uuid.UUID, input content.UpsertToolInput) (*models.Tool, error) {
	panic("unimplemented")
}

func (stubContentService) DeleteTool(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubSettingsService struct{}

func (stubSettingsService) Get(ctx context.Context) (*models.SiteSettings, error) {
	return &models.SiteSettings{}, nil
}

func (stubSettingsService) Public(ctx context.Context) (*settings.PublicSettings, error) {
	return &settings.PublicSettings{}, nil
}

func (stubSettingsService) Update(ctx context.Context, input settings.UpdateInput) (*models.SiteSettings, error) {
	panic("unimplemented")
}

func (stubSettingsService) DefaultBookingPrice(ctx context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubDashboardService struct{}

func (stubDashboardService) Stats(ctx context.Context) (*dashboard.Stats, error) {
	return &dashboard.Stats{}, nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

func (stubNotificationsService) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	return nil
}

func (stubNotificationsService) MarkAllRead(ctx context.Context) (int64, error) {
	return 0, nil
}

func (stubNotificationsService) CountUnread(ctx context.Context) (int64, error) {
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(RouterParams{
		Config:        cfg,
		Logger:        logg,
		DB:            stubPinger{},
		Redis:         (*redis.Client)(nil),
		Sessions:      stubSessionChecker{},
		Auth:          stubAuthService{},
		Catalog:       stubCatalogService{},
		Files:         stubFilesService{},
		Bookings:      stubBookingsService{},
		Purchases:     stubPurchasesService{},
		Payments:      stubPaymentsService{},
		Content:       stubContentService{},
		Settings:      stubSettingsService{},
		Dashboard:     stubDashboardService{},
		Notifications: stubNotificationsService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.AdminRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "admin@netwave-iq.com",
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live probe got %d", resp.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics got %d", resp.Code)
	}
}

func TestPublicCatalogRoutes(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{
		"/api/v1/services",
		"/api/v1/files",
		"/api/v1/content/landing",
		"/api/v1/content/faqs",
		"/api/v1/settings",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/dashboard", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	editor := httptest.NewRequest(http.MethodGet, "/api/admin/v1/dashboard", nil)
	editor.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AdminRoleEditor))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, editor)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for editor got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/dashboard", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AdminRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestAdminListRoutesWithToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg, enums.AdminRoleAdmin)

	for _, path := range []string{
		"/api/admin/v1/bookings",
		"/api/admin/v1/purchases",
		"/api/admin/v1/services",
		"/api/admin/v1/files",
		"/api/admin/v1/content/categories",
		"/api/admin/v1/settings",
		"/api/admin/v1/notifications",
		"/api/admin/v1/notifications/unread-count",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestPaymentCallbackRejectsMalformedBookingID(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/callback?booking_id=nope&id=tx-1&token=tok", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed booking id got %d", resp.Code)
	}
}
