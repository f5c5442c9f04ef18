package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/netwave-iq/netwave-backend/api/controllers"
	"github.com/netwave-iq/netwave-backend/api/middleware"
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
	"github.com/netwave-iq/netwave-backend/pkg/auth/session"
	"github.com/netwave-iq/netwave-backend/pkg/config"
	"github.com/netwave-iq/netwave-backend/pkg/db"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
	"github.com/netwave-iq/netwave-backend/pkg/redis"
)

// RouterParams bundles the wiring for the HTTP surface.
type RouterParams struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            db.Pinger
	Redis         *redis.Client
	Sessions      session.AccessSessionChecker
	Auth          auth.Service
	Catalog       catalog.Service
	Files         files.Service
	Bookings      bookings.Service
	Purchases     purchases.Service
	Payments      payments.Service
	Content       content.Service
	Settings      settings.Service
	Dashboard     dashboard.Service
	Notifications notifications.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/services", controllers.ListServices(p.Catalog, logg))
		r.Get("/services/{slug}", controllers.GetServiceBySlug(p.Catalog, logg))

		r.Get("/files", controllers.ListFiles(p.Files, logg))
		r.Get("/files/{fileId}/download", controllers.DownloadFile(p.Files, logg))
		r.With(middleware.Idempotency(p.Redis, logg)).
			Post("/files/{fileId}/purchase", controllers.InitiateFilePurchase(p.Purchases, logg))
		r.Get("/purchases", controllers.ListUserPurchases(p.Purchases, logg))

		r.With(middleware.Idempotency(p.Redis, logg)).
			Post("/bookings", controllers.CreateBooking(p.Bookings, logg))

		r.Route("/payments", func(r chi.Router) {
			r.Get("/callback", controllers.PaymentCallback(p.Payments, logg))
			r.Get("/files/callback", controllers.FilePaymentCallback(p.Payments, logg))
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/landing", controllers.Landing(p.Content, logg))
			r.Get("/categories", controllers.ListCategories(p.Content, logg))
			r.Get("/faqs", controllers.ListFAQs(p.Content, logg))
			r.Get("/testimonials", controllers.ListTestimonials(p.Content, logg))
			r.Get("/tools", controllers.ListTools(p.Content, logg))
		})

		r.Get("/settings", controllers.PublicSettings(p.Settings, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
			Post("/login", controllers.AdminAuthLogin(p.Auth, logg))
		r.Post("/refresh", controllers.AdminAuthRefresh(p.Auth, logg))
		r.Post("/logout", controllers.AdminAuthLogout(p.Auth, cfg.JWT, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
		r.Use(middleware.RequireRole(enums.AdminRoleAdmin.String(), logg))
		r.Use(middleware.Idempotency(p.Redis, logg))

		r.Get("/dashboard", controllers.AdminDashboard(p.Dashboard, logg))

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", controllers.AdminListBookings(p.Bookings, logg))
			r.Get("/{bookingId}", controllers.AdminBookingDetail(p.Bookings, logg))
			r.Post("/{bookingId}/status", controllers.AdminUpdateBookingStatus(p.Bookings, logg))
			r.Delete("/{bookingId}", controllers.AdminDeleteBooking(p.Bookings, logg))
		})

		r.Get("/purchases", controllers.AdminListPurchases(p.Purchases, logg))

		r.Route("/services", func(r chi.Router) {
			r.Get("/", controllers.AdminListServices(p.Catalog, logg))
			r.Post("/", controllers.AdminCreateService(p.Catalog, logg))
			r.Put("/{serviceId}", controllers.AdminUpdateService(p.Catalog, logg))
			r.Delete("/{serviceId}", controllers.AdminDeleteService(p.Catalog, logg))
		})

		r.Route("/files", func(r chi.Router) {
			r.Get("/", controllers.AdminListFiles(p.Files, logg))
			r.Post("/", controllers.AdminCreateFile(p.Files, logg))
			r.Put("/{fileId}", controllers.AdminUpdateFile(p.Files, logg))
			r.Delete("/{fileId}", controllers.AdminDeleteFile(p.Files, logg))
		})

		r.Route("/content", func(r chi.Router) {
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.AdminListCategories(p.Content, logg))
				r.Post("/", controllers.AdminCreateCategory(p.Content, logg))
				r.Put("/{categoryId}", controllers.AdminUpdateCategory(p.Content, logg))
				r.Delete("/{categoryId}", controllers.AdminDeleteCategory(p.Content, logg))
			})
			r.Route("/faqs", func(r chi.Router) {
				r.Get("/", controllers.AdminListFAQs(p.Content, logg))
				r.Post("/", controllers.AdminCreateFAQ(p.Content, logg))
				r.Put("/{faqId}", controllers.AdminUpdateFAQ(p.Content, logg))
				r.Delete("/{faqId}", controllers.AdminDeleteFAQ(p.Content, logg))
			})
			r.Route("/testimonials", func(r chi.Router) {
				r.Get("/", controllers.AdminListTestimonials(p.Content, logg))
				r.Post("/", controllers.AdminCreateTestimonial(p.Content, logg))
				r.Put("/{testimonialId}", controllers.AdminUpdateTestimonial(p.Content, logg))
				r.Delete("/{testimonialId}", controllers.AdminDeleteTestimonial(p.Content, logg))
			})
			r.Route("/tools", func(r chi.Router) {
				r.Get("/", controllers.AdminListTools(p.Content, logg))
				r.Post("/", controllers.AdminCreateTool(p.Content, logg))
				r.Put("/{toolId}", controllers.AdminUpdateTool(p.Content, logg))
				r.Delete("/{toolId}", controllers.AdminDeleteTool(p.Content, logg))
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.AdminGetSettings(p.Settings, logg))
			r.Put("/", controllers.AdminUpdateSettings(p.Settings, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.AdminListNotifications(p.Notifications, logg))
			r.Get("/unread-count", controllers.AdminUnreadNotificationCount(p.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.AdminMarkNotificationRead(p.Notifications, logg))
			r.Post("/read-all", controllers.AdminMarkAllNotificationsRead(p.Notifications, logg))
		})
	})

	return r
}
