package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/netwave-iq/netwave-backend/api/routes"
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
	"github.com/netwave-iq/netwave-backend/internal/users"
	"github.com/netwave-iq/netwave-backend/pkg/auth/session"
	"github.com/netwave-iq/netwave-backend/pkg/config"
	"github.com/netwave-iq/netwave-backend/pkg/db"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
	"github.com/netwave-iq/netwave-backend/pkg/metrics"
	"github.com/netwave-iq/netwave-backend/pkg/migrate"
	"github.com/netwave-iq/netwave-backend/pkg/outbox"
	"github.com/netwave-iq/netwave-backend/pkg/redis"
	"github.com/netwave-iq/netwave-backend/pkg/zaincash"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	paymentMetrics := metrics.NewPaymentMetrics(prometheus.DefaultRegisterer)
	gateway, err := zaincash.NewClient(context.Background(), cfg.ZainCash, logg, paymentMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create zaincash client", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	bookingsRepo := bookings.NewRepository(gormDB)
	purchasesRepo := purchases.NewRepository(gormDB)
	filesRepo := files.NewRepository(gormDB)
	catalogRepo := catalog.NewRepository(gormDB)
	contentRepo := content.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	usersRepo := users.NewRepository(gormDB)
	notificationsRepo := notifications.NewRepository(gormDB)
	outboxService := outbox.NewService(outbox.NewRepository(gormDB), logg)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	filesService, err := files.NewService(filesRepo, purchasesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create files service", err)
		os.Exit(1)
	}

	bookingsService, err := bookings.NewService(bookings.ServiceParams{
		Repo:          bookingsRepo,
		Catalog:       catalogRepo,
		Gateway:       gateway,
		SiteConfig:    cfg.Site,
		BookingConfig: cfg.Booking,
		Logger:        logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create bookings service", err)
		os.Exit(1)
	}

	purchasesService, err := purchases.NewService(purchases.ServiceParams{
		Repo:       purchasesRepo,
		Files:      filesRepo,
		Gateway:    gateway,
		SiteConfig: cfg.Site,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create purchases service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(payments.ServiceParams{
		DB:        dbClient,
		Bookings:  bookingsRepo,
		Purchases: purchasesRepo,
		Files:     filesRepo,
		Gateway:   gateway,
		Events:    outboxService,
		Metrics:   paymentMetrics,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	contentService, err := content.NewService(contentRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settingsRepo, settings.Defaults{
		SiteName:      "نت ويف",
		ContactEmail:  "info@netwave-iq.com",
		DefaultLocale: cfg.Site.DefaultLocale,
		BookingPrice:  decimal.NewFromInt(50000),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		Bookings:      bookingsRepo,
		Purchases:     purchasesRepo,
		Services:      catalogRepo,
		Files:         filesRepo,
		Users:         usersRepo,
		Notifications: notificationsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notificationsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Sessions:      sessionManager,
			Auth:          authService,
			Catalog:       catalogService,
			Files:         filesService,
			Bookings:      bookingsService,
			Purchases:     purchasesService,
			Payments:      paymentsService,
			Content:       contentService,
			Settings:      settingsService,
			Dashboard:     dashboardService,
			Notifications: notificationsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
