package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-booking/internal/db"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/notify"
	"github.com/BruksfildServices01/barbershop-booking/internal/realtime"
	"github.com/BruksfildServices01/barbershop-booking/internal/routes"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

const notifyBuffer = 100

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})).With("service", "barbershop-booking")
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	if err := dbpkg.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}

	rdb, err := cache.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}
	catalog := cache.NewCatalog(rdb, cfg.CatalogCacheTTL)

	loc := timezone.Location(cfg.ShopTimezone)
	repo := infraRepo.NewBookingGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	hub := realtime.NewHub()
	defer hub.CloseAll()
	publisher := realtime.NewPublisher(hub, rdb)
	go publisher.Run(ctx)

	var sender notify.Sender = notify.LogSender{}
	if cfg.TwilioEnabled() {
		sender = notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	}
	notifier := notify.NewNotifier(sender, loc, notifyBuffer)
	defer notifier.Close()

	reminders, err := notify.NewReminders(repo, sender, loc).Schedule(cfg.ReminderCron)
	if err != nil {
		return err
	}
	reminders.Start()
	defer func() { <-reminders.Stop().Done() }()

	var payments domain.PaymentGateway
	if cfg.MercadoPagoToken != "" {
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			return err
		}
		payments = mp
	}

	var photos storage.ObjectStore
	if cfg.S3Enabled() {
		photos = storage.NewS3Store(storage.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	settings := ucBooking.Settings{
		Location:        loc,
		SlotStep:        cfg.SlotStep,
		MinCancelNotice: cfg.MinCancelNotice,
	}
	observer := domain.Observers{publisher, notifier}

	availabilityUC := ucBooking.NewGetAvailability(repo, settings)
	createUC := ucBooking.NewCreateBooking(repo, auditDispatcher, settings, observer, payments)
	confirmUC := ucBooking.NewConfirmBooking(repo, auditDispatcher, settings, observer)
	cancelUC := ucBooking.NewCancelBooking(repo, auditDispatcher, settings, observer)
	cancelByCustomerUC := ucBooking.NewCancelByCustomer(repo, auditDispatcher, settings, observer)

	// ======================================================
	// 🧩 HANDLERS + ROTAS
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORSMiddleware(cfg.CORSOrigins))

	routes.RegisterRoutes(r, cfg, routes.Handlers{
		Public: handlers.NewPublicHandler(
			db, catalog, loc,
			availabilityUC,
			createUC,
			cancelByCustomerUC,
			ucBooking.NewListBookingsByPhone(repo, settings),
		),
		Booking: handlers.NewBookingHandler(
			loc,
			availabilityUC,
			createUC,
			confirmUC,
			cancelUC,
			ucBooking.NewGetBooking(repo),
			ucBooking.NewListBookingsByDate(repo, settings),
			ucBooking.NewListBookingsByMonth(repo, settings),
		),
		Auth:            handlers.NewAuthHandler(db, cfg, auditDispatcher),
		Me:              handlers.NewMeHandler(db),
		Service:         handlers.NewServiceHandler(db, catalog, auditDispatcher),
		Barber:          handlers.NewBarberHandler(db, catalog, auditDispatcher, photos),
		BusinessHours:   handlers.NewBusinessHoursHandler(db, auditDispatcher),
		BlockedInterval: handlers.NewBlockedIntervalHandler(db, repo, auditDispatcher, loc),
		Customer:        handlers.NewCustomerHandler(db),
		AuditLogs:       handlers.NewAuditLogsHandler(db, loc),
		Report:          handlers.NewReportHandler(cfg.ReportWebhookURL, cfg.ReportTimeout),
		WS:              handlers.NewWSHandler(hub),
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", cfg.Addr(), "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
