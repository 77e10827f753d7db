package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/villidata/newfork/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/villidata/newfork/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/villidata/newfork/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/villidata/newfork/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/villidata/newfork/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/villidata/newfork/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/villidata/newfork/internal/api/handlers/get_bookings"
	rescheduleBookingHandler "github.com/villidata/newfork/internal/api/handlers/reschedule_booking"
	sendRemindersHandler "github.com/villidata/newfork/internal/api/handlers/send_reminders"
	"github.com/villidata/newfork/internal/api/middleware"
	"github.com/villidata/newfork/internal/config"
	bookingRepo "github.com/villidata/newfork/internal/infra/storage/booking"
	catalogRepo "github.com/villidata/newfork/internal/infra/storage/catalog"
	staffRepo "github.com/villidata/newfork/internal/infra/storage/staff"
	staffbreakRepo "github.com/villidata/newfork/internal/infra/storage/staffbreak"
	mailerClient "github.com/villidata/newfork/internal/integrations/mailer"
	"github.com/villidata/newfork/internal/scheduling"
	bookingsService "github.com/villidata/newfork/internal/service/bookings"
	"github.com/villidata/newfork/internal/service/notifications"
	"github.com/villidata/newfork/internal/service/reminders"
	createBookingUC "github.com/villidata/newfork/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/villidata/newfork/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/villidata/newfork/internal/usecase/reschedule_booking"
	"github.com/villidata/newfork/pkg/dbmetrics"
	"github.com/villidata/newfork/pkg/logger"
	"github.com/villidata/newfork/pkg/metrics"
	"github.com/villidata/newfork/pkg/txmanager"
)

// noopMetrics satisfies the notification and reminder collectors when
// prometheus is disabled.
type noopMetrics struct{}

func (noopMetrics) IncNotification(event, outcome string) {}
func (noopMetrics) IncReminder(outcome string)            {}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking service...")
	log.Info("Configuration loaded from config.toml")

	// Metrics (optional)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Database
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Business defaults and timezone
	defaultHours, err := cfg.BusinessHours.ToWeekSchedule()
	if err != nil {
		log.Fatal("Invalid business hours: %v", err)
	}
	calendar := scheduling.NewCalendar(defaultHours)

	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Mailer client
	mailer := mailerClient.NewClient(
		cfg.Mailer.URL,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	log.Info("Mailer client initialized (url=%s timeout=%ds)", cfg.Mailer.URL, cfg.Mailer.Timeout)

	// Repositories and transaction manager, with or without query metrics
	var (
		bookingRepository    *bookingRepo.Repository
		staffRepository      *staffRepo.Repository
		staffbreakRepository *staffbreakRepo.Repository
		catalogRepository    *catalogRepo.Repository
		txMgr                *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		staffbreakRepository = staffbreakRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		staffbreakRepository = staffbreakRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = txmanager.NewTransactionManager(db)
	}

	// Notification dispatcher
	var notifMetrics interface {
		IncNotification(event, outcome string)
	} = noopMetrics{}
	var reminderMetrics interface {
		IncReminder(outcome string)
	} = noopMetrics{}
	if cfg.Metrics.Enabled {
		notifMetrics = metricsCollector
		reminderMetrics = metricsCollector
	}

	dispatcher := notifications.NewDispatcher(mailer, 5, 10, notifMetrics, log)

	// Services
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		dispatcher,
		log,
	)

	sweeper := reminders.NewSweeper(
		bookingRepository,
		dispatcher,
		reminderMetrics,
		location,
		cfg.Booking.ReminderHour,
		realClock{},
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		staffRepository,
		staffbreakRepository,
		catalogRepository,
		calendar,
		txMgr,
		dispatcher,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		staffRepository,
		staffbreakRepository,
		bookingRepository,
		calendar,
		cfg.Booking.SlotGranularityMinutes,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		staffRepository,
		staffbreakRepository,
		calendar,
		txMgr,
		dispatcher,
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	sendReminders := sendRemindersHandler.NewHandler(sweeper, log)

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Available slots for a staff member on a date
	api.HandleFunc("/staff/{staffId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Booking creation (public customer flow)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (require X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Admin booking listing
	protected.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)

	// Single booking
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Reschedule
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPut)

	// Status transitions
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// Manual reminder sweep
	protected.HandleFunc("/admin/send-reminders", sendReminders.Handle).Methods(http.MethodPost)

	// Reminder loop
	loopCtx, stopLoop := context.WithCancel(context.Background())
	go sweeper.RunLoop(loopCtx, time.Duration(cfg.Booking.ReminderCheckInterval)*time.Second)

	// HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopLoop()

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
