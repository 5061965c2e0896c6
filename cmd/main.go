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

	"github.com/kairovix/labsched/internal/access"
	cancelBookingHandler "github.com/kairovix/labsched/internal/api/handlers/cancel_booking"
	getAvailabilityHandler "github.com/kairovix/labsched/internal/api/handlers/get_availability"
	getEquipmentHandler "github.com/kairovix/labsched/internal/api/handlers/get_equipment"
	getReservationHandler "github.com/kairovix/labsched/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/kairovix/labsched/internal/api/handlers/list_reservations"
	submitBookingHandler "github.com/kairovix/labsched/internal/api/handlers/submit_booking"
	"github.com/kairovix/labsched/internal/api/middleware"
	"github.com/kairovix/labsched/internal/catalog"
	"github.com/kairovix/labsched/internal/config"
	reservationRepo "github.com/kairovix/labsched/internal/infra/storage/reservation"
	reservationsService "github.com/kairovix/labsched/internal/service/reservations"
	computeAvailabilityUC "github.com/kairovix/labsched/internal/usecase/compute_availability"
	submitBookingUC "github.com/kairovix/labsched/internal/usecase/submit_booking"
	"github.com/kairovix/labsched/pkg/dbmetrics"
	"github.com/kairovix/labsched/pkg/logger"
	"github.com/kairovix/labsched/pkg/metrics"
	"github.com/kairovix/labsched/pkg/simpletxmanager"
	"github.com/kairovix/labsched/pkg/txmanager"
)

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

	log.Info("Starting labsched...")
	log.Info("Configuration loaded from config.toml")

	// Static equipment catalog, fixed for the lifetime of the process
	entries := make([]catalog.Entry, 0, len(cfg.Catalog.Equipment))
	for _, e := range cfg.Catalog.Equipment {
		entries = append(entries, catalog.Entry{Name: e.Name, Slots: e.Slots})
	}
	equipmentCatalog, err := catalog.New(entries)
	if err != nil {
		log.Fatal("Failed to build equipment catalog: %v", err)
	}
	log.Info("Equipment catalog loaded: %d device(s)", len(equipmentCatalog.List()))

	accessFilter, err := access.NewFilter(access.CancelPolicy(cfg.Access.CancelPolicy))
	if err != nil {
		log.Fatal("Failed to build access filter: %v", err)
	}
	log.Info("Cancel policy: %s", cfg.Access.CancelPolicy)

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	var reservationRepository *reservationRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	reservationSvc := reservationsService.NewService(
		reservationRepository,
		accessFilter,
		log,
	)

	submitBookingUseCase := submitBookingUC.NewUseCase(
		reservationRepository,
		equipmentCatalog,
		txMgr,
		log,
	)

	computeAvailabilityUseCase := computeAvailabilityUC.NewUseCase(
		reservationRepository,
		equipmentCatalog,
		log,
	)

	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(computeAvailabilityUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	getEquipment := getEquipmentHandler.NewHandler(equipmentCatalog)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/equipment", getEquipment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{equipment}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Protected routes: require identity headers from the auth proxy
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Identity)

	protected.HandleFunc("/reservations", submitBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", cancelBooking.Handle).Methods(http.MethodDelete)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	log.Info("Server stopped gracefully")
}
