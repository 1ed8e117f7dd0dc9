package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/config"
	v1 "github.com/dmehra2102/prod-golang-projects/clinicbook/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/repository"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/service"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/pkg/clock"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting database: %w", err)
	}
	if err := database.Migrate(db, log); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	collector := metrics.NewCollector("clinicbook")
	clk := clock.System{}

	bookingRepo := repository.NewBookingRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	doctorRepo := repository.NewDoctorRepo(db)
	clinicRepo := repository.NewClinicRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	auditSvc := service.NewAuditService(auditRepo, log, collector)

	validator := service.NewBookingValidator(bookingRepo, patientRepo, doctorRepo, clk, cfg.Booking.PrepWindow)
	bookingSvc := service.NewBookingService(bookingRepo, patientRepo, validator, clk, auditSvc, collector, log)
	patientSvc := service.NewPatientService(patientRepo, clinicRepo, auditSvc, log)
	doctorSvc := service.NewDoctorService(doctorRepo, auditSvc, log)
	clinicSvc := service.NewClinicService(clinicRepo, log)

	router := v1.NewRouter(cfg, log, collector, v1.Handlers{
		Bookings: v1.NewBookingHandler(bookingSvc, log),
		Patients: v1.NewPatientHandler(patientSvc, log),
		Doctors:  v1.NewDoctorHandler(doctorSvc, log),
		Clinics:  v1.NewClinicHandler(clinicSvc, log),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Environment),
			zap.Duration("prep_window", cfg.Booking.PrepWindow),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	auditSvc.Shutdown()

	if err := tp.Shutdown(ctx); err != nil {
		log.Warn("tracer shutdown failed", zap.Error(err))
	}

	log.Info("shutdown complete")
	return nil
}
