package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"stayhub-backend/config"
	"stayhub-backend/controllers"
	"stayhub-backend/routes"
	"stayhub-backend/scheduler"
	"stayhub-backend/services"
	"stayhub-backend/utils"
)

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		_ = level.UnmarshalText([]byte(raw))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	}))
}

func main() {
	logger := newLogger()
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Warn(".env not found, continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		logger.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	db := config.DB
	logger.Info("database connection established")

	clock := services.NewSystemClock()

	resolver := services.NewTargetResolver(db, logger)
	eventService := services.NewEventService(db, resolver, clock, logger)
	reconcileService := services.NewReconcileService(db, eventService, clock, logger)
	roomService := services.NewRoomService(db, reconcileService)
	availabilityService := services.NewAvailabilityService(db)
	bookingService := services.NewBookingService(db, availabilityService, logger)
	branchService := services.NewBranchService(db)
	categoryService := services.NewRoomCategoryService(db)
	roomTypeService := services.NewRoomTypeService(db)
	customerService := services.NewCustomerService(db)

	router := routes.SetupRouter(
		logger,
		controllers.NewBranchController(branchService),
		controllers.NewRoomCategoryController(categoryService),
		controllers.NewRoomTypeController(roomTypeService),
		controllers.NewRoomController(roomService, reconcileService),
		controllers.NewEventController(eventService),
		controllers.NewPricingController(reconcileService),
		controllers.NewAvailabilityController(availabilityService),
		controllers.NewBookingController(bookingService),
		controllers.NewCustomerController(customerService),
	)

	sched, err := scheduler.New(reconcileService, logger)
	if err != nil {
		logger.Error("scheduler init failed", "error", err)
		os.Exit(1)
	}
	if err := sched.Start(); err != nil {
		logger.Error("scheduler start failed", "error", err)
		os.Exit(1)
	}

	addr := ":" + utils.EnvOrDefault("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	if err := sched.Shutdown(); err != nil {
		logger.Warn("scheduler shutdown failed", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
