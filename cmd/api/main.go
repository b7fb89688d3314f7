// Command api serves the Kanzie venue discovery API.
//
//	@title						Kanzie API
//	@version					1.0
//	@description				Venue discovery feed: swipe on nearby places and get suggestions for your group.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kanzie/config"
	_ "kanzie/docs"
	"kanzie/internal/adapters/auth"
	"kanzie/internal/adapters/places"
	delivery "kanzie/internal/delivery/http"
	"kanzie/internal/delivery/http/controllers"
	"kanzie/internal/delivery/http/middleware"
	"kanzie/internal/domain"
	"kanzie/internal/repository/postgres"
	"kanzie/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, logger); err != nil {
		return err
	}
	if cfg.SeedData {
		seeded, err := postgres.SeedIfEmpty(ctx, db)
		if err != nil {
			return err
		}
		if seeded {
			logger.Info("seed data inserted")
		}
	}

	venueRepo := postgres.NewVenueRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	userRepo := postgres.NewUserRepository(db)
	groupRepo := postgres.NewGroupRepository(db)

	if cfg.Places.APIKey == "" {
		logger.Warn("GOOGLE_PLACES_API_KEY not set; venue backfill disabled")
	}
	placesClient := places.NewGoogleClient(places.Config{
		APIKey:  cfg.Places.APIKey,
		Timeout: cfg.Places.Timeout,
	}, &http.Client{}, logger)

	venueService := services.NewVenueService(venueRepo, categoryRepo, swipeRepo, userRepo, groupRepo, placesClient,
		services.BackfillConfig{
			Origin:        domain.GeoPoint{Lat: cfg.Places.OriginLat, Lng: cfg.Places.OriginLng},
			RadiusMeters:  cfg.Places.RadiusMeters,
			PhotoMaxWidth: places.DefaultPhotoMaxWidth,
			Timeout:       cfg.RequestTimeout,
		}, logger, cfg.RequestTimeout)
	userService := services.NewUserService(userRepo, auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry)
	groupService := services.NewGroupService(groupRepo)

	mux := delivery.NewRouter(delivery.Controllers{
		Venue:  controllers.NewVenueController(logger, venueService),
		User:   controllers.NewUserController(logger, userService),
		Group:  controllers.NewGroupController(logger, groupService),
		Health: controllers.NewHealthController(logger, db),
	}, middleware.RequireAuth(auth.NewJWTVerifier(cfg.JWTSecret), logger))

	handler := middleware.Recover(logger, mux)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
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

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
