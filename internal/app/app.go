package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/foodi-app/foodi-backend/internal/adapter/mailer"
	"github.com/foodi-app/foodi-backend/internal/adapter/mongo"
	"github.com/foodi-app/foodi-backend/internal/adapter/mongo/history"
	"github.com/foodi-app/foodi-backend/internal/adapter/mongo/preference"
	"github.com/foodi-app/foodi-backend/internal/adapter/postgres"
	"github.com/foodi-app/foodi-backend/internal/adapter/postgres/pantry"
	"github.com/foodi-app/foodi-backend/internal/adapter/postgres/recipe"
	"github.com/foodi-app/foodi-backend/internal/adapter/postgres/token"
	"github.com/foodi-app/foodi-backend/internal/adapter/postgres/user"
	"github.com/foodi-app/foodi-backend/internal/adapter/postgres/userrecipe"
	"github.com/foodi-app/foodi-backend/internal/adapter/provider/google"
	"github.com/foodi-app/foodi-backend/internal/auth"
	"github.com/foodi-app/foodi-backend/internal/config"
	authsvc "github.com/foodi-app/foodi-backend/internal/service/auth"
	pantrysvc "github.com/foodi-app/foodi-backend/internal/service/pantry"
	profilesvc "github.com/foodi-app/foodi-backend/internal/service/profile"
	recipesvc "github.com/foodi-app/foodi-backend/internal/service/recipe"
	"github.com/foodi-app/foodi-backend/internal/transport/middleware"
	"github.com/foodi-app/foodi-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects both
// stores, wires the services and serves HTTP until ctx is cancelled, then
// shuts everything down within the configured timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("app: connect postgres: %w", err)
	}
	defer pool.Close()

	mongoClient, err := mongo.NewClient(ctx, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("app: connect mongo: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := mongoClient.Close(closeCtx); err != nil {
			logger.Error("mongo disconnect failed", "error", err)
		}
	}()

	// Repositories.
	userRepo := user.New(pool)
	tokenRepo := token.New(pool)
	recipeRepo := recipe.New(pool)
	userRecipeRepo := userrecipe.New(pool)
	pantryRepo := pantry.New(pool)
	preferenceRepo := preference.NewRepo(mongoClient)
	historyRepo := history.NewRepo(mongoClient)
	txManager := postgres.NewTxManager(pool)

	// Outbound adapters.
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	googleVerifier := google.NewVerifier(cfg.Auth.GoogleClientID, logger)
	mail := mailer.New(cfg.Mail, logger)

	// Services.
	authService := authsvc.NewService(logger, userRepo, tokenRepo, txManager, googleVerifier, jwtManager, mail, cfg.Auth)
	profileService := profilesvc.NewService(logger, userRepo, preferenceRepo, historyRepo)
	recipeService := recipesvc.NewService(logger, recipeRepo, userRecipeRepo)
	pantryService := pantrysvc.NewService(logger, pantryRepo)

	// Transport.
	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(cfg, logger, authService, limiter, rest.Handlers{
		Auth:    rest.NewAuthHandler(authService, logger),
		Profile: rest.NewProfileHandler(profileService, logger),
		Recipe:  rest.NewRecipeHandler(recipeService, logger),
		Pantry:  rest.NewPantryHandler(pantryService, logger),
		Health:  rest.NewHealthHandler(pool, mongoClient, BuildVersion()),
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("app: http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}

	return nil
}
