package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ppe-tracker/internal/routes"
	"ppe-tracker/internal/scheduler"
	"ppe-tracker/pkg/config"
	"ppe-tracker/pkg/customvalidator"
	"ppe-tracker/pkg/database/postgresql"
	apperrors "ppe-tracker/pkg/errors"
	applogger "ppe-tracker/pkg/logger"
	appmiddleware "ppe-tracker/pkg/middleware"
	"ppe-tracker/pkg/service"
	"ppe-tracker/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg := config.New()

	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger(cfg.Log)
	defer logger.Sync() //nolint:errcheck

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.RequestID())
	e.Use(appmiddleware.RequestLogger(logger.Named("http")))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("failed to register validation rules", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	ctx := context.Background()

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.Postgres.AutoMigrate {
		if err := postgresql.Migrate(ctx, dbConn); err != nil {
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}
		logger.Info("migrations applied")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	loggers := &routes.Loggers{
		Main:       logger,
		Auth:       logger.Named("auth"),
		Equipment:  logger.Named("equipment"),
		Inspection: logger.Named("inspection"),
	}
	svcs := routes.InitRouter(e, dbConn, redisClient, jwtSvc, loggers, cfg)

	digest, err := scheduler.New(cfg.Alerts.DigestCron, cfg.Alerts.Location(), svcs.Dashboard, logger.Named("digest"))
	if err != nil {
		logger.Fatal("failed to schedule alert digest", zap.Error(err))
	}
	digest.Start()

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	digest.Stop()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	svcs.Events.Wait()
}
