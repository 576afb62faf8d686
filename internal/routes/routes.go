package routes

import (
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppe-tracker/internal/controllers"
	"ppe-tracker/internal/listeners"
	"ppe-tracker/internal/repositories"
	"ppe-tracker/internal/services"
	"ppe-tracker/pkg/config"
	"ppe-tracker/pkg/eventbus"
	"ppe-tracker/pkg/middleware"
	"ppe-tracker/pkg/service"
)

type Loggers struct {
	Main       *zap.Logger
	Auth       *zap.Logger
	Equipment  *zap.Logger
	Inspection *zap.Logger
}

// Services is what InitRouter builds and app/main needs afterwards.
type Services struct {
	Dashboard services.DashboardServiceInterface
	Events    *eventbus.Bus
}

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, loggers *Loggers, cfg *config.Config) *Services {
	loggers.Main.Info("InitRouter: building routes")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	txManager := repositories.NewTxManager(dbConn)
	location := cfg.Alerts.Location()

	bus := eventbus.New(loggers.Main.Named("events"))
	listeners.NewRepairListener(loggers.Inspection).Register(bus)

	// Repositories
	userRepo := repositories.NewUserRepository(dbConn, loggers.Auth)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, loggers.Equipment)
	equipmentTypeRepo := repositories.NewEquipmentTypeRepository(dbConn)
	inspectionRepo := repositories.NewInspectionRepository(dbConn, loggers.Inspection)
	statusRepo := repositories.NewStatusRepository(dbConn)

	// Services
	alertService := services.NewAlertService(equipmentRepo, inspectionRepo, location, loggers.Main)
	dashboardService := services.NewDashboardService(alertService, equipmentRepo, inspectionRepo, cacheRepo,
		cfg.Alerts.DashboardCacheTTL, cfg.Alerts.DashboardListSize, loggers.Main)
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc,
		cfg.Auth.MaxLoginAttempts, cfg.Auth.LockoutDuration, loggers.Auth)
	userService := services.NewUserService(userRepo, loggers.Auth)
	equipmentService := services.NewEquipmentService(equipmentRepo, equipmentTypeRepo, txManager, dashboardService, loggers.Equipment)
	importService := services.NewEquipmentImportService(equipmentRepo, equipmentTypeRepo, dashboardService, loggers.Equipment)
	equipmentTypeService := services.NewEquipmentTypeService(equipmentTypeRepo, loggers.Equipment)
	inspectionService := services.NewInspectionService(inspectionRepo, equipmentRepo, statusRepo, userRepo,
		txManager, dashboardService, bus, location, loggers.Inspection)
	statusService := services.NewStatusService(statusRepo)
	reportService := services.NewReportService(alertService, equipmentRepo, inspectionRepo, loggers.Main)

	// Controllers
	authCtrl := controllers.NewAuthController(authService, jwtSvc.GetRefreshTokenTTL(), cfg.Server.SecureCookies, loggers.Auth)
	userCtrl := controllers.NewUserController(userService, loggers.Auth)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, importService, loggers.Equipment)
	equipmentTypeCtrl := controllers.NewEquipmentTypeController(equipmentTypeService, loggers.Equipment)
	inspectionCtrl := controllers.NewInspectionController(inspectionService, loggers.Inspection)
	alertCtrl := controllers.NewAlertController(alertService, loggers.Main)
	reportCtrl := controllers.NewReportController(reportService, loggers.Main)
	dashboardCtrl := controllers.NewDashboardController(dashboardService, loggers.Main)
	statusCtrl := controllers.NewStatusController(statusService, loggers.Main)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	runAuthRouter(api, authCtrl, authMW)

	secureGroup := api.Group("", authMW.Auth)
	runUserRouter(secureGroup, userCtrl, authMW)
	runEquipmentRouter(secureGroup, equipmentCtrl, inspectionCtrl, alertCtrl, reportCtrl, authMW)
	runEquipmentTypeRouter(secureGroup, equipmentTypeCtrl, authMW)
	runInspectionRouter(secureGroup, inspectionCtrl, authMW)
	runAlertRouter(secureGroup, alertCtrl, reportCtrl, dashboardCtrl)
	runStatusRouter(secureGroup, statusCtrl)

	loggers.Main.Info("InitRouter: routes registered")
	return &Services{Dashboard: dashboardService, Events: bus}
}
