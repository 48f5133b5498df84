package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fleet-system/internal/controllers"
	"fleet-system/internal/repositories"
	"fleet-system/internal/services"
	"fleet-system/pkg/config"
	"fleet-system/pkg/eventbus"
	"fleet-system/pkg/middleware"
	"fleet-system/pkg/service"
)

type Loggers struct {
	Main        *zap.Logger
	Breakdown   *zap.Logger
	Procurement *zap.Logger
	Resolver    *zap.Logger
}

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	loggers *Loggers,
	cfg *config.Config,
) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Main)

	// --- 1. РЕПОЗИТОРИИ ---
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, loggers.Main)
	breakdownRepo := repositories.NewBreakdownRepository(dbConn, loggers.Breakdown)
	procurementRepo := repositories.NewProcurementRepository(dbConn, loggers.Procurement)
	plannedRepo := repositories.NewPlannedMaintenanceRepository(dbConn)
	recordRepo := repositories.NewMaintenanceRecordRepository(dbConn)
	dashboardRepo := repositories.NewDashboardRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. СЕРВИСЫ ---
	statusResolver := services.NewStatusResolverService(equipmentRepo, breakdownRepo, plannedRepo, loggers.Resolver)
	equipmentService := services.NewEquipmentService(equipmentRepo, statusResolver, loggers.Main)
	breakdownService := services.NewBreakdownService(
		breakdownRepo, equipmentRepo, recordRepo,
		statusResolver, services.PermissiveTransitionPolicy, bus, loggers.Breakdown,
	)
	procurementService := services.NewProcurementService(
		procurementRepo, breakdownService,
		services.PermissiveTransitionPolicy, bus, loggers.Procurement,
	)
	maintenanceService := services.NewMaintenanceService(plannedRepo, recordRepo, statusResolver, loggers.Main)
	dashboardService := services.NewDashboardService(dashboardRepo, cacheRepo, cfg.Dashboard.CacheTTL, loggers.Main)
	importService := services.NewEquipmentImportService(equipmentService, loggers.Main)

	// --- 3. КОНТРОЛЛЕРЫ ---
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, importService, loggers.Main)
	breakdownCtrl := controllers.NewBreakdownController(breakdownService, loggers.Breakdown)
	procurementCtrl := controllers.NewProcurementController(procurementService, loggers.Procurement)
	maintenanceCtrl := controllers.NewMaintenanceController(maintenanceService, loggers.Main)
	dashboardCtrl := controllers.NewDashboardController(dashboardService, loggers.Main)

	// --- 4. РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runEquipmentRouter(secureGroup, equipmentCtrl)
	runBreakdownRouter(secureGroup, breakdownCtrl)
	runProcurementRouter(secureGroup, procurementCtrl)
	runMaintenanceRouter(secureGroup, maintenanceCtrl)
	runDashboardRouter(secureGroup, dashboardCtrl)

	loggers.Main.Info("InitRouter: Создание маршрутов завершено")
}
