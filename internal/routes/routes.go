package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"inventory-system/internal/repositories"
	"inventory-system/internal/services"
	"inventory-system/pkg/config"
	"inventory-system/pkg/middleware"
	"inventory-system/pkg/service"
)

// Services - всё, что нужно роутерам. Собирается в NewServices или подменяется в тестах.
type Services struct {
	Auth         services.AuthServiceInterface
	Equipment    services.EquipmentServiceInterface
	Loan         services.LoanServiceInterface
	Notification services.NotificationServiceInterface
	Dashboard    services.DashboardServiceInterface
	Export       services.ExportServiceInterface
	Import       services.EquipmentImportServiceInterface
}

func NewServices(
	dbConn *pgxpool.Pool,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.Config,
) *Services {
	txManager := repositories.NewTxManager(dbConn)

	// --- 1. РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	loanRepo := repositories.NewLoanRepository(dbConn, logger)
	historyRepo := repositories.NewEquipmentHistoryRepository(dbConn)
	notificationRepo := repositories.NewNotificationRepository(dbConn)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)

	// --- 2. СЕРВИСЫ ---
	historyService := services.NewEquipmentHistoryService(historyRepo, logger)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, logger)
	equipmentService := services.NewEquipmentService(txManager, equipmentRepo, historyService, logger)
	loanService := services.NewLoanService(txManager, loanRepo, equipmentRepo, historyService, notificationService, logger)

	return &Services{
		Auth:         services.NewAuthService(userRepo, cacheRepo, jwtSvc, logger, &cfg.Auth),
		Equipment:    equipmentService,
		Loan:         loanService,
		Notification: notificationService,
		Dashboard:    services.NewDashboardService(dashboardRepo, logger),
		Export:       services.NewExportService(equipmentService, loanService, logger),
		Import:       services.NewEquipmentImportService(equipmentService, logger),
	}
}

func InitRouter(e *echo.Echo, svc *Services, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: registrando rotas")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, svc.Auth, logger)
	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.Server.PublicRateLimit), cfg.Server.PublicRateBurst)

	secureGroup := api.Group("", authMW.Auth)
	publicGroup := api.Group("/public", middleware.RateLimit(limiter))

	runAuthRouter(api, svc.Auth, logger, authMW)
	runEquipmentRouter(secureGroup, svc.Equipment, logger)
	runLoanRouter(secureGroup, svc.Loan, logger)
	runNotificationRouter(secureGroup, svc.Notification, logger)
	runTransferRouter(secureGroup, svc.Export, svc.Import, logger)
	runDashboardRouter(secureGroup, svc.Dashboard, logger)
	runPublicRouter(publicGroup, svc.Equipment, svc.Loan, logger)

	logger.Info("InitRouter: rotas registradas")
}
