package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/services"
)

// runPublicRouter - маршруты без токена, под лимитом запросов.
func runPublicRouter(
	publicGroup *echo.Group,
	equipmentService services.EquipmentServiceInterface,
	loanService services.LoanServiceInterface,
	logger *zap.Logger,
) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)
	loanCtrl := controllers.NewLoanController(loanService, logger)

	publicGroup.GET("/equipments/available", equipmentCtrl.GetAvailableEquipments)
	publicGroup.POST("/loan-request", loanCtrl.CreatePublicLoan)
}
