package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/services"
)

// runTransferRouter - выгрузка и загрузка Excel.
func runTransferRouter(
	secureGroup *echo.Group,
	exportService services.ExportServiceInterface,
	importService services.EquipmentImportServiceInterface,
	logger *zap.Logger,
) {
	transferCtrl := controllers.NewTransferController(exportService, importService, logger)

	secureGroup.GET("/export/equipments", transferCtrl.ExportEquipments)
	secureGroup.GET("/export/equipments/template", transferCtrl.ExportTemplate)
	secureGroup.GET("/export/loans", transferCtrl.ExportLoans)
	secureGroup.POST("/import/equipments", transferCtrl.ImportEquipments)
}
