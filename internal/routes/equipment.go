package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/services"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentService services.EquipmentServiceInterface, logger *zap.Logger) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)

	secureGroup.GET("/equipments", equipmentCtrl.GetEquipments)
	secureGroup.GET("/equipments/:id", equipmentCtrl.FindEquipment)
	secureGroup.POST("/equipments", equipmentCtrl.CreateEquipment)
	secureGroup.PUT("/equipments/:id", equipmentCtrl.UpdateEquipment)
	secureGroup.DELETE("/equipments/:id", equipmentCtrl.DeleteEquipment)
	secureGroup.POST("/equipments/:id/upload-termo", equipmentCtrl.UploadTermo)
	secureGroup.GET("/equipments/:id/history", equipmentCtrl.GetHistory)
}
