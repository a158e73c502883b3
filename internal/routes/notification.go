package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/services"
)

func runNotificationRouter(secureGroup *echo.Group, notificationService services.NotificationServiceInterface, logger *zap.Logger) {
	notificationCtrl := controllers.NewNotificationController(notificationService, logger)

	secureGroup.GET("/notifications", notificationCtrl.GetNotifications)
	secureGroup.PUT("/notifications/:id/read", notificationCtrl.MarkRead)
}
