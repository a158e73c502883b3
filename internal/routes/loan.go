package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/services"
)

func runLoanRouter(secureGroup *echo.Group, loanService services.LoanServiceInterface, logger *zap.Logger) {
	loanCtrl := controllers.NewLoanController(loanService, logger)

	secureGroup.GET("/loans", loanCtrl.GetLoans)
	secureGroup.GET("/loans/:id", loanCtrl.FindLoan)
	secureGroup.POST("/loans", loanCtrl.CreateLoan)
	secureGroup.PUT("/loans/:id/return", loanCtrl.ReturnLoan)
}
