package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type LoanController struct {
	loanService services.LoanServiceInterface
	logger      *zap.Logger
}

func NewLoanController(loanService services.LoanServiceInterface, logger *zap.Logger) *LoanController {
	return &LoanController{loanService: loanService, logger: logger}
}

func (c *LoanController) bindLoan(ctx echo.Context) (dto.CreateLoanDTO, error) {
	var payload dto.CreateLoanDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("erro ao ler payload de empréstimo", zap.Error(err))
		return payload, apperrors.NewBadRequestError("Formato de dados inválido")
	}
	if err := ctx.Validate(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func (c *LoanController) CreateLoan(ctx echo.Context) error {
	payload, err := c.bindLoan(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.loanService.CreateLoan(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Empréstimo criado com sucesso", http.StatusCreated)
}

// CreatePublicLoan - публичная заявка, без токена.
func (c *LoanController) CreatePublicLoan(ctx echo.Context) error {
	payload, err := c.bindLoan(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.loanService.CreatePublicLoan(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Info("solicitação pública de empréstimo", zap.String("ip", ctx.RealIP()), zap.String("loan_id", res.ID))
	return utils.SuccessResponse(ctx, res, "Solicitação de empréstimo registrada", http.StatusCreated)
}

func (c *LoanController) GetLoans(ctx echo.Context) error {
	var filter dto.LoanFilterDTO
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Parâmetros de filtro inválidos"), c.logger)
	}
	if err := ctx.Validate(&filter); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.loanService.GetLoans(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Lista de empréstimos", http.StatusOK)
}

func (c *LoanController) FindLoan(ctx echo.Context) error {
	res, err := c.loanService.GetLoan(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Empréstimo encontrado", http.StatusOK)
}

func (c *LoanController) ReturnLoan(ctx echo.Context) error {
	var payload dto.ReturnLoanDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Formato de dados inválido"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.loanService.ReturnLoan(ctx.Request().Context(), ctx.Param("id"), payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.MessageDTO{Message: "Empréstimo devolvido com sucesso"}, "Empréstimo devolvido com sucesso", http.StatusOK)
}
