package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/config"
	"inventory-system/internal/services"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
	"inventory-system/pkg/validation"
)

// TransferController - импорт и экспорт Excel.
type TransferController struct {
	exportService services.ExportServiceInterface
	importService services.EquipmentImportServiceInterface
	logger        *zap.Logger
}

func NewTransferController(
	exportService services.ExportServiceInterface,
	importService services.EquipmentImportServiceInterface,
	logger *zap.Logger,
) *TransferController {
	return &TransferController{exportService: exportService, importService: importService, logger: logger}
}

func (c *TransferController) ExportEquipments(ctx echo.Context) error {
	content, err := c.exportService.ExportEquipments(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.FileResponse(ctx, constants.ContentTypeXLSX, "equipamentos.xlsx", content)
}

func (c *TransferController) ExportLoans(ctx echo.Context) error {
	content, err := c.exportService.ExportLoans(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.FileResponse(ctx, constants.ContentTypeXLSX, "emprestimos.xlsx", content)
}

func (c *TransferController) ExportTemplate(ctx echo.Context) error {
	content, err := c.exportService.EquipmentTemplate(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.FileResponse(ctx, constants.ContentTypeXLSX, "template_equipamentos.xlsx", content)
}

func (c *TransferController) ImportEquipments(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Arquivo não enviado"), c.logger)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer file.Close()

	if err := validation.ValidateFile(fileHeader, file, config.UploadEquipmentImport); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError(err.Error()), c.logger)
	}

	res, err := c.importService.ImportEquipments(ctx.Request().Context(), fileHeader.Filename, file)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, res.Message, http.StatusOK)
}
