package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

var importRequiredColumns = []string{
	"numero_patrimonio", "numero_serie", "marca", "modelo",
	"tipo_equipamento", "departamento_atual", "status",
}

type EquipmentImportServiceInterface interface {
	ImportEquipments(ctx context.Context, fileName string, r io.Reader) (*dto.ImportResultDTO, error)
}

type EquipmentImportService struct {
	equipmentService *EquipmentService
	logger           *zap.Logger
}

func NewEquipmentImportService(equipmentService *EquipmentService, logger *zap.Logger) *EquipmentImportService {
	return &EquipmentImportService{equipmentService: equipmentService, logger: logger}
}

// ImportEquipments обрабатывает строки независимо: ошибка строки не прерывает импорт.
// Номер строки в ошибках - номер строки листа (заголовок - строка 1).
func (s *EquipmentImportService) ImportEquipments(ctx context.Context, fileName string, r io.Reader) (*dto.ImportResultDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, apperrors.NewBadRequestError("Apenas arquivos Excel (.xlsx, .xls) são permitidos")
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Erro ao processar arquivo: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewBadRequestError("Erro ao processar arquivo: planilha vazia")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Erro ao processar arquivo: %v", err))
	}
	if len(rows) == 0 {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Colunas obrigatórias faltando: %s", strings.Join(importRequiredColumns, ", ")))
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, col := range importRequiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Colunas obrigatórias faltando: %s", strings.Join(missing, ", ")))
	}

	result := &dto.ImportResultDTO{Message: "Importação concluída", Errors: []string{}}
	var rowErrors []string
	seen := make(map[string]int)

	for i, row := range rows[1:] {
		line := i + 2
		if isBlankRow(row) {
			continue
		}

		payload, err := rowToEquipment(row, columns)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Linha %d: %v", line, err))
			continue
		}
		if _, dup := seen[payload.NumeroPatrimonio]; dup {
			rowErrors = append(rowErrors, fmt.Sprintf("Linha %d: Patrimônio %s já existe", line, payload.NumeroPatrimonio))
			continue
		}

		description := "Equipamento importado via Excel: " + payload.NumeroPatrimonio
		if _, err := s.equipmentService.create(ctx, payload, description, actor.Username); err != nil {
			var httpErr *apperrors.HttpError
			if errors.Is(err, apperrors.ErrConflict) {
				rowErrors = append(rowErrors, fmt.Sprintf("Linha %d: Patrimônio %s já existe", line, payload.NumeroPatrimonio))
			} else if errors.As(err, &httpErr) {
				rowErrors = append(rowErrors, fmt.Sprintf("Linha %d: %s", line, httpErr.Message))
			} else {
				s.logger.Error("erro ao importar linha", zap.Int("line", line), zap.Error(err))
				rowErrors = append(rowErrors, fmt.Sprintf("Linha %d: %v", line, err))
			}
			continue
		}
		seen[payload.NumeroPatrimonio] = line
		result.SuccessCount++
	}

	result.ErrorCount = len(rowErrors)
	if len(rowErrors) > constants.MaxImportErrors {
		rowErrors = rowErrors[:constants.MaxImportErrors]
	}
	if rowErrors != nil {
		result.Errors = rowErrors
	}

	s.logger.Info("importação concluída",
		zap.String("file", fileName),
		zap.Int("success", result.SuccessCount),
		zap.Int("errors", result.ErrorCount))
	return result, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func rowToEquipment(row []string, columns map[string]int) (dto.CreateEquipmentDTO, error) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	payload := dto.CreateEquipmentDTO{
		NumeroPatrimonio:  cell("numero_patrimonio"),
		NumeroSerie:       cell("numero_serie"),
		Marca:             cell("marca"),
		Modelo:            cell("modelo"),
		TipoEquipamento:   cell("tipo_equipamento"),
		DepartamentoAtual: cell("departamento_atual"),
		Status:            cell("status"),
	}
	if responsavel := cell("responsavel_atual"); responsavel != "" {
		payload.ResponsavelAtual = &responsavel
	}

	for _, col := range importRequiredColumns {
		if col == "status" {
			continue
		}
		if cell(col) == "" {
			return payload, fmt.Errorf("campo obrigatório vazio: %s", col)
		}
	}
	if payload.Status != "" && !slices.Contains(constants.EquipmentStatuses, payload.Status) {
		return payload, fmt.Errorf("status inválido: %s", payload.Status)
	}
	return payload, nil
}
