package services

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
)

const (
	equipmentSheet = "Equipamentos"
	loanSheet      = "Empréstimos"
)

// termo_responsabilidade не выгружается: base64 PDF превышает лимит ячейки Excel.
var equipmentExportHeaders = []interface{}{
	"id", "numero_patrimonio", "numero_serie", "marca", "modelo", "tipo_equipamento",
	"departamento_atual", "responsavel_atual", "status", "created_at", "updated_at",
}

var loanExportHeaders = []interface{}{
	"id", "data_emprestimo", "nome_solicitante", "departamento_solicitante",
	"data_prevista_devolucao", "data_devolucao_real", "status_devolucao", "equipments", "created_at",
}

var templateHeaders = []interface{}{
	"numero_patrimonio", "numero_serie", "marca", "modelo",
	"tipo_equipamento", "departamento_atual", "responsavel_atual", "status",
}

var templateRows = [][]interface{}{
	{"PAT-001", "SN123456", "Dell", "Latitude 5420", "Notebook", "SEINTEC", "João Silva", constants.EquipmentStatusAvailable},
	{"PAT-002", "SN789012", "HP", "EliteBook 840", "Notebook", "PROTOCOLO", "Maria Santos", constants.EquipmentStatusAvailable},
}

type ExportServiceInterface interface {
	ExportEquipments(ctx context.Context) ([]byte, error)
	ExportLoans(ctx context.Context) ([]byte, error)
	EquipmentTemplate(ctx context.Context) ([]byte, error)
}

type ExportService struct {
	equipmentService EquipmentServiceInterface
	loanService      LoanServiceInterface
	logger           *zap.Logger
}

func NewExportService(equipmentService EquipmentServiceInterface, loanService LoanServiceInterface, logger *zap.Logger) *ExportService {
	return &ExportService{equipmentService: equipmentService, loanService: loanService, logger: logger}
}

func (s *ExportService) ExportEquipments(ctx context.Context) ([]byte, error) {
	equipments, err := s.equipmentService.GetEquipments(ctx, dto.EquipmentFilterDTO{})
	if err != nil {
		return nil, err
	}
	rows := make([][]interface{}, 0, len(equipments))
	for _, e := range equipments {
		rows = append(rows, equipmentToRow(e))
	}
	return s.buildWorkbook(equipmentSheet, equipmentExportHeaders, rows)
}

func (s *ExportService) ExportLoans(ctx context.Context) ([]byte, error) {
	loans, err := s.loanService.GetAllLoans(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]interface{}, 0, len(loans))
	for _, l := range loans {
		rows = append(rows, loanToRow(l))
	}
	return s.buildWorkbook(loanSheet, loanExportHeaders, rows)
}

func (s *ExportService) EquipmentTemplate(_ context.Context) ([]byte, error) {
	return s.buildWorkbook(equipmentSheet, templateHeaders, templateRows)
}

func (s *ExportService) buildWorkbook(sheet string, headers []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetCellStyle(sheet, "A1", lastCol+"1", style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheet, "A", lastCol, 20)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		s.logger.Error("erro ao gerar planilha", zap.String("sheet", sheet), zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func equipmentToRow(e entities.Equipment) []interface{} {
	return []interface{}{
		e.ID, e.NumeroPatrimonio, e.NumeroSerie, e.Marca, e.Modelo, e.TipoEquipamento,
		e.DepartamentoAtual, e.ResponsavelAtual.String, e.Status, formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	}
}

func loanToRow(l entities.Loan) []interface{} {
	devolucao := ""
	if l.DataDevolucaoReal.Valid {
		devolucao = formatTime(l.DataDevolucaoReal.Time)
	}
	return []interface{}{
		l.ID, formatTime(l.DataEmprestimo), l.NomeSolicitante, l.DepartamentoSolicitante,
		formatTime(l.DataPrevistaDevolucao), devolucao, l.StatusDevolucao,
		strings.Join(l.Equipments, ", "), formatTime(l.CreatedAt),
	}
}
