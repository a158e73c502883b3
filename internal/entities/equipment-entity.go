package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Equipment struct {
	ID                    string      `json:"id" db:"id"`
	NumeroPatrimonio      string      `json:"numero_patrimonio" db:"numero_patrimonio"`
	NumeroSerie           string      `json:"numero_serie" db:"numero_serie"`
	Marca                 string      `json:"marca" db:"marca"`
	Modelo                string      `json:"modelo" db:"modelo"`
	TipoEquipamento       string      `json:"tipo_equipamento" db:"tipo_equipamento"`
	DepartamentoAtual     string      `json:"departamento_atual" db:"departamento_atual"`
	ResponsavelAtual      null.String `json:"responsavel_atual" db:"responsavel_atual"`
	TermoResponsabilidade null.String `json:"termo_responsabilidade" db:"termo_responsabilidade"` // base64 PDF
	Status                string      `json:"status" db:"status"`
	CreatedAt             time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at" db:"updated_at"`
}

// EquipmentFilter - фильтры списка оборудования. Пустые поля не применяются.
type EquipmentFilter struct {
	Tipo         string
	Departamento string
	Status       string
	Search       string
	Limit        uint64
}
