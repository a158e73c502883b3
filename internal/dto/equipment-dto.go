package dto

type CreateEquipmentDTO struct {
	NumeroPatrimonio  string  `json:"numero_patrimonio" validate:"required"`
	NumeroSerie       string  `json:"numero_serie" validate:"required"`
	Marca             string  `json:"marca" validate:"required"`
	Modelo            string  `json:"modelo" validate:"required"`
	TipoEquipamento   string  `json:"tipo_equipamento" validate:"required"`
	DepartamentoAtual string  `json:"departamento_atual" validate:"required"`
	ResponsavelAtual  *string `json:"responsavel_atual,omitempty" validate:"omitempty"`
	Status            string  `json:"status,omitempty" validate:"omitempty,equipment_status"`
}

// UpdateEquipmentDTO - частичное обновление: nil означает "не менять".
type UpdateEquipmentDTO struct {
	NumeroSerie       *string `json:"numero_serie,omitempty"       validate:"omitempty"`
	Marca             *string `json:"marca,omitempty"              validate:"omitempty"`
	Modelo            *string `json:"modelo,omitempty"             validate:"omitempty"`
	TipoEquipamento   *string `json:"tipo_equipamento,omitempty"   validate:"omitempty"`
	DepartamentoAtual *string `json:"departamento_atual,omitempty" validate:"omitempty"`
	ResponsavelAtual  *string `json:"responsavel_atual,omitempty"  validate:"omitempty"`
	Status            *string `json:"status,omitempty"             validate:"omitempty,equipment_status"`
}

func (d UpdateEquipmentDTO) IsEmpty() bool {
	return d.NumeroSerie == nil && d.Marca == nil && d.Modelo == nil && d.TipoEquipamento == nil &&
		d.DepartamentoAtual == nil && d.ResponsavelAtual == nil && d.Status == nil
}

type EquipmentFilterDTO struct {
	Tipo         string `query:"tipo"`
	Departamento string `query:"departamento"`
	Status       string `query:"status"`
	Search       string `query:"search"`
}
