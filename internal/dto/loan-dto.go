package dto

type CreateLoanDTO struct {
	DataEmprestimo          string   `json:"data_emprestimo" validate:"required"`
	NomeSolicitante         string   `json:"nome_solicitante" validate:"required"`
	DepartamentoSolicitante string   `json:"departamento_solicitante" validate:"required"`
	DataPrevistaDevolucao   string   `json:"data_prevista_devolucao" validate:"required"`
	Equipments              []string `json:"equipments" validate:"required,min=1,dive,required"`
}

type ReturnLoanDTO struct {
	DataDevolucaoReal string `json:"data_devolucao_real" validate:"required"`
}

type LoanFilterDTO struct {
	StatusDevolucao string `query:"status_devolucao" validate:"omitempty,loan_status"`
	Search          string `query:"search"`
}
