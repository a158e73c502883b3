package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Loan struct {
	ID                      string    `json:"id" db:"id"`
	DataEmprestimo          time.Time `json:"data_emprestimo" db:"data_emprestimo"`
	NomeSolicitante         string    `json:"nome_solicitante" db:"nome_solicitante"`
	DepartamentoSolicitante string    `json:"departamento_solicitante" db:"departamento_solicitante"`
	DataPrevistaDevolucao   time.Time `json:"data_prevista_devolucao" db:"data_prevista_devolucao"`
	DataDevolucaoReal       null.Time `json:"data_devolucao_real" db:"data_devolucao_real"`
	StatusDevolucao         string    `json:"status_devolucao" db:"status_devolucao"`
	// Номера патримонио в порядке заявки
	Equipments []string  `json:"equipments" db:"equipments"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type LoanFilter struct {
	Status string
	Search string
	Limit  uint64
}
