// pkg/constants/constants.go
package constants

//============== EQUIPMENT STATUSES ==============

// Статусы оборудования хранятся и отдаются в том виде, в каком их ждёт фронтенд.
const (
	EquipmentStatusAvailable      = "Disponível"
	EquipmentStatusInUse          = "Em uso"
	EquipmentStatusLoaned         = "Emprestado"
	EquipmentStatusMaintenance    = "Manutenção"
	EquipmentStatusDecommissioned = "Baixado"
)

var EquipmentStatuses = []string{
	EquipmentStatusAvailable,
	EquipmentStatusInUse,
	EquipmentStatusLoaned,
	EquipmentStatusMaintenance,
	EquipmentStatusDecommissioned,
}

//============== LOAN STATUSES ==============

const (
	LoanStatusPending  = "Pendente"
	LoanStatusReturned = "Devolvido"
	LoanStatusOverdue  = "Atrasado"
)

var LoanStatuses = []string{LoanStatusPending, LoanStatusReturned, LoanStatusOverdue}

//============== HISTORY ACTIONS ==============

const (
	HistoryActionCreated      = "created"
	HistoryActionUpdated      = "updated"
	HistoryActionTermUploaded = "termo_uploaded"
	HistoryActionLoaned       = "loaned"
	HistoryActionReturned     = "returned"
)

//============== NOTIFICATION TYPES ==============

const (
	NotificationLoanCreated  = "loan_created"
	NotificationLoanReturned = "loan_returned"
	NotificationLoanOverdue  = "loan_overdue"
)

//============== ROLES ==============

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// PublicRequestActor - от чьего имени пишется история для публичных заявок.
const PublicRequestActor = "Sistema - Solicitação Pública"

//============== LIMITS ==============

const (
	MaxListResults         = 1000
	MaxHistoryResults      = 100
	MaxNotificationResults = 100
	MaxAdminRecipients     = 100
	MaxImportErrors        = 10
)

//============== CACHE KEYS ==============

// Формат: login_attempts:<username> -> количество неудачных попыток
const CacheKeyLoginAttempts = "login_attempts:%s"

//============== CONTENT TYPES ==============

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
