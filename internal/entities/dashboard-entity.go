package entities

type EquipmentCounts struct {
	Total       int64
	Available   int64
	Loaned      int64
	Maintenance int64
}

type LoanCounts struct {
	Pending int64
	Overdue int64
}
