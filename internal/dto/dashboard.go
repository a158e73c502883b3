package dto

type DashboardStatsDTO struct {
	TotalEquipments int64 `json:"total_equipments"`
	Available       int64 `json:"available"`
	Loaned          int64 `json:"loaned"`
	Maintenance     int64 `json:"maintenance"`
	ActiveLoans     int64 `json:"active_loans"`
	OverdueLoans    int64 `json:"overdue_loans"`
}
