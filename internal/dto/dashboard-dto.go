package dto

type DashboardDTO struct {
	EquipmentByStatus    map[string]int64 `json:"equipment_by_status"`
	BreakdownsBySeverity map[string]int64 `json:"breakdowns_by_severity"`
	OpenBreakdowns       int64            `json:"open_breakdowns"`
	OverdueMaintenance   int64            `json:"overdue_maintenance"`
}
