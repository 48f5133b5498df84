package constants

// --- СТАТУСЫ ТЕХНИКИ (вычисляются резолвером, руками не выставляются) ---
const (
	EquipmentStatusActive           = "ACTIVE"
	EquipmentStatusWithRestrictions = "ACTIVE_WITH_RESTRICTIONS"
	EquipmentStatusMaintenanceDue   = "MAINTENANCE_DUE"
	EquipmentStatusWaitingForParts  = "WAITING_FOR_PARTS"
	EquipmentStatusInRepair         = "IN_REPAIR"
)

// --- СТАТУСЫ ПОЛОМОК ---
const (
	BreakdownStatusNew           = "NEW"
	BreakdownStatusPartsOrdered  = "PARTS_ORDERED"
	BreakdownStatusPartsReceived = "PARTS_RECEIVED"
	BreakdownStatusInProgress    = "IN_PROGRESS"
	BreakdownStatusFixed         = "FIXED"
)

// --- СЕРЬЕЗНОСТЬ ПОЛОМКИ ---
const (
	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityCritical = "CRITICAL"
)

// --- СТАТУСЫ ЗАЯВОК НА СНАБЖЕНИЕ ---
const (
	ProcurementStatusNew       = "NEW"
	ProcurementStatusSourcing  = "SOURCING"
	ProcurementStatusPaid      = "PAID"
	ProcurementStatusInTransit = "IN_TRANSIT"
	ProcurementStatusWarehouse = "WAREHOUSE"
)

// --- СТАТУСЫ ПЛАНОВОГО ТО ---
const (
	MaintenanceStatusPlanned   = "PLANNED"
	MaintenanceStatusCompleted = "COMPLETED"
)

// Штатная последовательность статусов снабжения ("счастливый путь" в UI).
// Менеджер жизненного цикла произвольные переходы НЕ запрещает, список нужен
// только строгому режиму политики переходов.
var ProcurementStatusOrder = []string{
	ProcurementStatusNew,
	ProcurementStatusSourcing,
	ProcurementStatusPaid,
	ProcurementStatusInTransit,
	ProcurementStatusWarehouse,
}

// BreakdownStatusForProcurement отображает статус заявки на снабжение в статус
// связанной поломки. Отображение одностороннее: снабжение ведёт поломку,
// обратного влияния нет.
func BreakdownStatusForProcurement(procurementStatus string) string {
	switch procurementStatus {
	case ProcurementStatusPaid, ProcurementStatusInTransit:
		return BreakdownStatusPartsOrdered
	case ProcurementStatusWarehouse:
		return BreakdownStatusPartsReceived
	case ProcurementStatusNew, ProcurementStatusSourcing:
		return BreakdownStatusNew
	}
	return ""
}

// IsActiveBreakdownStatus - поломка остаётся "активной", пока не устранена.
func IsActiveBreakdownStatus(code string) bool {
	return code != BreakdownStatusFixed
}

var ValidSeverities = []string{SeverityLow, SeverityMedium, SeverityCritical}

func IsValidSeverity(code string) bool {
	for _, s := range ValidSeverities {
		if s == code {
			return true
		}
	}
	return false
}

var ValidBreakdownStatuses = []string{
	BreakdownStatusNew,
	BreakdownStatusPartsOrdered,
	BreakdownStatusPartsReceived,
	BreakdownStatusInProgress,
	BreakdownStatusFixed,
}

var ValidProcurementStatuses = ProcurementStatusOrder
