package events

import "fleet-system/internal/entities"

// BreakdownReportedEvent возникает при регистрации нового акта о поломке.
type BreakdownReportedEvent struct {
	Breakdown entities.Breakdown
}

func (e BreakdownReportedEvent) Name() string { return "breakdown.reported" }

// BreakdownStatusChangedEvent возникает после любой смены статуса поломки.
type BreakdownStatusChangedEvent struct {
	Breakdown entities.Breakdown
	OldStatus string
}

func (e BreakdownStatusChangedEvent) Name() string { return "breakdown.status.changed" }

// ProcurementStatusChangedEvent возникает после смены статуса заявки на снабжение.
type ProcurementStatusChangedEvent struct {
	Request   entities.ProcurementRequest
	OldStatus string
	Actor     string
}

func (e ProcurementStatusChangedEvent) Name() string { return "procurement.status.changed" }
