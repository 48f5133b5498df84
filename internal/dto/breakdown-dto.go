package dto

import "time"

type ReportBreakdownDTO struct {
	EquipmentID      uint64     `json:"equipment_id" validate:"required,gt=0"`
	Node             string     `json:"node" validate:"omitempty,max=255"`
	PartName         string     `json:"part_name" validate:"required,min=2,max=255"`
	Severity         string     `json:"severity" validate:"omitempty,oneof=LOW MEDIUM CRITICAL"`
	Description      string     `json:"description" validate:"omitempty,max=2000"`
	DateOfBreakdown  *time.Time `json:"date_of_breakdown,omitempty"`
	HoursAtBreakdown *float64   `json:"hours_at_breakdown,omitempty" validate:"omitempty,gte=0"`
	MileageAtBreakdown *float64 `json:"mileage_at_breakdown,omitempty" validate:"omitempty,gte=0"`
	ReporterName     string     `json:"reporter_name" validate:"omitempty,max=255"`
}

type SetBreakdownStatusDTO struct {
	StatusCode   string     `json:"status_code" validate:"required,oneof=NEW PARTS_ORDERED PARTS_RECEIVED IN_PROGRESS FIXED"`
	FixedDate    *time.Time `json:"fixed_date,omitempty"`
	HoursAtFix   *float64   `json:"hours_at_fix,omitempty" validate:"omitempty,gte=0"`
	MileageAtFix *float64   `json:"mileage_at_fix,omitempty" validate:"omitempty,gte=0"`
	Notes        *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type BreakdownDTO struct {
	ID              uint64   `json:"id"`
	ActNumber       string   `json:"act_number"`
	EquipmentID     uint64   `json:"equipment_id"`
	Node            string   `json:"node"`
	PartName        string   `json:"part_name"`
	Description     string   `json:"description"`
	Severity        string   `json:"severity"`
	StatusCode      string   `json:"status_code"`
	DateOfBreakdown string   `json:"date_of_breakdown"`
	FixedDate       *string  `json:"fixed_date,omitempty"`
	HoursAtBreakdown *float64 `json:"hours_at_breakdown,omitempty"`
	HoursAtFix      *float64 `json:"hours_at_fix,omitempty"`
	ReporterName    string   `json:"reporter_name"`
	CreatedAt       string   `json:"created_at"`
}
