package entities

import (
	"time"

	"fleet-system/pkg/types"
)

// Breakdown - акт о поломке. Запись никогда не удаляется физически,
// это журнал для последующего аудита.
type Breakdown struct {
	ID          uint64 `json:"id" db:"id"`
	ActNumber   string `json:"act_number" db:"act_number"`
	EquipmentID uint64 `json:"equipment_id" db:"equipment_id"`
	Node        string `json:"node" db:"node"`
	PartName    string `json:"part_name" db:"part_name"`
	Description string `json:"description" db:"description"`

	Severity   string `json:"severity" db:"severity"`
	StatusCode string `json:"status_code" db:"status_code"`

	DateOfBreakdown time.Time  `json:"date_of_breakdown" db:"date_of_breakdown"`
	FixedDate       *time.Time `json:"fixed_date,omitempty" db:"fixed_date"`

	HoursAtBreakdown   *float64 `json:"hours_at_breakdown,omitempty" db:"hours_at_breakdown"`
	MileageAtBreakdown *float64 `json:"mileage_at_breakdown,omitempty" db:"mileage_at_breakdown"`
	HoursAtFix         *float64 `json:"hours_at_fix,omitempty" db:"hours_at_fix"`
	MileageAtFix       *float64 `json:"mileage_at_fix,omitempty" db:"mileage_at_fix"`

	ReporterName string  `json:"reporter_name" db:"reporter_name"`
	Notes        *string `json:"notes,omitempty" db:"notes"`

	types.BaseEntity
}
