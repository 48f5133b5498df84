package entities

import (
	"fleet-system/pkg/types"
)

type Equipment struct {
	ID         uint64   `json:"id" db:"id"`
	Name       string   `json:"name" db:"name"`
	Brand      string   `json:"brand" db:"brand"`
	Model      string   `json:"model" db:"model"`
	VIN        string   `json:"vin" db:"vin"`
	Hours      float64  `json:"hours" db:"hours"`
	Mileage    *float64 `json:"mileage,omitempty" db:"mileage"`
	// StatusCode вычисляется резолвером из активных поломок и планового ТО.
	// Прямое редактирование пользователем запрещено.
	StatusCode string `json:"status_code" db:"status_code"`

	Regulations []MaintenanceRegulation `json:"regulations,omitempty" db:"-"`

	types.BaseEntity
}

// MaintenanceRegulation - регламент ТО: интервал в моточасах и чек-лист работ.
type MaintenanceRegulation struct {
	ID            uint64   `json:"id" db:"id"`
	EquipmentID   uint64   `json:"equipment_id" db:"equipment_id"`
	Name          string   `json:"name" db:"name"`
	IntervalHours float64  `json:"interval_hours" db:"interval_hours"`
	Checklist     []string `json:"checklist" db:"checklist"`
}
