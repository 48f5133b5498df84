package entities

import (
	"time"

	"fleet-system/pkg/types"
)

// PlannedMaintenance - запланированное ТО. Для резолвера статуса техники это
// только источник чтения, пишут сюда сценарии планирования.
type PlannedMaintenance struct {
	ID              uint64    `json:"id" db:"id"`
	EquipmentID     uint64    `json:"equipment_id" db:"equipment_id"`
	MaintenanceType string    `json:"maintenance_type" db:"maintenance_type"`
	ScheduledDate   time.Time `json:"scheduled_date" db:"scheduled_date"`
	StatusCode      string    `json:"status_code" db:"status_code"`

	types.BaseEntity
}

// MaintenanceRecord - запись журнала обслуживания. Дописывается при устранении
// поломки и при завершении планового ТО.
type MaintenanceRecord struct {
	ID          uint64   `json:"id" db:"id"`
	EquipmentID uint64   `json:"equipment_id" db:"equipment_id"`
	BreakdownID *uint64  `json:"breakdown_id,omitempty" db:"breakdown_id"`
	Description string   `json:"description" db:"description"`
	Resolution  string   `json:"resolution" db:"resolution"`
	Hours       float64  `json:"hours" db:"hours"`
	Mileage     *float64 `json:"mileage,omitempty" db:"mileage"`

	PerformedAt time.Time `json:"performed_at" db:"performed_at"`

	types.BaseEntity
}
