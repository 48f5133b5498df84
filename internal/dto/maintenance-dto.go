package dto

import "time"

type CreatePlannedMaintenanceDTO struct {
	EquipmentID     uint64    `json:"equipment_id" validate:"required,gt=0"`
	MaintenanceType string    `json:"maintenance_type" validate:"required,min=2,max=255"`
	ScheduledDate   time.Time `json:"scheduled_date" validate:"required"`
}

type UpdatePlannedMaintenanceDTO struct {
	MaintenanceType *string    `json:"maintenance_type,omitempty" validate:"omitempty,min=2,max=255"`
	ScheduledDate   *time.Time `json:"scheduled_date,omitempty"`
	StatusCode      *string    `json:"status_code,omitempty" validate:"omitempty,oneof=PLANNED COMPLETED"`
}

type PlannedMaintenanceDTO struct {
	ID              uint64 `json:"id"`
	EquipmentID     uint64 `json:"equipment_id"`
	MaintenanceType string `json:"maintenance_type"`
	ScheduledDate   string `json:"scheduled_date"`
	StatusCode      string `json:"status_code"`
}

type MaintenanceRecordDTO struct {
	ID          uint64   `json:"id"`
	EquipmentID uint64   `json:"equipment_id"`
	BreakdownID *uint64  `json:"breakdown_id,omitempty"`
	Description string   `json:"description"`
	Resolution  string   `json:"resolution"`
	Hours       float64  `json:"hours"`
	Mileage     *float64 `json:"mileage,omitempty"`
	PerformedAt string   `json:"performed_at"`
}
