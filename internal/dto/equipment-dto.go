package dto

type CreateEquipmentDTO struct {
	Name        string          `json:"name" validate:"required,min=2,max=255"`
	Brand       string          `json:"brand" validate:"omitempty,max=100"`
	Model       string          `json:"model" validate:"omitempty,max=100"`
	VIN         string          `json:"vin" validate:"omitempty,max=64"`
	Hours       float64         `json:"hours" validate:"gte=0"`
	Mileage     *float64        `json:"mileage,omitempty" validate:"omitempty,gte=0"`
	Regulations []RegulationDTO `json:"regulations,omitempty" validate:"omitempty,dive"`
}

// RegulationDTO - регламент ТО: интервал в моточасах и чек-лист работ.
type RegulationDTO struct {
	Name          string   `json:"name" validate:"required,min=2,max=255"`
	IntervalHours float64  `json:"interval_hours" validate:"required,gt=0"`
	Checklist     []string `json:"checklist" validate:"omitempty,dive,min=1"`
}

type UpdateEquipmentDTO struct {
	Name    *string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Brand   *string  `json:"brand,omitempty" validate:"omitempty,max=100"`
	Model   *string  `json:"model,omitempty" validate:"omitempty,max=100"`
	VIN     *string  `json:"vin,omitempty" validate:"omitempty,max=64"`
	Hours   *float64 `json:"hours,omitempty" validate:"omitempty,gte=0"`
	Mileage *float64 `json:"mileage,omitempty" validate:"omitempty,gte=0"`
	// nil - регламенты не меняются, непустой срез заменяет список целиком.
	Regulations []RegulationDTO `json:"regulations,omitempty" validate:"omitempty,dive"`
}

// UpdateCountersDTO - обновление показаний счётчиков (моточасы, пробег)
// без правки паспортных данных.
type UpdateCountersDTO struct {
	Hours   float64  `json:"hours" validate:"gte=0"`
	Mileage *float64 `json:"mileage,omitempty" validate:"omitempty,gte=0"`
}

type EquipmentDTO struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	VIN         string          `json:"vin"`
	Hours       float64         `json:"hours"`
	Mileage     *float64        `json:"mileage,omitempty"`
	StatusCode  string          `json:"status_code"`
	Regulations []RegulationDTO `json:"regulations,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}
