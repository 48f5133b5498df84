package dto

import (
	"github.com/aarondl/null/v8"
)

type CreateProcurementDTO struct {
	BreakdownID *uint64                    `json:"breakdown_id,omitempty" validate:"omitempty,gt=0"`
	Title       string                     `json:"title" validate:"required,min=2,max=255"`
	Cost        float64                    `json:"cost" validate:"gte=0"`
	Items       []CreateProcurementItemDTO `json:"items" validate:"omitempty,dive"`
}

type CreateProcurementItemDTO struct {
	PartName string  `json:"part_name" validate:"required,min=2,max=255"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}

type SetProcurementStatusDTO struct {
	StatusCode string `json:"status_code" validate:"required,oneof=NEW SOURCING PAID IN_TRANSIT WAREHOUSE"`
}

// UpdateProcurementDTO - частичное обновление "свободных" полей заявки.
// Статус сюда не входит: его меняет только SetStatus, вместе с кросс-синхронизацией.
type UpdateProcurementDTO struct {
	Title null.String                `json:"title,omitempty" validate:"omitempty"`
	Cost  null.Float64               `json:"cost,omitempty" validate:"omitempty"`
	Items []CreateProcurementItemDTO `json:"items,omitempty" validate:"omitempty,dive"`
}

type ProcurementStatusChangeDTO struct {
	StatusCode string `json:"status_code"`
	Actor      string `json:"actor"`
	ChangedAt  string `json:"changed_at"`
}

type ProcurementDTO struct {
	ID          uint64                       `json:"id"`
	BreakdownID *uint64                      `json:"breakdown_id,omitempty"`
	Title       string                       `json:"title"`
	StatusCode  string                       `json:"status_code"`
	Cost        float64                      `json:"cost"`
	CompletedAt *string                      `json:"completed_at,omitempty"`
	History     []ProcurementStatusChangeDTO `json:"history,omitempty"`
	CreatedAt   string                       `json:"created_at"`
}
