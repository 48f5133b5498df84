package entities

import (
	"time"

	"fleet-system/pkg/types"

	"github.com/google/uuid"
)

// ProcurementRequest - заявка на закупку запчастей. Может ссылаться на акт о
// поломке (не больше одной активной заявки на поломку - договорённость UI,
// структурно не навязывается).
type ProcurementRequest struct {
	ID          uint64  `json:"id" db:"id"`
	BreakdownID *uint64 `json:"breakdown_id,omitempty" db:"breakdown_id"`
	Title       string  `json:"title" db:"title"`
	StatusCode  string  `json:"status_code" db:"status_code"`
	Cost        float64 `json:"cost" db:"cost"`

	Items []ProcurementItem `json:"items" db:"-"`

	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	// History - журнал смен статуса, только дописывается.
	History []ProcurementStatusChange `json:"history" db:"-"`

	types.BaseEntity
}

type ProcurementItem struct {
	ID        uint64  `json:"id" db:"id"`
	RequestID uint64  `json:"request_id" db:"request_id"`
	PartName  string  `json:"part_name" db:"part_name"`
	Quantity  int     `json:"quantity" db:"quantity"`
	Price     float64 `json:"price" db:"price"`
}

// ProcurementStatusChange - одна запись журнала статусов. TxID группирует
// записи, сделанные в рамках одной синхронной цепочки вызовов.
type ProcurementStatusChange struct {
	ID         uint64    `json:"id" db:"id"`
	RequestID  uint64    `json:"request_id" db:"request_id"`
	StatusCode string    `json:"status_code" db:"status_code"`
	Actor      string    `json:"actor" db:"actor"`
	TxID       uuid.UUID `json:"tx_id" db:"tx_id"`
	ChangedAt  time.Time `json:"changed_at" db:"changed_at"`
}
