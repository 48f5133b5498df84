package types

import "time"

type BaseEntity struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	WithPagination bool                   `json:"with_pagination"`
}

// http://localhost:8080/api/breakdowns?sort[created_at]=desc&filter[status_code]=NEW&limit=10&offset=0

type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}
