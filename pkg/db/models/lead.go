package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead records a customer's expressed interest exactly once; creation is
// find-then-create with a unique constraint backing the race.
type Lead struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:ux_leads_customer"`
	Source     string    `gorm:"column:source;not null;default:'app'"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
