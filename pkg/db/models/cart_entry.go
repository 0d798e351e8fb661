package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/wortheat/wortheat-backend/pkg/enums"
)

// CartEntry is a persisted calendar-cart row. Only the calendar ordering
// flow persists cart state; the regular cart lives in the client until
// checkout. Uniqueness over (customer_id, item_id, serve_date) backs the
// quantity upsert.
type CartEntry struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID      `gorm:"column:customer_id;type:uuid;not null;index"`
	ItemID     uuid.UUID      `gorm:"column:item_id;type:uuid;not null"`
	ItemType   enums.ItemType `gorm:"column:item_type;type:text;not null"`
	Quantity   int            `gorm:"column:quantity;not null"`
	ServeDate  int            `gorm:"column:serve_date;not null"`
	Month      int            `gorm:"column:month;not null"`
	Year       int            `gorm:"column:year;not null"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
