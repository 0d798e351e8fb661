package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/wortheat/wortheat-backend/pkg/enums"
)

// OrderLineItem snapshots one catalog item inside an order. item_type
// discriminates whether item_id dereferences menu_items or snack_items.
type OrderLineItem struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID      `gorm:"column:order_id;type:uuid;not null;index"`
	ItemID         uuid.UUID      `gorm:"column:item_id;type:uuid;not null"`
	ItemType       enums.ItemType `gorm:"column:item_type;type:text;not null"`
	Name           string         `gorm:"column:name;not null"`
	Category       string         `gorm:"column:category;not null"`
	UnitPriceCents int            `gorm:"column:unit_price_cents;not null"`
	Quantity       int            `gorm:"column:quantity;not null"`
	TotalCents     int            `gorm:"column:total_cents;not null"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
