package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/wortheat/wortheat-backend/pkg/enums"
)

// SnackItem is an always-available item, bucketed into breakfast or
// all-day snacks rather than a weekly date.
type SnackItem struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID    uuid.UUID           `gorm:"column:vendor_id;type:uuid;not null;index"`
	Name        string              `gorm:"column:name;not null"`
	Description string              `gorm:"column:description;not null"`
	PriceCents  int                 `gorm:"column:price_cents;not null"`
	Category    enums.SnackCategory `gorm:"column:category;type:text;not null"`
	ImageURL    *string             `gorm:"column:image_url"`
	IsActive    bool                `gorm:"column:is_active;not null;default:true"`
	Vendor      *Vendor             `gorm:"foreignKey:VendorID"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
