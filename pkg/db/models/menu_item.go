package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/wortheat/wortheat-backend/pkg/enums"
)

// MenuItem is a dish on a vendor's weekly menu. The serving day is stored
// denormalized (date/day_name/month/year) so catalog queries can filter on
// direct equality.
type MenuItem struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID    uuid.UUID      `gorm:"column:vendor_id;type:uuid;not null;index"`
	Name        string         `gorm:"column:name;not null"`
	Description string         `gorm:"column:description;not null"`
	PriceCents  int            `gorm:"column:price_cents;not null"`
	MealType    enums.MealType `gorm:"column:meal_type;type:text;not null;default:'veg'"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	ImageURL    *string        `gorm:"column:image_url"`
	ServeDate   int            `gorm:"column:serve_date;not null"`
	DayName     string         `gorm:"column:day_name;not null"`
	Month       int            `gorm:"column:month;not null"`
	Year        int            `gorm:"column:year;not null"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true"`
	Vendor      *Vendor        `gorm:"foreignKey:VendorID"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
