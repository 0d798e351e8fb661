package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/wortheat/wortheat-backend/pkg/enums"
)

// Order is the persisted checkout result. status tracks fulfillment
// (pending -> received) while payment_status tracks settlement
// (pending -> paid); the two advance independently. The order date is
// stored denormalized for human-readable grouping and equality filters.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID      uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	VendorID        uuid.UUID           `gorm:"column:vendor_id;type:uuid;not null;index"`
	Status          enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	SubtotalCents   int                 `gorm:"column:subtotal_cents;not null"`
	TotalCents      int                 `gorm:"column:total_cents;not null"`
	OrderDate       int                 `gorm:"column:order_date;not null"`
	DayName         string              `gorm:"column:day_name;not null"`
	Month           int                 `gorm:"column:month;not null"`
	Year            int                 `gorm:"column:year;not null"`
	TimeOfDay       string              `gorm:"column:time_of_day;not null"`
	RazorpayOrderID *string             `gorm:"column:razorpay_order_id"`
	PaidAt          *time.Time          `gorm:"column:paid_at"`
	ReceivedAt      *time.Time          `gorm:"column:received_at"`
	Items           []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// DateKey renders the grouping key used by the order history listing.
func (o Order) DateKey() string {
	return time.Date(o.Year, time.Month(o.Month), o.OrderDate, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
