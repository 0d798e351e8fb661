package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/wortheat/wortheat-backend/pkg/db/models"
	"github.com/wortheat/wortheat-backend/pkg/enums"
)

// LineItemInput is one requested catalog item at checkout. Prices are never
// accepted from the client; they are snapshotted server-side.
type LineItemInput struct {
	ItemID   uuid.UUID      `json:"item_id" validate:"required"`
	ItemType enums.ItemType `json:"item_type" validate:"required,oneof=menu snack"`
	Category string         `json:"category" validate:"required"`
	Quantity int            `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderInput carries the checkout payload.
type CreateOrderInput struct {
	VendorID uuid.UUID       `json:"vendor_id" validate:"required"`
	Items    []LineItemInput `json:"items" validate:"required,min=1,dive"`
}

// LineItemDTO is the order line shape exposed by the API.
type LineItemDTO struct {
	ID             uuid.UUID      `json:"id"`
	ItemID         uuid.UUID      `json:"item_id"`
	ItemType       enums.ItemType `json:"item_type"`
	Name           string         `json:"name"`
	Category       string         `json:"category"`
	UnitPriceCents int            `json:"unit_price_cents"`
	Quantity       int            `json:"quantity"`
	TotalCents     int            `json:"total_cents"`
}

// OrderDTO is the order shape exposed by the API.
type OrderDTO struct {
	ID              uuid.UUID           `json:"id"`
	CustomerID      uuid.UUID           `json:"customer_id"`
	VendorID        uuid.UUID           `json:"vendor_id"`
	Status          enums.OrderStatus   `json:"status"`
	PaymentStatus   enums.PaymentStatus `json:"payment_status"`
	SubtotalCents   int                 `json:"subtotal_cents"`
	TotalCents      int                 `json:"total_cents"`
	Date            int                 `json:"date"`
	DayName         string              `json:"day_name"`
	Month           int                 `json:"month"`
	Year            int                 `json:"year"`
	TimeOfDay       string              `json:"time_of_day"`
	RazorpayOrderID *string             `json:"razorpay_order_id,omitempty"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	ReceivedAt      *time.Time          `json:"received_at,omitempty"`
	Items           []LineItemDTO       `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
}

// DayGroup is one bucket of the customer's order history, keyed by the
// denormalized order date.
type DayGroup struct {
	DateKey string     `json:"date_key"`
	Orders  []OrderDTO `json:"orders"`
}

// VendorOrderPage is a cursor-paginated slice of a vendor's orders.
type VendorOrderPage struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// FromModel converts a persistence order into its API representation.
func FromModel(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	items := make([]LineItemDTO, 0, len(order.Items))
	for _, line := range order.Items {
		items = append(items, LineItemDTO{
			ID:             line.ID,
			ItemID:         line.ItemID,
			ItemType:       line.ItemType,
			Name:           line.Name,
			Category:       line.Category,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			TotalCents:     line.TotalCents,
		})
	}
	return &OrderDTO{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		VendorID:        order.VendorID,
		Status:          order.Status,
		PaymentStatus:   order.PaymentStatus,
		SubtotalCents:   order.SubtotalCents,
		TotalCents:      order.TotalCents,
		Date:            order.OrderDate,
		DayName:         order.DayName,
		Month:           order.Month,
		Year:            order.Year,
		TimeOfDay:       order.TimeOfDay,
		RazorpayOrderID: order.RazorpayOrderID,
		PaidAt:          order.PaidAt,
		ReceivedAt:      order.ReceivedAt,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}
