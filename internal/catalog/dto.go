package catalog

import (
	"github.com/google/uuid"

	"github.com/wortheat/wortheat-backend/pkg/db/models"
	"github.com/wortheat/wortheat-backend/pkg/enums"
)

// MenuItemDTO is the weekly-menu item shape exposed by the API. The vendor
// shop name rides along denormalized so listings render without a second
// lookup.
type MenuItemDTO struct {
	ID          uuid.UUID      `json:"id"`
	VendorID    uuid.UUID      `json:"vendor_id"`
	ShopName    string         `json:"shop_name,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	PriceCents  int            `json:"price_cents"`
	MealType    enums.MealType `json:"meal_type"`
	Tags        []string       `json:"tags"`
	ImageURL    *string        `json:"image_url,omitempty"`
	Date        int            `json:"date"`
	DayName     string         `json:"day_name"`
	Month       int            `json:"month"`
	Year        int            `json:"year"`
}

// SnackItemDTO is the snack shape exposed by the API.
type SnackItemDTO struct {
	ID          uuid.UUID           `json:"id"`
	VendorID    uuid.UUID           `json:"vendor_id"`
	ShopName    string              `json:"shop_name,omitempty"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	PriceCents  int                 `json:"price_cents"`
	Category    enums.SnackCategory `json:"category"`
	ImageURL    *string             `json:"image_url,omitempty"`
}

func menuItemFromModel(item models.MenuItem) MenuItemDTO {
	dto := MenuItemDTO{
		ID:          item.ID,
		VendorID:    item.VendorID,
		Name:        item.Name,
		Description: item.Description,
		PriceCents:  item.PriceCents,
		MealType:    item.MealType,
		Tags:        []string(item.Tags),
		ImageURL:    item.ImageURL,
		Date:        item.ServeDate,
		DayName:     item.DayName,
		Month:       item.Month,
		Year:        item.Year,
	}
	if dto.Tags == nil {
		dto.Tags = []string{}
	}
	if item.Vendor != nil {
		dto.ShopName = item.Vendor.ShopName
	}
	return dto
}

func snackItemFromModel(item models.SnackItem) SnackItemDTO {
	dto := SnackItemDTO{
		ID:          item.ID,
		VendorID:    item.VendorID,
		Name:        item.Name,
		Description: item.Description,
		PriceCents:  item.PriceCents,
		Category:    item.Category,
		ImageURL:    item.ImageURL,
	}
	if item.Vendor != nil {
		dto.ShopName = item.Vendor.ShopName
	}
	return dto
}
