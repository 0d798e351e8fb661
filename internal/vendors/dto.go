package vendors

import (
	"time"

	"github.com/google/uuid"

	"github.com/wortheat/wortheat-backend/pkg/db/models"
)

// VendorDTO is the vendor shape exposed by the API.
type VendorDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	ShopName    string     `json:"shop_name"`
	Phone       *string    `json:"phone,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// VendorSummary is the slim listing shape shown to customers.
type VendorSummary struct {
	ID       uuid.UUID `json:"id"`
	ShopName string    `json:"shop_name"`
}

// FromModel converts a persistence vendor into its API representation.
func FromModel(vendor *models.Vendor) *VendorDTO {
	if vendor == nil {
		return nil
	}
	return &VendorDTO{
		ID:          vendor.ID,
		Email:       vendor.Email,
		Name:        vendor.Name,
		ShopName:    vendor.ShopName,
		Phone:       vendor.Phone,
		LastLoginAt: vendor.LastLoginAt,
		CreatedAt:   vendor.CreatedAt,
	}
}

// SummaryFromModel trims a vendor down to its customer-facing listing fields.
func SummaryFromModel(vendor models.Vendor) VendorSummary {
	return VendorSummary{
		ID:       vendor.ID,
		ShopName: vendor.ShopName,
	}
}
