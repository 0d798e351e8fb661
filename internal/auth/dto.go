package auth

import (
	"github.com/wortheat/wortheat-backend/internal/users"
	"github.com/wortheat/wortheat-backend/internal/vendors"
)

// LoginRequest captures the credentials sent to the login endpoints.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterCustomerRequest contains the payload for customer signup.
type RegisterCustomerRequest struct {
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	Company    *string `json:"company,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

// RegisterVendorRequest contains the payload for vendor signup.
type RegisterVendorRequest struct {
	Name     string  `json:"name" validate:"required"`
	ShopName string  `json:"shop_name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone,omitempty"`
}

// RefreshRequest carries the expired access token and its paired refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair is the access/refresh pair returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CustomerLoginResponse contains the tokens and user produced by a customer login.
type CustomerLoginResponse struct {
	TokenPair
	User *users.UserDTO `json:"user"`
}

// VendorLoginResponse contains the tokens and vendor produced by a vendor login.
type VendorLoginResponse struct {
	TokenPair
	Vendor *vendors.VendorDTO `json:"vendor"`
}
