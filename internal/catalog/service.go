package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wortheat/wortheat-backend/internal/vendors"
	"github.com/wortheat/wortheat-backend/pkg/db/models"
	"github.com/wortheat/wortheat-backend/pkg/enums"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
)

const (
	noMenuItemsMessage      = "No menu items found"
	noBreakfastItemsMessage = "No breakfast items found"
	noSnacksMessage         = "No snacks found"
)

// MenuQuery filters the customer-facing weekly menu listing.
type MenuQuery struct {
	VendorID *uuid.UUID
	Date     int
	Month    int
	Year     int
}

// CreateMenuItemInput carries a new weekly-menu dish.
type CreateMenuItemInput struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description" validate:"required"`
	PriceCents  int            `json:"price_cents" validate:"required,gt=0"`
	MealType    enums.MealType `json:"meal_type" validate:"required,oneof=veg non_veg vegan jain"`
	Tags        []string       `json:"tags,omitempty"`
	ImageURL    *string        `json:"image_url,omitempty"`
	Date        int            `json:"date" validate:"required,gte=1,lte=31"`
	Month       int            `json:"month" validate:"required,gte=1,lte=12"`
	Year        int            `json:"year" validate:"required,gte=2020"`
}

// UpdateMenuItemInput carries the mutable fields of a menu item. Nil fields
// are left untouched.
type UpdateMenuItemInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	PriceCents  *int     `json:"price_cents,omitempty" validate:"omitempty,gt=0"`
	Tags        []string `json:"tags,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// CreateSnackItemInput carries a new snack.
type CreateSnackItemInput struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description" validate:"required"`
	PriceCents  int                 `json:"price_cents" validate:"required,gt=0"`
	Category    enums.SnackCategory `json:"category" validate:"required,oneof=breakfast all_day_snacks"`
	ImageURL    *string             `json:"image_url,omitempty"`
}

// UpdateSnackItemInput carries the mutable fields of a snack.
type UpdateSnackItemInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int    `json:"price_cents,omitempty" validate:"omitempty,gt=0"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Service defines the behavior needed by the catalog controllers.
type Service interface {
	ListMenus(ctx context.Context, query MenuQuery) ([]MenuItemDTO, error)
	ListBreakfast(ctx context.Context) ([]SnackItemDTO, error)
	ListAllDaySnacks(ctx context.Context) ([]SnackItemDTO, error)
	ListVendors(ctx context.Context) ([]vendors.VendorSummary, error)

	CreateMenuItem(ctx context.Context, vendorID uuid.UUID, input CreateMenuItemInput) (*MenuItemDTO, error)
	UpdateMenuItem(ctx context.Context, vendorID, itemID uuid.UUID, input UpdateMenuItemInput) (*MenuItemDTO, error)
	DeleteMenuItem(ctx context.Context, vendorID, itemID uuid.UUID) error
	ListVendorMenuItems(ctx context.Context, vendorID uuid.UUID) ([]MenuItemDTO, error)

	CreateSnackItem(ctx context.Context, vendorID uuid.UUID, input CreateSnackItemInput) (*SnackItemDTO, error)
	UpdateSnackItem(ctx context.Context, vendorID, itemID uuid.UUID, input UpdateSnackItemInput) (*SnackItemDTO, error)
	DeleteSnackItem(ctx context.Context, vendorID, itemID uuid.UUID) error
	ListVendorSnackItems(ctx context.Context, vendorID uuid.UUID) ([]SnackItemDTO, error)
}

type vendorLister interface {
	List(ctx context.Context) ([]models.Vendor, error)
}

type service struct {
	repo    Repository
	vendors vendorLister
}

// NewService constructs a catalog service with the provided dependencies.
func NewService(repo Repository, vendorRepo vendorLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if vendorRepo == nil {
		return nil, fmt.Errorf("vendor repository is required")
	}
	return &service{repo: repo, vendors: vendorRepo}, nil
}

func (s *service) ListMenus(ctx context.Context, query MenuQuery) ([]MenuItemDTO, error) {
	rows, err := s.repo.ListMenuItems(ctx, MenuDayFilter{
		VendorID: query.VendorID,
		Date:     query.Date,
		Month:    query.Month,
		Year:     query.Year,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list menu items")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, noMenuItemsMessage)
	}

	items := make([]MenuItemDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, menuItemFromModel(row))
	}
	return items, nil
}

func (s *service) ListBreakfast(ctx context.Context) ([]SnackItemDTO, error) {
	return s.listSnacks(ctx, enums.SnackCategoryBreakfast, noBreakfastItemsMessage)
}

func (s *service) ListAllDaySnacks(ctx context.Context) ([]SnackItemDTO, error) {
	return s.listSnacks(ctx, enums.SnackCategoryAllDaySnack, noSnacksMessage)
}

func (s *service) listSnacks(ctx context.Context, category enums.SnackCategory, emptyMessage string) ([]SnackItemDTO, error) {
	rows, err := s.repo.ListSnackItems(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list snack items")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, emptyMessage)
	}

	items := make([]SnackItemDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, snackItemFromModel(row))
	}
	return items, nil
}

func (s *service) ListVendors(ctx context.Context) ([]vendors.VendorSummary, error) {
	rows, err := s.vendors.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vendors")
	}
	summaries := make([]vendors.VendorSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, vendors.SummaryFromModel(row))
	}
	return summaries, nil
}

func (s *service) CreateMenuItem(ctx context.Context, vendorID uuid.UUID, input CreateMenuItemInput) (*MenuItemDTO, error) {
	if !input.MealType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid meal type")
	}
	dayName, err := dayNameFor(input.Year, input.Month, input.Date)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.CreateMenuItem(ctx, &models.MenuItem{
		VendorID:    vendorID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		PriceCents:  input.PriceCents,
		MealType:    input.MealType,
		Tags:        input.Tags,
		ImageURL:    input.ImageURL,
		ServeDate:   input.Date,
		DayName:     dayName,
		Month:       input.Month,
		Year:        input.Year,
		IsActive:    true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create menu item")
	}
	dto := menuItemFromModel(*item)
	return &dto, nil
}

func (s *service) UpdateMenuItem(ctx context.Context, vendorID, itemID uuid.UUID, input UpdateMenuItemInput) (*MenuItemDTO, error) {
	item, err := s.ownedMenuItem(ctx, vendorID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.PriceCents != nil {
		if *input.PriceCents <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		item.PriceCents = *input.PriceCents
	}
	if input.Tags != nil {
		item.Tags = input.Tags
	}
	if input.ImageURL != nil {
		item.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateMenuItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update menu item")
	}
	dto := menuItemFromModel(*item)
	return &dto, nil
}

func (s *service) DeleteMenuItem(ctx context.Context, vendorID, itemID uuid.UUID) error {
	if _, err := s.ownedMenuItem(ctx, vendorID, itemID); err != nil {
		return err
	}
	if err := s.repo.DeleteMenuItem(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete menu item")
	}
	return nil
}

func (s *service) ListVendorMenuItems(ctx context.Context, vendorID uuid.UUID) ([]MenuItemDTO, error) {
	rows, err := s.repo.ListVendorMenuItems(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vendor menu items")
	}
	items := make([]MenuItemDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, menuItemFromModel(row))
	}
	return items, nil
}

func (s *service) CreateSnackItem(ctx context.Context, vendorID uuid.UUID, input CreateSnackItemInput) (*SnackItemDTO, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid snack category")
	}

	item, err := s.repo.CreateSnackItem(ctx, &models.SnackItem{
		VendorID:    vendorID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		PriceCents:  input.PriceCents,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create snack item")
	}
	dto := snackItemFromModel(*item)
	return &dto, nil
}

func (s *service) UpdateSnackItem(ctx context.Context, vendorID, itemID uuid.UUID, input UpdateSnackItemInput) (*SnackItemDTO, error) {
	item, err := s.ownedSnackItem(ctx, vendorID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.PriceCents != nil {
		if *input.PriceCents <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		item.PriceCents = *input.PriceCents
	}
	if input.ImageURL != nil {
		item.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateSnackItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update snack item")
	}
	dto := snackItemFromModel(*item)
	return &dto, nil
}

func (s *service) DeleteSnackItem(ctx context.Context, vendorID, itemID uuid.UUID) error {
	if _, err := s.ownedSnackItem(ctx, vendorID, itemID); err != nil {
		return err
	}
	if err := s.repo.DeleteSnackItem(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete snack item")
	}
	return nil
}

func (s *service) ListVendorSnackItems(ctx context.Context, vendorID uuid.UUID) ([]SnackItemDTO, error) {
	rows, err := s.repo.ListVendorSnackItems(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vendor snack items")
	}
	items := make([]SnackItemDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, snackItemFromModel(row))
	}
	return items, nil
}

func (s *service) ownedMenuItem(ctx context.Context, vendorID, itemID uuid.UUID) (*models.MenuItem, error) {
	item, err := s.repo.FindMenuItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find menu item")
	}
	if item.VendorID != vendorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "menu item belongs to another vendor")
	}
	return item, nil
}

func (s *service) ownedSnackItem(ctx context.Context, vendorID, itemID uuid.UUID) (*models.SnackItem, error) {
	item, err := s.repo.FindSnackItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "snack item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find snack item")
	}
	if item.VendorID != vendorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "snack item belongs to another vendor")
	}
	return item, nil
}

func dayNameFor(year, month, date int) (string, error) {
	if month < 1 || month > 12 || date < 1 || date > 31 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid serving day")
	}
	day := time.Date(year, time.Month(month), date, 0, 0, 0, 0, time.UTC)
	if day.Day() != date || int(day.Month()) != month {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid serving day")
	}
	return day.Weekday().String(), nil
}
