package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wortheat/wortheat-backend/pkg/db/models"
	"github.com/wortheat/wortheat-backend/pkg/enums"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
)

// UpsertInput carries one calendar-cart mutation. Quantity replaces the
// stored value for the (item, serve day) pair.
type UpsertInput struct {
	ItemID   uuid.UUID      `json:"item_id" validate:"required"`
	ItemType enums.ItemType `json:"item_type" validate:"required,oneof=menu snack"`
	Quantity int            `json:"quantity" validate:"required,gt=0"`
	Date     int            `json:"date" validate:"required,gte=1,lte=31"`
	Month    int            `json:"month" validate:"required,gte=1,lte=12"`
	Year     int            `json:"year" validate:"required,gte=2020"`
}

// EntryDTO is the cart entry shape exposed by the API, decorated with the
// current catalog snapshot of the item.
type EntryDTO struct {
	ID         uuid.UUID      `json:"id"`
	ItemID     uuid.UUID      `json:"item_id"`
	ItemType   enums.ItemType `json:"item_type"`
	Name       string         `json:"name"`
	PriceCents int            `json:"price_cents"`
	Quantity   int            `json:"quantity"`
	Date       int            `json:"date"`
	Month      int            `json:"month"`
	Year       int            `json:"year"`
}

// Service defines the behavior needed by the cart controller.
type Service interface {
	Upsert(ctx context.Context, customerID uuid.UUID, input UpsertInput) (*EntryDTO, error)
	List(ctx context.Context, customerID uuid.UUID, filter DayFilter) ([]EntryDTO, error)
	Delete(ctx context.Context, customerID, entryID uuid.UUID) error
	Clear(ctx context.Context, customerID uuid.UUID) error
}

type itemFinder interface {
	FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	FindSnackItem(ctx context.Context, id uuid.UUID) (*models.SnackItem, error)
}

type service struct {
	repo    Repository
	catalog itemFinder
}

// NewService constructs a cart service with the provided dependencies.
func NewService(repo Repository, catalog itemFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: repo, catalog: catalog}, nil
}

func (s *service) Upsert(ctx context.Context, customerID uuid.UUID, input UpsertInput) (*EntryDTO, error) {
	if !input.ItemType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item type")
	}
	if !validDay(input.Year, input.Month, input.Date) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cart day")
	}

	name, price, err := s.itemSnapshot(ctx, input.ItemID, input.ItemType)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.Upsert(ctx, &models.CartEntry{
		CustomerID: customerID,
		ItemID:     input.ItemID,
		ItemType:   input.ItemType,
		Quantity:   input.Quantity,
		ServeDate:  input.Date,
		Month:      input.Month,
		Year:       input.Year,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert cart entry")
	}

	dto := entryDTO(*entry, name, price)
	return &dto, nil
}

func (s *service) List(ctx context.Context, customerID uuid.UUID, filter DayFilter) ([]EntryDTO, error) {
	rows, err := s.repo.List(ctx, customerID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart entries")
	}

	entries := make([]EntryDTO, 0, len(rows))
	for _, row := range rows {
		name, price, err := s.itemSnapshot(ctx, row.ItemID, row.ItemType)
		if err != nil {
			// The catalog row may have been removed since the entry was
			// added; surface the entry without a snapshot rather than
			// failing the whole listing.
			appErr := pkgerrors.As(err)
			if appErr != nil && appErr.Code() == pkgerrors.CodeNotFound {
				entries = append(entries, entryDTO(row, "", 0))
				continue
			}
			return nil, err
		}
		entries = append(entries, entryDTO(row, name, price))
	}
	return entries, nil
}

func (s *service) Delete(ctx context.Context, customerID, entryID uuid.UUID) error {
	entry, err := s.repo.Find(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart entry not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find cart entry")
	}
	if entry.CustomerID != customerID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cart entry belongs to another customer")
	}
	if err := s.repo.Delete(ctx, entryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart entry")
	}
	return nil
}

func (s *service) Clear(ctx context.Context, customerID uuid.UUID) error {
	if err := s.repo.Clear(ctx, customerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

func (s *service) itemSnapshot(ctx context.Context, itemID uuid.UUID, itemType enums.ItemType) (string, int, error) {
	switch itemType {
	case enums.ItemTypeMenu:
		item, err := s.catalog.FindMenuItem(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", 0, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
			}
			return "", 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find menu item")
		}
		return item.Name, item.PriceCents, nil
	case enums.ItemTypeSnack:
		item, err := s.catalog.FindSnackItem(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", 0, pkgerrors.New(pkgerrors.CodeNotFound, "snack item not found")
			}
			return "", 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find snack item")
		}
		return item.Name, item.PriceCents, nil
	default:
		return "", 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid item type")
	}
}

func entryDTO(entry models.CartEntry, name string, price int) EntryDTO {
	return EntryDTO{
		ID:         entry.ID,
		ItemID:     entry.ItemID,
		ItemType:   entry.ItemType,
		Name:       name,
		PriceCents: price,
		Quantity:   entry.Quantity,
		Date:       entry.ServeDate,
		Month:      entry.Month,
		Year:       entry.Year,
	}
}

func validDay(year, month, date int) bool {
	if month < 1 || month > 12 || date < 1 || date > 31 {
		return false
	}
	day := time.Date(year, time.Month(month), date, 0, 0, 0, 0, time.UTC)
	return day.Day() == date && int(day.Month()) == month
}
