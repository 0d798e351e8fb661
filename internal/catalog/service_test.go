package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wortheat/wortheat-backend/pkg/db/models"
	"github.com/wortheat/wortheat-backend/pkg/enums"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
)

type stubRepo struct {
	Repository

	menuItems  []models.MenuItem
	snackItems []models.SnackItem
	deleted    []uuid.UUID
	updated    []uuid.UUID
}

func (s *stubRepo) CreateMenuItem(_ context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	item.ID = uuid.New()
	s.menuItems = append(s.menuItems, *item)
	return item, nil
}

func (s *stubRepo) FindMenuItem(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	for i := range s.menuItems {
		if s.menuItems[i].ID == id {
			item := s.menuItems[i]
			return &item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) ListMenuItems(_ context.Context, filter MenuDayFilter) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range s.menuItems {
		if filter.Date > 0 && item.ServeDate != filter.Date {
			continue
		}
		if filter.VendorID != nil && item.VendorID != *filter.VendorID {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *stubRepo) UpdateMenuItem(_ context.Context, item *models.MenuItem) error {
	s.updated = append(s.updated, item.ID)
	return nil
}

func (s *stubRepo) DeleteMenuItem(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubRepo) ListSnackItems(_ context.Context, category enums.SnackCategory) ([]models.SnackItem, error) {
	var out []models.SnackItem
	for _, item := range s.snackItems {
		if category != "" && item.Category != category {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

type stubVendorLister struct {
	rows []models.Vendor
}

func (s *stubVendorLister) List(_ context.Context) ([]models.Vendor, error) {
	return s.rows, nil
}

func newCatalogService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(repo, &stubVendorLister{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestListMenusEmptyIsNotFound(t *testing.T) {
	svc := newCatalogService(t, &stubRepo{})

	_, err := svc.ListMenus(context.Background(), MenuQuery{Date: 12, Month: 3, Year: 2025})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if appErr.Error() != "No menu items found" {
		t.Fatalf("unexpected message %q", appErr.Error())
	}
}

func TestListBreakfastEmptyIsNotFound(t *testing.T) {
	repo := &stubRepo{snackItems: []models.SnackItem{
		{ID: uuid.New(), Category: enums.SnackCategoryAllDaySnack, Name: "Samosa"},
	}}
	svc := newCatalogService(t, repo)

	_, err := svc.ListBreakfast(context.Background())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if appErr.Error() != "No breakfast items found" {
		t.Fatalf("unexpected message %q", appErr.Error())
	}

	snacks, err := svc.ListAllDaySnacks(context.Background())
	if err != nil {
		t.Fatalf("list all-day snacks: %v", err)
	}
	if len(snacks) != 1 || snacks[0].Name != "Samosa" {
		t.Fatalf("unexpected snacks %+v", snacks)
	}
}

func TestCreateMenuItemDerivesDayName(t *testing.T) {
	repo := &stubRepo{}
	svc := newCatalogService(t, repo)
	vendorID := uuid.New()

	dto, err := svc.CreateMenuItem(context.Background(), vendorID, CreateMenuItemInput{
		Name:        "Poha",
		Description: "Flattened rice with peanuts",
		PriceCents:  4500,
		MealType:    enums.MealTypeVeg,
		Date:        2,
		Month:       6,
		Year:        2025,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// 2025-06-02 is a Monday.
	if dto.DayName != "Monday" {
		t.Fatalf("expected Monday, got %s", dto.DayName)
	}
	if dto.VendorID != vendorID {
		t.Fatalf("expected vendor %s, got %s", vendorID, dto.VendorID)
	}
}

func TestCreateMenuItemRejectsImpossibleDay(t *testing.T) {
	svc := newCatalogService(t, &stubRepo{})

	_, err := svc.CreateMenuItem(context.Background(), uuid.New(), CreateMenuItemInput{
		Name:        "Poha",
		Description: "Flattened rice",
		PriceCents:  4500,
		MealType:    enums.MealTypeVeg,
		Date:        31,
		Month:       2,
		Year:        2025,
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateMenuItemRejectsForeignVendor(t *testing.T) {
	owner := uuid.New()
	repo := &stubRepo{menuItems: []models.MenuItem{
		{ID: uuid.New(), VendorID: owner, Name: "Thali"},
	}}
	svc := newCatalogService(t, repo)

	name := "Special Thali"
	_, err := svc.UpdateMenuItem(context.Background(), uuid.New(), repo.menuItems[0].ID, UpdateMenuItemInput{Name: &name})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDeleteMenuItemUnknownIsNotFound(t *testing.T) {
	svc := newCatalogService(t, &stubRepo{})

	err := svc.DeleteMenuItem(context.Background(), uuid.New(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
