package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wortheat/wortheat-backend/pkg/db/models"
	"github.com/wortheat/wortheat-backend/pkg/enums"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
)

type stubCartRepo struct {
	entries map[uuid.UUID]models.CartEntry
	cleared []uuid.UUID
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{entries: map[uuid.UUID]models.CartEntry{}}
}

func (s *stubCartRepo) WithTx(_ *gorm.DB) Repository { return s }

func (s *stubCartRepo) Upsert(_ context.Context, entry *models.CartEntry) (*models.CartEntry, error) {
	for id, existing := range s.entries {
		if existing.CustomerID == entry.CustomerID && existing.ItemID == entry.ItemID && existing.ServeDate == entry.ServeDate {
			existing.Quantity = entry.Quantity
			s.entries[id] = existing
			return &existing, nil
		}
	}
	entry.ID = uuid.New()
	s.entries[entry.ID] = *entry
	stored := s.entries[entry.ID]
	return &stored, nil
}

func (s *stubCartRepo) Find(_ context.Context, id uuid.UUID) (*models.CartEntry, error) {
	if entry, ok := s.entries[id]; ok {
		return &entry, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) List(_ context.Context, customerID uuid.UUID, filter DayFilter) ([]models.CartEntry, error) {
	var out []models.CartEntry
	for _, entry := range s.entries {
		if entry.CustomerID != customerID {
			continue
		}
		if filter.Date > 0 && entry.ServeDate != filter.Date {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *stubCartRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.entries, id)
	return nil
}

func (s *stubCartRepo) Clear(_ context.Context, customerID uuid.UUID) error {
	s.cleared = append(s.cleared, customerID)
	for id, entry := range s.entries {
		if entry.CustomerID == customerID {
			delete(s.entries, id)
		}
	}
	return nil
}

type stubItemFinder struct {
	menuItems  map[uuid.UUID]models.MenuItem
	snackItems map[uuid.UUID]models.SnackItem
}

func (s *stubItemFinder) FindMenuItem(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	if item, ok := s.menuItems[id]; ok {
		return &item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubItemFinder) FindSnackItem(_ context.Context, id uuid.UUID) (*models.SnackItem, error) {
	if item, ok := s.snackItems[id]; ok {
		return &item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newCartService(t *testing.T, repo *stubCartRepo, finder *stubItemFinder) Service {
	t.Helper()
	if finder == nil {
		finder = &stubItemFinder{}
	}
	svc, err := NewService(repo, finder)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestUpsertReplacesQuantityForSameDay(t *testing.T) {
	repo := newStubCartRepo()
	itemID := uuid.New()
	finder := &stubItemFinder{menuItems: map[uuid.UUID]models.MenuItem{
		itemID: {ID: itemID, Name: "Thali", PriceCents: 12000},
	}}
	svc := newCartService(t, repo, finder)
	customerID := uuid.New()

	first, err := svc.Upsert(context.Background(), customerID, UpsertInput{
		ItemID: itemID, ItemType: enums.ItemTypeMenu, Quantity: 1, Date: 5, Month: 6, Year: 2025,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := svc.Upsert(context.Background(), customerID, UpsertInput{
		ItemID: itemID, ItemType: enums.ItemTypeMenu, Quantity: 3, Date: 5, Month: 6, Year: 2025,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected same entry id, got %s and %s", first.ID, second.ID)
	}
	if second.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", second.Quantity)
	}
	if second.Name != "Thali" || second.PriceCents != 12000 {
		t.Fatalf("expected catalog snapshot, got %+v", second)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected single stored entry, got %d", len(repo.entries))
	}
}

func TestUpsertRejectsUnknownItem(t *testing.T) {
	svc := newCartService(t, newStubCartRepo(), &stubItemFinder{})

	_, err := svc.Upsert(context.Background(), uuid.New(), UpsertInput{
		ItemID: uuid.New(), ItemType: enums.ItemTypeSnack, Quantity: 1, Date: 5, Month: 6, Year: 2025,
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteRejectsForeignEntry(t *testing.T) {
	repo := newStubCartRepo()
	owner := uuid.New()
	entryID := uuid.New()
	repo.entries[entryID] = models.CartEntry{ID: entryID, CustomerID: owner, ItemID: uuid.New()}
	svc := newCartService(t, repo, nil)

	err := svc.Delete(context.Background(), uuid.New(), entryID)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := svc.Delete(context.Background(), owner, entryID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if len(repo.entries) != 0 {
		t.Fatal("expected entry removed")
	}
}

func TestClearRemovesOnlyOwnEntries(t *testing.T) {
	repo := newStubCartRepo()
	customer := uuid.New()
	other := uuid.New()
	repo.entries[uuid.New()] = models.CartEntry{ID: uuid.New(), CustomerID: customer}
	keptID := uuid.New()
	repo.entries[keptID] = models.CartEntry{ID: keptID, CustomerID: other}
	svc := newCartService(t, repo, nil)

	if err := svc.Clear(context.Background(), customer); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected one surviving entry, got %d", len(repo.entries))
	}
}
