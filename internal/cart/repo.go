package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wortheat/wortheat-backend/pkg/db/models"
)

// DayFilter narrows cart listings to a calendar day. Zero fields match all.
type DayFilter struct {
	Date  int
	Month int
	Year  int
}

// Repository defines persistence operations for calendar-cart entries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, entry *models.CartEntry) (*models.CartEntry, error)
	Find(ctx context.Context, id uuid.UUID) (*models.CartEntry, error)
	List(ctx context.Context, customerID uuid.UUID, filter DayFilter) ([]models.CartEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context, customerID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Upsert inserts the entry or, when the (customer, item, serve day) row
// already exists, replaces its quantity.
func (r *repository) Upsert(ctx context.Context, entry *models.CartEntry) (*models.CartEntry, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "customer_id"},
			{Name: "item_id"},
			{Name: "serve_date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "month", "year", "updated_at"}),
	}).Create(entry).Error
	if err != nil {
		return nil, err
	}

	var stored models.CartEntry
	err = r.db.WithContext(ctx).
		Where("customer_id = ? AND item_id = ? AND serve_date = ?", entry.CustomerID, entry.ItemID, entry.ServeDate).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.CartEntry, error) {
	var entry models.CartEntry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) List(ctx context.Context, customerID uuid.UUID, filter DayFilter) ([]models.CartEntry, error) {
	query := r.db.WithContext(ctx).Where("customer_id = ?", customerID)
	if filter.Date > 0 {
		query = query.Where("serve_date = ?", filter.Date)
	}
	if filter.Month > 0 {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Year > 0 {
		query = query.Where("year = ?", filter.Year)
	}

	var rows []models.CartEntry
	err := query.Order("year ASC, month ASC, serve_date ASC, created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CartEntry{}).Error
}

func (r *repository) Clear(ctx context.Context, customerID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("customer_id = ?", customerID).Delete(&models.CartEntry{}).Error
}
