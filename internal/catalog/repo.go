package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wortheat/wortheat-backend/pkg/db/models"
	"github.com/wortheat/wortheat-backend/pkg/enums"
)

// MenuDayFilter narrows weekly menu queries to a denormalized calendar day.
type MenuDayFilter struct {
	VendorID *uuid.UUID
	Date     int
	Month    int
	Year     int
}

// Repository defines persistence operations for the catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListMenuItems(ctx context.Context, filter MenuDayFilter) ([]models.MenuItem, error)
	ListVendorMenuItems(ctx context.Context, vendorID uuid.UUID) ([]models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error

	CreateSnackItem(ctx context.Context, item *models.SnackItem) (*models.SnackItem, error)
	FindSnackItem(ctx context.Context, id uuid.UUID) (*models.SnackItem, error)
	ListSnackItems(ctx context.Context, category enums.SnackCategory) ([]models.SnackItem, error)
	ListVendorSnackItems(ctx context.Context, vendorID uuid.UUID) ([]models.SnackItem, error)
	UpdateSnackItem(ctx context.Context, item *models.SnackItem) error
	DeleteSnackItem(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListMenuItems(ctx context.Context, filter MenuDayFilter) ([]models.MenuItem, error) {
	query := r.db.WithContext(ctx).
		Preload("Vendor").
		Where("is_active = ?", true)
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.Date > 0 {
		query = query.Where("serve_date = ?", filter.Date)
	}
	if filter.Month > 0 {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Year > 0 {
		query = query.Where("year = ?", filter.Year)
	}

	var rows []models.MenuItem
	err := query.Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) ListVendorMenuItems(ctx context.Context, vendorID uuid.UUID) ([]models.MenuItem, error) {
	var rows []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("year ASC, month ASC, serve_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItem{}).Error
}

func (r *repository) CreateSnackItem(ctx context.Context, item *models.SnackItem) (*models.SnackItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) FindSnackItem(ctx context.Context, id uuid.UUID) (*models.SnackItem, error) {
	var item models.SnackItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListSnackItems(ctx context.Context, category enums.SnackCategory) ([]models.SnackItem, error) {
	query := r.db.WithContext(ctx).
		Preload("Vendor").
		Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var rows []models.SnackItem
	err := query.Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) ListVendorSnackItems(ctx context.Context, vendorID uuid.UUID) ([]models.SnackItem, error) {
	var rows []models.SnackItem
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateSnackItem(ctx context.Context, item *models.SnackItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) DeleteSnackItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SnackItem{}).Error
}
