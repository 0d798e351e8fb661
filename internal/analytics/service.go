package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wortheat/wortheat-backend/pkg/db/models"
	"github.com/wortheat/wortheat-backend/pkg/enums"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
)

// SummaryQuery bounds the reporting window. Zero times default to the
// trailing 30 days.
type SummaryQuery struct {
	From time.Time
	To   time.Time
}

// DaySummary aggregates one calendar day of a vendor's paid orders. Money is
// reported in rupees with paise precision.
type DaySummary struct {
	DateKey           string          `json:"date_key"`
	Orders            int             `json:"orders"`
	Revenue           decimal.Decimal `json:"revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// Summary is the vendor-facing analytics report.
type Summary struct {
	From              string          `json:"from"`
	To                string          `json:"to"`
	TotalOrders       int             `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	Days              []DaySummary    `json:"days"`
}

// Service defines the behavior needed by the vendor analytics controller.
type Service interface {
	Summary(ctx context.Context, vendorID uuid.UUID, query SummaryQuery) (*Summary, error)
}

type orderSource interface {
	ListPaidByVendorBetween(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]models.Order, error)
}

type service struct {
	orders orderSource
	now    func() time.Time
}

// NewService constructs an analytics service over the orders table.
func NewService(orders orderSource, now func() time.Time) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order source is required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{orders: orders, now: now}, nil
}

var centsPerRupee = decimal.NewFromInt(100)

func (s *service) Summary(ctx context.Context, vendorID uuid.UUID, query SummaryQuery) (*Summary, error) {
	from, to := s.window(query)
	if to.Before(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report window end precedes start")
	}

	rows, err := s.orders.ListPaidByVendorBetween(ctx, vendorID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list paid orders")
	}

	byDay := make(map[string]*DaySummary)
	totalRevenue := decimal.Zero
	for _, order := range rows {
		key := order.DateKey()
		day, ok := byDay[key]
		if !ok {
			day = &DaySummary{DateKey: key, Revenue: decimal.Zero}
			byDay[key] = day
		}
		amount := decimal.NewFromInt(int64(order.TotalCents)).Div(centsPerRupee)
		day.Orders++
		day.Revenue = day.Revenue.Add(amount)
		totalRevenue = totalRevenue.Add(amount)
	}

	keys := make([]string, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	days := make([]DaySummary, 0, len(keys))
	for _, key := range keys {
		day := byDay[key]
		day.AverageOrderValue = averageValue(day.Revenue, day.Orders)
		days = append(days, *day)
	}

	return &Summary{
		From:              from.Format("2006-01-02"),
		To:                to.Format("2006-01-02"),
		TotalOrders:       len(rows),
		TotalRevenue:      totalRevenue,
		AverageOrderValue: averageValue(totalRevenue, len(rows)),
		Days:              days,
	}, nil
}

func (s *service) window(query SummaryQuery) (time.Time, time.Time) {
	to := query.To
	if to.IsZero() {
		to = s.now().UTC()
	}
	from := query.From
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return from, to
}

func averageValue(revenue decimal.Decimal, orders int) decimal.Decimal {
	if orders == 0 {
		return decimal.Zero
	}
	return revenue.DivRound(decimal.NewFromInt(int64(orders)), 2)
}

// Repository provides the paid-order source backed by gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an analytics repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListPaidByVendorBetween returns the vendor's paid orders inside [from, to].
func (r *Repository) ListPaidByVendorBetween(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Where("payment_status = ?", enums.PaymentStatusPaid).
		Where("paid_at >= ? AND paid_at <= ?", from, to).
		Order("paid_at ASC").
		Find(&rows).Error
	return rows, err
}
