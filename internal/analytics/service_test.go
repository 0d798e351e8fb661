package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wortheat/wortheat-backend/pkg/db/models"
)

type stubOrderSource struct {
	rows []models.Order
}

func (s stubOrderSource) ListPaidByVendorBetween(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]models.Order, error) {
	return s.rows, nil
}

func paidOrder(totalCents, year, month, date int) models.Order {
	paidAt := time.Date(year, time.Month(month), date, 12, 0, 0, 0, time.UTC)
	return models.Order{
		ID:         uuid.New(),
		TotalCents: totalCents,
		OrderDate:  date,
		Month:      month,
		Year:       year,
		PaidAt:     &paidAt,
	}
}

func TestSummaryComputesRevenueAndAOV(t *testing.T) {
	source := stubOrderSource{rows: []models.Order{
		paidOrder(12000, 2025, 6, 2),
		paidOrder(8000, 2025, 6, 2),
		paidOrder(15500, 2025, 6, 3),
	}}
	svc, err := NewService(source, func() time.Time {
		return time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	summary, err := svc.Summary(context.Background(), uuid.New(), SummaryQuery{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.TotalOrders != 3 {
		t.Fatalf("expected 3 orders, got %d", summary.TotalOrders)
	}
	if !summary.TotalRevenue.Equal(decimal.RequireFromString("355")) {
		t.Fatalf("expected revenue 355, got %s", summary.TotalRevenue)
	}
	// 355 / 3 rounded to paise.
	if !summary.AverageOrderValue.Equal(decimal.RequireFromString("118.33")) {
		t.Fatalf("expected AOV 118.33, got %s", summary.AverageOrderValue)
	}

	if len(summary.Days) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(summary.Days))
	}
	first := summary.Days[0]
	if first.DateKey != "2025-06-02" || first.Orders != 2 {
		t.Fatalf("unexpected first bucket %+v", first)
	}
	if !first.Revenue.Equal(decimal.RequireFromString("200")) {
		t.Fatalf("expected day revenue 200, got %s", first.Revenue)
	}
	if !first.AverageOrderValue.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("expected day AOV 100, got %s", first.AverageOrderValue)
	}
}

func TestSummaryEmptyWindow(t *testing.T) {
	svc, err := NewService(stubOrderSource{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	summary, err := svc.Summary(context.Background(), uuid.New(), SummaryQuery{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalOrders != 0 {
		t.Fatalf("expected zero orders, got %d", summary.TotalOrders)
	}
	if !summary.TotalRevenue.Equal(decimal.Zero) || !summary.AverageOrderValue.Equal(decimal.Zero) {
		t.Fatal("expected zero money aggregates")
	}
	if len(summary.Days) != 0 {
		t.Fatalf("expected no day buckets, got %d", len(summary.Days))
	}
}
