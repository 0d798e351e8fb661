package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wortheat/wortheat-backend/internal/orders"
	"github.com/wortheat/wortheat-backend/pkg/db/models"
	"github.com/wortheat/wortheat-backend/pkg/enums"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
	"github.com/wortheat/wortheat-backend/pkg/outbox"
	"github.com/wortheat/wortheat-backend/pkg/pagination"
	"github.com/wortheat/wortheat-backend/pkg/razorpay"
)

const testKeySecret = "test_secret"

type memoryOrderRepo struct {
	rows map[uuid.UUID]*models.Order
}

func newMemoryOrderRepo() *memoryOrderRepo {
	return &memoryOrderRepo{rows: map[uuid.UUID]*models.Order{}}
}

func (m *memoryOrderRepo) WithTx(_ *gorm.DB) orders.Repository { return m }

func (m *memoryOrderRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	m.rows[order.ID] = order
	return order, nil
}

func (m *memoryOrderRepo) Find(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := m.rows[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryOrderRepo) FindByRazorpayOrderID(_ context.Context, razorpayOrderID string) (*models.Order, error) {
	for _, order := range m.rows {
		if order.RazorpayOrderID != nil && *order.RazorpayOrderID == razorpayOrderID {
			copied := *order
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryOrderRepo) ListByCustomer(_ context.Context, _ uuid.UUID) ([]models.Order, error) {
	return nil, nil
}

func (m *memoryOrderRepo) ListByVendor(_ context.Context, _ uuid.UUID, _ int, _ *pagination.Cursor) ([]models.Order, error) {
	return nil, nil
}

func (m *memoryOrderRepo) Update(_ context.Context, order *models.Order) error {
	copied := *order
	m.rows[order.ID] = &copied
	return nil
}

func (m *memoryOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.rows, id)
	return nil
}

type fakeGateway struct {
	created []razorpay.OrderParams
	nextID  string
}

func (f *fakeGateway) CreateOrder(_ context.Context, params razorpay.OrderParams) (*razorpay.Order, error) {
	f.created = append(f.created, params)
	return &razorpay.Order{ID: f.nextID, Amount: params.AmountCents, Currency: "INR", Status: "created"}, nil
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return razorpay.VerifySignature(testKeySecret, orderID, paymentID, signature)
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

type captureOutbox struct {
	events []outbox.DomainEvent
}

func (c *captureOutbox) Emit(_ context.Context, _ *gorm.DB, event outbox.DomainEvent) error {
	c.events = append(c.events, event)
	return nil
}

type fixture struct {
	repo    *memoryOrderRepo
	gateway *fakeGateway
	outbox  *captureOutbox
	svc     Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newMemoryOrderRepo()
	gateway := &fakeGateway{nextID: "order_RZP123"}
	events := &captureOutbox{}
	svc, err := NewService(ServiceParams{
		Orders:  repo,
		Gateway: gateway,
		Tx:      passthroughTx{},
		Outbox:  events,
		KeyID:   "rzp_test_key",
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &fixture{repo: repo, gateway: gateway, outbox: events, svc: svc}
}

func seedOrder(f *fixture, customerID uuid.UUID, totalCents int) *models.Order {
	order := &models.Order{
		ID:            uuid.New(),
		CustomerID:    customerID,
		VendorID:      uuid.New(),
		Status:        enums.OrderStatusPending,
		PaymentStatus: enums.PaymentStatusPending,
		SubtotalCents: totalCents,
		TotalCents:    totalCents,
		CreatedAt:     time.Now(),
	}
	f.repo.rows[order.ID] = order
	return order
}

// signature produces a valid callback signature the same way the gateway would.
func signature(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateGatewayOrderStoresGatewayID(t *testing.T) {
	f := newFixture(t)
	customerID := uuid.New()
	order := seedOrder(f, customerID, 15500)

	dto, err := f.svc.CreateGatewayOrder(context.Background(), customerID, CreateGatewayOrderInput{OrderID: order.ID})
	if err != nil {
		t.Fatalf("create gateway order: %v", err)
	}
	if dto.RazorpayOrderID != "order_RZP123" {
		t.Fatalf("unexpected gateway id %s", dto.RazorpayOrderID)
	}
	if dto.AmountCents != 15500 {
		t.Fatalf("expected amount 15500, got %d", dto.AmountCents)
	}
	if len(f.gateway.created) != 1 || f.gateway.created[0].AmountCents != 15500 {
		t.Fatalf("unexpected gateway call %+v", f.gateway.created)
	}

	stored := f.repo.rows[order.ID]
	if stored.RazorpayOrderID == nil || *stored.RazorpayOrderID != "order_RZP123" {
		t.Fatal("expected gateway order id persisted")
	}
}

func TestCreateGatewayOrderReusesExistingGatewayID(t *testing.T) {
	f := newFixture(t)
	customerID := uuid.New()
	order := seedOrder(f, customerID, 9900)
	existing := "order_EXISTING"
	order.RazorpayOrderID = &existing

	dto, err := f.svc.CreateGatewayOrder(context.Background(), customerID, CreateGatewayOrderInput{OrderID: order.ID})
	if err != nil {
		t.Fatalf("create gateway order: %v", err)
	}
	if dto.RazorpayOrderID != existing {
		t.Fatalf("expected reuse of %s, got %s", existing, dto.RazorpayOrderID)
	}
	if len(f.gateway.created) != 0 {
		t.Fatal("must not mint a second gateway order")
	}
}

func TestCreateGatewayOrderRejectsForeignCustomer(t *testing.T) {
	f := newFixture(t)
	order := seedOrder(f, uuid.New(), 9900)

	_, err := f.svc.CreateGatewayOrder(context.Background(), uuid.New(), CreateGatewayOrderInput{OrderID: order.ID})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestVerifyMarksOrderPaid(t *testing.T) {
	f := newFixture(t)
	customerID := uuid.New()
	order := seedOrder(f, customerID, 15500)
	gatewayID := "order_RZPOK"
	order.RazorpayOrderID = &gatewayID

	result, err := f.svc.Verify(context.Background(), customerID, VerifyInput{
		RazorpayOrderID:   gatewayID,
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: signature(gatewayID, "pay_1"),
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !result.IsOk {
		t.Fatal("expected isOk true")
	}
	if result.Order.PaymentStatus != enums.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", result.Order.PaymentStatus)
	}
	if result.Order.PaidAt == nil {
		t.Fatal("expected paid_at set")
	}

	stored := f.repo.rows[order.ID]
	if stored.PaymentStatus != enums.PaymentStatusPaid {
		t.Fatal("expected persisted payment status paid")
	}

	if len(f.outbox.events) != 1 || f.outbox.events[0].EventType != enums.EventOrderPaid {
		t.Fatalf("expected order.paid event, got %+v", f.outbox.events)
	}
}

func TestVerifyRejectsTamperedSignatureWithoutMutation(t *testing.T) {
	f := newFixture(t)
	customerID := uuid.New()
	order := seedOrder(f, customerID, 15500)
	gatewayID := "order_RZPBAD"
	order.RazorpayOrderID = &gatewayID

	valid := signature(gatewayID, "pay_1")
	// Flip one hex digit.
	tampered := []byte(valid)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}

	_, err := f.svc.Verify(context.Background(), customerID, VerifyInput{
		RazorpayOrderID:   gatewayID,
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: string(tampered),
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeSignatureMismatch {
		t.Fatalf("expected signature mismatch, got %v", err)
	}

	stored := f.repo.rows[order.ID]
	if stored.PaymentStatus != enums.PaymentStatusPending {
		t.Fatal("mismatch must not mutate payment status")
	}
	if stored.PaidAt != nil {
		t.Fatal("mismatch must not set paid_at")
	}
	if len(f.outbox.events) != 0 {
		t.Fatal("mismatch must not emit events")
	}
}

func TestVerifyUnknownGatewayOrderIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Verify(context.Background(), uuid.New(), VerifyInput{
		RazorpayOrderID:   "order_UNKNOWN",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: signature("order_UNKNOWN", "pay_1"),
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestVerifyReplayAfterPaidIsIdempotent(t *testing.T) {
	f := newFixture(t)
	customerID := uuid.New()
	order := seedOrder(f, customerID, 15500)
	gatewayID := "order_RZPIDEM"
	order.RazorpayOrderID = &gatewayID

	input := VerifyInput{
		RazorpayOrderID:   gatewayID,
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: signature(gatewayID, "pay_1"),
	}
	if _, err := f.svc.Verify(context.Background(), customerID, input); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	result, err := f.svc.Verify(context.Background(), customerID, input)
	if err != nil {
		t.Fatalf("replay verify: %v", err)
	}
	if !result.IsOk {
		t.Fatal("expected isOk true on replay")
	}
	if len(f.outbox.events) != 1 {
		t.Fatalf("expected single order.paid event, got %d", len(f.outbox.events))
	}
}
