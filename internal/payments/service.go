package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wortheat/wortheat-backend/internal/orders"
	"github.com/wortheat/wortheat-backend/pkg/enums"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
	"github.com/wortheat/wortheat-backend/pkg/outbox"
	"github.com/wortheat/wortheat-backend/pkg/razorpay"
)

// CreateGatewayOrderInput selects which order to open checkout for.
type CreateGatewayOrderInput struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
}

// GatewayOrderDTO is what the checkout client needs to open the payment UI.
type GatewayOrderDTO struct {
	RazorpayOrderID string `json:"razorpay_order_id"`
	AmountCents     int    `json:"amount_cents"`
	Currency        string `json:"currency"`
	KeyID           string `json:"key_id"`
}

// VerifyInput carries the checkout callback fields.
type VerifyInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// VerifyResult reports the signature decision and, when valid, the settled order.
type VerifyResult struct {
	IsOk  bool             `json:"isOk"`
	Order *orders.OrderDTO `json:"order,omitempty"`
}

// Service defines the behavior needed by the payments controller.
type Service interface {
	CreateGatewayOrder(ctx context.Context, customerID uuid.UUID, input CreateGatewayOrderInput) (*GatewayOrderDTO, error)
	Verify(ctx context.Context, customerID uuid.UUID, input VerifyInput) (*VerifyResult, error)
}

type gatewayClient interface {
	CreateOrder(ctx context.Context, params razorpay.OrderParams) (*razorpay.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// ServiceParams bundles the dependencies required to build a payments service.
type ServiceParams struct {
	Orders  orders.Repository
	Gateway gatewayClient
	Tx      txRunner
	Outbox  outboxPublisher
	KeyID   string
	Now     func() time.Time
}

type service struct {
	orders  orders.Repository
	gateway gatewayClient
	tx      txRunner
	outbox  outboxPublisher
	keyID   string
	now     func() time.Time
}

// NewService constructs a payments service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("payment gateway client is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		orders:  params.Orders,
		gateway: params.Gateway,
		tx:      params.Tx,
		outbox:  params.Outbox,
		keyID:   params.KeyID,
		now:     now,
	}, nil
}

func (s *service) CreateGatewayOrder(ctx context.Context, customerID uuid.UUID, input CreateGatewayOrderInput) (*GatewayOrderDTO, error) {
	order, err := s.orders.Find(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
	}
	if order.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another customer")
	}
	if order.PaymentStatus == enums.PaymentStatusPaid {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is already paid")
	}

	// Re-requesting checkout for the same order reuses the gateway order
	// instead of minting a duplicate.
	if order.RazorpayOrderID != nil && *order.RazorpayOrderID != "" {
		return &GatewayOrderDTO{
			RazorpayOrderID: *order.RazorpayOrderID,
			AmountCents:     order.TotalCents,
			Currency:        "INR",
			KeyID:           s.keyID,
		}, nil
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, razorpay.OrderParams{
		AmountCents: order.TotalCents,
		Currency:    "INR",
		Receipt:     razorpay.NewReceipt("we"),
		Notes: map[string]string{
			"order_id": order.ID.String(),
		},
	})
	if err != nil {
		return nil, err
	}

	order.RazorpayOrderID = &gatewayOrder.ID
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store gateway order id")
	}

	return &GatewayOrderDTO{
		RazorpayOrderID: gatewayOrder.ID,
		AmountCents:     order.TotalCents,
		Currency:        gatewayOrder.Currency,
		KeyID:           s.keyID,
	}, nil
}

func (s *service) Verify(ctx context.Context, customerID uuid.UUID, input VerifyInput) (*VerifyResult, error) {
	order, err := s.orders.FindByRazorpayOrderID(ctx, input.RazorpayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
	}
	if order.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another customer")
	}

	if !s.gateway.VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature) {
		return nil, pkgerrors.New(pkgerrors.CodeSignatureMismatch, "payment signature mismatch")
	}

	// Replayed callbacks after settlement are acknowledged without touching
	// the order again.
	if order.PaymentStatus == enums.PaymentStatusPaid {
		return &VerifyResult{IsOk: true, Order: orders.FromModel(order)}, nil
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.orders.WithTx(tx)
		now := s.now().UTC()
		order.PaymentStatus = enums.PaymentStatusPaid
		order.PaidAt = &now
		if err := repo.Update(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark order paid")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderPaid,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{UserID: customerID, Role: string(enums.ActorRoleCustomer)},
			Data: map[string]any{
				"order_id":            order.ID,
				"razorpay_order_id":   input.RazorpayOrderID,
				"razorpay_payment_id": input.RazorpayPaymentID,
				"total_cents":         order.TotalCents,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	return &VerifyResult{IsOk: true, Order: orders.FromModel(order)}, nil
}
