package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wortheat/wortheat-backend/pkg/db/models"
	"github.com/wortheat/wortheat-backend/pkg/enums"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
	"github.com/wortheat/wortheat-backend/pkg/outbox"
	"github.com/wortheat/wortheat-backend/pkg/pagination"
)

// Service defines the behavior needed by the order controllers.
type Service interface {
	Create(ctx context.Context, customerID uuid.UUID, input CreateOrderInput) (*OrderDTO, error)
	Get(ctx context.Context, customerID, orderID uuid.UUID) (*OrderDTO, error)
	History(ctx context.Context, customerID uuid.UUID) ([]DayGroup, error)
	Cancel(ctx context.Context, customerID, orderID uuid.UUID) error
	VendorList(ctx context.Context, vendorID uuid.UUID, params pagination.Params) (*VendorOrderPage, error)
	VendorVerify(ctx context.Context, vendorID, orderID uuid.UUID) (*OrderDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type catalogFinder interface {
	FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	FindSnackItem(ctx context.Context, id uuid.UUID) (*models.SnackItem, error)
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	Repo    Repository
	Catalog catalogFinder
	Tx      txRunner
	Outbox  outboxPublisher
	Now     func() time.Time
}

type service struct {
	repo    Repository
	catalog catalogFinder
	tx      txRunner
	outbox  outboxPublisher
	now     func() time.Time
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog repository is required")
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
		repo:    params.Repo,
		catalog: params.Catalog,
		tx:      params.Tx,
		outbox:  params.Outbox,
		now:     now,
	}, nil
}

func (s *service) Create(ctx context.Context, customerID uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}

	now := s.now().UTC()
	order := &models.Order{
		CustomerID:    customerID,
		VendorID:      input.VendorID,
		Status:        enums.OrderStatusPending,
		PaymentStatus: enums.PaymentStatusPending,
		OrderDate:     now.Day(),
		DayName:       now.Weekday().String(),
		Month:         int(now.Month()),
		Year:          now.Year(),
		TimeOfDay:     string(enums.SlotForHour(now.Hour())),
	}

	subtotal := 0
	lines := make([]models.OrderLineItem, 0, len(input.Items))
	for _, item := range input.Items {
		snapshot, err := s.snapshotItem(ctx, input.VendorID, item)
		if err != nil {
			return nil, err
		}
		subtotal += snapshot.TotalCents
		lines = append(lines, snapshot)
	}
	order.SubtotalCents = subtotal
	order.TotalCents = subtotal
	order.Items = lines

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		created, err := repo.Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		order = created

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{UserID: customerID, Role: string(enums.ActorRoleCustomer)},
			Data: map[string]any{
				"order_id":    order.ID,
				"vendor_id":   order.VendorID,
				"total_cents": order.TotalCents,
				"line_count":  len(order.Items),
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) Get(ctx context.Context, customerID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.ownedOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) History(ctx context.Context, customerID uuid.UUID) ([]DayGroup, error) {
	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	grouped := make(map[string][]OrderDTO)
	keys := make([]string, 0)
	for i := range rows {
		key := rows[i].DateKey()
		if _, seen := grouped[key]; !seen {
			keys = append(keys, key)
		}
		grouped[key] = append(grouped[key], *FromModel(&rows[i]))
	}

	// Rows arrive newest-first; keep the day buckets in the same order.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	groups := make([]DayGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, DayGroup{DateKey: key, Orders: grouped[key]})
	}
	return groups, nil
}

func (s *service) Cancel(ctx context.Context, customerID, orderID uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.Find(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
		}
		if order.CustomerID != customerID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another customer")
		}
		if order.PaymentStatus == enums.PaymentStatusPaid {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "paid orders cannot be canceled")
		}

		if err := repo.Delete(ctx, orderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete order")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCanceled,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{UserID: customerID, Role: string(enums.ActorRoleCustomer)},
			Data: map[string]any{
				"order_id":  order.ID,
				"vendor_id": order.VendorID,
			},
		})
	})
}

func (s *service) VendorList(ctx context.Context, vendorID uuid.UUID, params pagination.Params) (*VendorOrderPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListByVendor(ctx, vendorID, pagination.LimitWithBuffer(params.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vendor orders")
	}

	page := &VendorOrderPage{Orders: make([]OrderDTO, 0, len(rows))}
	if len(rows) > limit {
		last := rows[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		rows = rows[:limit]
	}
	for i := range rows {
		page.Orders = append(page.Orders, *FromModel(&rows[i]))
	}
	return page, nil
}

func (s *service) VendorVerify(ctx context.Context, vendorID, orderID uuid.UUID) (*OrderDTO, error) {
	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.Find(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
		}
		if order.VendorID != vendorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another vendor")
		}

		// Re-scanning an already fulfilled QR returns the order unchanged.
		if order.Status == enums.OrderStatusReceived {
			result = order
			return nil
		}

		now := s.now().UTC()
		order.Status = enums.OrderStatusReceived
		order.ReceivedAt = &now
		if err := repo.Update(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order")
		}
		result = order

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderReceived,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{UserID: vendorID, VendorID: &vendorID, Role: string(enums.ActorRoleVendor)},
			Data: map[string]any{
				"order_id":    order.ID,
				"customer_id": order.CustomerID,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(result), nil
}

func (s *service) snapshotItem(ctx context.Context, vendorID uuid.UUID, item LineItemInput) (models.OrderLineItem, error) {
	var (
		name          string
		price         int
		ownerVendorID uuid.UUID
	)

	switch item.ItemType {
	case enums.ItemTypeMenu:
		menuItem, err := s.catalog.FindMenuItem(ctx, item.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.OrderLineItem{}, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
			}
			return models.OrderLineItem{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find menu item")
		}
		name, price, ownerVendorID = menuItem.Name, menuItem.PriceCents, menuItem.VendorID
	case enums.ItemTypeSnack:
		snackItem, err := s.catalog.FindSnackItem(ctx, item.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.OrderLineItem{}, pkgerrors.New(pkgerrors.CodeNotFound, "snack item not found")
			}
			return models.OrderLineItem{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find snack item")
		}
		name, price, ownerVendorID = snackItem.Name, snackItem.PriceCents, snackItem.VendorID
	default:
		return models.OrderLineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid item type")
	}

	if ownerVendorID != vendorID {
		return models.OrderLineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "item belongs to another vendor")
	}

	return models.OrderLineItem{
		ItemID:         item.ItemID,
		ItemType:       item.ItemType,
		Name:           name,
		Category:       item.Category,
		UnitPriceCents: price,
		Quantity:       item.Quantity,
		TotalCents:     price * item.Quantity,
	}, nil
}

func (s *service) ownedOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.Find(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
	}
	if order.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another customer")
	}
	return order, nil
}
