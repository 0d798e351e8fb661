package enums

// OutboxEventType names the domain events emitted through the outbox.
type OutboxEventType string

const (
	EventOrderCreated  OutboxEventType = "order.created"
	EventOrderPaid     OutboxEventType = "order.paid"
	EventOrderReceived OutboxEventType = "order.received"
	EventOrderCanceled OutboxEventType = "order.canceled"
)

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregateOrder OutboxAggregateType = "order"
)
