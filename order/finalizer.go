package order

import (
	"context"
	"errors"
	"time"

	"storefront-service/cart"
	"storefront-service/checkout"
	"storefront-service/pricing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EventOrderPlaced is the event name carried by PlacedEvent.
const EventOrderPlaced = "order.placed"

// Confirmation is the immutable record of a placed order. Card details are
// masked.
type Confirmation struct {
	OrderID        string                   `json:"order_id"`
	Items          []cart.Item              `json:"items"`
	TotalItems     int                      `json:"total_items"`
	Costs          pricing.Breakdown        `json:"costs"`
	Shipping       checkout.ShippingAddress `json:"shipping"`
	Payment        checkout.PaymentDetails  `json:"payment"`
	PaymentSummary string                   `json:"payment_summary"`
	PlacedAt       time.Time                `json:"placed_at"`
}

// PlacedEvent is published once per placed order.
type PlacedEvent struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"order_id"`
	SessionID   string    `json:"session_id"`
	ItemCount   int       `json:"item_count"`
	Total       string    `json:"total"`
	PaymentType string    `json:"payment_type"`
	Country     string    `json:"country"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher delivers order events to downstream consumers.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event PlacedEvent) error
}

// Publishers fans an event out to every publisher in the list.
type Publishers []Publisher

func (ps Publishers) PublishOrderPlaced(ctx context.Context, event PlacedEvent) error {
	var errs []error
	for _, p := range ps {
		if err := p.PublishOrderPlaced(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Request carries everything accumulated by the checkout flow.
type Request struct {
	SessionID string
	Items     []cart.Item
	Shipping  checkout.ShippingAddress
	Payment   checkout.PaymentMethod
}

// Finalizer turns a completed checkout into a Confirmation. There is no
// payment processing; placing an order records it and announces it.
type Finalizer struct {
	ids       *IDGenerator
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewFinalizer builds a Finalizer. A nil publisher disables events.
func NewFinalizer(ids *IDGenerator, publisher Publisher, logger *zap.Logger) *Finalizer {
	if ids == nil {
		ids = NewIDGenerator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finalizer{ids: ids, publisher: publisher, logger: logger, now: time.Now}
}

// WithClock replaces the clock used for PlacedAt.
func (f *Finalizer) WithClock(now func() time.Time) *Finalizer {
	f.now = now
	return f
}

// Finalize allocates an order id and snapshots the order. Nothing is
// announced until Announce is called, so a caller that fails to persist the
// confirmation can drop it without downstream consumers ever seeing it.
func (f *Finalizer) Finalize(req Request) (*Confirmation, error) {
	id, err := f.ids.Next()
	if err != nil {
		return nil, err
	}

	items := make([]cart.Item, len(req.Items))
	copy(items, req.Items)

	subtotal := decimal.Zero
	count := 0
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
		count += it.Quantity
	}

	return &Confirmation{
		OrderID:        id,
		Items:          items,
		TotalItems:     count,
		Costs:          pricing.Compute(subtotal),
		Shipping:       req.Shipping,
		Payment:        checkout.DetailsOf(req.Payment).Masked(),
		PaymentSummary: req.Payment.Summary(),
		PlacedAt:       f.now().UTC(),
	}, nil
}

// Announce logs a recorded order and publishes its order.placed event.
// Publishing is best effort: failures are logged and never fail the order.
func (f *Finalizer) Announce(ctx context.Context, sessionID string, conf *Confirmation) {
	f.logger.Info("Order placed",
		zap.String("order_id", conf.OrderID),
		zap.String("session_id", sessionID),
		zap.Int("items", conf.TotalItems),
		zap.String("total", pricing.Format(conf.Costs.Total)),
		zap.String("payment_type", string(conf.Payment.Type)),
	)

	if f.publisher == nil {
		return
	}
	event := PlacedEvent{
		Event:       EventOrderPlaced,
		OrderID:     conf.OrderID,
		SessionID:   sessionID,
		ItemCount:   conf.TotalItems,
		Total:       pricing.Format(conf.Costs.Total),
		PaymentType: string(conf.Payment.Type),
		Country:     conf.Shipping.Country,
		Timestamp:   conf.PlacedAt,
	}
	if err := f.publisher.PublishOrderPlaced(ctx, event); err != nil {
		f.logger.Warn("Failed to publish order event", zap.String("order_id", conf.OrderID), zap.Error(err))
	}
}
