package events

import (
	"sync"

	"gorm.io/gorm"

	"github.com/StoreSphere/affiliate-discount/models"
	"github.com/StoreSphere/affiliate-discount/services"
	"github.com/StoreSphere/affiliate-discount/utils"
)

// Order lifecycle events emitted by the host platform
const (
	OrderCompleted       = "order.completed"
	OrderPaymentCaptured = "order.payment_captured"
)

// PaymentCapturedTrigger is the config value that switches accrual from
// order completion to payment capture
const PaymentCapturedTrigger = "PAYMENT_CAPTURED"

// OrderEvent carries the identifier of the order the event is about
type OrderEvent struct {
	OrderID string `json:"order_id"`
}

// HandlerFunc handles one order event
type HandlerFunc func(event string, data OrderEvent) error

// Bus is a minimal in-process event dispatcher. Handler errors are logged
// and never propagated to the publisher, so a failing subscriber cannot
// roll back the order transaction that triggered it.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
}

// NewBus creates an empty event bus
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]HandlerFunc)}
}

// Subscribe registers a handler for an event
func (b *Bus) Subscribe(event string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Publish dispatches an event to every handler registered for it
func (b *Bus) Publish(event string, data OrderEvent) {
	b.mu.RLock()
	handlers := b.handlers[event]
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(event, data); err != nil {
			utils.LogError("Event handler failed for %s (order %s): %v", event, data.OrderID, err)
		}
	}
}

// OrderLoader fetches a host platform order with its line items and their
// discount adjustments
type OrderLoader interface {
	LoadOrder(id string) (*models.Order, error)
}

// Accruer is the slice of the affiliate discount service the subscriber needs
type Accruer interface {
	Accrue(items []services.AdjustmentItem) ([]models.AffiliateDiscount, error)
}

// GormOrderLoader loads orders through the shared database handle
type GormOrderLoader struct {
	db *gorm.DB
}

// NewGormOrderLoader creates an order loader on the given DB handle
func NewGormOrderLoader(db *gorm.DB) *GormOrderLoader {
	return &GormOrderLoader{db: db}
}

// LoadOrder fetches the order with items and adjustments preloaded
func (l *GormOrderLoader) LoadOrder(id string) (*models.Order, error) {
	var order models.Order
	if err := l.db.Preload("Items.Adjustments").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// RegisterAffiliateSubscriber hooks commission accrual into the order
// lifecycle. Exactly one of the two events triggers accrual, selected by
// updateWhen; the other is ignored so an order is never counted twice.
func RegisterAffiliateSubscriber(bus *Bus, accruer Accruer, orders OrderLoader, updateWhen string) {
	trigger := OrderCompleted
	if updateWhen == PaymentCapturedTrigger {
		trigger = OrderPaymentCaptured
	}

	handler := func(event string, data OrderEvent) error {
		if event != trigger {
			return nil
		}

		order, err := orders.LoadOrder(data.OrderID)
		if err != nil {
			return utils.WrapError(err, "failed to load order for accrual")
		}

		var items []services.AdjustmentItem
		for _, item := range order.Items {
			for _, adjustment := range item.Adjustments {
				items = append(items, services.AdjustmentItem{
					DiscountID:     adjustment.DiscountID,
					UnitPriceTotal: item.UnitPrice * int64(item.Quantity),
				})
			}
		}
		if len(items) == 0 {
			utils.LogDebug("Order %s has no discount adjustments, skipping accrual", order.ID)
			return nil
		}

		updated, err := accruer.Accrue(items)
		if err != nil {
			return utils.WrapError(err, "failed to accrue affiliate earnings")
		}
		utils.LogInfo("Accrued affiliate earnings for order %s on %d records", order.ID, len(updated))
		return nil
	}

	bus.Subscribe(OrderCompleted, handler)
	bus.Subscribe(OrderPaymentCaptured, handler)
}
