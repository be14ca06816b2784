package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"restaurant/internal/events"
	"restaurant/internal/model"
)

const (
	minEstimatedMinutes = 15
	maxEstimatedMinutes = 35
)

// OrderBook holds every order placed since startup.
type OrderBook struct {
	mu        sync.RWMutex
	orders    []model.Order
	currentID string

	latency   time.Duration
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewOrderBook(latency time.Duration, publisher events.Publisher, logger *slog.Logger) *OrderBook {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderBook{
		latency:   latency,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Create registers a new order for tableNumber. It always starts as received.
func (b *OrderBook) Create(ctx context.Context, tableNumber string, lines []model.OrderLine, total decimal.Decimal) (model.Order, error) {
	if err := simulateLatency(ctx, b.latency); err != nil {
		return model.Order{}, fmt.Errorf("create order: %w", err)
	}

	order := model.Order{
		ID:               uuid.NewString(),
		TableNumber:      tableNumber,
		Lines:            append([]model.OrderLine(nil), lines...),
		Total:            total,
		Status:           model.StatusReceived,
		CreatedAt:        b.now(),
		EstimatedMinutes: minEstimatedMinutes + rand.IntN(maxEstimatedMinutes-minEstimatedMinutes+1),
	}

	b.mu.Lock()
	b.orders = append(b.orders, order)
	b.currentID = order.ID
	b.mu.Unlock()

	b.logger.Info("order created", "id", order.ID, "table", tableNumber, "total", total.StringFixed(2))
	b.publish(ctx, events.OrderCreated, order, "")

	return order.Clone(), nil
}

func (b *OrderBook) Find(id string) (model.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, o := range b.orders {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return model.Order{}, false
}

// Current returns the order produced by the most recent Create.
func (b *OrderBook) Current() (model.Order, bool) {
	b.mu.RLock()
	id := b.currentID
	b.mu.RUnlock()

	if id == "" {
		return model.Order{}, false
	}
	return b.Find(id)
}

// Advance moves order id to status. Only the step after the current status is accepted.
func (b *OrderBook) Advance(ctx context.Context, id string, status model.OrderStatus) (model.Order, error) {
	if !status.Valid() {
		return model.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		return model.Order{}, ErrOrderNotFound
	}

	previous := b.orders[idx].Status
	if next, ok := previous.Next(); !ok || next != status {
		b.mu.Unlock()
		return model.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, previous, status)
	}
	b.orders[idx].Status = status
	order := b.orders[idx].Clone()
	b.mu.Unlock()

	b.logger.Info("order status changed", "id", id, "from", previous, "to", status)
	b.publish(ctx, events.OrderStatusChanged, order, previous)

	return order, nil
}

// AdvanceNext moves order id one step forward.
func (b *OrderBook) AdvanceNext(ctx context.Context, id string) (model.Order, error) {
	order, ok := b.Find(id)
	if !ok {
		return model.Order{}, ErrOrderNotFound
	}
	next, ok := order.Status.Next()
	if !ok {
		return model.Order{}, fmt.Errorf("%w: %s is final", ErrInvalidTransition, order.Status)
	}
	return b.Advance(ctx, id, next)
}

// List returns all orders, oldest appended first.
func (b *OrderBook) List() []model.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]model.Order, 0, len(b.orders))
	for _, o := range b.orders {
		out = append(out, o.Clone())
	}
	return out
}

func (b *OrderBook) ListByStatus(status model.OrderStatus) []model.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]model.Order, 0)
	for _, o := range b.orders {
		if o.Status == status {
			out = append(out, o.Clone())
		}
	}
	return out
}

type BoardColumn struct {
	Status model.OrderStatus `json:"status"`
	Count  int               `json:"count"`
	Orders []model.Order     `json:"orders"`
}

// Board groups orders into one column per status, in lifecycle order.
func (b *OrderBook) Board() []BoardColumn {
	cols := make([]BoardColumn, 0, len(model.Lifecycle))
	for _, st := range model.Lifecycle {
		orders := b.ListByStatus(st)
		cols = append(cols, BoardColumn{Status: st, Count: len(orders), Orders: orders})
	}
	return cols
}

// Seed loads the demonstration orders shown on a fresh board.
func (b *OrderBook) Seed() {
	now := b.now()
	demo := []model.Order{
		{
			ID:          "1",
			TableNumber: "5",
			Lines: []model.OrderLine{
				{ID: "1", Name: "Hambúrguer Artesanal", Price: decimal.RequireFromString("28.90"), Quantity: 2, Note: "Sem cebola"},
				{ID: "2", Name: "Batata Frita", Price: decimal.RequireFromString("12.90"), Quantity: 1},
			},
			Total:            decimal.RequireFromString("70.70"),
			Status:           model.StatusReceived,
			CreatedAt:        now.Add(-5 * time.Minute),
			EstimatedMinutes: 25,
		},
		{
			ID:          "2",
			TableNumber: "3",
			Lines: []model.OrderLine{
				{ID: "3", Name: "Pizza Margherita", Price: decimal.RequireFromString("35.90"), Quantity: 1, Note: "Massa fina"},
			},
			Total:            decimal.RequireFromString("35.90"),
			Status:           model.StatusPreparing,
			CreatedAt:        now.Add(-15 * time.Minute),
			EstimatedMinutes: 20,
		},
		{
			ID:          "3",
			TableNumber: "7",
			Lines: []model.OrderLine{
				{ID: "4", Name: "Salmão Grelhado", Price: decimal.RequireFromString("42.90"), Quantity: 1, Note: "Ponto médio"},
			},
			Total:     decimal.RequireFromString("42.90"),
			Status:    model.StatusReady,
			CreatedAt: now.Add(-25 * time.Minute),
		},
	}

	b.mu.Lock()
	b.orders = append(b.orders, demo...)
	b.mu.Unlock()
}

func (b *OrderBook) indexOf(id string) int {
	for i := range b.orders {
		if b.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *OrderBook) publish(ctx context.Context, key string, o model.Order, previous model.OrderStatus) {
	ev := events.OrderEvent{
		OrderID:     o.ID,
		TableNumber: o.TableNumber,
		Status:      o.Status,
		Previous:    previous,
		At:          b.now(),
	}
	if err := events.PublishOrder(ctx, b.publisher, key, ev); err != nil {
		b.logger.Warn("order event not published", "id", o.ID, "key", key, "error", err)
	}
}
