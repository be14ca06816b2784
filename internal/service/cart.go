package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"restaurant/internal/model"
	"restaurant/internal/storage"
)

const cartKey = "cart"

// CartAction is one of AddLine, RemoveLine, UpdateQuantity, UpdateNote,
// ClearCart or SetTable.
type CartAction interface {
	cartAction()
}

type AddLine struct {
	Line model.CartLine
}

type RemoveLine struct {
	LineID string
}

type UpdateQuantity struct {
	LineID   string
	Quantity int
}

type UpdateNote struct {
	LineID string
	Note   string
}

type ClearCart struct{}

type SetTable struct {
	TableNumber string
}

func (AddLine) cartAction()        {}
func (RemoveLine) cartAction()     {}
func (UpdateQuantity) cartAction() {}
func (UpdateNote) cartAction()     {}
func (ClearCart) cartAction()      {}
func (SetTable) cartAction()       {}
func (settleLines) cartAction()    {}

// settleLines takes the quantities of lines already placed in an order out
// of the cart. Lines added or topped up meanwhile keep the difference.
type settleLines struct {
	lines []model.CartLine
}

// ReduceCart returns the state that results from applying a to s. s is not modified.
func ReduceCart(s model.CartState, a CartAction) model.CartState {
	lines := append([]model.CartLine(nil), s.Lines...)

	switch a := a.(type) {
	case AddLine:
		merged := false
		for i := range lines {
			if lines[i].ItemID == a.Line.ItemID && lines[i].Note == a.Line.Note {
				lines[i].Quantity += a.Line.Quantity
				merged = true
				break
			}
		}
		if !merged {
			line := a.Line
			if line.ID == "" {
				line.ID = uuid.NewString()
			}
			lines = append(lines, line)
		}

	case RemoveLine:
		kept := lines[:0]
		for _, l := range lines {
			if l.ID != a.LineID {
				kept = append(kept, l)
			}
		}
		lines = kept

	case UpdateQuantity:
		kept := lines[:0]
		for _, l := range lines {
			if l.ID == a.LineID {
				l.Quantity = a.Quantity
			}
			if l.Quantity > 0 {
				kept = append(kept, l)
			}
		}
		lines = kept

	case UpdateNote:
		// no merge here even if the note now matches a sibling line
		for i := range lines {
			if lines[i].ID == a.LineID {
				lines[i].Note = a.Note
			}
		}

	case ClearCart:
		lines = []model.CartLine{}

	case settleLines:
		for _, placed := range a.lines {
			for i := range lines {
				if lines[i].ID == placed.ID {
					lines[i].Quantity -= placed.Quantity
				}
			}
		}
		kept := lines[:0]
		for _, l := range lines {
			if l.Quantity > 0 {
				kept = append(kept, l)
			}
		}
		lines = kept

	case SetTable:
		return model.CartState{Lines: lines, Total: s.Total, TableNumber: a.TableNumber}

	default:
		return s
	}

	if lines == nil {
		lines = []model.CartLine{}
	}
	return model.CartState{Lines: lines, Total: cartTotal(lines), TableNumber: s.TableNumber}
}

func cartTotal(lines []model.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// CartManager owns the cart of one client session. Every transition is
// written to the session's store under the "cart" key.
type CartManager struct {
	mu          sync.Mutex
	state       model.CartState
	checkingOut bool
	store       storage.Store
	logger      *slog.Logger
}

// NewCartManager rehydrates the cart persisted in store, replaying each saved
// line through AddLine and reapplying the saved table number. A store failure
// other than a missing key is returned so the saved cart is never overwritten
// by an empty one.
func NewCartManager(ctx context.Context, store storage.Store, logger *slog.Logger) (*CartManager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := &CartManager{store: store, logger: logger, state: model.CartState{Lines: []model.CartLine{}, Total: decimal.Zero}}

	raw, err := store.Get(ctx, cartKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return m, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var saved model.CartState
	if err := json.Unmarshal(raw, &saved); err != nil {
		logger.Warn("discarding unreadable cart", "error", err)
		return m, nil
	}

	for _, l := range saved.Lines {
		m.state = ReduceCart(m.state, AddLine{Line: l})
	}
	if saved.TableNumber != "" {
		m.state = ReduceCart(m.state, SetTable{TableNumber: saved.TableNumber})
	}
	return m, nil
}

// Dispatch applies a and persists the result. Persistence is best effort.
func (m *CartManager) Dispatch(ctx context.Context, a CartAction) model.CartState {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = ReduceCart(m.state, a)
	m.persist(ctx)
	return cloneCart(m.state)
}

func (m *CartManager) persist(ctx context.Context) {
	raw, err := json.Marshal(m.state)
	if err != nil {
		m.logger.Error("failed to encode cart", "error", err)
		return
	}
	if err := m.store.Set(ctx, cartKey, raw); err != nil {
		m.logger.Error("failed to save cart", "error", err)
	}
}

func (m *CartManager) State() model.CartState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneCart(m.state)
}

func (m *CartManager) Add(ctx context.Context, line model.CartLine) model.CartState {
	return m.Dispatch(ctx, AddLine{Line: line})
}

func (m *CartManager) Remove(ctx context.Context, lineID string) model.CartState {
	return m.Dispatch(ctx, RemoveLine{LineID: lineID})
}

func (m *CartManager) UpdateQuantity(ctx context.Context, lineID string, quantity int) model.CartState {
	return m.Dispatch(ctx, UpdateQuantity{LineID: lineID, Quantity: quantity})
}

func (m *CartManager) UpdateNote(ctx context.Context, lineID, note string) model.CartState {
	return m.Dispatch(ctx, UpdateNote{LineID: lineID, Note: note})
}

func (m *CartManager) Clear(ctx context.Context) model.CartState {
	return m.Dispatch(ctx, ClearCart{})
}

// beginCheckout reserves the cart for a single checkout and returns what it
// holds. finishCheckout must follow.
func (m *CartManager) beginCheckout() (model.CartState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.checkingOut:
		return model.CartState{}, ErrCheckoutInProgress
	case m.state.Empty():
		return model.CartState{}, ErrEmptyCart
	case m.state.TableNumber == "":
		return model.CartState{}, ErrNoTable
	}
	m.checkingOut = true
	return cloneCart(m.state), nil
}

// finishCheckout releases the reservation and removes placed from the cart.
// placed is nil when no order was created.
func (m *CartManager) finishCheckout(ctx context.Context, placed []model.CartLine) model.CartState {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checkingOut = false
	if placed != nil {
		m.state = ReduceCart(m.state, settleLines{lines: placed})
		m.persist(ctx)
	}
	return cloneCart(m.state)
}

func (m *CartManager) SetTable(ctx context.Context, tableNumber string) model.CartState {
	return m.Dispatch(ctx, SetTable{TableNumber: tableNumber})
}

func cloneCart(s model.CartState) model.CartState {
	s.Lines = append([]model.CartLine(nil), s.Lines...)
	return s
}
