package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"restaurant/internal/model"
	"restaurant/internal/service"
)

type cartResponse struct {
	Lines       []model.CartLine `json:"lines"`
	TableNumber string           `json:"table_number,omitempty"`
	ItemCount   int              `json:"item_count"`
	Total       decimal.Decimal  `json:"total"`
	ServiceFee  decimal.Decimal  `json:"service_fee"`
	GrandTotal  decimal.Decimal  `json:"grand_total"`
	CanCheckout bool             `json:"can_checkout"`
}

func newCartResponse(s model.CartState) cartResponse {
	lines := s.Lines
	if lines == nil {
		lines = []model.CartLine{}
	}
	return cartResponse{
		Lines:       lines,
		TableNumber: s.TableNumber,
		ItemCount:   s.ItemCount(),
		Total:       s.Total,
		ServiceFee:  s.ServiceFee(),
		GrandTotal:  s.GrandTotal(),
		CanCheckout: !s.Empty() && s.TableNumber != "",
	}
}

func GetCartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := clientSession(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newCartResponse(s.Cart.State()))
	}
}

type addLineRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

func AddLineHandler(menu *service.Menu) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := clientSession(w, r)
		if !ok {
			return
		}

		var req addLineRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.ItemID == "" {
			http.Error(w, "item_id required", http.StatusBadRequest)
			return
		}
		if req.Quantity <= 0 {
			http.Error(w, "quantity must be positive", http.StatusUnprocessableEntity)
			return
		}
		if !validNote(req.Note) {
			http.Error(w, "note too long", http.StatusUnprocessableEntity)
			return
		}

		line, err := menu.LineFor(req.ItemID, req.Quantity, req.Note)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrItemNotFound):
				http.Error(w, "menu item not found", http.StatusNotFound)
			case errors.Is(err, service.ErrItemUnavailable):
				http.Error(w, "menu item is unavailable", http.StatusUnprocessableEntity)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, newCartResponse(s.Cart.Add(r.Context(), line)))
	}
}

type updateLineRequest struct {
	Quantity *int    `json:"quantity"`
	Note     *string `json:"note"`
}

func UpdateLineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := clientSession(w, r)
		if !ok {
			return
		}

		var req updateLineRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Quantity == nil && req.Note == nil {
			http.Error(w, "quantity or note required", http.StatusBadRequest)
			return
		}
		if req.Note != nil && !validNote(*req.Note) {
			http.Error(w, "note too long", http.StatusUnprocessableEntity)
			return
		}

		id := chi.URLParam(r, "id")
		state := s.Cart.State()
		if req.Note != nil {
			state = s.Cart.UpdateNote(r.Context(), id, *req.Note)
		}
		if req.Quantity != nil {
			state = s.Cart.UpdateQuantity(r.Context(), id, *req.Quantity)
		}

		writeJSON(w, http.StatusOK, newCartResponse(state))
	}
}

func RemoveLineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := clientSession(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newCartResponse(s.Cart.Remove(r.Context(), chi.URLParam(r, "id"))))
	}
}

func ClearCartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := clientSession(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newCartResponse(s.Cart.Clear(r.Context())))
	}
}

type setTableRequest struct {
	TableNumber string `json:"table_number"`
}

func SetTableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := clientSession(w, r)
		if !ok {
			return
		}

		var req setTableRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		table := strings.TrimSpace(req.TableNumber)
		if table == "" {
			http.Error(w, "table_number required", http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, newCartResponse(s.Cart.SetTable(r.Context(), table)))
	}
}

func CheckoutHandler(orders *service.OrderBook) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := clientSession(w, r)
		if !ok {
			return
		}

		order, err := service.Checkout(r.Context(), s.Cart, orders)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmptyCart):
				http.Error(w, "cart is empty", http.StatusUnprocessableEntity)
			case errors.Is(err, service.ErrNoTable):
				http.Error(w, "a table number is required to place an order", http.StatusUnprocessableEntity)
			case errors.Is(err, service.ErrCheckoutInProgress):
				http.Error(w, "order is already being placed", http.StatusConflict)
			default:
				slog.Error("checkout failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Location", "/api/orders/"+order.ID)
		writeJSON(w, http.StatusCreated, order)
	}
}

func validNote(note string) bool {
	return utf8.RuneCountInString(note) <= model.MaxNoteLength
}
