package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"restaurant/internal/model"
	"restaurant/internal/mw"
	"restaurant/internal/service"
)

// GetOrderHandler serves the customer order tracker.
func GetOrderHandler(orders *service.OrderBook) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, ok := orders.Find(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}

// OrderBoardHandler serves the kitchen board, or one column when ?status= is set.
func OrderBoardHandler(orders *service.OrderBook) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := mw.UserFrom(r.Context())
		if err := service.Authorize(user, service.ViewOrders, ""); err != nil {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if raw := r.URL.Query().Get("status"); raw != "" {
			status := model.OrderStatus(raw)
			if !status.Valid() {
				http.Error(w, "unknown status", http.StatusBadRequest)
				return
			}
			writeJSON(w, http.StatusOK, orders.ListByStatus(status))
			return
		}

		writeJSON(w, http.StatusOK, orders.Board())
	}
}

// AdvanceOrderHandler moves an order to its next status if the caller's role allows it.
func AdvanceOrderHandler(orders *service.OrderBook) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := mw.UserFrom(r.Context())

		order, ok := orders.Find(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		next, ok := order.Status.Next()
		if !ok {
			http.Error(w, "order already delivered", http.StatusConflict)
			return
		}

		if err := service.Authorize(user, service.AdvanceOrder, order.Status); err != nil {
			http.Error(w, "your role cannot advance this order", http.StatusForbidden)
			return
		}

		updated, err := orders.Advance(r.Context(), order.ID, next)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrOrderNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.Is(err, service.ErrInvalidTransition):
				http.Error(w, "order status changed, reload the board", http.StatusConflict)
			default:
				slog.Error("advance order failed", "id", order.ID, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}
