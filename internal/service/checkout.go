package service

import (
	"context"

	"restaurant/internal/model"
)

// Checkout turns the cart into an order and takes the ordered lines out of
// the cart. Only one checkout per cart runs at a time. Lines added while the
// order is being placed stay in the cart, and the cart is left untouched if
// the order cannot be created.
func Checkout(ctx context.Context, cart *CartManager, orders *OrderBook) (model.Order, error) {
	state, err := cart.beginCheckout()
	if err != nil {
		return model.Order{}, err
	}

	lines := make([]model.OrderLine, 0, len(state.Lines))
	for _, l := range state.Lines {
		lines = append(lines, model.OrderLine{
			ID:       l.ID,
			Name:     l.Name,
			Price:    l.Price,
			Quantity: l.Quantity,
			Note:     l.Note,
		})
	}

	order, err := orders.Create(ctx, state.TableNumber, lines, state.Total)
	if err != nil {
		cart.finishCheckout(ctx, nil)
		return model.Order{}, err
	}

	cart.finishCheckout(ctx, state.Lines)
	return order, nil
}
