package service

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("action not allowed for this role")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("order status can only move to the next step")

	ErrEmptyCart = errors.New("cart is empty")
	ErrNoTable   = errors.New("cart has no table number")

	ErrCheckoutInProgress = errors.New("checkout already in progress for this cart")

	ErrItemNotFound     = errors.New("menu item not found")
	ErrItemUnavailable  = errors.New("menu item is unavailable")
	ErrCategoryNotFound = errors.New("menu category not found")
)

// simulateLatency stands in for the round trip of a remote call.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
