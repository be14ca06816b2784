package service

import "restaurant/internal/model"

type Capability string

const (
	ViewOrders   Capability = "orders:view"
	AdvanceOrder Capability = "orders:advance"
	ManageMenu   Capability = "menu:manage"
)

// Authorize reports whether user may perform c. status is the current status
// of the order involved and is only consulted for AdvanceOrder.
func Authorize(user *model.AuthUser, c Capability, status model.OrderStatus) error {
	if user == nil {
		return ErrForbidden
	}

	switch c {
	case ViewOrders:
		return nil
	case ManageMenu:
		if user.Role == model.RoleAdmin {
			return nil
		}
	case AdvanceOrder:
		if canAdvance(user.Role, status) {
			return nil
		}
	}
	return ErrForbidden
}

func canAdvance(role model.Role, status model.OrderStatus) bool {
	if _, ok := status.Next(); !ok {
		return false
	}
	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleKitchen:
		return status == model.StatusReceived || status == model.StatusPreparing
	case model.RoleWaiter:
		return status == model.StatusReady
	}
	return false
}
