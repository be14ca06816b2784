package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"restaurant/internal/model"
)

func TestAuthorizeAdvanceOrder(t *testing.T) {
	allowed := map[model.Role][]model.OrderStatus{
		model.RoleAdmin:   {model.StatusReceived, model.StatusPreparing, model.StatusReady},
		model.RoleKitchen: {model.StatusReceived, model.StatusPreparing},
		model.RoleWaiter:  {model.StatusReady},
	}

	for role, statuses := range allowed {
		for _, st := range model.Lifecycle {
			want := false
			for _, a := range statuses {
				if a == st {
					want = true
				}
			}

			err := Authorize(&model.AuthUser{ID: "x", Role: role}, AdvanceOrder, st)
			if want {
				assert.NoError(t, err, "%s advancing %s", role, st)
			} else {
				assert.ErrorIs(t, err, ErrForbidden, "%s advancing %s", role, st)
			}
		}
	}
}

func TestAuthorize(t *testing.T) {
	admin := &model.AuthUser{ID: "1", Role: model.RoleAdmin}
	kitchen := &model.AuthUser{ID: "2", Role: model.RoleKitchen}
	waiter := &model.AuthUser{ID: "3", Role: model.RoleWaiter}

	tests := []struct {
		name    string
		user    *model.AuthUser
		c       Capability
		wantErr bool
	}{
		{name: "anonymousViewOrders", user: nil, c: ViewOrders, wantErr: true},
		{name: "waiterViewOrders", user: waiter, c: ViewOrders},
		{name: "adminManageMenu", user: admin, c: ManageMenu},
		{name: "kitchenManageMenu", user: kitchen, c: ManageMenu, wantErr: true},
		{name: "waiterManageMenu", user: waiter, c: ManageMenu, wantErr: true},
		{name: "unknownCapability", user: admin, c: "orders:delete", wantErr: true},
		{name: "unknownRole", user: &model.AuthUser{ID: "9", Role: "guest"}, c: AdvanceOrder, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.user, tt.c, model.StatusReceived)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrForbidden)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
