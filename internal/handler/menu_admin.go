package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"restaurant/internal/mw"
	"restaurant/internal/service"
)

// RequireMenuManager rejects callers whose role may not edit the menu.
func RequireMenuManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := mw.UserFrom(r.Context())
		if err := service.Authorize(user, service.ManageMenu, ""); err != nil {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminItemsHandler lists items for the editor, unavailable ones included.
func AdminItemsHandler(menu *service.Menu) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, menu.Items(menuFilter(r)))
	}
}

func ToggleAvailabilityHandler(menu *service.Menu) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := menu.ToggleAvailability(chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, service.ErrItemNotFound) {
				http.Error(w, "menu item not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func AdminCategoriesHandler(menu *service.Menu) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, menu.Categories(false))
	}
}

func ToggleCategoryHandler(menu *service.Menu) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, err := menu.ToggleCategory(chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, service.ErrCategoryNotFound) {
				http.Error(w, "category not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cat)
	}
}
