package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"restaurant/internal/service"
)

func menuFilter(r *http.Request) service.MenuFilter {
	q := r.URL.Query()
	return service.MenuFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Search:   strings.TrimSpace(q.Get("q")),
	}
}

// MenuHandler serves the customer menu grouped by category.
func MenuHandler(menu *service.Menu) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, menu.Browse(menuFilter(r)))
	}
}

// TableMenuHandler serves the menu for a table and binds the caller's cart to it.
func TableMenuHandler(menu *service.Menu) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := clientSession(w, r)
		if !ok {
			return
		}

		table := strings.TrimSpace(chi.URLParam(r, "table"))
		if table == "" {
			http.Error(w, "table number required", http.StatusBadRequest)
			return
		}
		s.Cart.SetTable(r.Context(), table)

		writeJSON(w, http.StatusOK, map[string]any{
			"table_number": table,
			"sections":     menu.Browse(menuFilter(r)),
		})
	}
}

func CategoriesHandler(menu *service.Menu) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, menu.Categories(true))
	}
}

func MenuItemHandler(menu *service.Menu) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, ok := menu.Item(chi.URLParam(r, "id"))
		if !ok || !item.Available {
			http.Error(w, "menu item not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}
