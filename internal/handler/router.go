package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"restaurant/internal/mw"
	"restaurant/internal/service"
	"restaurant/internal/session"
)

type Deps struct {
	Menu      *service.Menu
	Orders    *service.OrderBook
	Sessions  *session.Registry
	JWTSecret string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization", "Location"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SessionMiddleware(d.Sessions))

	// Customer routes
	r.Get("/api/menu", MenuHandler(d.Menu))
	r.Get("/api/menu/categories", CategoriesHandler(d.Menu))
	r.Get("/api/menu/items/{id}", MenuItemHandler(d.Menu))
	r.Get("/api/tables/{table}/menu", TableMenuHandler(d.Menu))

	r.Get("/api/cart", GetCartHandler())
	r.Delete("/api/cart", ClearCartHandler())
	r.Post("/api/cart/lines", AddLineHandler(d.Menu))
	r.Patch("/api/cart/lines/{id}", UpdateLineHandler())
	r.Delete("/api/cart/lines/{id}", RemoveLineHandler())
	r.Put("/api/cart/table", SetTableHandler())
	r.Post("/api/cart/checkout", CheckoutHandler(d.Orders))

	r.Get("/api/orders/{id}", GetOrderHandler(d.Orders))

	// Staff routes
	r.Post("/api/admin/login", LoginHandler())
	r.Post("/api/admin/logout", LogoutHandler())
	r.Get("/api/admin/session", SessionStateHandler())

	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(d.JWTSecret))

		r.Get("/api/admin/orders", OrderBoardHandler(d.Orders))
		r.Post("/api/admin/orders/{id}/advance", AdvanceOrderHandler(d.Orders))

		r.Group(func(r chi.Router) {
			r.Use(RequireMenuManager)

			r.Get("/api/admin/menu/items", AdminItemsHandler(d.Menu))
			r.Post("/api/admin/menu/items/{id}/availability", ToggleAvailabilityHandler(d.Menu))
			r.Get("/api/admin/menu/categories", AdminCategoriesHandler(d.Menu))
			r.Post("/api/admin/menu/categories/{id}/active", ToggleCategoryHandler(d.Menu))
		})
	})

	return r
}
