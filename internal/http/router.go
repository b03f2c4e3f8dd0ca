package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RouterConfig bundles the handlers and middleware the router mounts.
type RouterConfig struct {
	Auth     *AuthHandler
	Bookings *BookingHandler
	Users    *UserHandler

	// Session guards the /bookings and /users groups.
	Session func(http.Handler) http.Handler
	// Middleware wraps the whole router, outermost first.
	Middleware []func(http.Handler) http.Handler
}

// NewRouter assembles the API surface. The /auth endpoints are reachable
// without a session; sign-out validates its own token. Everything under
// /bookings and /users requires a validated session.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	for _, mw := range cfg.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}

	if cfg.Auth != nil {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", cfg.Auth.SignUp)
			r.Post("/signin", cfg.Auth.SignIn)
			r.Post("/signout", cfg.Auth.SignOut)
		})
	}

	if cfg.Bookings != nil {
		r.Route("/bookings", func(r chi.Router) {
			if cfg.Session != nil {
				r.Use(cfg.Session)
			}
			r.Get("/unavailableDates", cfg.Bookings.UnavailableDates)
			r.Get("/getAllBookings", cfg.Bookings.ListAll)
			r.Get("/getClientBookings", cfg.Bookings.ListForClient)
			r.Post("/newBooking", cfg.Bookings.Create)
			r.Get("/getBooking/{id}", cfg.Bookings.Get)
			r.Put("/updateBooking/{id}", cfg.Bookings.Update)
			r.Delete("/deleteBooking/{id}", cfg.Bookings.Delete)
		})
	}

	if cfg.Users != nil {
		r.Route("/users", func(r chi.Router) {
			if cfg.Session != nil {
				r.Use(cfg.Session)
			}
			r.Get("/", cfg.Users.List)
			r.Post("/", cfg.Users.Create)
			r.Get("/{id}", cfg.Users.Get)
			r.Put("/{id}", cfg.Users.Update)
			r.Delete("/{id}", cfg.Users.Delete)
		})
	}

	return r
}
