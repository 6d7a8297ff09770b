package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httpmw "github.com/Phaneesh28/project-backend/internal/http/middleware"
	"github.com/Phaneesh28/project-backend/internal/http/response"
	"github.com/Phaneesh28/project-backend/pkg/auth"
	mw "github.com/Phaneesh28/project-backend/pkg/middleware"
)

// NewRouter wires the public and token-protected routes. limiter may be nil.
func NewRouter(h *Handlers, tokens *auth.TokenManager, limiter *httpmw.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("shop-api"))
	r.Use(mw.Logging)
	r.Use(mw.Recoverer)
	r.Use(mw.CORS(h.config.Server.AllowedOrigins))
	r.Use(mw.Health)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, "Method Not Allowed")
	})

	r.Get("/", h.Welcome)

	r.Route("/api", func(r chi.Router) {
		r.With(limiter.Middleware("register")).Post("/register", h.Register)
		r.With(limiter.Middleware("login")).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(httpmw.RequireJWT(tokens))
			r.Get("/products", h.ListProducts)
			r.Get("/products/{id}", h.GetProduct)
		})
	})

	return r
}
