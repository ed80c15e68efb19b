package router

import (
	"net/http"

	_ "github.com/RoyceAzure/lab/bookstore/docs"
	"github.com/RoyceAzure/lab/bookstore/internal/api"
	m "github.com/RoyceAzure/lab/bookstore/internal/api/middleware"
	"github.com/RoyceAzure/lab/bookstore/internal/api/response"
	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRouter(server *api.Server, sessionService service.ISessionService, limiter ratelimit.ILimiter, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.SecurityHeadersMiddleware)
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.SessionMiddleware(sessionService))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.ErrorJSON(w, apperr.NotFoundCode, "", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.ErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	r.Get("/healthz", server.HealthHandler.Check)

	// Swagger 文檔
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})
	r.With(m.DocsCSPMiddleware).Get("/swagger/*", httpSwagger.Handler())

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(m.NewRateLimitMiddleware(limiter, "register")).Post("/register", server.AuthHandler.Register)
			r.With(m.NewRateLimitMiddleware(limiter, "login")).Post("/login", server.AuthHandler.Login)
			r.With(m.AuthMiddleware).Post("/logout", server.AuthHandler.Logout)
			r.With(m.AuthMiddleware).Get("/me", server.AuthHandler.Me)
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", server.BookHandler.Search)
			r.Get("/subjects", server.BookHandler.Subjects)
		})

		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", server.CartHandler.List)
				r.Delete("/", server.CartHandler.Clear)
				r.Post("/items", server.CartHandler.AddItem)
				r.Post("/checkout", server.CartHandler.Checkout)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", server.OrderHandler.List)
				r.Get("/{id}", server.OrderHandler.Get)
			})
		})
	})

	if logger.GetLevel() <= zerolog.DebugLevel {
		_ = chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			logger.Debug().Str("method", method).Str("route", route).Msg("route registered")
			return nil
		})
	}
	return r
}
