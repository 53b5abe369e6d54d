// Package bookvault предоставляет маршруты приложения.
package bookvault

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/bookvault/bookvault/internal/http/handlers/auth/login"
	"github.com/bookvault/bookvault/internal/http/handlers/auth/register"
	"github.com/bookvault/bookvault/internal/http/handlers/auth/verify"
	bookcreate "github.com/bookvault/bookvault/internal/http/handlers/book/create"
	booklist "github.com/bookvault/bookvault/internal/http/handlers/book/list"
	bookread "github.com/bookvault/bookvault/internal/http/handlers/book/read"
	bookremove "github.com/bookvault/bookvault/internal/http/handlers/book/remove"
	bookupdate "github.com/bookvault/bookvault/internal/http/handlers/book/update"
	cartadd "github.com/bookvault/bookvault/internal/http/handlers/cart/add"
	cartlist "github.com/bookvault/bookvault/internal/http/handlers/cart/list"
	cartremove "github.com/bookvault/bookvault/internal/http/handlers/cart/remove"
	cartupdate "github.com/bookvault/bookvault/internal/http/handlers/cart/update"
	"github.com/bookvault/bookvault/internal/http/handlers/health"
	"github.com/bookvault/bookvault/internal/http/middlewarectx"
	"github.com/bookvault/bookvault/internal/lib/jwt"
	authservice "github.com/bookvault/bookvault/internal/services/auth"
	bookservice "github.com/bookvault/bookvault/internal/services/book"
	cartservice "github.com/bookvault/bookvault/internal/services/cart"
	"github.com/bookvault/bookvault/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage, jwtMaker jwt.Maker,
	authService *authservice.Service, cartService *cartservice.Service, bookService *bookservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/books", booklist.New(logger, bookService).ServeHTTP)
		r.Get("/books/{id}", bookread.New(logger, bookService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/auth/verify", verify.New(logger, authService).ServeHTTP)
			r.Get("/cart", cartlist.New(logger, cartService).ServeHTTP)
			r.Post("/cart", cartadd.New(logger, cartService).ServeHTTP)
			r.Put("/cart/{cartID}", cartupdate.New(logger, cartService).ServeHTTP)
			r.Delete("/cart/{cartID}", cartremove.New(logger, cartService).ServeHTTP)

			// Административные операции каталога: роль перечитывается
			// из хранилища на каждом запросе
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(authService, logger))
				r.Post("/books", bookcreate.New(logger, bookService).ServeHTTP)
				r.Put("/books/{id}", bookupdate.New(logger, bookService).ServeHTTP)
				r.Delete("/books/{id}", bookremove.New(logger, bookService).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
