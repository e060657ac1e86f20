// Package console собирает HTTP-приложение консоли: маршруты, сервисы и сервер.
package console

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/aircon-console/internal/config"
	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/http/handlers/admin/bookings"
	"github.com/magabrotheeeer/aircon-console/internal/http/handlers/admin/dashboard"
	"github.com/magabrotheeeer/aircon-console/internal/http/handlers/admin/feedback"
	"github.com/magabrotheeeer/aircon-console/internal/http/handlers/admin/products"
	"github.com/magabrotheeeer/aircon-console/internal/http/handlers/admin/technicians"
	"github.com/magabrotheeeer/aircon-console/internal/http/handlers/admin/users"
	"github.com/magabrotheeeer/aircon-console/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/aircon-console/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/aircon-console/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/aircon-console/internal/http/handlers/auth/register"
	bookingcreate "github.com/magabrotheeeer/aircon-console/internal/http/handlers/booking/create"
	bookingoptions "github.com/magabrotheeeer/aircon-console/internal/http/handlers/booking/options"
	cataloglist "github.com/magabrotheeeer/aircon-console/internal/http/handlers/catalog/list"
	catalogread "github.com/magabrotheeeer/aircon-console/internal/http/handlers/catalog/read"
	"github.com/magabrotheeeer/aircon-console/internal/http/handlers/health"
	"github.com/magabrotheeeer/aircon-console/internal/http/middlewarectx"
	"github.com/magabrotheeeer/aircon-console/internal/metrics"
	"github.com/magabrotheeeer/aircon-console/internal/services/admin"
	"github.com/magabrotheeeer/aircon-console/internal/services/booking"
	"github.com/magabrotheeeer/aircon-console/internal/services/catalog"
)

// Deps: всё, что нужно маршрутам.
type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Sessions middlewarectx.Sessions
	Store    health.Pinger
	Gateway  *gateway.Client
	Catalog  *catalog.Service
	Admin    *admin.Service
	Booking  *booking.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	logger := d.Logger

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.Metrics(d.Metrics),
	)

	cookie := middlewarectx.CookieConfig{
		Name:   d.Config.CookieName,
		MaxAge: d.Config.SessionTTL,
		Secure: d.Config.SecureCookie,
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.Browser(cookie, d.Sessions, logger))

		r.Get("/me", me.New(logger).ServeHTTP)
		r.Post("/logout", logout.New(logger).ServeHTTP)

		// Вход и регистрация с ограничением частоты
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, d.Config.RPS, d.Config.Burst))
			r.Post("/login", login.New(logger).ServeHTTP)
			r.Post("/register", register.New(logger, d.Gateway).ServeHTTP)
		})

		// Всё, что ходит в API с токеном сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.EndSessionOnAuthFailure(logger, d.Metrics))

			r.Get("/products", cataloglist.New(logger, d.Catalog).ServeHTTP)
			r.Get("/products/{id}", catalogread.New(logger, d.Catalog).ServeHTTP)
			r.Get("/bookings/options", bookingoptions.New(d.Booking).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAuth(logger))
				r.Post("/bookings", bookingcreate.New(logger, d.Booking).ServeHTTP)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.RequireAuth(logger))
				r.Use(middlewarectx.RequireAdmin(logger))

				r.Get("/dashboard", dashboard.New(logger, d.Admin).ServeHTTP)

				b := bookings.New(logger, d.Admin)
				r.Get("/bookings", b.List)
				r.Get("/bookings/{id}", b.Read)

				p := products.New(logger, d.Admin)
				r.Get("/products", p.List)
				r.Post("/products", p.Create)
				r.Patch("/products/{id}", p.Update)
				r.Delete("/products/{id}", p.Delete)

				t := technicians.New(logger, d.Admin)
				r.Get("/technicians", t.List)
				r.Get("/technicians/options", t.Options)
				r.Post("/technicians", t.Create)
				r.Patch("/technicians/{id}", t.Update)
				r.Delete("/technicians/{id}", t.Delete)

				r.Get("/users", users.New(logger, d.Admin).ServeHTTP)
				r.Get("/feedback", feedback.New(logger, d.Admin).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, d.Store).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
