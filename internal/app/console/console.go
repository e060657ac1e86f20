package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/aircon-console/internal/cache"
	"github.com/magabrotheeeer/aircon-console/internal/config"
	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/lib/jwt"
	"github.com/magabrotheeeer/aircon-console/internal/metrics"
	"github.com/magabrotheeeer/aircon-console/internal/services/admin"
	"github.com/magabrotheeeer/aircon-console/internal/services/booking"
	"github.com/magabrotheeeer/aircon-console/internal/services/catalog"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
	"github.com/magabrotheeeer/aircon-console/internal/session"
)

// KV: хранилище сессий и состояния экранов.
type KV interface {
	cache.KV
	Ping(ctx context.Context) error
}

type App struct {
	server *http.Server
	logger *slog.Logger
	redis  *cache.Cache
}

// New собирает приложение. Без адреса redis сессии хранятся в памяти
// процесса и теряются при перезапуске.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "console.New"

	var (
		kv    KV
		redis *cache.Cache
	)
	if cfg.UseRedis() {
		c, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		kv, redis = c, c
	} else {
		logger.Warn("redis address is empty, sessions are kept in memory")
		kv = cache.NewMemory()
	}

	router, err := NewRouter(cfg, logger, kv, prometheus.DefaultRegisterer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.BackendTimeout + cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		redis:  redis,
	}, nil
}

// NewRouter собирает сервисы поверх хранилища kv и возвращает корневой
// обработчик. Метрики регистрируются в reg.
func NewRouter(cfg *config.Config, logger *slog.Logger, kv KV, reg prometheus.Registerer) (http.Handler, error) {
	const op = "console.NewRouter"

	m := metrics.New(reg)

	client := gateway.NewClient(cfg.BaseURL,
		gateway.WithTimeout(cfg.BackendTimeout),
		gateway.WithLogger(logger),
		gateway.WithObserver(m),
	)

	sessions := session.NewRegistry(kv, cfg.SessionTTL, client, jwt.NewDecoder(cfg.JWTSecretKey), logger)
	v := views.New(kv, cfg.SessionTTL, cfg.MaxVisiblePages, m, logger)

	catalogService, err := catalog.New(func(ts gateway.TokenSource) catalog.API { return client.For(ts) },
		v, cfg.CatalogPageSize, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	adminService, err := admin.New(func(ts gateway.TokenSource) admin.API { return client.For(ts) },
		v, admin.PageSizes{
			Bookings:    cfg.BookingsPageSize,
			Products:    cfg.ProductsPageSize,
			Technicians: cfg.TechniciansPage,
			Users:       cfg.UsersPageSize,
			Feedback:    cfg.FeedbackPageSize,
		}, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	bookingService := booking.New(func(ts gateway.TokenSource) booking.API { return client.For(ts) }, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Config:   cfg,
		Logger:   logger,
		Metrics:  m,
		Sessions: sessions,
		Store:    kv,
		Gateway:  client,
		Catalog:  catalogService,
		Admin:    adminService,
		Booking:  bookingService,
	})
	return router, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.redis != nil {
			if cerr := a.redis.Close(); cerr != nil {
				a.logger.Warn("failed to close redis", slog.Any("err", cerr))
			}
		}
		return err
	}
}
