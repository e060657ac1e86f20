package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/aircon-console/internal/http/response"
	"github.com/magabrotheeeer/aircon-console/internal/session"
)

// RequireAuth пропускает только запросы с активной сессией. Остальные
// получают 401 и redirect на страницу входа.
func RequireAuth(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAuth"

			store, ok := StoreFrom(r.Context())
			if !ok || store.State() != session.Authenticated {
				log.Info("anonymous request to protected route",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path),
				)
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Response{
					Status:   response.StatusError,
					Error:    "login required",
					Redirect: response.LoginPath,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin пропускает только администраторов. Ставится после
// RequireAuth.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAdmin"

			store, ok := StoreFrom(r.Context())
			if !ok || !store.IsAdmin() {
				log.Warn("non-admin request to admin route",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Response{
					Status:   response.StatusError,
					Error:    "admin access required",
					Redirect: session.LandingCustomer,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// EndSessionOnAuthFailure завершает сессию браузера, если обработчик
// ответил 401: удалённый API отверг токен, и дальше он бесполезен.
func EndSessionOnAuthFailure(log *slog.Logger, obs LogoutObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.EndSessionOnAuthFailure"

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if ww.Status() != http.StatusUnauthorized {
				return
			}
			store, ok := StoreFrom(r.Context())
			if !ok || store.State() != session.Authenticated {
				return
			}
			store.Logout(r.Context())
			if obs != nil {
				obs.ForcedLogout()
			}
			log.Info("session ended after auth failure",
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("browser_id", BrowserFrom(r.Context())),
			)
		})
	}
}
