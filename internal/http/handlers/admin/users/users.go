// Package users обслуживает экран пользователей админской панели.
package users

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/http/request"
	"github.com/magabrotheeeer/aircon-console/internal/http/response"
	"github.com/magabrotheeeer/aircon-console/internal/lib/sl"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

// Service: сценарий экрана пользователей.
type Service interface {
	Users(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent) (views.Listing[models.UserBookingCount], error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Пользователи
// @Description Пользователи с числом заявок. По умолчанию отсортированы по числу заявок по убыванию.
// @Tags Admin
// @Produce  json
// @Param search query string false "Поиск по имени и email"
// @Param sort query string false "name | email | bookings"
// @Param dir query string false "asc | desc"
// @Param page query int false "Номер страницы"
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response
// @Security BearerAuth
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.users"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	store, browserID, err := request.Session(r)
	if err != nil {
		log.Error("no session", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	listing, err := h.service.Users(r.Context(), store, browserID, request.Intent(r))
	if err != nil {
		log.Warn("failed to list users", sl.Err(err))
	}
	response.List(w, r, listing, err)
}
