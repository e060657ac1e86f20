// Package bookings содержит обработчики экрана заявок админской панели.
package bookings

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/http/request"
	"github.com/magabrotheeeer/aircon-console/internal/http/response"
	"github.com/magabrotheeeer/aircon-console/internal/lib/sl"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

// Service: сценарии экрана заявок.
type Service interface {
	Bookings(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent) (views.Listing[models.Booking], error)
	Booking(ctx context.Context, ts gateway.TokenSource, id string) (models.Booking, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// List godoc
// @Summary Заявки
// @Description Страница заявок. Страницы считает сервер, поиск работает по загруженной странице.
// @Tags Admin
// @Produce  json
// @Param search query string false "Поиск по клиенту, технику, виду работ, статусу"
// @Param sort query string false "date | fee | status"
// @Param dir query string false "asc | desc"
// @Param page query int false "Номер страницы"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Ответ устарел"
// @Failure 502 {object} response.Response
// @Security BearerAuth
// @Router /admin/bookings [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.bookings.List"

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

	listing, err := h.service.Bookings(r.Context(), store, browserID, request.Intent(r))
	if err != nil {
		log.Warn("failed to list bookings", sl.Err(err))
	}
	response.List(w, r, listing, err)
}

// Read godoc
// @Summary Заявка
// @Tags Admin
// @Produce  json
// @Param id path string true "ID заявки"
// @Success 200 {object} response.Response{data=models.Booking}
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /admin/bookings/{id} [get]
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.bookings.Read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	store, _, err := request.Session(r)
	if err != nil {
		log.Error("no session", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	b, err := h.service.Booking(r.Context(), store, id)
	if err != nil {
		log.Warn("failed to get booking", slog.String("booking_id", id), sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(b))
}
