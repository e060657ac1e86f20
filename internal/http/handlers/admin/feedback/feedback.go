// Package feedback обслуживает экран отзывов админской панели.
package feedback

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
	"github.com/magabrotheeeer/aircon-console/internal/services/admin"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

// Service: сценарий экрана отзывов.
type Service interface {
	Feedback(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent, f admin.FeedbackFilters) (views.Listing[models.Feedback], error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отзывы
// @Description Страница отзывов. Страницы считает сервер, поиск и фильтры применяются к загруженной странице.
// @Tags Admin
// @Produce  json
// @Param search query string false "Поиск по клиенту, технику, тексту"
// @Param rating query int false "Точная оценка"
// @Param technician query string false "Имя техника содержит"
// @Param sort query string false "rating | date"
// @Param dir query string false "asc | desc"
// @Param page query int false "Номер страницы"
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response
// @Security BearerAuth
// @Router /admin/feedback [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.feedback"

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

	q := r.URL.Query()
	listing, err := h.service.Feedback(r.Context(), store, browserID, request.Intent(r), admin.FeedbackFilters{
		Rating:     q.Get("rating"),
		Technician: q.Get("technician"),
	})
	if err != nil {
		log.Warn("failed to list feedback", sl.Err(err))
	}
	response.List(w, r, listing, err)
}
