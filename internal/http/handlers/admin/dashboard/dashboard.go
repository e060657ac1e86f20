// Package dashboard отдаёт сводку админской панели.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/http/request"
	"github.com/magabrotheeeer/aircon-console/internal/http/response"
	"github.com/magabrotheeeer/aircon-console/internal/lib/sl"
	"github.com/magabrotheeeer/aircon-console/internal/models"
)

// Service: сценарий сводки.
type Service interface {
	Dashboard(ctx context.Context, ts gateway.TokenSource) (models.Dashboard, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводка
// @Description Итоги, последние заявки, популярные услуги и показатели техников.
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response{data=models.Dashboard}
// @Failure 401 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.dashboard"

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

	d, err := h.service.Dashboard(r.Context(), store)
	if err != nil {
		log.Warn("failed to build dashboard", sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(d))
}
