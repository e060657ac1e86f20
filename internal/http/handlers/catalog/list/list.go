// Package list отдаёт страницу публичного каталога.
package list

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
	"github.com/magabrotheeeer/aircon-console/internal/services/catalog"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

// Service: сценарий списка каталога.
type Service interface {
	List(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent, f catalog.Filters) (views.Listing[models.Product], error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Каталог кондиционеров
// @Description Страница каталога. Поиск, сортировка и страница запоминаются для браузера, смена поиска или сортировки возвращает на первую страницу.
// @Tags Catalog
// @Produce  json
// @Param search query string false "Поиск по названию, бренду, модели"
// @Param sort query string false "name | brand | price | stock | rating"
// @Param dir query string false "asc | desc, без dir повторная сортировка меняет направление"
// @Param page query int false "Номер страницы"
// @Param brand query string false "Фильтр по бренду"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Ответ устарел"
// @Failure 502 {object} response.Response "API недоступен, data содержит пустой список"
// @Router /products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.list"

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

	listing, err := h.service.List(r.Context(), store, browserID, request.Intent(r),
		catalog.Filters{Brand: r.URL.Query().Get("brand")})
	if err != nil {
		log.Warn("failed to list products", sl.Err(err))
	}
	response.List(w, r, listing, err)
}
