// Package options отдаёт справочники формы записи на обслуживание.
package options

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/aircon-console/internal/http/response"
	"github.com/magabrotheeeer/aircon-console/internal/services/booking"
)

// Service: источник справочников.
type Service interface {
	Options() booking.Options
}

type Handler struct {
	service Service
}

func New(service Service) *Handler {
	return &Handler{service: service}
}

// ServeHTTP godoc
// @Summary Справочники формы записи
// @Description Интервалы времени, виды работ, популярные бренды и лимиты вложений.
// @Tags Booking
// @Produce  json
// @Success 200 {object} response.Response{data=booking.Options}
// @Router /bookings/options [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(h.service.Options()))
}
