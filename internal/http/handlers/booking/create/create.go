// Package create принимает заявку клиента на обслуживание кондиционера.
//
// Форма приходит как multipart/form-data: текстовые поля и до пяти фото
// (photos) и пяти видео (videos). Файлы пересылаются в API как есть.
package create

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
	"github.com/magabrotheeeer/aircon-console/internal/services/booking"
)

// Service: сценарий отправки заявки.
type Service interface {
	Submit(ctx context.Context, ts gateway.TokenSource, in models.BookingRequest) (models.Booking, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Запись на обслуживание
// @Description Проверяет форму и создаёт заявку. Дата и интервал обязательны, не больше 5 фото и 5 видео.
// @Tags Booking
// @Accept  multipart/form-data
// @Produce  json
// @Param brand formData string true "Бренд"
// @Param model formData string false "Модель"
// @Param serviceType formData string true "Вид работ"
// @Param date formData string true "Дата, YYYY-MM-DD"
// @Param timeSlot formData string true "Интервал, например 09:00-11:00"
// @Param name formData string true "Имя"
// @Param address formData string true "Адрес"
// @Param phone formData string true "Телефон"
// @Param photos formData file false "Фото"
// @Param videos formData file false "Видео"
// @Success 201 {object} response.Response{data=models.Booking}
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 401 {object} response.ErrorResponse "Нужен вход"
// @Failure 422 {object} response.ErrorResponse "Ошибка проверки"
// @Failure 502 {object} response.ErrorResponse "API недоступен"
// @Security BearerAuth
// @Router /bookings [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.create"

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

	if err := r.ParseMultipartForm(request.MaxUploadSize); err != nil {
		log.Info("failed to parse form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form"))
		return
	}

	in := models.BookingRequest{
		Brand:       r.FormValue("brand"),
		Model:       r.FormValue("model"),
		ServiceType: r.FormValue("serviceType"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Date:        r.FormValue("date"),
		TimeSlot:    r.FormValue("timeSlot"),
		Name:        r.FormValue("name"),
		Address:     r.FormValue("address"),
		Phone:       r.FormValue("phone"),
	}
	if in.Photos, err = request.Files(r, "photos", booking.MaxFiles); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	if in.Videos, err = request.Files(r, "videos", booking.MaxFiles); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	b, err := h.service.Submit(r.Context(), store, in)
	if err != nil {
		log.Info("booking not created", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("booking created", slog.String("booking_id", b.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(b))
}
