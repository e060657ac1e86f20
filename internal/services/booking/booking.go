// Package booking реализует клиентскую запись на обслуживание кондиционера.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/lib/sl"
	"github.com/magabrotheeeer/aircon-console/internal/models"
)

// MaxFiles: сколько фото и сколько видео можно приложить к заявке.
const MaxFiles = 5

// dateLayout: формат даты обслуживания из формы.
const dateLayout = "2006-01-02"

// TimeSlots: интервалы, на которые можно записаться.
var TimeSlots = []string{
	"09:00-11:00",
	"11:00-13:00",
	"13:00-15:00",
	"15:00-17:00",
}

// ServiceTypes: виды работ, доступные для записи.
var ServiceTypes = []string{
	"Emergency Repair",
	"Regular Maintenance",
	"Chemical Cleaning",
	"Gas Top-up",
	"New Installation",
	"Duct Cleaning",
}

// PopularBrands: подсказки для поля бренда.
var PopularBrands = []string{
	"Daikin",
	"Mitsubishi",
	"LG",
	"Panasonic",
	"Toshiba",
	"Samsung",
	"Carrier",
	"York",
}

// Options: справочники формы записи.
type Options struct {
	TimeSlots    []string `json:"timeSlots"`
	ServiceTypes []string `json:"serviceTypes"`
	Brands       []string `json:"brands"`
	MaxPhotos    int      `json:"maxPhotos"`
	MaxVideos    int      `json:"maxVideos"`
}

// API: вызовы удалённого API, нужные записи.
type API interface {
	CreateBooking(ctx context.Context, in models.BookingRequest) (models.Booking, error)
}

// Binder привязывает API к токену сессии.
type Binder func(ts gateway.TokenSource) API

// Service проверяет и отправляет заявки.
type Service struct {
	api      Binder
	validate *validator.Validate
	now      func() time.Time
	log      *slog.Logger
}

// New создаёт сервис записи.
func New(api Binder, log *slog.Logger) *Service {
	return &Service{
		api:      api,
		validate: validator.New(),
		now:      time.Now,
		log:      log,
	}
}

// Options возвращает справочники формы.
func (s *Service) Options() Options {
	return Options{
		TimeSlots:    TimeSlots,
		ServiceTypes: ServiceTypes,
		Brands:       PopularBrands,
		MaxPhotos:    MaxFiles,
		MaxVideos:    MaxFiles,
	}
}

// Submit проверяет заявку и отправляет её в API. Дата и интервал
// обязательны, дата не может быть в прошлом.
func (s *Service) Submit(ctx context.Context, ts gateway.TokenSource, in models.BookingRequest) (models.Booking, error) {
	const op = "booking.Submit"

	if err := s.check(in); err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	b, err := s.api(ts).CreateBooking(ctx, in)
	if err != nil {
		s.log.Warn("booking rejected", sl.Op(op), sl.Err(err))
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("booking created", sl.Op(op), slog.String("booking_id", b.ID))
	return b, nil
}

func (s *Service) check(in models.BookingRequest) error {
	if in.Date == "" || in.TimeSlot == "" {
		return invalid("Please select date and time slot")
	}
	if err := s.validate.Struct(in); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return invalid(fmt.Sprintf("field %s is a required field", verrs[0].Field()))
		}
		return invalid(err.Error())
	}
	if !slices.Contains(TimeSlots, in.TimeSlot) {
		return invalid(fmt.Sprintf("unknown time slot %q", in.TimeSlot))
	}
	if !slices.Contains(ServiceTypes, in.ServiceType) {
		return invalid(fmt.Sprintf("unknown service type %q", in.ServiceType))
	}
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return invalid("date must be in format YYYY-MM-DD")
	}
	today := s.now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return invalid("service date must not be in the past")
	}
	if len(in.Photos) > MaxFiles || len(in.Videos) > MaxFiles {
		return invalid(fmt.Sprintf("Maximum %d files allowed", MaxFiles))
	}
	return nil
}

func invalid(msg string) error {
	return &gateway.ValidationError{Status: 422, Message: msg}
}
