// Package admin реализует экраны админской панели: заявки, товары,
// техники, пользователи, отзывы и сводку.
//
// Заявки и отзывы пагинируются на сервере, остальные списки загружаются
// целиком и режутся на страницы локально.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/listview"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

// Имена экранов в хранилище состояния.
const (
	ViewBookings    = "admin.bookings"
	ViewProducts    = "admin.products"
	ViewTechnicians = "admin.technicians"
	ViewUsers       = "admin.users"
	ViewFeedback    = "admin.feedback"
)

// API: вызовы удалённого API, нужные админской панели.
type API interface {
	Bookings(ctx context.Context, page, limit int) (gateway.Paged[models.Booking], error)
	Booking(ctx context.Context, id string) (models.Booking, error)

	Products(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	Technicians(ctx context.Context) ([]models.Technician, error)
	SignupTechnician(ctx context.Context, in models.TechnicianSignup) error
	UpdateTechnician(ctx context.Context, id string, patch models.TechnicianPatch) (models.Technician, error)
	DeleteTechnician(ctx context.Context, id string) error

	UserBookingCounts(ctx context.Context) ([]models.UserBookingCount, error)
	Feedbacks(ctx context.Context, page, limit int) (gateway.Paged[models.Feedback], error)

	DashboardTotals(ctx context.Context) (models.DashboardTotals, error)
	RecentBookings(ctx context.Context) ([]models.Booking, error)
	PopularServices(ctx context.Context) ([]models.PopularService, error)
	TechnicianStats(ctx context.Context) ([]models.TechnicianStats, error)
}

// Binder привязывает API к токену сессии.
type Binder func(ts gateway.TokenSource) API

// PageSizes: размеры страниц экранов.
type PageSizes struct {
	Bookings    int
	Products    int
	Technicians int
	Users       int
	Feedback    int
}

// DefaultPageSizes повторяют размеры страниц исходной панели.
var DefaultPageSizes = PageSizes{
	Bookings:    5,
	Products:    10,
	Technicians: 10,
	Users:       10,
	Feedback:    10,
}

// Service реализует сценарии админской панели.
type Service struct {
	api      Binder
	views    *views.Views
	validate *validator.Validate
	log      *slog.Logger

	bookings    views.Screen[models.Booking]
	products    views.Screen[models.Product]
	technicians views.Screen[models.Technician]
	users       views.Screen[models.UserBookingCount]
	feedback    views.Screen[models.Feedback]
}

// New создаёт сервис админской панели.
func New(api Binder, v *views.Views, sizes PageSizes, log *slog.Logger) (*Service, error) {
	const op = "admin.New"

	bookings, err := bookingEngine(sizes.Bookings)
	if err != nil {
		return nil, fmt.Errorf("%s: bookings: %w", op, err)
	}
	products, err := productEngine(sizes.Products)
	if err != nil {
		return nil, fmt.Errorf("%s: products: %w", op, err)
	}
	technicians, err := technicianEngine(sizes.Technicians)
	if err != nil {
		return nil, fmt.Errorf("%s: technicians: %w", op, err)
	}
	users, err := userEngine(sizes.Users)
	if err != nil {
		return nil, fmt.Errorf("%s: users: %w", op, err)
	}
	feedback, err := feedbackEngine(sizes.Feedback)
	if err != nil {
		return nil, fmt.Errorf("%s: feedback: %w", op, err)
	}

	return &Service{
		api:      api,
		views:    v,
		validate: validator.New(),
		log:      log,

		bookings:    views.Screen[models.Booking]{Name: ViewBookings, Engine: bookings},
		products:    views.Screen[models.Product]{Name: ViewProducts, Engine: products},
		technicians: views.Screen[models.Technician]{Name: ViewTechnicians, Engine: technicians},
		users: views.Screen[models.UserBookingCount]{
			Name:      ViewUsers,
			Engine:    users,
			SortKey:   "bookings",
			Direction: listview.Desc,
		},
		feedback: views.Screen[models.Feedback]{Name: ViewFeedback, Engine: feedback},
	}, nil
}

// invalid оборачивает ошибку проверки ввода в gateway.ValidationError,
// чтобы обработчики показывали её как ошибку пользователя.
func invalid(msg string) error {
	return &gateway.ValidationError{Status: 422, Message: msg}
}
