package gateway

import (
	"context"

	"github.com/magabrotheeeer/aircon-console/internal/models"
)

// Bookings загружает одну серверную страницу заявок: GET /api/booking?page=&limit=.
func (c *Client) Bookings(ctx context.Context, page, limit int) (Paged[models.Booking], error) {
	return ListPaged(ctx, c, ResourceBookings, pageParams(page, limit),
		func(e models.BookingPage) Paged[models.Booking] {
			return Paged[models.Booking]{Items: e.Bookings, PageCount: e.TotalPages, TotalCount: e.Total}
		})
}

// Booking загружает подробности заявки: GET /api/booking/admin/{id}.
func (c *Client) Booking(ctx context.Context, id string) (models.Booking, error) {
	return Get[models.Booking](ctx, c, ResourceBookingAdmin, id)
}

// CreateBooking отправляет клиентскую заявку на обслуживание вместе с
// фото и видео.
func (c *Client) CreateBooking(ctx context.Context, in models.BookingRequest) (models.Booking, error) {
	form := &Form{}
	form.Add("brand", in.Brand).
		Add("model", in.Model).
		Add("serviceType", in.ServiceType).
		Add("title", in.Title).
		Add("description", in.Description).
		Add("date", in.Date).
		Add("timeSlot", in.TimeSlot).
		Add("name", in.Name).
		Add("address", in.Address).
		Add("phone", in.Phone)
	form.Attach(withField("photos", in.Photos)...)
	form.Attach(withField("videos", in.Videos)...)

	return Create[models.Booking](ctx, c, ResourceBookings, ResourceBookings, form)
}
