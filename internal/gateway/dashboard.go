package gateway

import (
	"context"
	"net/http"

	"github.com/magabrotheeeer/aircon-console/internal/models"
)

// DashboardTotals загружает итоговые счётчики админской панели.
func (c *Client) DashboardTotals(ctx context.Context) (models.DashboardTotals, error) {
	var out models.DashboardTotals
	err := c.do(ctx, request{
		method:   http.MethodGet,
		resource: ResourceBookingAdmin,
		path:     ResourceBookingAdmin + "/dashboard",
		out:      &out,
	})
	return out, err
}

// RecentBookings загружает последние заявки.
func (c *Client) RecentBookings(ctx context.Context) ([]models.Booking, error) {
	return List[models.Booking](ctx, c, ResourceBookingAdmin+"/recent-bookings", nil)
}

// PopularServices загружает самые востребованные виды работ.
func (c *Client) PopularServices(ctx context.Context) ([]models.PopularService, error) {
	return List[models.PopularService](ctx, c, ResourceBookingAdmin+"/popular-services", nil)
}

// TechnicianStats загружает показатели техников.
func (c *Client) TechnicianStats(ctx context.Context) ([]models.TechnicianStats, error) {
	return List[models.TechnicianStats](ctx, c, ResourceBookings+"/technician-stats", nil)
}

// UserBookingCounts загружает пользователей с числом их заявок.
func (c *Client) UserBookingCounts(ctx context.Context) ([]models.UserBookingCount, error) {
	return List[models.UserBookingCount](ctx, c, ResourceBookingAdmin+"/user-booking-count", nil)
}
