package admin

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/listview"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

func bookingEngine(pageSize int) (*listview.Engine[models.Booking], error) {
	return listview.New(listview.Config[models.Booking]{
		SearchFields: []func(models.Booking) string{
			func(b models.Booking) string { return personName(b.User) },
			func(b models.Booking) string { return personEmail(b.User) },
			func(b models.Booking) string { return personName(b.AssignedTechnician) },
			func(b models.Booking) string { return b.ServiceType },
			func(b models.Booking) string { return b.Status },
		},
		SortKeys: map[string]listview.Compare[models.Booking]{
			"date":   listview.By(func(b models.Booking) string { return b.Date }),
			"fee":    listview.By(func(b models.Booking) float64 { return b.ServiceFee }),
			"status": listview.ByFold(func(b models.Booking) string { return b.Status }),
		},
		PageSize: pageSize,
		Mode:     listview.ServerPaged,
	})
}

// Bookings возвращает страницу заявок. Страницы считает сервер.
func (s *Service) Bookings(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent) (views.Listing[models.Booking], error) {
	return views.Server(ctx, s.views, browserID, s.bookings, in, s.api(ts).Bookings)
}

// Booking возвращает подробности заявки.
func (s *Service) Booking(ctx context.Context, ts gateway.TokenSource, id string) (models.Booking, error) {
	const op = "admin.Booking"
	b, err := s.api(ts).Booking(ctx, id)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

func personName(p *models.PersonRef) string {
	if p == nil {
		return ""
	}
	return p.Name
}

func personEmail(p *models.PersonRef) string {
	if p == nil {
		return ""
	}
	return p.Email
}
