package admin

import (
	"context"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/listview"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

func userEngine(pageSize int) (*listview.Engine[models.UserBookingCount], error) {
	return listview.New(listview.Config[models.UserBookingCount]{
		SearchFields: []func(models.UserBookingCount) string{
			func(u models.UserBookingCount) string { return u.Name },
			func(u models.UserBookingCount) string { return u.Email },
		},
		SortKeys: map[string]listview.Compare[models.UserBookingCount]{
			"name":     listview.By(func(u models.UserBookingCount) string { return u.Name }),
			"email":    listview.By(func(u models.UserBookingCount) string { return u.Email }),
			"bookings": listview.By(func(u models.UserBookingCount) int { return u.Bookings }),
		},
		PageSize: pageSize,
		Mode:     listview.ClientPaged,
	})
}

// Users возвращает страницу пользователей с числом заявок. При первом
// открытии список отсортирован по числу заявок по убыванию.
func (s *Service) Users(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent) (views.Listing[models.UserBookingCount], error) {
	return views.Client(ctx, s.views, browserID, s.users, in, s.api(ts).UserBookingCounts)
}
