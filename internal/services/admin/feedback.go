package admin

import (
	"context"
	"strconv"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/listview"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

// FeedbackFilters: фильтры экрана отзывов. Пустое значение отключает фильтр.
type FeedbackFilters struct {
	Rating     string
	Technician string
}

func feedbackEngine(pageSize int) (*listview.Engine[models.Feedback], error) {
	return listview.New(listview.Config[models.Feedback]{
		SearchFields: []func(models.Feedback) string{
			func(f models.Feedback) string { return personName(f.UserID) },
			func(f models.Feedback) string { return personEmail(f.UserID) },
			func(f models.Feedback) string { return personName(f.AssignedTechnicianID) },
			func(f models.Feedback) string { return f.TextReview },
		},
		SortKeys: map[string]listview.Compare[models.Feedback]{
			"rating": listview.By(func(f models.Feedback) int { return f.Rating }),
			"date":   listview.By(func(f models.Feedback) string { return f.CreatedAt }),
		},
		PageSize: pageSize,
		Mode:     listview.ServerPaged,
	})
}

// Feedback возвращает страницу отзывов. Поиск и фильтры работают по
// строкам загруженной страницы.
func (s *Service) Feedback(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent, f FeedbackFilters) (views.Listing[models.Feedback], error) {
	return views.Server(ctx, s.views, browserID, s.feedback, in, s.api(ts).Feedbacks,
		listview.Equals(func(fb models.Feedback) string { return strconv.Itoa(fb.Rating) }, f.Rating),
		listview.Contains(func(fb models.Feedback) string { return personName(fb.AssignedTechnicianID) }, f.Technician),
	)
}
