package gateway

import (
	"context"

	"github.com/magabrotheeeer/aircon-console/internal/models"
)

// Feedbacks загружает одну серверную страницу отзывов: GET /api/feedback?page=&limit=.
func (c *Client) Feedbacks(ctx context.Context, page, limit int) (Paged[models.Feedback], error) {
	return ListPaged(ctx, c, ResourceFeedback, pageParams(page, limit),
		func(e models.FeedbackPage) Paged[models.Feedback] {
			return Paged[models.Feedback]{Items: e.Feedbacks, PageCount: e.TotalPages, TotalCount: e.TotalCount}
		})
}
