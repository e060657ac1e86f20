package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Пути ресурсов удалённого API.
const (
	ResourceAuth         = "/api/auth"
	ResourceProducts     = "/api/product"
	ResourceBookings     = "/api/booking"
	ResourceBookingAdmin = "/api/booking/admin"
	ResourceTechnicians  = "/api/admin/technicians"
	ResourceFeedback     = "/api/feedback"
)

// Paged: страница, посчитанная сервером.
type Paged[T any] struct {
	Items      []T
	PageCount  int
	TotalCount int
}

// List загружает коллекцию, которую API отдаёт массивом целиком.
func List[T any](ctx context.Context, c *Client, resource string, params url.Values) ([]T, error) {
	var out []T
	err := c.do(ctx, request{
		method:   http.MethodGet,
		resource: resource,
		path:     resource,
		query:    params,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// ListPaged загружает одну серверную страницу. Форма конверта E у каждого
// ресурса своя, unwrap приводит её к Paged.
func ListPaged[E any, T any](ctx context.Context, c *Client, resource string, params url.Values, unwrap func(E) Paged[T]) (Paged[T], error) {
	var envelope E
	err := c.do(ctx, request{
		method:   http.MethodGet,
		resource: resource,
		path:     resource,
		query:    params,
		out:      &envelope,
	})
	if err != nil {
		return Paged[T]{}, err
	}
	page := unwrap(envelope)
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

// Get загружает одну запись. Отсутствующая запись даёт ErrNotFound.
func Get[T any](ctx context.Context, c *Client, resource, id string) (T, error) {
	var out T
	err := c.do(ctx, request{
		method:   http.MethodGet,
		resource: resource,
		path:     resource + "/" + url.PathEscape(id),
		out:      &out,
	})
	return out, err
}

// Create отправляет payload на path и возвращает созданную запись.
// *Form отправляется как multipart, остальное, как JSON.
func Create[T any](ctx context.Context, c *Client, resource, path string, payload any) (T, error) {
	var out T
	err := c.do(ctx, request{
		method:   http.MethodPost,
		resource: resource,
		path:     path,
		body:     payload,
		out:      &out,
	})
	return out, err
}

// Update частично обновляет запись: сервер меняет только переданные поля.
func Update[T any](ctx context.Context, c *Client, resource, id string, patch any) (T, error) {
	var out T
	err := c.do(ctx, request{
		method:   http.MethodPatch,
		resource: resource,
		path:     resource + "/" + url.PathEscape(id),
		body:     patch,
		out:      &out,
	})
	return out, err
}

// Delete удаляет запись.
func Delete(ctx context.Context, c *Client, resource, id string) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		resource: resource,
		path:     resource + "/" + url.PathEscape(id),
	})
}

func pageParams(page, limit int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	return params
}
