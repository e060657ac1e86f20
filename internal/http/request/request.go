// Package request разбирает общие части входящих запросов консоли:
// параметры списочных экранов, сессию браузера и файлы multipart-форм.
package request

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/aircon-console/internal/http/middlewarectx"
	"github.com/magabrotheeeer/aircon-console/internal/listview"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
	"github.com/magabrotheeeer/aircon-console/internal/session"
)

// MaxUploadSize: предел размера multipart-формы.
const MaxUploadSize = 64 << 20

// ErrNoSession возвращается, если в контексте нет сессии браузера.
var ErrNoSession = errors.New("request: no browser session in context")

// Intent читает изменения запроса экрана из query-параметров:
// search, sort, dir (asc|desc) и page. Отсутствующий параметр ничего
// не меняет, sort без dir переключает направление.
func Intent(r *http.Request) views.Intent {
	q := r.URL.Query()
	var in views.Intent

	if q.Has("search") {
		s := q.Get("search")
		in.Search = &s
	}
	in.SortKey = q.Get("sort")
	switch strings.ToLower(q.Get("dir")) {
	case "asc":
		in.Direction = listview.Asc
	case "desc":
		in.Direction = listview.Desc
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil {
		in.Page = &p
	}
	return in
}

// Session возвращает сессию и id браузера из контекста запроса.
func Session(r *http.Request) (*session.Store, string, error) {
	store, ok := middlewarectx.StoreFrom(r.Context())
	if !ok {
		return nil, "", ErrNoSession
	}
	return store, middlewarectx.BrowserFrom(r.Context()), nil
}

// Files читает файлы поля field уже разобранной multipart-формы.
// Файлов больше limit, ошибка.
func Files(r *http.Request, field string, limit int) ([]models.Upload, error) {
	const op = "request.Files"

	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) > limit {
		return nil, fmt.Errorf("maximum %d files allowed in %s", limit, field)
	}

	out := make([]models.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("%s: open %s: %w", op, fh.Filename, err)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: read %s: %w", op, fh.Filename, err)
		}
		out = append(out, models.Upload{FieldName: field, FileName: fh.Filename, Content: content})
	}
	return out, nil
}

// Optional возвращает указатель на значение поля формы, если поле
// присутствует, и nil иначе.
func Optional(r *http.Request, field string) *string {
	if r.MultipartForm != nil {
		if vs, ok := r.MultipartForm.Value[field]; ok && len(vs) > 0 {
			return &vs[0]
		}
		return nil
	}
	if r.PostForm != nil && r.PostForm.Has(field) {
		v := r.PostForm.Get(field)
		return &v
	}
	return nil
}
