package products

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/http/middlewarectx"
	"github.com/magabrotheeeer/aircon-console/internal/lib/jwt"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
	"github.com/magabrotheeeer/aircon-console/internal/session/sessiontest"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Products(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent) (views.Listing[models.Product], error) {
	args := m.Called(ctx, ts, browserID, in)
	return args.Get(0).(views.Listing[models.Product]), args.Error(1)
}

func (m *ServiceMock) CreateProduct(ctx context.Context, ts gateway.TokenSource, in models.ProductInput) (models.Product, error) {
	args := m.Called(ctx, ts, in)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *ServiceMock) UpdateProduct(ctx context.Context, ts gateway.TokenSource, id string, patch models.ProductPatch) (models.Product, error) {
	args := m.Called(ctx, ts, id, patch)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *ServiceMock) DeleteProduct(ctx context.Context, ts gateway.TokenSource, id string) error {
	return m.Called(ctx, ts, id).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func router(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/admin/products", h.List)
	r.Post("/admin/products", h.Create)
	r.Patch("/admin/products/{id}", h.Update)
	r.Delete("/admin/products/{id}", h.Delete)
	return r
}

func do(t *testing.T, h http.Handler, method, url string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req = req.WithContext(middlewarectx.WithStore(req.Context(), "b1", sessiontest.LoggedIn(t, jwt.RoleAdmin)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, fields map[string]string, images int) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for range images {
		fw, err := mw.CreateFormFile("images", "front.png")
		require.NoError(t, err)
		_, _ = fw.Write([]byte("png"))
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestCreate(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("CreateProduct", mock.Anything, mock.Anything, mock.MatchedBy(func(in models.ProductInput) bool {
		return in.Name == "Daikin FTXM" && in.Price == "52000" && in.Specs.Refrigerant == "R32" &&
			in.VoteCount == 12 && len(in.Images) == 1 && in.Images[0].FieldName == "images"
	})).Return(models.Product{ID: "p1", Name: "Daikin FTXM"}, nil).Once()

	body, ct := multipartBody(t, map[string]string{
		"name": "Daikin FTXM", "brand": "Daikin", "productModel": "FTXM25", "description": "split",
		"price": "52000", "stock": "3", "vote_count": "12", "specs": `{"refrigerant":"R32"}`,
	}, 1)
	rec := do(t, router(New(newNoopLogger(), svc)), http.MethodPost, "/admin/products", body, ct)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestCreate_BadSpecs(t *testing.T) {
	svc := new(ServiceMock)
	body, ct := multipartBody(t, map[string]string{"name": "X", "specs": "not json"}, 0)
	rec := do(t, router(New(newNoopLogger(), svc)), http.MethodPost, "/admin/products", body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_OnlySuppliedFields(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("UpdateProduct", mock.Anything, mock.Anything, "p1", mock.MatchedBy(func(p models.ProductPatch) bool {
		return p.Price != nil && *p.Price == "49000" && p.Name == nil && p.Specs == nil && len(p.Images) == 0
	})).Return(models.Product{ID: "p1", Price: 49000}, nil).Once()

	body, ct := multipartBody(t, map[string]string{"price": "49000"}, 0)
	rec := do(t, router(New(newNoopLogger(), svc)), http.MethodPatch, "/admin/products/p1", body, ct)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("DeleteProduct", mock.Anything, mock.Anything, "gone").Return(&gateway.NotFoundError{Path: "/api/product/gone"})

	rec := do(t, router(New(newNoopLogger(), svc)), http.MethodDelete, "/admin/products/gone", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestList_StaleAndAuth(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Products", mock.Anything, mock.Anything, "b1", mock.Anything).
		Return(views.Listing[models.Product]{}, views.ErrStale).Once()
	svc.On("Products", mock.Anything, mock.Anything, "b1", mock.Anything).
		Return(views.Listing[models.Product]{}, &gateway.AuthError{Status: 401}).Once()
	h := router(New(newNoopLogger(), svc))

	rec := do(t, h, http.MethodGet, "/admin/products?search=lg", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/admin/products", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "/login", got["redirect"])
}
