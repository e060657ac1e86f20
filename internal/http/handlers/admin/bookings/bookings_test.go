package bookings

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
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
	"github.com/magabrotheeeer/aircon-console/internal/listview"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
	"github.com/magabrotheeeer/aircon-console/internal/session/sessiontest"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Bookings(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent) (views.Listing[models.Booking], error) {
	args := m.Called(ctx, ts, browserID, in)
	return args.Get(0).(views.Listing[models.Booking]), args.Error(1)
}

func (m *ServiceMock) Booking(ctx context.Context, ts gateway.TokenSource, id string) (models.Booking, error) {
	args := m.Called(ctx, ts, id)
	return args.Get(0).(models.Booking), args.Error(1)
}

func newRouter(t *testing.T, svc Service) http.Handler {
	t.Helper()
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	store := sessiontest.LoggedIn(t, jwt.RoleAdmin)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middlewarectx.WithStore(r.Context(), "b1", store)))
		})
	})
	r.Get("/admin/bookings", h.List)
	r.Get("/admin/bookings/{id}", h.Read)
	return r
}

func TestList(t *testing.T) {
	page := views.Listing[models.Booking]{
		Page: listview.Page[models.Booking]{Items: []models.Booking{{ID: "b-2"}}, PageNumber: 2, PageCount: 2},
		Mode: "server",
	}
	failed := views.Listing[models.Booking]{
		Page:    listview.Page[models.Booking]{Items: []models.Booking{}, PageNumber: 1, PageCount: 1},
		Warning: "x",
	}

	tests := []struct {
		name      string
		url       string
		listing   views.Listing[models.Booking]
		err       error
		wantCode  int
		wantItems int
	}{
		{name: "ok", url: "/admin/bookings?page=2", listing: page, wantCode: http.StatusOK, wantItems: 1},
		{name: "api down keeps empty list", url: "/admin/bookings", listing: failed,
			err: &gateway.NetworkError{Op: "GET /api/booking"}, wantCode: http.StatusBadGateway},
		{name: "superseded", url: "/admin/bookings", err: views.ErrStale, wantCode: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Bookings", mock.Anything, mock.Anything, "b1", mock.Anything).Return(tt.listing, tt.err)

			rec := httptest.NewRecorder()
			newRouter(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.err == views.ErrStale {
				return
			}
			var got struct {
				Data struct {
					Items []models.Booking `json:"items"`
				} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Len(t, got.Data.Items, tt.wantItems)
		})
	}
}

func TestList_PassesPage(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Bookings", mock.Anything, mock.Anything, "b1", mock.MatchedBy(func(in views.Intent) bool {
		return in.Page != nil && *in.Page == 3 && in.Search == nil
	})).Return(views.Listing[models.Booking]{}, nil)

	rec := httptest.NewRecorder()
	newRouter(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/bookings?page=3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestRead(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Booking", mock.Anything, mock.Anything, "b-6").Return(models.Booking{ID: "b-6", PaymentStatus: "paid"}, nil)
	svc.On("Booking", mock.Anything, mock.Anything, "nope").Return(models.Booking{}, &gateway.NotFoundError{Path: "/api/booking/admin/nope"})
	router := newRouter(t, svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/bookings/b-6", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"paymentStatus":"paid"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/bookings/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
