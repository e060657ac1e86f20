package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/http/middlewarectx"
	"github.com/magabrotheeeer/aircon-console/internal/lib/jwt"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/session/sessiontest"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Dashboard(ctx context.Context, ts gateway.TokenSource) (models.Dashboard, error) {
	args := m.Called(ctx, ts)
	return args.Get(0).(models.Dashboard), args.Error(1)
}

func TestDashboard(t *testing.T) {
	tests := []struct {
		name     string
		result   models.Dashboard
		err      error
		wantCode int
	}{
		{
			name:     "ok",
			result:   models.Dashboard{Totals: models.DashboardTotals{TotalBookings: 4}},
			wantCode: http.StatusOK,
		},
		{
			name:     "api down",
			err:      &gateway.ServerError{Status: 500, Cause: errors.New("boom")},
			wantCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Dashboard", mock.Anything, mock.Anything).Return(tt.result, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
			req = req.WithContext(middlewarectx.WithStore(req.Context(), "b1", sessiontest.LoggedIn(t, jwt.RoleAdmin)))
			rec := httptest.NewRecorder()
			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.err == nil {
				data := got["data"].(map[string]any)
				assert.Equal(t, float64(4), data["totals"].(map[string]any)["totalBookings"])
			}
		})
	}
}
