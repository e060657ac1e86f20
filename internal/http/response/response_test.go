package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

func TestCodeAndBody(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantCode     int
		wantMsg      string
		wantRedirect string
	}{
		{
			name:         "expired session",
			err:          fmt.Errorf("admin.Bookings: %w", &gateway.AuthError{Status: 403}),
			wantCode:     http.StatusUnauthorized,
			wantMsg:      "session expired, please log in again",
			wantRedirect: "/login",
		},
		{
			name:     "validation",
			err:      &gateway.ValidationError{Status: 400, Message: "Email already registered"},
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "Email already registered",
		},
		{
			name:     "not found",
			err:      &gateway.NotFoundError{Path: "/api/product/1"},
			wantCode: http.StatusNotFound,
			wantMsg:  "record not found",
		},
		{
			name:     "network",
			err:      &gateway.NetworkError{Op: "GET /api/product", Cause: errors.New("refused")},
			wantCode: http.StatusBadGateway,
			wantMsg:  "something went wrong, please try again",
		},
		{
			name:     "server",
			err:      &gateway.ServerError{Status: 500},
			wantCode: http.StatusBadGateway,
			wantMsg:  "something went wrong, please try again",
		},
		{
			name:     "stale",
			err:      views.ErrStale,
			wantCode: http.StatusConflict,
			wantMsg:  "request superseded by a newer one",
		},
		{
			name:     "unknown",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "something went wrong, please try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			Fail(rec, req, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			var got Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, StatusError, got.Status)
			assert.Equal(t, tt.wantMsg, got.Error)
			assert.Equal(t, tt.wantRedirect, got.Redirect)
		})
	}
}

func TestWithData(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	WithData(rec, req, &gateway.ServerError{Status: 503}, map[string]any{"items": []int{}})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Error", got["status"])
	data, ok := got["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{}, data["items"])
}

func TestValidationError(t *testing.T) {
	type form struct {
		Email    string `validate:"required,email"`
		Password string `validate:"min=6"`
	}
	err := validator.New().Struct(form{Email: "nope", Password: "123"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	got := ValidationError(verrs)
	assert.Equal(t, StatusError, got.Status)
	assert.Equal(t, "field Email must be a valid email, field Password must be at least 6 characters", got.Error)
}
