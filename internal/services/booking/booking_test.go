package booking

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/models"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) CreateBooking(ctx context.Context, in models.BookingRequest) (models.Booking, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Booking), args.Error(1)
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newService(api *MockAPI) *Service {
	svc := New(func(gateway.TokenSource) API { return api }, newNoopLogger())
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC) }
	return svc
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		Brand:       "Daikin",
		ServiceType: "Chemical Cleaning",
		Date:        "2026-03-12",
		TimeSlot:    "11:00-13:00",
		Name:        "Anna",
		Address:     "Lenina 1",
		Phone:       "+79990000000",
	}
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.BookingRequest)
		wantMsg string
	}{
		{name: "no date", mutate: func(r *models.BookingRequest) { r.Date = "" }, wantMsg: "Please select date and time slot"},
		{name: "no slot", mutate: func(r *models.BookingRequest) { r.TimeSlot = "" }, wantMsg: "Please select date and time slot"},
		{name: "no address", mutate: func(r *models.BookingRequest) { r.Address = "" }, wantMsg: "field Address is a required field"},
		{name: "unknown slot", mutate: func(r *models.BookingRequest) { r.TimeSlot = "17:00-19:00" }, wantMsg: `unknown time slot "17:00-19:00"`},
		{name: "unknown service", mutate: func(r *models.BookingRequest) { r.ServiceType = "Painting" }, wantMsg: `unknown service type "Painting"`},
		{name: "bad date", mutate: func(r *models.BookingRequest) { r.Date = "12.03.2026" }, wantMsg: "date must be in format YYYY-MM-DD"},
		{name: "past date", mutate: func(r *models.BookingRequest) { r.Date = "2026-03-09" }, wantMsg: "service date must not be in the past"},
		{name: "too many photos", mutate: func(r *models.BookingRequest) { r.Photos = make([]models.Upload, 6) }, wantMsg: "Maximum 5 files allowed"},
		{name: "too many videos", mutate: func(r *models.BookingRequest) { r.Videos = make([]models.Upload, 6) }, wantMsg: "Maximum 5 files allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockAPI)
			svc := newService(api)
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Submit(context.Background(), staticToken("tok"), req)
			require.ErrorIs(t, err, gateway.ErrValidation)
			assert.Equal(t, tt.wantMsg, gateway.Message(err))
			api.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_TodayIsAllowed(t *testing.T) {
	api := new(MockAPI)
	req := validRequest()
	req.Date = "2026-03-10"
	req.Photos = make([]models.Upload, 5)
	api.On("CreateBooking", mock.Anything, req).Return(models.Booking{ID: "bk1"}, nil)

	b, err := newService(api).Submit(context.Background(), staticToken("tok"), req)
	require.NoError(t, err)
	assert.Equal(t, "bk1", b.ID)
	api.AssertExpectations(t)
}

func TestSubmit_RemoteError(t *testing.T) {
	api := new(MockAPI)
	api.On("CreateBooking", mock.Anything, mock.Anything).
		Return(models.Booking{}, &gateway.ValidationError{Status: 400, Message: "Technician unavailable"})

	_, err := newService(api).Submit(context.Background(), staticToken("tok"), validRequest())
	require.ErrorIs(t, err, gateway.ErrValidation)
	assert.Equal(t, "Technician unavailable", gateway.Message(err))
}

func TestOptions(t *testing.T) {
	o := New(nil, newNoopLogger()).Options()
	assert.Len(t, o.TimeSlots, 4)
	assert.Contains(t, o.ServiceTypes, "Gas Top-up")
	assert.Equal(t, MaxFiles, o.MaxPhotos)
	assert.Equal(t, MaxFiles, o.MaxVideos)
}
