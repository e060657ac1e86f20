package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/aircon-console/internal/models"
)

func TestClient_BookingsUnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/booking", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"bookings":[{"_id":"b1","serviceFee":800},{"_id":"b2"}],"totalPages":4,"total":17}`))
	})

	page, err := c.Bookings(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, page.PageCount)
	assert.Equal(t, 17, page.TotalCount)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "b1", page.Items[0].ID)
	assert.InDelta(t, 800, page.Items[0].ServiceFee, 0.001)
}

func TestClient_FeedbacksRejectsBadRating(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"feedbacks":[{"_id":"f1","rating":9}],"totalPages":1,"totalCount":1}`))
	})

	_, err := c.Feedbacks(context.Background(), 1, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServer)
}

func TestClient_FeedbacksEmptyPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"feedbacks":null,"totalPages":0,"totalCount":0}`))
	})

	page, err := c.Feedbacks(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestClient_CreateProductSendsMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/product/create", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Daikin FTKM", r.FormValue("name"))
		assert.Equal(t, "45000", r.FormValue("price"))

		var specs models.Specs
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("specs")), &specs))
		assert.Equal(t, "2.5 kW", specs.CoolingPower)

		files := r.MultipartForm.File["images"]
		require.Len(t, files, 2)
		f, err := files[1].Open()
		require.NoError(t, err)
		defer f.Close()
		content, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "back.jpg", files[1].Filename)
		assert.Equal(t, []byte("jpeg-2"), content)

		_, _ = w.Write([]byte(`{"_id":"p9","name":"Daikin FTKM","price":45000,"stock":3}`))
	})

	created, err := c.CreateProduct(context.Background(), models.ProductInput{
		Name:         "Daikin FTKM",
		Brand:        "Daikin",
		ProductModel: "FTKM25",
		Description:  "inverter split",
		Price:        "45000",
		Stock:        "3",
		Specs:        models.Specs{CoolingPower: "2.5 kW"},
		Images: []models.Upload{
			{FileName: "front.jpg", Content: []byte("jpeg-1")},
			{FileName: "back.jpg", Content: []byte("jpeg-2")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "p9", created.ID)
}

func TestClient_UpdateProductSendsOnlySetFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/product/p1", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, []string{"52000"}, r.MultipartForm.Value["price"])
		assert.Equal(t, []string{"R32"}, r.MultipartForm.Value["specs[refrigerant]"])
		assert.NotContains(t, r.MultipartForm.Value, "name")
		assert.NotContains(t, r.MultipartForm.Value, "specs[capacity]")

		_, _ = w.Write([]byte(`{"_id":"p1","name":"Old name","price":52000}`))
	})

	price := "52000"
	_, err := c.UpdateProduct(context.Background(), "p1", models.ProductPatch{
		Price: &price,
		Specs: &models.Specs{Refrigerant: "R32"},
	})
	require.NoError(t, err)
}

func TestClient_UpdateTechnicianOmitsPassword(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ivan", body["name"])
		assert.NotContains(t, body, "password")
		_, _ = w.Write([]byte(`{"_id":"t1","name":"Ivan"}`))
	})

	name := "Ivan"
	tech, err := c.UpdateTechnician(context.Background(), "t1", models.TechnicianPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ivan", tech.Name)
}

func TestClient_LoginAndSignup(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var creds models.Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			if creds.Password != "secret" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"token": "abc"})
		case "/api/auth/user/signup":
			w.WriteHeader(http.StatusCreated)
		default:
			http.NotFound(w, r)
		}
	})

	res, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Token)

	_, err = c.Login(context.Background(), "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrAuth)

	require.NoError(t, c.SignupUser(context.Background(), models.Signup{Name: "A", Email: "a@b.c", Password: "secret1"}))
}
