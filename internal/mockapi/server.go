package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/aircon-console/internal/lib/jwt"
	"github.com/magabrotheeeer/aircon-console/internal/lib/sl"
	"github.com/magabrotheeeer/aircon-console/internal/models"
)

const maxForm = 32 << 20

type ctxKey struct{}

// Server обслуживает маршруты удалённого API.
type Server struct {
	store    *Store
	maker    jwt.Maker
	validate *validator.Validate
	log      *slog.Logger
}

func New(store *Store, maker jwt.Maker, log *slog.Logger) *Server {
	return &Server{store: store, maker: maker, validate: validator.New(), log: log}
}

// Router собирает маршруты с путями удалённого API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Post("/api/auth/login", s.login)
	r.Post("/api/auth/user/signup", s.signupUser)
	r.Get("/api/product", s.listProducts)
	r.Get("/api/product/{id}", s.readProduct)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Post("/api/booking", s.createBooking)

		r.Group(func(r chi.Router) {
			r.Use(s.adminOnly)
			r.Post("/api/auth/technician/signup", s.signupTechnician)

			r.Post("/api/product/create", s.createProduct)
			r.Patch("/api/product/{id}", s.updateProduct)
			r.Delete("/api/product/{id}", s.deleteProduct)

			r.Get("/api/booking", s.listBookings)
			r.Get("/api/booking/technician-stats", s.technicianStats)
			r.Get("/api/booking/admin/dashboard", s.dashboard)
			r.Get("/api/booking/admin/recent-bookings", s.recentBookings)
			r.Get("/api/booking/admin/popular-services", s.popularServices)
			r.Get("/api/booking/admin/user-booking-count", s.userBookingCount)
			r.Get("/api/booking/admin/{id}", s.readBooking)

			r.Get("/api/admin/technicians", s.listTechnicians)
			r.Patch("/api/admin/technicians/{id}", s.updateTechnician)
			r.Delete("/api/admin/technicians/{id}", s.deleteTechnician)

			r.Get("/api/feedback", s.listFeedback)
		})
	})
	return r
}

func message(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"message": msg})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			message(w, r, http.StatusUnauthorized, "No token provided")
			return
		}
		claims, err := s.maker.ParseToken(raw)
		if err != nil {
			s.log.Debug("token rejected", sl.Err(err))
			message(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
	})
}

func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := r.Context().Value(ctxKey{}).(*jwt.CustomClaims)
		if claims == nil || claims.Role != jwt.RoleAdmin {
			message(w, r, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		message(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	acc, ok := s.store.Authenticate(in.Email, in.Password)
	if !ok {
		message(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	token, err := s.maker.GenerateToken(acc.ID, acc.Email, acc.Name, acc.Role)
	if err != nil {
		s.log.Error("failed to issue token", sl.Err(err))
		message(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	render.JSON(w, r, models.LoginResult{Token: token})
}

func (s *Server) signupUser(w http.ResponseWriter, r *http.Request) {
	var in models.Signup
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		message(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(in); err != nil {
		message(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := s.store.AddAccount(Account{Name: in.Name, Email: in.Email, Role: "USER"}, in.Password); err != nil {
		s.fail(w, r, err)
		return
	}
	message(w, r, http.StatusCreated, "User registered")
}

func (s *Server) signupTechnician(w http.ResponseWriter, r *http.Request) {
	var in models.TechnicianSignup
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		message(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(in); err != nil {
		message(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := s.store.AddTechnician(in); err != nil {
		s.fail(w, r, err)
		return
	}
	message(w, r, http.StatusCreated, "Technician registered")
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.store.Products())
}

func (s *Server) readProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Product(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, p)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxForm); err != nil {
		message(w, r, http.StatusBadRequest, "Invalid form")
		return
	}
	f := r.FormValue
	p := models.Product{
		Name:         f("name"),
		Brand:        f("brand"),
		ProductModel: f("productModel"),
		Description:  f("description"),
		Tagline:      f("tagline"),
		ReleaseDate:  f("release_date"),
		Images:       uploaded(r, "images"),
	}
	var err error
	if p.Price, err = strconv.ParseFloat(f("price"), 64); err != nil {
		message(w, r, http.StatusBadRequest, "Price must be a number")
		return
	}
	if p.Stock, err = strconv.Atoi(f("stock")); err != nil {
		message(w, r, http.StatusBadRequest, "Stock must be a number")
		return
	}
	if raw := f("specs"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.Specs); err != nil {
			message(w, r, http.StatusBadRequest, "Invalid specs")
			return
		}
	}
	if p.Name == "" {
		message(w, r, http.StatusBadRequest, "Name is required")
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, s.store.SaveProduct(p))
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Product(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := r.ParseMultipartForm(maxForm); err != nil {
		message(w, r, http.StatusBadRequest, "Invalid form")
		return
	}
	set := func(field string, dst *string) {
		if vs, ok := r.MultipartForm.Value[field]; ok && len(vs) > 0 {
			*dst = vs[0]
		}
	}
	set("name", &p.Name)
	set("brand", &p.Brand)
	set("description", &p.Description)
	set("tagline", &p.Tagline)
	set("specs[capacity]", &p.Specs.Capacity)
	set("specs[type]", &p.Specs.Type)
	set("specs[energy_rating]", &p.Specs.EnergyRating)
	set("specs[cooling_power]", &p.Specs.CoolingPower)
	set("specs[refrigerant]", &p.Specs.Refrigerant)
	set("specs[warranty]", &p.Specs.Warranty)
	if v := r.FormValue("price"); v != "" {
		if p.Price, err = strconv.ParseFloat(v, 64); err != nil {
			message(w, r, http.StatusBadRequest, "Price must be a number")
			return
		}
	}
	if v := r.FormValue("stock"); v != "" {
		if p.Stock, err = strconv.Atoi(v); err != nil {
			message(w, r, http.StatusBadRequest, "Stock must be a number")
			return
		}
	}
	if images := uploaded(r, "images"); len(images) > 0 {
		p.Images = images
	}
	render.JSON(w, r, s.store.SaveProduct(p))
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProduct(chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	message(w, r, http.StatusOK, "Product deleted")
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxForm); err != nil {
		message(w, r, http.StatusBadRequest, "Invalid form")
		return
	}
	f := r.FormValue
	in := models.BookingRequest{
		Brand:       f("brand"),
		Model:       f("model"),
		ServiceType: f("serviceType"),
		Title:       f("title"),
		Description: f("description"),
		Date:        f("date"),
		TimeSlot:    f("timeSlot"),
		Name:        f("name"),
		Address:     f("address"),
		Phone:       f("phone"),
	}
	if err := s.validate.Struct(in); err != nil {
		message(w, r, http.StatusBadRequest, "Missing required booking fields")
		return
	}
	claims, _ := r.Context().Value(ctxKey{}).(*jwt.CustomClaims)
	user := Account{ID: claims.SubjectID(), Email: claims.Email, Name: claims.Name}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, s.store.AddBooking(user, in))
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	page, limit := paging(r)
	render.JSON(w, r, s.store.Bookings(page, limit))
}

func (s *Server) readBooking(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Booking(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, b)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.store.Totals())
}

func (s *Server) recentBookings(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.store.Recent(5))
}

func (s *Server) popularServices(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.store.PopularServices())
}

func (s *Server) technicianStats(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.store.TechnicianStats())
}

func (s *Server) userBookingCount(w http.ResponseWriter, r *http.Request) {
	rows := s.store.UserBookingCounts()
	if rows == nil {
		rows = []models.UserBookingCount{}
	}
	render.JSON(w, r, rows)
}

func (s *Server) listTechnicians(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.store.Technicians())
}

func (s *Server) updateTechnician(w http.ResponseWriter, r *http.Request) {
	var patch models.TechnicianPatch
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		message(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	t, err := s.store.UpdateTechnician(chi.URLParam(r, "id"), patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, t)
}

func (s *Server) deleteTechnician(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTechnician(chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	message(w, r, http.StatusOK, "Technician deleted")
}

func (s *Server) listFeedback(w http.ResponseWriter, r *http.Request) {
	page, limit := paging(r)
	render.JSON(w, r, s.store.Feedbacks(page, limit))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		message(w, r, http.StatusNotFound, "Not found")
	case errors.Is(err, ErrExists):
		message(w, r, http.StatusBadRequest, "User already exists")
	default:
		s.log.Error("mockapi request failed", sl.Err(err))
		message(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

func paging(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// uploaded возвращает пути, под которыми заглушка «сохранила» файлы поля.
func uploaded(r *http.Request, field string) []string {
	if r.MultipartForm == nil {
		return nil
	}
	var out []string
	for _, fh := range r.MultipartForm.File[field] {
		out = append(out, "/uploads/"+fh.Filename)
	}
	return out
}
