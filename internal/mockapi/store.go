// Package mockapi реализует небольшую замену удалённого API витрины для локального
// запуска консоли. Данные живут в памяти процесса, бизнес-правила сведены
// к минимуму.
package mockapi

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/aircon-console/internal/lib/password"
	"github.com/magabrotheeeer/aircon-console/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

// Account: учётная запись пользователя заглушки. Пароль хранится bcrypt-хешем.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// Store хранит данные заглушки.
type Store struct {
	mu          sync.RWMutex
	accounts    []Account
	products    []models.Product
	technicians []models.Technician
	bookings    []models.Booking
	feedbacks   []models.Feedback
	hasher      password.Hasher
}

// NewStore создаёт хранилище с демонстрационными данными.
func NewStore() *Store {
	s := &Store{hasher: password.New(bcrypt.MinCost)}
	s.seed()
	return s
}

func newID() string {
	return uuid.NewString()
}

// Authenticate ищет учётную запись по email и паролю.
func (s *Store) Authenticate(email, plain string) (Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.Email != email {
			continue
		}
		if err := s.hasher.Compare(a.PasswordHash, plain); err != nil {
			return Account{}, false
		}
		return a, true
	}
	return Account{}, false
}

// AddAccount регистрирует учётную запись с паролем plain. Email уникален.
func (s *Store) AddAccount(a Account, plain string) (Account, error) {
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return Account{}, fmt.Errorf("mockapi.AddAccount: %w", err)
	}
	a.PasswordHash = hash

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Email == a.Email {
			return Account{}, fmt.Errorf("mockapi.AddAccount: %s: %w", a.Email, ErrExists)
		}
	}
	if a.ID == "" {
		a.ID = newID()
	}
	s.accounts = append(s.accounts, a)
	return a, nil
}

func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *Store) Product(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.products, func(p models.Product) bool { return p.ID == id })
	if i < 0 {
		return models.Product{}, ErrNotFound
	}
	return s.products[i], nil
}

func (s *Store) SaveProduct(p models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = newID()
		s.products = append(s.products, p)
		return p
	}
	if i := slices.IndexFunc(s.products, func(x models.Product) bool { return x.ID == p.ID }); i >= 0 {
		s.products[i] = p
	} else {
		s.products = append(s.products, p)
	}
	return p
}

func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.products)
	s.products = slices.DeleteFunc(s.products, func(p models.Product) bool { return p.ID == id })
	if len(s.products) == n {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Technicians() []models.Technician {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.technicians)
}

// AddTechnician создаёт учётную запись техника и его карточку.
func (s *Store) AddTechnician(in models.TechnicianSignup) (models.Technician, error) {
	acc, err := s.AddAccount(Account{Name: in.Name, Email: in.Email, Role: "TECHNICIAN"}, in.Password)
	if err != nil {
		return models.Technician{}, err
	}
	t := models.Technician{
		ID:             acc.ID,
		Name:           in.Name,
		Email:          in.Email,
		Role:           acc.Role,
		Skills:         in.Skills,
		AvailableSlots: in.AvailableSlots,
	}
	s.mu.Lock()
	s.technicians = append(s.technicians, t)
	s.mu.Unlock()
	return t, nil
}

func (s *Store) UpdateTechnician(id string, patch models.TechnicianPatch) (models.Technician, error) {
	var hash string
	if patch.Password != nil {
		h, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return models.Technician{}, fmt.Errorf("mockapi.UpdateTechnician: %w", err)
		}
		hash = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.technicians, func(t models.Technician) bool { return t.ID == id })
	if i < 0 {
		return models.Technician{}, ErrNotFound
	}
	t := &s.technicians[i]
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Email != nil {
		t.Email = *patch.Email
	}
	if patch.Skills != nil {
		t.Skills = patch.Skills
	}
	if patch.AvailableSlots != nil {
		t.AvailableSlots = patch.AvailableSlots
	}
	if hash != "" {
		for j := range s.accounts {
			if s.accounts[j].ID == id {
				s.accounts[j].PasswordHash = hash
			}
		}
	}
	return *t, nil
}

func (s *Store) DeleteTechnician(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.technicians)
	s.technicians = slices.DeleteFunc(s.technicians, func(t models.Technician) bool { return t.ID == id })
	if len(s.technicians) == n {
		return ErrNotFound
	}
	s.accounts = slices.DeleteFunc(s.accounts, func(a Account) bool { return a.ID == id })
	return nil
}

// Bookings возвращает страницу заявок, новые первыми.
func (s *Store) Bookings(page, limit int) models.BookingPage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, pages := pageOf(s.bookings, page, limit)
	return models.BookingPage{Bookings: items, TotalPages: pages, Total: len(s.bookings)}
}

func (s *Store) Booking(id string) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.bookings, func(b models.Booking) bool { return b.ID == id })
	if i < 0 {
		return models.Booking{}, ErrNotFound
	}
	return s.bookings[i], nil
}

// AddBooking сохраняет клиентскую заявку со статусом pending.
func (s *Store) AddBooking(user Account, in models.BookingRequest) models.Booking {
	b := models.Booking{
		ID:            newID(),
		User:          &models.PersonRef{ID: user.ID, Name: in.Name, Email: user.Email, Phone: in.Phone},
		Date:          in.Date,
		TimeSlot:      in.TimeSlot,
		ServiceType:   in.ServiceType,
		PaymentStatus: "pending",
		Status:        "pending",
		BrandName:     in.Brand,
		ProductModel:  in.Model,
		Description:   in.Description,
	}
	s.mu.Lock()
	s.bookings = append([]models.Booking{b}, s.bookings...)
	s.mu.Unlock()
	return b
}

// Feedbacks возвращает страницу отзывов.
func (s *Store) Feedbacks(page, limit int) models.FeedbackPage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, pages := pageOf(s.feedbacks, page, limit)
	return models.FeedbackPage{Feedbacks: items, TotalPages: pages, TotalCount: len(s.feedbacks)}
}

// Totals считает сводку для дашборда. Выручка, сумма оплаченных заявок.
func (s *Store) Totals() models.DashboardTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := models.DashboardTotals{
		TotalBookings:    len(s.bookings),
		TotalTechnicians: len(s.technicians),
	}
	for _, b := range s.bookings {
		if b.PaymentStatus == "paid" {
			out.TotalRevenue += b.ServiceFee
		}
	}
	for _, a := range s.accounts {
		if a.Role == "USER" {
			out.TotalUsers++
		}
	}
	return out
}

// Recent возвращает не больше n последних заявок.
func (s *Store) Recent(n int) []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bookings[:min(n, len(s.bookings))])
}

// PopularServices группирует заявки по виду работ.
func (s *Store) PopularServices() []models.PopularService {
	s.mu.RLock()
	counts := map[string]int{}
	for _, b := range s.bookings {
		counts[b.ServiceType]++
	}
	s.mu.RUnlock()

	out := make([]models.PopularService, 0, len(counts))
	for k, v := range counts {
		out = append(out, models.PopularService{ServiceType: k, TotalRequests: v})
	}
	slices.SortFunc(out, func(a, b models.PopularService) int {
		if a.TotalRequests != b.TotalRequests {
			return b.TotalRequests - a.TotalRequests
		}
		return cmp.Compare(a.ServiceType, b.ServiceType)
	})
	return out
}

// TechnicianStats считает завершённые работы и средний рейтинг техников.
func (s *Store) TechnicianStats() []models.TechnicianStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TechnicianStats, 0, len(s.technicians))
	for _, t := range s.technicians {
		st := models.TechnicianStats{Name: t.Name}
		for _, b := range s.bookings {
			if b.AssignedTechnician != nil && b.AssignedTechnician.ID == t.ID && b.Status == "completed" {
				st.CompletedServices++
			}
		}
		var sum, n int
		for _, f := range s.feedbacks {
			if f.AssignedTechnicianID != nil && f.AssignedTechnicianID.ID == t.ID {
				sum += f.Rating
				n++
			}
		}
		if n > 0 {
			st.Rating = float64(sum) / float64(n)
		}
		st.Points = st.CompletedServices * 10
		out = append(out, st)
	}
	return out
}

// UserBookingCounts возвращает клиентов с числом их заявок.
func (s *Store) UserBookingCounts() []models.UserBookingCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.UserBookingCount
	for _, a := range s.accounts {
		if a.Role != "USER" {
			continue
		}
		row := models.UserBookingCount{ID: a.ID, Name: a.Name, Email: a.Email}
		for _, b := range s.bookings {
			if b.User != nil && b.User.ID == a.ID {
				row.Bookings++
			}
		}
		out = append(out, row)
	}
	return out
}

func pageOf[T any](all []T, page, limit int) ([]T, int) {
	if limit <= 0 {
		limit = 10
	}
	pages := max(1, (len(all)+limit-1)/limit)
	page = min(max(page, 1), pages)
	start := min((page-1)*limit, len(all))
	end := min(start+limit, len(all))
	return slices.Clone(all[start:end]), pages
}
