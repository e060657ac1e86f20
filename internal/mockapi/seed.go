package mockapi

import "github.com/magabrotheeeer/aircon-console/internal/models"

// Учётные записи для локального входа.
const (
	AdminEmail    = "admin@aircon.test"
	AdminPassword = "admin123"
	UserEmail     = "user@aircon.test"
	UserPassword  = "user123"
)

func (s *Store) seed() {
	accounts := []struct {
		Account
		plain string
	}{
		{Account{ID: "u-admin", Name: "Admin", Email: AdminEmail, Role: "ADMIN"}, AdminPassword},
		{Account{ID: "u-1", Name: "Clara Diaz", Email: UserEmail, Role: "USER"}, UserPassword},
		{Account{ID: "u-2", Name: "Ben Cruz", Email: "ben@aircon.test", Role: "USER"}, "ben12345"},
		{Account{ID: "t-1", Name: "Ivan Petrov", Email: "ivan@aircon.test", Role: "TECHNICIAN"}, "tech123"},
		{Account{ID: "t-2", Name: "Maria Santos", Email: "maria@aircon.test", Role: "TECHNICIAN"}, "tech123"},
	}
	for _, a := range accounts {
		// Демонстрационные пароли короче 72 байт, bcrypt их принимает.
		_, _ = s.AddAccount(a.Account, a.plain)
	}

	s.products = []models.Product{
		{ID: "p-1", Name: "FTKC Inverter", Brand: "Daikin", ProductModel: "FTKC35", Price: 38990, Stock: 7,
			Tagline: "Quiet split inverter", Specs: models.Specs{Capacity: "1.5 HP", Type: "Split", EnergyRating: "5 star"}},
		{ID: "p-2", Name: "Window Cool", Brand: "Carrier", ProductModel: "WCARZ", Price: 21500, Stock: 3,
			Specs: models.Specs{Capacity: "1 HP", Type: "Window", Refrigerant: "R32"}},
		{ID: "p-3", Name: "FTXM Perfera", Brand: "Daikin", ProductModel: "FTXM25", Price: 52300, Stock: 0,
			Specs: models.Specs{Capacity: "1 HP", Type: "Split", Warranty: "5 years"}},
		{ID: "p-4", Name: "Dual Inverter", Brand: "LG", ProductModel: "LS-Q18", Price: 33400, Stock: 12,
			Specs: models.Specs{Capacity: "2 HP", Type: "Split", CoolingPower: "5.2 kW"}},
	}

	s.technicians = []models.Technician{
		{ID: "t-1", Name: "Ivan Petrov", Email: "ivan@aircon.test", Role: "TECHNICIAN",
			Skills: []string{"installation", "repair"}, AvailableSlots: []string{"09:00-11:00", "11:00-13:00"}},
		{ID: "t-2", Name: "Maria Santos", Email: "maria@aircon.test", Role: "TECHNICIAN",
			Skills: []string{"cleaning", "gas_topup"}, AvailableSlots: []string{"13:00-15:00", "15:00-17:00"}},
	}

	clara := &models.PersonRef{ID: "u-1", Name: "Clara Diaz", Email: UserEmail}
	ben := &models.PersonRef{ID: "u-2", Name: "Ben Cruz", Email: "ben@aircon.test"}
	ivan := &models.PersonRef{ID: "t-1", Name: "Ivan Petrov"}
	maria := &models.PersonRef{ID: "t-2", Name: "Maria Santos"}
	s.bookings = []models.Booking{
		{ID: "b-7", User: clara, AssignedTechnician: maria, Date: "2026-03-02", TimeSlot: "13:00-15:00",
			ServiceType: "gas_topup_and_leak_check", ServiceFee: 2500, PaymentStatus: "pending", Status: "confirmed", BrandName: "LG"},
		{ID: "b-6", User: ben, AssignedTechnician: ivan, Date: "2026-02-27", TimeSlot: "09:00-11:00",
			ServiceType: "installation", ServiceFee: 4500, PaymentStatus: "paid", Status: "completed", BrandName: "Daikin"},
		{ID: "b-5", User: clara, AssignedTechnician: ivan, Date: "2026-02-20", TimeSlot: "11:00-13:00",
			ServiceType: "repair", ServiceFee: 1800, PaymentStatus: "paid", Status: "completed", BrandName: "Carrier"},
		{ID: "b-4", User: ben, Date: "2026-02-11", TimeSlot: "15:00-17:00",
			ServiceType: "cleaning", ServiceFee: 1200, PaymentStatus: "failed", Status: "cancelled", BrandName: "LG"},
		{ID: "b-3", User: clara, AssignedTechnician: maria, Date: "2026-02-03", TimeSlot: "13:00-15:00",
			ServiceType: "cleaning", ServiceFee: 1200, PaymentStatus: "paid", Status: "completed", BrandName: "Daikin"},
		{ID: "b-2", User: ben, AssignedTechnician: maria, Date: "2026-01-28", TimeSlot: "09:00-11:00",
			ServiceType: "repair", ServiceFee: 2100, PaymentStatus: "paid", Status: "completed", BrandName: "Daikin"},
		{ID: "b-1", Date: "2026-01-15", TimeSlot: "11:00-13:00",
			ServiceType: "installation", ServiceFee: 4500, PaymentStatus: "paid", Status: "completed"},
	}

	s.feedbacks = []models.Feedback{
		{ID: "f-1", UserID: ben, AssignedTechnicianID: ivan, Rating: 5, ServiceSatisfaction: 5,
			TechnicianProfessionalism: 5, IssueResolved: true, TextReview: "Fast and tidy installation", CreatedAt: "2026-02-28"},
		{ID: "f-2", UserID: clara, AssignedTechnicianID: ivan, Rating: 4, ServiceSatisfaction: 4,
			TechnicianProfessionalism: 5, IssueResolved: true, TextReview: "Fixed the drip", CreatedAt: "2026-02-21"},
		{ID: "f-3", UserID: clara, AssignedTechnicianID: maria, Rating: 3, ServiceSatisfaction: 3,
			TechnicianProfessionalism: 4, IssueResolved: false, TextReview: "Still a bit noisy", CreatedAt: "2026-02-04"},
	}
}
