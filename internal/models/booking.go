package models

// PersonRef: вложенная ссылка на пользователя или техника в ответах API.
type PersonRef struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Booking: заявка на обслуживание кондиционера.
type Booking struct {
	ID                 string     `json:"_id" validate:"required"`
	User               *PersonRef `json:"user,omitempty"`
	AssignedTechnician *PersonRef `json:"assignedTechnician,omitempty"`
	Date               string     `json:"date,omitempty"`
	TimeSlot           string     `json:"timeSlot,omitempty"`
	ServiceType        string     `json:"serviceType,omitempty"`
	ServiceTypes       []string   `json:"serviceTypes,omitempty"`
	ServiceFee         float64    `json:"serviceFee"`
	PaymentStatus      string     `json:"paymentStatus,omitempty"`
	Status             string     `json:"status,omitempty"`
	ServiceEndDate     string     `json:"serviceEndDate,omitempty"`
	BrandName          string     `json:"brandName,omitempty"`
	ProductModel       string     `json:"productModel,omitempty"`
	Description        string     `json:"description,omitempty"`
}

// BookingPage: конверт постраничного ответа GET /api/booking.
type BookingPage struct {
	Bookings   []Booking `json:"bookings" validate:"dive"`
	TotalPages int       `json:"totalPages" validate:"min=0"`
	Total      int       `json:"total" validate:"min=0"`
}

// BookingRequest: форма клиентской записи на обслуживание.
type BookingRequest struct {
	Brand       string   `json:"brand" validate:"required"`
	Model       string   `json:"model"`
	ServiceType string   `json:"serviceType" validate:"required"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date" validate:"required"`
	TimeSlot    string   `json:"timeSlot" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Address     string   `json:"address" validate:"required"`
	Phone       string   `json:"phone" validate:"required"`
	Photos      []Upload `json:"-"`
	Videos      []Upload `json:"-"`
}
