package models

// DashboardTotals: ответ GET /api/booking/admin/dashboard.
type DashboardTotals struct {
	TotalBookings    int     `json:"totalBookings" validate:"min=0"`
	TotalRevenue     float64 `json:"totalRevenue" validate:"min=0"`
	TotalTechnicians int     `json:"totalTechnicians" validate:"min=0"`
	TotalUsers       int     `json:"totalUsers" validate:"min=0"`
}

// PopularService: строка GET /api/booking/admin/popular-services.
type PopularService struct {
	ServiceType   string `json:"serviceType" validate:"required"`
	TotalRequests int    `json:"totalRequests" validate:"min=0"`
	Label         string `json:"label,omitempty"`
}

// TechnicianStats: строка GET /api/booking/technician-stats.
type TechnicianStats struct {
	Name              string  `json:"name" validate:"required"`
	CompletedServices int     `json:"completedServices" validate:"min=0"`
	Rating            float64 `json:"rating"`
	Points            int     `json:"points"`
}

// RecentBooking: строка «последние заявки» на дашборде в виде,
// удобном для отображения.
type RecentBooking struct {
	ID            string  `json:"id"`
	ServiceType   string  `json:"serviceType"`
	Price         float64 `json:"price"`
	PaymentStatus string  `json:"paymentStatus"`
	CustomerName  string  `json:"customerName"`
	Technician    string  `json:"technician,omitempty"`
	Date          string  `json:"date"`
}

// Dashboard: собранная админская сводка.
type Dashboard struct {
	Totals          DashboardTotals   `json:"totals"`
	RecentBookings  []RecentBooking   `json:"recentBookings"`
	TopServices     []PopularService  `json:"topServices"`
	TechPerformance []TechnicianStats `json:"technicianPerformance"`
}
