package models

// Technician: учётная запись техника.
type Technician struct {
	ID             string   `json:"_id" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	Email          string   `json:"email"`
	Role           string   `json:"role,omitempty"`
	Skills         []string `json:"skills"`
	AvailableSlots []string `json:"availableSlots"`
}

// TechnicianSignup: тело POST /api/auth/technician/signup.
type TechnicianSignup struct {
	Name           string   `json:"name" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=6"`
	Skills         []string `json:"skills"`
	AvailableSlots []string `json:"availableSlots"`
}

// TechnicianPatch: частичное обновление техника. Пароль отправляется,
// только если задан.
type TechnicianPatch struct {
	Name           *string  `json:"name,omitempty"`
	Email          *string  `json:"email,omitempty" validate:"omitempty,email"`
	Password       *string  `json:"password,omitempty" validate:"omitempty,min=6"`
	Skills         []string `json:"skills,omitempty"`
	AvailableSlots []string `json:"availableSlots,omitempty"`
}
