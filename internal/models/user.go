package models

// UserBookingCount описывает строку экрана управления пользователями,
// то есть пользователя и число его заявок.
type UserBookingCount struct {
	ID       string `json:"_id" validate:"required"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Bookings int    `json:"bookings" validate:"min=0"`
}

// Signup: тело регистрации клиента POST /api/auth/user/signup.
type Signup struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Credentials: тело POST /api/auth/login.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult: ответ входа. Token пуст, если сервер отказал, тогда
// Message содержит причину.
type LoginResult struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}
