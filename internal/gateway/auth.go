package gateway

import (
	"context"
	"net/http"

	"github.com/magabrotheeeer/aircon-console/internal/models"
)

// Login обменивает email и пароль на токен: POST /api/auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	var out models.LoginResult
	err := c.do(ctx, request{
		method:   http.MethodPost,
		resource: ResourceAuth,
		path:     ResourceAuth + "/login",
		body:     models.Credentials{Email: email, Password: password},
		out:      &out,
	})
	return out, err
}

// SignupUser регистрирует клиента: POST /api/auth/user/signup.
func (c *Client) SignupUser(ctx context.Context, in models.Signup) error {
	var ack struct {
		Message string `json:"message"`
	}
	return c.do(ctx, request{
		method:   http.MethodPost,
		resource: ResourceAuth,
		path:     ResourceAuth + "/user/signup",
		body:     in,
		out:      &ack,
		optional: true,
	})
}

// SignupTechnician создаёт учётную запись техника: POST /api/auth/technician/signup.
// Вызов требует админского токена.
func (c *Client) SignupTechnician(ctx context.Context, in models.TechnicianSignup) error {
	var ack struct {
		Message string `json:"message"`
	}
	return c.do(ctx, request{
		method:   http.MethodPost,
		resource: ResourceAuth,
		path:     ResourceAuth + "/technician/signup",
		body:     in,
		out:      &ack,
		optional: true,
	})
}
