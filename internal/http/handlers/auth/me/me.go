// Package me отдаёт состояние сессии браузера.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/aircon-console/internal/http/request"
	"github.com/magabrotheeeer/aircon-console/internal/http/response"
	"github.com/magabrotheeeer/aircon-console/internal/lib/sl"
	"github.com/magabrotheeeer/aircon-console/internal/session"
)

// State: ответ эндпоинта.
type State struct {
	State    string            `json:"state"`
	Identity *session.Identity `json:"identity,omitempty"`
	IsAdmin  bool              `json:"isAdmin"`
	Landing  string            `json:"landing"`
}

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Текущая сессия
// @Description Возвращает состояние сессии, личность пользователя и его стартовую страницу.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response{data=State}
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	store, _, err := request.Session(r)
	if err != nil {
		h.log.Error("no session", slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	out := State{State: store.State().String(), Landing: session.LandingCustomer}
	if identity, ok := store.Identity(); ok {
		out.Identity = &identity
		out.IsAdmin = identity.IsAdmin()
		out.Landing = session.Landing(identity)
	}
	render.JSON(w, r, response.StatusOKWithData(out))
}
