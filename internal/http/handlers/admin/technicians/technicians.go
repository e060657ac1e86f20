// Package technicians отвечает за управление техниками в админской панели.
package technicians

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/http/request"
	"github.com/magabrotheeeer/aircon-console/internal/http/response"
	"github.com/magabrotheeeer/aircon-console/internal/lib/sl"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/services/admin"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

// Service: сценарии управления техниками.
type Service interface {
	Technicians(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent) (views.Listing[models.Technician], error)
	CreateTechnician(ctx context.Context, ts gateway.TokenSource, in models.TechnicianSignup) error
	UpdateTechnician(ctx context.Context, ts gateway.TokenSource, id string, patch models.TechnicianPatch) (models.Technician, error)
	DeleteTechnician(ctx context.Context, ts gateway.TokenSource, id string) error
}

// Options: справочники формы техника.
type Options struct {
	Categories []admin.ServiceCategory `json:"categories"`
	Slots      []string                `json:"slots"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List godoc
// @Summary Техники
// @Tags Admin
// @Produce  json
// @Param search query string false "Поиск по имени, email, навыкам"
// @Param sort query string false "name | email | skills"
// @Param dir query string false "asc | desc"
// @Param page query int false "Номер страницы"
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response
// @Security BearerAuth
// @Router /admin/technicians [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.technicians.List")

	store, browserID, err := request.Session(r)
	if err != nil {
		log.Error("no session", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	listing, err := h.service.Technicians(r.Context(), store, browserID, request.Intent(r))
	if err != nil {
		log.Warn("failed to list technicians", sl.Err(err))
	}
	response.List(w, r, listing, err)
}

// Options godoc
// @Summary Справочники формы техника
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response{data=Options}
// @Security BearerAuth
// @Router /admin/technicians/options [get]
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(Options{
		Categories: admin.ServiceCategories,
		Slots:      admin.TechnicianSlots,
	}))
}

// Create godoc
// @Summary Новый техник
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.TechnicianSignup true "Техник"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /admin/technicians [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.technicians.Create")

	store, _, err := request.Session(r)
	if err != nil {
		log.Error("no session", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	var in models.TechnicianSignup
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.service.CreateTechnician(r.Context(), store, in); err != nil {
		log.Info("technician not created", sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]string{"email": in.Email}))
}

// Update godoc
// @Summary Изменить техника
// @Description Меняются только переданные поля, пустой пароль не меняет пароль.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path string true "ID техника"
// @Param request body models.TechnicianPatch true "Изменения"
// @Success 200 {object} response.Response{data=models.Technician}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /admin/technicians/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.technicians.Update")

	store, _, err := request.Session(r)
	if err != nil {
		log.Error("no session", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	var patch models.TechnicianPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	id := chi.URLParam(r, "id")
	t, err := h.service.UpdateTechnician(r.Context(), store, id, patch)
	if err != nil {
		log.Info("technician not updated", slog.String("technician_id", id), sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(t))
}

// Delete godoc
// @Summary Удалить техника
// @Tags Admin
// @Produce  json
// @Param id path string true "ID техника"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /admin/technicians/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.technicians.Delete")

	store, _, err := request.Session(r)
	if err != nil {
		log.Error("no session", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteTechnician(r.Context(), store, id); err != nil {
		log.Info("technician not deleted", slog.String("technician_id", id), sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]string{"deleted": id}))
}
