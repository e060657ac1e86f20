// Package products отвечает за управление товарами в админской панели.
//
// Создание и изменение принимают multipart/form-data: поля товара,
// характеристики в поле specs (JSON) и до пяти изображений в поле images.
package products

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

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

// Service: сценарии управления товарами.
type Service interface {
	Products(ctx context.Context, ts gateway.TokenSource, browserID string, in views.Intent) (views.Listing[models.Product], error)
	CreateProduct(ctx context.Context, ts gateway.TokenSource, in models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, ts gateway.TokenSource, id string, patch models.ProductPatch) (models.Product, error)
	DeleteProduct(ctx context.Context, ts gateway.TokenSource, id string) error
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
// @Summary Товары
// @Tags Admin
// @Produce  json
// @Param search query string false "Поиск по названию, бренду, модели"
// @Param sort query string false "name | brand | price | stock"
// @Param dir query string false "asc | desc"
// @Param page query int false "Номер страницы"
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response
// @Security BearerAuth
// @Router /admin/products [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.products.List")

	store, browserID, err := request.Session(r)
	if err != nil {
		log.Error("no session", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	listing, err := h.service.Products(r.Context(), store, browserID, request.Intent(r))
	if err != nil {
		log.Warn("failed to list products", sl.Err(err))
	}
	response.List(w, r, listing, err)
}

// Create godoc
// @Summary Новый товар
// @Tags Admin
// @Accept  multipart/form-data
// @Produce  json
// @Param name formData string true "Название"
// @Param brand formData string true "Бренд"
// @Param productModel formData string true "Модель"
// @Param description formData string true "Описание"
// @Param price formData string true "Цена"
// @Param stock formData string true "Остаток"
// @Param specs formData string false "Характеристики, JSON"
// @Param images formData file false "Изображения, до 5"
// @Success 201 {object} response.Response{data=models.Product}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /admin/products [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.products.Create")

	store, _, err := request.Session(r)
	if err != nil {
		log.Error("no session", sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	if err := r.ParseMultipartForm(request.MaxUploadSize); err != nil {
		log.Info("failed to parse form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form"))
		return
	}

	in := models.ProductInput{
		Name:         r.FormValue("name"),
		Brand:        r.FormValue("brand"),
		ProductModel: r.FormValue("productModel"),
		Description:  r.FormValue("description"),
		Tagline:      r.FormValue("tagline"),
		Price:        r.FormValue("price"),
		Stock:        r.FormValue("stock"),
		ReleaseDate:  r.FormValue("release_date"),
	}
	in.VoteCount, _ = strconv.Atoi(r.FormValue("vote_count"))
	in.VoteAverage, _ = strconv.ParseFloat(r.FormValue("vote_average"), 64)
	if raw := r.FormValue("specs"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Specs); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("specs must be a JSON object"))
			return
		}
	}
	if in.Images, err = request.Files(r, "images", admin.MaxProductImages); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	p, err := h.service.CreateProduct(r.Context(), store, in)
	if err != nil {
		log.Info("product not created", sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(p))
}

// Update godoc
// @Summary Изменить товар
// @Description Меняются только переданные поля.
// @Tags Admin
// @Accept  multipart/form-data
// @Produce  json
// @Param id path string true "ID товара"
// @Success 200 {object} response.Response{data=models.Product}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /admin/products/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.products.Update")

	store, _, err := request.Session(r)
	if err != nil {
		log.Error("no session", sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	if err := r.ParseMultipartForm(request.MaxUploadSize); err != nil {
		log.Info("failed to parse form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form"))
		return
	}

	patch := models.ProductPatch{
		Name:        request.Optional(r, "name"),
		Brand:       request.Optional(r, "brand"),
		Description: request.Optional(r, "description"),
		Tagline:     request.Optional(r, "tagline"),
		Price:       request.Optional(r, "price"),
		Stock:       request.Optional(r, "stock"),
	}
	if raw := request.Optional(r, "specs"); raw != nil {
		var specs models.Specs
		if err := json.Unmarshal([]byte(*raw), &specs); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("specs must be a JSON object"))
			return
		}
		patch.Specs = &specs
	}
	if patch.Images, err = request.Files(r, "images", admin.MaxProductImages); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	id := chi.URLParam(r, "id")
	p, err := h.service.UpdateProduct(r.Context(), store, id, patch)
	if err != nil {
		log.Info("product not updated", slog.String("product_id", id), sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(p))
}

// Delete godoc
// @Summary Удалить товар
// @Tags Admin
// @Produce  json
// @Param id path string true "ID товара"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /admin/products/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.products.Delete")

	store, _, err := request.Session(r)
	if err != nil {
		log.Error("no session", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteProduct(r.Context(), store, id); err != nil {
		log.Info("product not deleted", slog.String("product_id", id), sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]string{"deleted": id}))
}
