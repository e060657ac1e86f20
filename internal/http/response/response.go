// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов консоли: успешных ответов, ошибок и
// сообщений валидации в едином формате, а также отображение ошибок шлюза
// на HTTP-статусы.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/services/views"
)

// LoginPath: куда отправлять пользователя, когда сессия закончилась.
const LoginPath = "/login"

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status, статус запроса ("OK" или "Error").
// Поле Error, текст ошибки (при неуспехе).
// Поле Data, данные ответа (при успехе).
// Поле Redirect, куда перейти клиенту (после входа или при истёкшей сессии).
type Response struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Data     any    `json:"data,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// ErrorResponse: структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status   string `json:"status" example:"Error"`
	Error    string `json:"error" example:"invalid request body"`
	Redirect string `json:"redirect,omitempty" example:"/login"`
}

const (
	// StatusOK: значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError: значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s characters", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

// Code возвращает HTTP-статус для ошибки сервиса.
func Code(err error) int {
	switch {
	case errors.Is(err, views.ErrStale):
		return http.StatusConflict
	case errors.Is(err, gateway.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, gateway.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, gateway.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, gateway.ErrNetwork), errors.Is(err, gateway.ErrServer):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FromError строит тело ответа для ошибки сервиса. Истёкшая сессия
// получает redirect на страницу входа.
func FromError(err error) Response {
	resp := Error(gateway.Message(err))
	switch {
	case errors.Is(err, views.ErrStale):
		resp.Error = "request superseded by a newer one"
	case errors.Is(err, gateway.ErrAuth):
		resp.Redirect = LoginPath
	}
	return resp
}

// Fail пишет ошибку сервиса с подходящим статусом.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, Code(err))
	render.JSON(w, r, FromError(err))
}

// WithData пишет ответ с ошибкой и данными. Так отвечают списки, которые не
// загрузились: клиент получает пустой список и текст ошибки.
func WithData(w http.ResponseWriter, r *http.Request, err error, data any) {
	resp := FromError(err)
	resp.Data = data
	render.Status(r, Code(err))
	render.JSON(w, r, resp)
}

// List пишет ответ списочного экрана. Список, который не загрузился,
// уходит вместе с ошибкой, устаревший ответ не отдаётся совсем.
func List(w http.ResponseWriter, r *http.Request, listing any, err error) {
	switch {
	case err == nil:
		render.JSON(w, r, StatusOKWithData(listing))
	case errors.Is(err, views.ErrStale):
		Fail(w, r, err)
	default:
		WithData(w, r, err, listing)
	}
}
