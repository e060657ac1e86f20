package gateway

import (
	"errors"
	"fmt"
)

// Sentinel-ошибки для errors.Is. Каждая ошибка шлюза сопоставляется
// ровно с одной из них.
var (
	// ErrNetwork — ответа нет: обрыв соединения, DNS, таймаут.
	ErrNetwork = errors.New("network error")
	// ErrAuth — 401/403: сессия недействительна.
	ErrAuth = errors.New("not authorized")
	// ErrValidation — прочие 4xx с сообщением сервера.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound — 404 на запрос одной записи.
	ErrNotFound = errors.New("not found")
	// ErrServer — 5xx или ответ, не прошедший проверку схемы.
	ErrServer = errors.New("server error")
)

// NetworkError — запрос не получил ответа.
type NetworkError struct {
	Op    string
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Cause)
}

func (e *NetworkError) Unwrap() error { return e.Cause }

// Is поддерживает errors.Is(err, ErrNetwork).
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// AuthError — сервер отверг токен или учётные данные.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("not authorized (%d): %s", e.Status, e.Message)
}

// Is поддерживает errors.Is(err, ErrAuth).
func (e *AuthError) Is(target error) bool { return target == ErrAuth }

// ValidationError — пользовательская ошибка ввода, Message показывается как есть.
type ValidationError struct {
	Status  int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%d): %s", e.Status, e.Message)
}

// Is поддерживает errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError — запрошенной записи нет.
type NotFoundError struct {
	Path    string
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found", e.Path)
}

// Is поддерживает errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ServerError — 5xx или ответ неожиданной формы.
type ServerError struct {
	Status  int
	Message string
	Cause   error
}

func (e *ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("server error (%d): %v", e.Status, e.Cause)
	}
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

func (e *ServerError) Unwrap() error { return e.Cause }

// Is поддерживает errors.Is(err, ErrServer).
func (e *ServerError) Is(target error) bool { return target == ErrServer }

// Message возвращает текст, который можно показать пользователю.
// Для ValidationError это сообщение сервера, для остальных — общий текст.
func Message(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr) && verr.Message != "":
		return verr.Message
	case errors.Is(err, ErrAuth):
		return "session expired, please log in again"
	case errors.Is(err, ErrNotFound):
		return "record not found"
	default:
		return "something went wrong, please try again"
	}
}
