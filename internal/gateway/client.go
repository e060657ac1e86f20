// Package gateway реализует типизированный HTTP-клиент удалённого REST API витрины.
//
// Каждый вызов делает ровно одну попытку, прикладывает Bearer-токен
// текущей сессии (если он есть), проверяет ответ по схеме и сводит любую
// неудачу к одной из ошибок ErrNetwork, ErrAuth, ErrValidation,
// ErrNotFound, ErrServer.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/aircon-console/internal/lib/sl"
)

// TokenSource отдаёт сырой токен текущей сессии или пустую строку.
type TokenSource interface {
	Token() string
}

// Observer получает результат каждого запроса. status равен 0, если
// ответа не было.
type Observer interface {
	ObserveRequest(method, resource string, status int, elapsed time.Duration)
}

type noToken struct{}

func (noToken) Token() string { return "" }

// Client: клиент удалённого API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	tokens     TokenSource
	validate   *validator.Validate
	observer   Observer
	log        *slog.Logger
}

// NewClient создаёт клиент для API по адресу baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		timeout:  DefaultTimeout,
		tokens:   noToken{},
		validate: validator.New(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c
}

// For возвращает копию клиента, привязанную к источнику токена ts.
// Исходный клиент не меняется, поэтому его можно делить между сессиями.
func (c *Client) For(ts TokenSource) *Client {
	cp := *c
	if ts == nil {
		ts = noToken{}
	}
	cp.tokens = ts
	return &cp
}

// request описывает один вызов API.
type request struct {
	method   string
	resource string // шаблон ресурса для логов и метрик
	path     string
	query    url.Values
	body     any // JSON-значение или *Form
	out      any
	optional bool // пустое тело ответа допустимо
}

func (c *Client) do(ctx context.Context, req request) error {
	const op = "gateway.do"

	log := c.log.With(
		sl.Op(op),
		slog.String("method", req.method),
		slog.String("resource", req.resource),
	)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, contentType, err := encodeBody(req.body)
	if err != nil {
		return fmt.Errorf("%s: encode body: %w", op, err)
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.observe(req, 0, started)
		log.Warn("request failed", sl.Err(err))
		return &NetworkError{Op: req.method + " " + req.resource, Cause: err}
	}
	defer resp.Body.Close()
	c.observe(req, resp.StatusCode, started)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("failed to read response body", sl.Err(err))
		return &NetworkError{Op: req.method + " " + req.resource, Cause: err}
	}

	if err := statusError(resp.StatusCode, req.path, raw); err != nil {
		log.Info("request rejected", slog.Int("status", resp.StatusCode), sl.Err(err))
		return err
	}

	if req.out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if req.optional {
			return nil
		}
		log.Error("empty response")
		return &ServerError{Status: resp.StatusCode, Message: "empty response"}
	}
	if err := json.Unmarshal(raw, req.out); err != nil {
		log.Error("malformed response", sl.Err(err))
		return &ServerError{Status: resp.StatusCode, Cause: fmt.Errorf("decode response: %w", err)}
	}
	if err := c.check(req.out); err != nil {
		log.Error("response failed schema check", sl.Err(err))
		return &ServerError{Status: resp.StatusCode, Cause: fmt.Errorf("invalid response: %w", err)}
	}
	return nil
}

func (c *Client) observe(req request, status int, started time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(req.method, req.resource, status, time.Since(started))
	}
}

// check проверяет декодированный ответ по validate-тегам: структуру,
// указатель на неё или срез структур.
func (c *Client) check(out any) error {
	v := reflect.ValueOf(out)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		return c.validate.Struct(v.Interface())
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			if err := c.check(v.Index(i).Addr().Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Form:
		return b.encode()
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(raw), "application/json", nil
	}
}

// statusError сводит код ответа к ошибке шлюза. 2xx даёт nil.
func statusError(status int, path string, raw []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	msg := serverMessage(raw)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{Status: status, Message: msg}
	case status == http.StatusNotFound:
		return &NotFoundError{Path: path, Message: msg}
	case status >= 400 && status < 500:
		return &ValidationError{Status: status, Message: msg}
	default:
		return &ServerError{Status: status, Message: msg}
	}
}

// serverMessage достаёт текст ошибки из {"message": ...} или {"error": ...},
// иначе возвращает начало тела ответа.
func serverMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
