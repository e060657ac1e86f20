package gateway

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout: таймаут одного запроса к API, если не задан другой.
const DefaultTimeout = 30 * time.Second

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient задаёт http.Client, например с особым транспортом в тестах.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout задаёт таймаут одного запроса. Неположительное значение
// оставляет DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger задаёт логгер.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithObserver подключает сбор метрик по запросам.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithTokenSource привязывает клиент к источнику токена.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}
