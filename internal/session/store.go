// Package session хранит аутентифицированную личность одного браузера.
//
// Store единственный владеет токеном, его меняют только Login, Logout и
// Restore. Остальные компоненты читают токен через Token и не пишут его.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/lib/jwt"
	"github.com/magabrotheeeer/aircon-console/internal/lib/sl"
	"github.com/magabrotheeeer/aircon-console/internal/models"
)

// Пути, на которые попадает пользователь после входа.
const (
	LandingAdmin    = "/admin"
	LandingCustomer = "/"
)

// State: состояние сессии.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Identity: личность, прочитанная из claims токена.
type Identity struct {
	Subject string    `json:"subject"`
	Email   string    `json:"email,omitempty"`
	Name    string    `json:"name,omitempty"`
	Role    string    `json:"role"`
	Expiry  time.Time `json:"expiry,omitzero"`
}

// IsAdmin сообщает, есть ли у личности роль администратора.
func (i Identity) IsAdmin() bool {
	return i.Role == jwt.RoleAdmin
}

// Authenticator обменивает учётные данные на токен.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.LoginResult, error)
}

// Decoder читает claims из токена.
type Decoder interface {
	Decode(token string) (*jwt.CustomClaims, error)
}

// LoginError: неудачный вход. Для errors.Is совпадает с gateway.ErrAuth,
// причина (например, сетевая ошибка) доступна через Unwrap.
type LoginError struct {
	Message string
	Cause   error
}

func (e *LoginError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("login failed: %s: %v", e.Message, e.Cause)
	}
	return "login failed: " + e.Message
}

func (e *LoginError) Unwrap() error { return e.Cause }

// Is поддерживает errors.Is(err, gateway.ErrAuth).
func (e *LoginError) Is(target error) bool { return target == gateway.ErrAuth }

// Store: сессия одного браузера.
type Store struct {
	mu       sync.RWMutex
	token    string
	identity *Identity

	auth    Authenticator
	storage Storage
	decoder Decoder
	log     *slog.Logger
}

// New создаёт анонимную сессию. Чтобы поднять сохранённый токен,
// вызовите Restore.
func New(auth Authenticator, storage Storage, decoder Decoder, log *slog.Logger) *Store {
	return &Store{
		auth:    auth,
		storage: storage,
		decoder: decoder,
		log:     log,
	}
}

// Login входит по email и паролю. При успехе токен сохраняется в хранилище
// и сессия становится Authenticated. При неудаче возвращается *LoginError,
// а текущее состояние сессии не меняется.
func (s *Store) Login(ctx context.Context, email, password string) (Identity, error) {
	const op = "session.Login"
	log := s.log.With(sl.Op(op))

	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		log.Info("login rejected", sl.Err(err))
		return Identity{}, &LoginError{Message: loginMessage(err), Cause: err}
	}
	if res.Token == "" {
		msg := res.Message
		if msg == "" {
			msg = "invalid credentials"
		}
		log.Info("login response carries no token", slog.String("message", msg))
		return Identity{}, &LoginError{Message: msg}
	}

	identity, err := s.decode(res.Token)
	if err != nil {
		log.Warn("cannot decode issued token", sl.Err(err))
		return Identity{}, &LoginError{Message: "invalid token received", Cause: err}
	}

	if err := s.storage.Save(ctx, res.Token); err != nil {
		log.Error("failed to persist token", sl.Err(err))
		return Identity{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.token = res.Token
	s.identity = &identity
	s.mu.Unlock()

	log.Info("logged in", slog.String("subject", identity.Subject), slog.String("role", identity.Role))
	return identity, nil
}

// Logout очищает токен в хранилище и в памяти. Ошибки хранилища
// только логируются.
func (s *Store) Logout(ctx context.Context) {
	const op = "session.Logout"

	s.mu.Lock()
	s.token = ""
	s.identity = nil
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		s.log.Warn("failed to clear stored token", sl.Op(op), sl.Err(err))
	}
}

// Restore поднимает сессию из сохранённого токена. Токен, который не
// декодируется или уже истёк, удаляется, сессия остаётся анонимной.
func (s *Store) Restore(ctx context.Context) {
	const op = "session.Restore"
	log := s.log.With(sl.Op(op))

	token, ok, err := s.storage.Load(ctx)
	if err != nil {
		log.Warn("failed to load stored token", sl.Err(err))
		return
	}
	if !ok || token == "" {
		return
	}

	identity, err := s.decode(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			log.Info("stored token expired")
		} else {
			log.Warn("stored token is corrupt", sl.Err(err))
		}
		if err := s.storage.Clear(ctx); err != nil {
			log.Warn("failed to clear stored token", sl.Err(err))
		}
		return
	}

	s.mu.Lock()
	s.token = token
	s.identity = &identity
	s.mu.Unlock()
}

// Token возвращает сырой токен или пустую строку. Реализует gateway.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity возвращает текущую личность; false для анонимной сессии.
func (s *Store) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// State возвращает состояние сессии.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Anonymous
	}
	return Authenticated
}

// IsAdmin сообщает, аутентифицирована ли сессия с ролью ADMIN.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.identity.IsAdmin()
}

// Landing возвращает страницу, на которую отправляется пользователь после входа.
func Landing(identity Identity) string {
	if identity.IsAdmin() {
		return LandingAdmin
	}
	return LandingCustomer
}

func (s *Store) decode(token string) (Identity, error) {
	claims, err := s.decoder.Decode(token)
	if err != nil {
		return Identity{}, err
	}
	identity := Identity{
		Subject: claims.SubjectID(),
		Email:   claims.Email,
		Name:    claims.Name,
		Role:    claims.Role,
	}
	if claims.ExpiresAt != nil {
		identity.Expiry = claims.ExpiresAt.Time
	}
	return identity, nil
}

func loginMessage(err error) string {
	var authErr *gateway.AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	return gateway.Message(err)
}
