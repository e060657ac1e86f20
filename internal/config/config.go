// Package config предоставляет структуры и функцию для парсинга и загрузки конфига консоли
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	RedisConnection `yaml:"redis_connection"`
	Backend         `yaml:"backend"`
	Session         `yaml:"session"`
	Views           `yaml:"views"`
	RateLimit       `yaml:"rate_limit"`
	JWTToken        `yaml:"jwttoken"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес означает хранение сессий в памяти процесса.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// Backend структура для подключения к удалённому API витрины
type Backend struct {
	BaseURL        string        `yaml:"base_url" env:"BACKEND_URL" env-required:"true"`
	BackendTimeout time.Duration `yaml:"timeout" env-default:"30s"`
}

// Session структура для настроек браузерной сессии
type Session struct {
	CookieName   string        `yaml:"cookie_name" env-default:"console_browser"`
	SessionTTL   time.Duration `yaml:"ttl" env-default:"168h"`
	SecureCookie bool          `yaml:"secure_cookie"`
}

// Views размеры страниц списков
type Views struct {
	CatalogPageSize  int `yaml:"catalog_page_size" env-default:"12"`
	BookingsPageSize int `yaml:"bookings_page_size" env-default:"5"`
	ProductsPageSize int `yaml:"products_page_size" env-default:"10"`
	TechniciansPage  int `yaml:"technicians_page_size" env-default:"10"`
	UsersPageSize    int `yaml:"users_page_size" env-default:"10"`
	FeedbackPageSize int `yaml:"feedback_page_size" env-default:"10"`
	MaxVisiblePages  int `yaml:"max_visible_pages" env-default:"5"`
}

// RateLimit ограничение частоты запросов входа и регистрации
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"1"`
	Burst int     `yaml:"burst" env-default:"5"`
}

// JWTToken структура для работы с jwt-токеном. Пустой секрет означает,
// что токены декодируются без проверки подписи.
type JWTToken struct {
	JWTSecretKey string `yaml:"jwt_secret_key" env:"JWT_SECRET"`
}

// MustLoad функция для загрузки конфига из файла по пути CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла и переменных окружения
func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// UseRedis сообщает, задан ли адрес redis
func (c *Config) UseRedis() bool {
	return c.AddressRedis != ""
}

func (c *Config) String() string {
	secret := "<empty>"
	if c.JWTSecretKey != "" {
		secret = "<set>"
	}
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"Backend:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"Session:\n"+
			"  CookieName: %s\n"+
			"  TTL: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AddressRedis,
		c.User,
		c.DB,
		c.BaseURL,
		c.BackendTimeout,
		c.CookieName,
		c.SessionTTL,
		secret,
	)
}
