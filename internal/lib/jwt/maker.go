// Package jwt реализует генерацию и разбор JWT токенов витрины.
//
// Консоль получает токен от удалённого API и читает из него claims локально,
// без обращения к серверу. Maker используется в тестах и в mockapi для
// выпуска токенов, Decoder, сессией для чтения claims.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и проверки JWT токенов.
type Maker interface {
	// GenerateToken выпускает токен с идентификатором, email, именем и ролью.
	GenerateToken(userID, email, name, role string) (string, error)
	// ParseToken проверяет подпись и возвращает *CustomClaims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
