package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin: значение claim role у администратора.
const RoleAdmin = "ADMIN"

// CustomClaims описывает данные, которые удалённый API кладёт в токен.
type CustomClaims struct {
	ID                   string `json:"id,omitempty"`    // Идентификатор пользователя
	Email                string `json:"email,omitempty"` // Электронная почта
	Name                 string `json:"name,omitempty"`  // Отображаемое имя
	Role                 string `json:"role"`            // Роль пользователя: ADMIN, USER, TECHNICIAN
	jwt.RegisteredClaims        // Стандартные claims (sub, exp, iat)
}

// SubjectID возвращает идентификатор пользователя: claim id, а если его нет, sub.
func (c *CustomClaims) SubjectID() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Subject
}

// GenerateToken создает JWT токен и подписывает его секретным ключом (HS256).
func (j *MakerImpl) GenerateToken(userID, email, name, role string) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		ID:    userID,
		Email: email,
		Name:  name,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись и срок действия.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	return parseVerified(op, tokenStr, j.secretKey)
}

func parseVerified(op, tokenStr, secret string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
