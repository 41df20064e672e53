package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo — сведения из токена, прочитанные без проверки подписи.
// Используются только для отображения и журналирования.
type TokenInfo struct {
	// Subject — claim sub
	Subject string
	// ExpiresAt — claim exp (nil, если отсутствует)
	ExpiresAt *time.Time
}

// Expired сообщает, истёк ли токен к моменту now.
func (i TokenInfo) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}

// InspectToken разбирает JWT без проверки подписи.
// Для непрозрачных токенов возвращает false.
func InspectToken(token string) (TokenInfo, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, false
	}

	var info TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}
	return info, true
}
