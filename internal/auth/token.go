package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired — подпись верна, но срок действия вышел.
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrTokenMalformed — строка не разбирается как токен.
	ErrTokenMalformed = errors.New("auth: token malformed")
	// ErrTokenInvalid — токен разобран, но подпись не совпала.
	ErrTokenInvalid = errors.New("auth: token invalid")
)

// Claims — структура утверждений: стандартные поля плюс идентичность
// пользователя, которую токен самодостаточно подтверждает.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Email  string `json:"email,omitempty"`
}

// TokenAuthority выпускает и проверяет JWT. Секрет передаётся явно при
// конструировании (один на процесс, без ротации), состояние на сервере
// не хранится.
type TokenAuthority struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenAuthority(secret []byte, ttl time.Duration) *TokenAuthority {
	return &TokenAuthority{secret: secret, ttl: ttl}
}

// Issue подписывает токен с userID и email и сроком действия ttl от текущего момента.
func (a *TokenAuthority) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		UserID: userID,
		Email:  email,
	})
	return token.SignedString(a.secret)
}

// Verify проверяет подпись и срок действия. Ошибки различимы
// (Expired/Malformed/Invalid), но для вызывающего все три означают
// «не аутентифицирован».
func (a *TokenAuthority) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return a.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrTokenMalformed
	default:
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
