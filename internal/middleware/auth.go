package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"TodoKeeper/internal/auth"
	"TodoKeeper/internal/model"
	"TodoKeeper/internal/service"
)

type contextKey string

const userContextKey contextKey = "auth_user"

// IdentityResolver — резолв bearer-токена в пользователя. Реализуется
// service.UserService; интерфейс здесь, чтобы middleware не тянула сервисы.
type IdentityResolver interface {
	ResolveFromToken(ctx context.Context, token string) (*model.User, error)
}

// WithAuth разбирает заголовок Authorization: Bearer и кладёт пользователя
// в контекст. Любая причина отказа (подпись, срок, битый токен, удалённый
// пользователь) оставляет запрос анонимным; хендлеры сами отвечают 401.
// Причины логируются различимо.
func WithAuth(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := resolver.ResolveFromToken(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenExpired):
					logger.Infow("auth: token expired")
				case errors.Is(err, auth.ErrTokenMalformed):
					logger.Warnw("auth: token malformed")
				case errors.Is(err, service.ErrUserNotFound):
					logger.Infow("auth: token user no longer exists")
				case errors.Is(err, service.ErrUnavailable):
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"success":false,"error":"internal error"}`))
					return
				default:
					logger.Warnw("auth: token invalid")
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserFromContext возвращает пользователя, положенного WithAuth.
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userContextKey).(*model.User)
	return u, ok
}
