package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pribylovaa/go-catalog-service/internal/service"
	"github.com/pribylovaa/go-catalog-service/internal/transport/http/httperr"
)

type claimsKey struct{}

// ClaimsFrom достаёт аутентифицированную личность из контекста запроса.
// Заполнена только ниже по цепочке от Authenticate.
func ClaimsFrom(ctx context.Context) (service.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(service.Claims)
	return c, ok
}

// Authenticate — шлюз доступа для защищённых маршрутов:
//  1. извлекает Bearer-токен из Authorization;
//  2. валидирует его через сервис;
//  3. кладёт клеймы (user id, email) в контекст запроса.
//
// Отсутствующий и дефектный токен дают один и тот же ответ 401 с одним
// сообщением: наружу не сообщается, какая именно проверка не прошла.
// Хранилище refresh-токенов здесь не затрагивается.
func Authenticate(svc *service.Service) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				httperr.WriteError(w, r, httperr.ErrUnauthenticated)
				return
			}

			claims, err := svc.ValidateToken(token)
			if err != nil {
				httperr.WriteError(w, r, httperr.ErrUnauthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken извлекает токен из Authorization: Bearer <token>.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) || len(auth) == len(prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}
