package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

// Заголовки, проставляемые API-шлюзом после проверки токена.
// Сервис доверяет им и сам аутентификацию не выполняет
const (
	HeaderUserID       = "X-User-ID"
	HeaderIsSpecialist = "X-Is-Specialist"
	HeaderIsAdmin      = "X-Is-Admin"
)

type identityKey struct{}

// Auth извлекает личность вызывающего из заголовков шлюза
// Запросы без X-User-ID отклоняются
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
			return
		}

		identity := domain.Identity{
			UserID:       userID,
			IsSpecialist: r.Header.Get(HeaderIsSpecialist) == "true",
			IsAdmin:      r.Header.Get(HeaderIsAdmin) == "true",
			IsActive:     true,
		}

		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext возвращает личность вызывающего, разрешенную Auth
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	return identity, ok
}
