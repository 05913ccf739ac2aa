package confirm_email

import (
	"errors"
	"net/http"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/users"
)

const msgUserNotFound = "пользователь не найден"

type Handler struct {
	service UsersService
	logger  Logger
}

func NewHandler(service UsersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/users/me/confirm-email
// Подтверждение идемпотентно: повторный вызов возвращает 204
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	if err := h.service.ConfirmEmail(r.Context(), identity.UserID); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.logger.Error("POST /users/me/confirm-email - Failed to confirm email: user_id=%d, error=%v", identity.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /users/me/confirm-email - Email confirmed: user_id=%d", identity.UserID)
	handlers.RespondNoContent(w)
}
