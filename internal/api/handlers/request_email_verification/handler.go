package request_email_verification

import (
	"errors"
	"net/http"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/users"
)

const (
	msgUserNotFound    = "пользователь не найден"
	msgAlreadyVerified = "email уже подтвержден"
)

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

// Handle POST /api/v1/users/me/verify-email
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	if err := h.service.RequestEmailVerification(r.Context(), identity); err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, users.ErrAlreadyVerified):
			handlers.RespondConflict(w, msgAlreadyVerified)

		default:
			h.logger.Error("POST /users/me/verify-email - Failed to request verification: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users/me/verify-email - Verification requested: user_id=%d", identity.UserID)
	handlers.RespondJSON(w, http.StatusAccepted, nil)
}
