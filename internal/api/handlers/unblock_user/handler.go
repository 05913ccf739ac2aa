package unblock_user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/users"
)

const (
	msgInvalidID    = "некорректный идентификатор пользователя"
	msgUserNotFound = "пользователь не найден"
	msgAccessDenied = "разблокировка пользователя доступна только администратору"
	msgNotBlocked   = "пользователь не заблокирован"
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

// Handle POST /api/v1/users/{id}/unblock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Unblock(r.Context(), identity, id); err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, users.ErrAccessDenied):
			h.logger.Warn("POST /users/{id}/unblock - Access denied: actor_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, users.ErrNotBlocked):
			handlers.RespondConflict(w, msgNotBlocked)

		default:
			h.logger.Error("POST /users/{id}/unblock - Failed to unblock user: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users/{id}/unblock - User unblocked: id=%d, admin_id=%d", id, identity.UserID)
	handlers.RespondNoContent(w)
}
