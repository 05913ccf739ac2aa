package block_user

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
	msgInvalidID      = "некорректный идентификатор пользователя"
	msgUserNotFound   = "пользователь не найден"
	msgAccessDenied   = "блокировка пользователя доступна только администратору"
	msgAlreadyBlocked = "пользователь уже заблокирован"
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

// Handle POST /api/v1/users/{id}/block
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

	if err := h.service.Block(r.Context(), identity, id); err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, users.ErrAccessDenied):
			h.logger.Warn("POST /users/{id}/block - Access denied: actor_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, users.ErrAlreadyBlocked):
			handlers.RespondConflict(w, msgAlreadyBlocked)

		default:
			h.logger.Error("POST /users/{id}/block - Failed to block user: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users/{id}/block - User blocked: id=%d, admin_id=%d", id, identity.UserID)
	handlers.RespondNoContent(w)
}
