package get_user

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
	msgAccessDenied = "нет прав на просмотр пользователя"
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

// Handle GET /api/v1/users/{id}
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

	result, err := h.service.GetByID(r.Context(), id, identity)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, users.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /users/{id} - Failed to get user: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
