package block_specialist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/specialists"
)

const (
	msgInvalidUserID      = "некорректный идентификатор пользователя"
	msgSpecialistNotFound = "специалист не найден"
	msgAccessDenied       = "блокировка специалиста доступна только администратору"
	msgAlreadyBlocked     = "специалист уже заблокирован"
)

type Handler struct {
	service SpecialistsService
	logger  Logger
}

func NewHandler(service SpecialistsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/specialists/{userId}/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if err := h.service.Block(r.Context(), identity, userID); err != nil {
		switch {
		case errors.Is(err, specialists.ErrSpecialistNotFound):
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, specialists.ErrAccessDenied):
			h.logger.Warn("POST /specialists/{userId}/block - Access denied: actor_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, specialists.ErrAlreadyBlocked):
			handlers.RespondConflict(w, msgAlreadyBlocked)

		default:
			h.logger.Error("POST /specialists/{userId}/block - Failed to block specialist: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /specialists/{userId}/block - Specialist blocked: user_id=%d, admin_id=%d", userID, identity.UserID)
	handlers.RespondNoContent(w)
}
