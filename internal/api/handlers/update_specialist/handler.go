package update_specialist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/specialists"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/specialists/models"
)

const (
	msgInvalidUserID      = "некорректный идентификатор пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSpecialistNotFound = "специалист не найден"
	msgAccessDenied       = "нет прав на изменение профиля специалиста"
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

// Handle PATCH /api/v1/specialists/{userId}
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

	var req models.UpdateSpecialistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /specialists/{userId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateDescription(r.Context(), userID, identity, &req); err != nil {
		switch {
		case errors.Is(err, specialists.ErrSpecialistNotFound):
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, specialists.ErrAccessDenied):
			h.logger.Warn("PATCH /specialists/{userId} - Access denied: user_id=%d, actor_id=%d", userID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, specialists.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /specialists/{userId} - Failed to update specialist: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /specialists/{userId} - Specialist updated: user_id=%d, actor_id=%d", userID, identity.UserID)
	handlers.RespondNoContent(w)
}
