package get_specialist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/specialists"
)

const (
	msgInvalidUserID      = "некорректный идентификатор пользователя"
	msgSpecialistNotFound = "специалист не найден"
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

// Handle GET /api/v1/specialists/{userId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result, err := h.service.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, specialists.ErrSpecialistNotFound) {
			handlers.RespondNotFound(w, msgSpecialistNotFound)
			return
		}
		h.logger.Error("GET /specialists/{userId} - Failed to get specialist: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
