package cancel_consultation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/consultations"
)

const (
	msgInvalidID            = "некорректный идентификатор консультации"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgConsultationNotFound = "консультация не найдена"
	msgAccessDenied         = "нет прав на отмену консультации"
	msgCannotCancel         = "консультация уже заархивирована"
)

// CancelConsultationRequest HTTP запрос на отмену консультации
type CancelConsultationRequest struct {
	Reason string `json:"reason"`
}

type Handler struct {
	service ConsultationsService
	logger  Logger
}

func NewHandler(service ConsultationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/consultations/{id}
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

	var req CancelConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /consultations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Cancel(r.Context(), id, identity, req.Reason); err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			handlers.RespondNotFound(w, msgConsultationNotFound)

		case errors.Is(err, consultations.ErrAccessDenied):
			h.logger.Warn("DELETE /consultations/{id} - Access denied: id=%d, user_id=%d", id, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, consultations.ErrCannotCancel):
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, consultations.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /consultations/{id} - Failed to cancel consultation: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /consultations/{id} - Consultation cancelled: id=%d, user_id=%d", id, identity.UserID)
	handlers.RespondNoContent(w)
}
