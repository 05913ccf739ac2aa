package update_consultation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/consultations"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/consultations/models"
)

const (
	msgInvalidID            = "некорректный идентификатор консультации"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgConsultationNotFound = "консультация не найдена"
	msgAccessDenied         = "нет прав на изменение консультации"
	msgCannotUpdate         = "забронированную или заархивированную консультацию нельзя изменить"
	msgTimeConflict         = "интервал пересекается с другой консультацией"
	msgStartTimeInPast      = "время начала уже наступило"
)

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

// Handle PUT /api/v1/consultations/{id}
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

	var req models.UpdateConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /consultations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			handlers.RespondNotFound(w, msgConsultationNotFound)

		case errors.Is(err, consultations.ErrAccessDenied):
			h.logger.Warn("PUT /consultations/{id} - Access denied: id=%d, user_id=%d", id, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, consultations.ErrCannotUpdate):
			handlers.RespondConflict(w, msgCannotUpdate)

		case errors.Is(err, consultations.ErrTimeConflict):
			h.logger.Warn("PUT /consultations/{id} - Time conflict: id=%d", id)
			handlers.RespondConflict(w, msgTimeConflict)

		case errors.Is(err, consultations.ErrStartTimeInPast):
			h.logger.Warn("PUT /consultations/{id} - Start time in past: id=%d", id)
			handlers.RespondBadRequest(w, msgStartTimeInPast)

		case errors.Is(err, consultations.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /consultations/{id} - Failed to update consultation: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /consultations/{id} - Consultation updated: id=%d, user_id=%d", id, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
