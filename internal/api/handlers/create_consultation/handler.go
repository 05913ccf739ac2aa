package create_consultation

import (
	"errors"
	"net/http"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	createConsultation "github.com/vkorolev/CPS-ConsultationService/internal/usecase/create_consultation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotSpecialist      = "пользователь не является специалистом"
	msgSpecialistBlocked  = "специалист заблокирован"
	msgTimeConflict       = "интервал пересекается с другой консультацией"
	msgStartTimeInPast    = "время начала уже наступило"
)

type Handler struct {
	useCase CreateConsultationUseCase
	logger  Logger
}

func NewHandler(useCase CreateConsultationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/consultations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	var req CreateConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /consultations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(identity.UserID))
	if err != nil {
		switch {
		case errors.Is(err, createConsultation.ErrTimeConflict):
			h.logger.Warn("POST /consultations - Time conflict: user_id=%d", identity.UserID)
			handlers.RespondConflict(w, msgTimeConflict)

		case errors.Is(err, createConsultation.ErrNotSpecialist):
			h.logger.Warn("POST /consultations - Not a specialist: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgNotSpecialist)

		case errors.Is(err, createConsultation.ErrSpecialistBlocked):
			h.logger.Warn("POST /consultations - Specialist blocked: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgSpecialistBlocked)

		case errors.Is(err, createConsultation.ErrStartTimeInPast):
			h.logger.Warn("POST /consultations - Start time in past: user_id=%d", identity.UserID)
			handlers.RespondBadRequest(w, msgStartTimeInPast)

		case errors.Is(err, createConsultation.ErrInvalidInput):
			h.logger.Warn("POST /consultations - Invalid input: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /consultations - Failed to create consultation: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /consultations - Consultation created: consultation_id=%d, user_id=%d", result.ID, identity.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
