package apply_candidate

import (
	"errors"
	"net/http"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/candidates"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/candidates/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAlreadyApplied     = "кандидатура уже подана"
	msgAlreadySpecialist  = "пользователь уже является специалистом"
)

type Handler struct {
	service CandidatesService
	logger  Logger
}

func NewHandler(service CandidatesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/candidates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	var req models.ApplyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /candidates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Apply(r.Context(), identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, candidates.ErrAlreadyApplied):
			handlers.RespondConflict(w, msgAlreadyApplied)

		case errors.Is(err, candidates.ErrAlreadySpecialist):
			handlers.RespondConflict(w, msgAlreadySpecialist)

		case errors.Is(err, candidates.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /candidates - Failed to apply: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /candidates - Candidacy submitted: user_id=%d, candidate_id=%d", identity.UserID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
