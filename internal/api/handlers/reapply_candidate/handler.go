package reapply_candidate

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
	msgCandidateNotFound  = "кандидатура не найдена"
	msgNotRejected        = "повторная подача доступна только для отклонённой кандидатуры"
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

// Handle POST /api/v1/candidates/reapply
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	var req models.ApplyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /candidates/reapply - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Reapply(r.Context(), identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, candidates.ErrCandidateNotFound):
			handlers.RespondNotFound(w, msgCandidateNotFound)

		case errors.Is(err, candidates.ErrNotRejected):
			handlers.RespondConflict(w, msgNotRejected)

		case errors.Is(err, candidates.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /candidates/reapply - Failed to reapply: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /candidates/reapply - Candidacy resubmitted: user_id=%d", identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
