package get_candidate

import (
	"errors"
	"net/http"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/candidates"
)

const msgCandidateNotFound = "кандидатура не найдена"

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

// Handle GET /api/v1/candidates/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	result, err := h.service.Status(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, candidates.ErrCandidateNotFound) {
			handlers.RespondNotFound(w, msgCandidateNotFound)
			return
		}
		h.logger.Error("GET /candidates/me - Failed to get candidacy: user_id=%d, error=%v", identity.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
