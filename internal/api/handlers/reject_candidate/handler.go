package reject_candidate

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/candidates"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/candidates/models"
)

const (
	msgInvalidUserID      = "некорректный идентификатор пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCandidateNotFound  = "кандидатура не найдена"
	msgAccessDenied       = "отклонение кандидатуры доступно только администратору"
	msgNotPending         = "кандидатура не ожидает рассмотрения"
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

// Handle POST /api/v1/candidates/{userId}/reject
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

	var req models.RejectRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /candidates/{userId}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Reject(r.Context(), identity, userID, &req); err != nil {
		switch {
		case errors.Is(err, candidates.ErrCandidateNotFound):
			handlers.RespondNotFound(w, msgCandidateNotFound)

		case errors.Is(err, candidates.ErrAccessDenied):
			h.logger.Warn("POST /candidates/{userId}/reject - Access denied: admin_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, candidates.ErrNotPending):
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, candidates.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /candidates/{userId}/reject - Failed to reject: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /candidates/{userId}/reject - Candidacy rejected: user_id=%d, admin_id=%d", userID, identity.UserID)
	handlers.RespondNoContent(w)
}
