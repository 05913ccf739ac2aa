package approve_candidate

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/candidates"
)

const (
	msgInvalidUserID     = "некорректный идентификатор пользователя"
	msgCandidateNotFound = "кандидатура не найдена"
	msgAccessDenied      = "одобрение кандидатуры доступно только администратору"
	msgNotPending        = "кандидатура не ожидает рассмотрения"
	msgAlreadySpecialist = "пользователь уже является специалистом"
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

// Handle POST /api/v1/candidates/{userId}/approve
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

	if err := h.service.Approve(r.Context(), identity, userID); err != nil {
		switch {
		case errors.Is(err, candidates.ErrCandidateNotFound):
			handlers.RespondNotFound(w, msgCandidateNotFound)

		case errors.Is(err, candidates.ErrAccessDenied):
			h.logger.Warn("POST /candidates/{userId}/approve - Access denied: admin_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, candidates.ErrNotPending):
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, candidates.ErrAlreadySpecialist):
			handlers.RespondConflict(w, msgAlreadySpecialist)

		default:
			h.logger.Error("POST /candidates/{userId}/approve - Failed to approve: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /candidates/{userId}/approve - Candidacy approved: user_id=%d, admin_id=%d", userID, identity.UserID)
	handlers.RespondNoContent(w)
}
