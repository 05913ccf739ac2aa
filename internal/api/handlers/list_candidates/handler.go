package list_candidates

import (
	"errors"
	"net/http"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/candidates"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/candidates/models"
)

const (
	msgInvalidFilter = "некорректные параметры фильтрации"
	msgAccessDenied  = "просмотр списка кандидатур доступен только администратору"
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

// Handle GET /api/v1/candidates
// Фильтр передаётся query-параметром: status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	req := &models.ListCandidatesRequest{}
	if v := r.URL.Query().Get("status"); v != "" {
		s := v
		req.Status = &s
	}

	result, err := h.service.List(r.Context(), identity, req)
	if err != nil {
		switch {
		case errors.Is(err, candidates.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, candidates.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /candidates - Failed to list candidates: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
