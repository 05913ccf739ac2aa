package list_specialists

import (
	"net/http"
	"strconv"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/specialists/models"
)

const msgInvalidFilter = "некорректные параметры фильтрации"

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

// Handle GET /api/v1/specialists
// Фильтр передаётся query-параметром: isActive (учитывается только для администратора)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	req := &models.ListSpecialistsRequest{}
	if v := r.URL.Query().Get("isActive"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.IsActive = &b
	}

	result, err := h.service.List(r.Context(), identity, req)
	if err != nil {
		h.logger.Error("GET /specialists - Failed to list specialists: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
