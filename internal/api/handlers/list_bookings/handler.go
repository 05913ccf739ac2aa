package list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/bookings"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/bookings/models"
)

const msgInvalidFilter = "некорректные параметры фильтрации"

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Фильтры передаются query-параметрами: userId, consultationId, status, archived
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.List(r.Context(), identity, req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) (*models.ListBookingsRequest, error) {
	q := r.URL.Query()
	req := &models.ListBookingsRequest{}

	for name, dst := range map[string]**int64{
		"userId":         &req.UserID,
		"consultationId": &req.ConsultationID,
	} {
		if v := q.Get(name); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, err
			}
			*dst = &id
		}
	}

	if v := q.Get("status"); v != "" {
		s := v
		req.Status = &s
	}

	if v := q.Get("archived"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.Archived = &b
	}

	return req, nil
}
