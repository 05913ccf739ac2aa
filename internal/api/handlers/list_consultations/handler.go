package list_consultations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/consultations"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/consultations/models"
)

const msgInvalidFilter = "некорректные параметры фильтрации"

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

// Handle GET /api/v1/consultations
// Фильтры передаются query-параметрами: specialistId, archived, booking,
// priceFrom, priceTo, startFrom, startTo, timeSelection
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /consultations - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, consultations.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /consultations - Failed to list consultations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) (*models.ListConsultationsRequest, error) {
	q := r.URL.Query()
	req := &models.ListConsultationsRequest{}

	if v := q.Get("specialistId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.SpecialistID = &id
	}

	for name, dst := range map[string]**bool{
		"archived": &req.Archived,
		"booking":  &req.Booking,
	} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, err
			}
			*dst = &b
		}
	}

	for name, dst := range map[string]**float64{
		"priceFrom": &req.PriceFrom,
		"priceTo":   &req.PriceTo,
	} {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, err
			}
			*dst = &f
		}
	}

	for name, dst := range map[string]**string{
		"startFrom":     &req.StartFrom,
		"startTo":       &req.StartTo,
		"timeSelection": &req.TimeSelection,
	} {
		if v := q.Get(name); v != "" {
			s := v
			*dst = &s
		}
	}

	return req, nil
}
