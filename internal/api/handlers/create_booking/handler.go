package create_booking

import (
	"errors"
	"net/http"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	createBooking "github.com/vkorolev/CPS-ConsultationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgConsultationNotFound = "консультация не найдена"
	msgConsultationArchived = "консультация заархивирована"
	msgConsultationBooked   = "консультация уже забронирована"
	msgOwnConsultation      = "нельзя забронировать собственную консультацию"
	msgDuplicateBooking     = "у вас уже есть активная заявка на эту консультацию"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(identity.UserID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrConsultationNotFound):
			handlers.RespondNotFound(w, msgConsultationNotFound)

		case errors.Is(err, createBooking.ErrConsultationArchived):
			handlers.RespondConflict(w, msgConsultationArchived)

		case errors.Is(err, createBooking.ErrConsultationBooked):
			h.logger.Warn("POST /bookings - Consultation booked: consultation_id=%d, user_id=%d", req.ConsultationID, identity.UserID)
			handlers.RespondConflict(w, msgConsultationBooked)

		case errors.Is(err, createBooking.ErrOwnConsultation):
			handlers.RespondForbidden(w, msgOwnConsultation)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d", result.ID, identity.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
