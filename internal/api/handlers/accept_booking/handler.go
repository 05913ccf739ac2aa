package accept_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkorolev/CPS-ConsultationService/internal/api/handlers"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	acceptBooking "github.com/vkorolev/CPS-ConsultationService/internal/usecase/accept_booking"
)

const (
	msgInvalidID            = "некорректный идентификатор заявки"
	msgBookingNotFound      = "заявка не найдена"
	msgAccessDenied         = "нет прав на подтверждение заявки"
	msgNotPending           = "заявка уже обработана"
	msgConsultationArchived = "консультация заархивирована"
	msgConsultationBooked   = "по консультации уже подтверждена другая заявка"
)

// AcceptBookingResponse HTTP ответ с результатом подтверждения
type AcceptBookingResponse struct {
	BookingID         int64  `json:"bookingId"`
	ConsultationID    int64  `json:"consultationId"`
	Status            string `json:"status"`
	CancelledSiblings int    `json:"cancelledSiblings"`
}

type Handler struct {
	useCase AcceptBookingUseCase
	logger  Logger
}

func NewHandler(useCase AcceptBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{id}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &acceptBooking.Request{
		BookingID: id,
		Identity: acceptBooking.RequestIdentity{
			UserID:  identity.UserID,
			IsAdmin: identity.IsAdmin,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, acceptBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, acceptBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/accept - Access denied: booking_id=%d, user_id=%d", id, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, acceptBooking.ErrNotPending):
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, acceptBooking.ErrConsultationArchived):
			handlers.RespondConflict(w, msgConsultationArchived)

		case errors.Is(err, acceptBooking.ErrConsultationBooked):
			handlers.RespondConflict(w, msgConsultationBooked)

		case errors.Is(err, acceptBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/{id}/accept - Failed to accept booking: booking_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/accept - Booking accepted: booking_id=%d, cancelled_siblings=%d", id, result.CancelledSiblings)
	handlers.RespondJSON(w, http.StatusOK, &AcceptBookingResponse{
		BookingID:         result.BookingID,
		ConsultationID:    result.ConsultationID,
		Status:            result.Status,
		CancelledSiblings: result.CancelledSiblings,
	})
}
