package notifyservice

// Event тип события для NotifyService
type Event string

const (
	EventBookingCreated      Event = "booking_created"
	EventBookingAccepted     Event = "booking_accepted"
	EventBookingCancelled    Event = "booking_cancelled"
	EventConsultationCancel  Event = "consultation_cancelled"
	EventCandidacyApproved   Event = "candidacy_approved"
	EventCandidacyRejected   Event = "candidacy_rejected"
	EventSpecialistBlocked   Event = "specialist_blocked"
	EventSpecialistUnblocked Event = "specialist_unblocked"
	EventUserBlocked         Event = "user_blocked"
	EventUserUnblocked       Event = "user_unblocked"
	EventEmailVerification   Event = "email_verification_requested"
	EventEmailVerified       Event = "email_verified"
)

// notifyRequest тело запроса к NotifyService
type notifyRequest struct {
	Event    Event  `json:"event"`
	UserID   int64  `json:"user_id"`
	EntityID int64  `json:"entity_id"`
	Message  string `json:"message,omitempty"`
}
