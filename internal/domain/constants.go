package domain

// Системные причины отмены, подставляемые каскадами
const (
	// ReasonBookedByAnother подставляется конкурирующим pending-заявкам
	// при подтверждении одной из заявок на консультацию
	ReasonBookedByAnother = "Консультация была забронирована другим пользователем."

	// ReasonSpecialistBlocked подставляется консультациям и их заявкам
	// при административной блокировке специалиста
	ReasonSpecialistBlocked = "Специалист был заблокирован администрацией."

	// ReasonConsultationStarted подставляется неподтверждённым заявкам
	// при авто-архивации консультации в момент её начала
	ReasonConsultationStarted = "Время начала консультации наступило."
)

// Business validation constants
const (
	MaxDescriptionLength     = 2000
	MaxRejectionReasonLength = 500
)

// DateTimeFormat формат времени начала консультации во внешних контрактах
const DateTimeFormat = "2006-01-02 15:04"
