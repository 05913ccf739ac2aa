package create_booking

import "time"

// Request модель запроса на создание заявки
type Request struct {
	UserID         int64  // ID пользователя-автора заявки
	ConsultationID int64  // ID консультации
	Description    string // Комментарий к заявке (опционально)
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID             int64
	UserID         int64
	ConsultationID int64
	Status         string
	Description    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
