package create_consultation

import "time"

// Request модель запроса на создание консультации
type Request struct {
	SpecialistID  int64   // ID пользователя-специалиста
	TimeSelection string  // Класс длительности: "1", "2" или "3" часа
	StartTime     string  // Время начала в формате "2006-01-02 15:04"
	Price         float64 // Стоимость консультации
	Description   string  // Описание (опционально)
}

// Response модель ответа с созданной консультацией
type Response struct {
	ID            int64
	SpecialistID  int64
	TimeSelection string
	StartTime     time.Time
	EndTime       time.Time
	Price         float64
	Description   string
	Booking       bool
	Archived      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
