package domain

import "time"

// ConsultationsFilter фильтр списка консультаций
type ConsultationsFilter struct {
	SpecialistID  *int64         // Фильтр по владельцу (опционально)
	Archived      *bool          // Фильтр по признаку архива (опционально)
	Booking       *bool          // Фильтр по признаку брони (опционально)
	PriceFrom     *float64       // Нижняя граница цены (опционально)
	PriceTo       *float64       // Верхняя граница цены (опционально)
	StartFrom     *time.Time     // Начало периода (опционально)
	StartTo       *time.Time     // Конец периода (опционально)
	TimeSelection *TimeSelection // Фильтр по классу длительности (опционально)
}

// BookingsFilter фильтр списка заявок
type BookingsFilter struct {
	UserID         *int64         // Автор заявки (опционально)
	ConsultationID *int64         // Консультация (опционально)
	Status         *BookingStatus // Статус (опционально)
	Archived       *bool          // Признак архива (опционально)
}
