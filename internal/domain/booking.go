package domain

import "time"

// BookingStatus статус заявки на консультацию
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает решения специалиста
	BookingStatusCancelled BookingStatus = "cancelled" // Отклонена или отозвана
	BookingStatusAccepted  BookingStatus = "accepted"  // Подтверждена специалистом
	BookingStatusCompleted BookingStatus = "completed" // Консультация состоялась
)

// Booking заявка пользователя на консультацию
type Booking struct {
	ID              int64
	UserID          int64 // Автор заявки
	ConsultationID  int64
	Status          BookingStatus
	RejectionReason *string // Обязательна при переходе в cancelled
	Description     string
	Archived        bool // true после cancelled или completed

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, пока заявка не отменена
// Пользователь может иметь не более одной активной заявки на консультацию
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}

// IsTerminal возвращает true для статусов, из которых нет переходов
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCancelled || b.Status == BookingStatusCompleted
}

// CanBeAccepted возвращает true, если заявку можно подтвердить
func (b *Booking) CanBeAccepted() bool {
	return b.Status == BookingStatusPending
}

// CanBeCancelled возвращает true, если заявку можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusAccepted
}
