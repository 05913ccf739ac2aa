package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeSelection класс длительности консультации (1, 2 или 3 часа)
type TimeSelection string

const (
	TimeSelectionOneHour    TimeSelection = "1"
	TimeSelectionTwoHours   TimeSelection = "2"
	TimeSelectionThreeHours TimeSelection = "3"
)

// Duration возвращает длительность, соответствующую классу
func (t TimeSelection) Duration() time.Duration {
	switch t {
	case TimeSelectionOneHour:
		return time.Hour
	case TimeSelectionTwoHours:
		return 2 * time.Hour
	case TimeSelectionThreeHours:
		return 3 * time.Hour
	default:
		return 0
	}
}

// IsValid проверяет, что класс длительности входит в допустимый набор
func (t TimeSelection) IsValid() bool {
	switch t {
	case TimeSelectionOneHour, TimeSelectionTwoHours, TimeSelectionThreeHours:
		return true
	}
	return false
}

// Consultation слот консультации, опубликованный специалистом
// Интервал полуоткрытый [StartTime, EndTime), EndTime = StartTime + длительность класса
type Consultation struct {
	ID            int64
	SpecialistID  int64 // ID пользователя-специалиста, владельца слота
	TimeSelection TimeSelection
	StartTime     time.Time
	EndTime       time.Time
	Booking       bool // true после подтверждения одной из заявок
	Price         float64
	Description   string
	Archived      bool

	// TaskID ссылка на отложенную задачу авто-архивации
	// Непрозрачный handle, состояние задачи живет в планировщике
	TaskID *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps проверяет пересечение с другим полуоткрытым интервалом
// Касание границ ([10:00,11:00) и [11:00,12:00)) пересечением не считается
func (c *Consultation) Overlaps(start, end time.Time) bool {
	return c.StartTime.Before(end) && c.EndTime.After(start)
}

// CanBeUpdated возвращает true, если консультацию ещё можно редактировать
// Забронированный слот редактировать нельзя, сначала снимается бронь
func (c *Consultation) CanBeUpdated() bool {
	return !c.Archived && !c.Booking
}

// CanBeCancelled возвращает true, если консультацию можно отменить
func (c *Consultation) CanBeCancelled() bool {
	return !c.Archived
}
