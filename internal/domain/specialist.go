package domain

import "time"

// Specialist профиль специалиста, создается при одобрении кандидата
type Specialist struct {
	ID          int64
	UserID      int64 // one-to-one с пользователем
	Description string
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
