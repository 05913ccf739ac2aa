package domain

import "time"

// User учетная запись пользователя платформы
// Аутентификация и выпуск токенов выполняются внешним identity-провайдером,
// здесь хранятся только флаги, нужные ядру
type User struct {
	ID         int64
	Username   string
	Email      string
	IsVerified bool
	IsActive   bool
	IsAdmin    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity проверенная личность вызывающего, разрешенная на границе API
// Ядро доверяет этим полям и не выполняет аутентификацию само
type Identity struct {
	UserID       int64
	IsSpecialist bool
	IsAdmin      bool
	IsActive     bool
}
