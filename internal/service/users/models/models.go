package models

import (
	"time"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

// UserResponse пользователь во внешнем контракте
type UserResponse struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
	IsActive   bool   `json:"isActive"`
	IsAdmin    bool   `json:"isAdmin"`
	CreatedAt  string `json:"createdAt"`
}

// FromDomainUser конвертирует domain модель в response
func FromDomainUser(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		IsActive:   u.IsActive,
		IsAdmin:    u.IsAdmin,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}
