package domain

import "time"

// CandidateStatus статус заявки на роль специалиста
type CandidateStatus string

const (
	CandidateStatusPending   CandidateStatus = "pending"
	CandidateStatusCancelled CandidateStatus = "cancelled"
	CandidateStatusApproved  CandidateStatus = "approved"
)

// Candidate заявка пользователя на роль специалиста
// У пользователя может быть не более одной заявки (one-to-one)
// Переходы: pending -> approved, pending -> cancelled, cancelled -> pending (повторная подача)
type Candidate struct {
	ID              int64
	UserID          int64
	Status          CandidateStatus
	RejectionReason *string
	Description     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending возвращает true, если заявка ждет решения администратора
func (c *Candidate) IsPending() bool {
	return c.Status == CandidateStatusPending
}

// IsCancelled возвращает true, если заявка отклонена
func (c *Candidate) IsCancelled() bool {
	return c.Status == CandidateStatusCancelled
}

// IsApproved возвращает true, если заявка одобрена
// Из approved переходов нет
func (c *Candidate) IsApproved() bool {
	return c.Status == CandidateStatusApproved
}
