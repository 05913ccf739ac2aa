package candidate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/pkg/psqlbuilder"
	"github.com/vkorolev/CPS-ConsultationService/pkg/txmanager"
)

const candidateColumns = "id, user_id, status, rejection_reason, description, created_at, updated_at"

// uniqueViolation код ошибки PostgreSQL для нарушения уникального ограничения
const uniqueViolation = "23505"

// Repository репозиторий для работы с заявками на роль специалиста
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория кандидатов
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create создает заявку кандидата в статусе pending
// Уникальный индекс по user_id гарантирует не больше одной заявки на пользователя
func (r *Repository) Create(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("candidates").
		Columns("user_id", "status", "description").
		Values(c.UserID, c.Status, c.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateCandidate
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByUserID получает заявку кандидата по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Candidate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(candidateColumns).
		From("candidates").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCandidate(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCandidateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan candidate: %v", ErrScanRow, err)
	}

	return c, nil
}

// List получает все заявки кандидатов, опционально по статусу
func (r *Repository) List(ctx context.Context, status *domain.CandidateStatus) ([]*domain.Candidate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(candidateColumns).
		From("candidates").
		OrderBy("user_id ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	candidates := make([]*domain.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return candidates, nil
}

// Approve переводит заявку в approved
func (r *Repository) Approve(ctx context.Context, userID int64) error {
	return r.setStatus(ctx, userID, domain.CandidateStatusApproved, nil, nil)
}

// Cancel переводит заявку в cancelled с причиной отказа
func (r *Repository) Cancel(ctx context.Context, userID int64, reason string) error {
	return r.setStatus(ctx, userID, domain.CandidateStatusCancelled, &reason, nil)
}

// Reapply возвращает заявку в pending, очищая причину отказа и заменяя описание
func (r *Repository) Reapply(ctx context.Context, userID int64, description string) error {
	empty := ""
	return r.setStatus(ctx, userID, domain.CandidateStatusPending, &empty, &description)
}

func (r *Repository) setStatus(ctx context.Context, userID int64, status domain.CandidateStatus, reason *string, description *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("candidates").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID})

	if reason != nil {
		updateBuilder = updateBuilder.Set("rejection_reason", *reason)
	}
	if description != nil {
		updateBuilder = updateBuilder.Set("description", *description)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: setStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: setStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: setStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrCandidateNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCandidate(row rowScanner) (*domain.Candidate, error) {
	var c domain.Candidate
	var reason sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Status,
		&reason,
		&c.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reason.Valid && reason.String != "" {
		c.RejectionReason = &reason.String
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
