package specialist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/pkg/psqlbuilder"
	"github.com/vkorolev/CPS-ConsultationService/pkg/txmanager"
)

const specialistColumns = "id, user_id, description, is_active, created_at, updated_at"

// Repository репозиторий для работы с профилями специалистов
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория специалистов
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create создает активный профиль специалиста
// Вызывается при одобрении кандидата; описание переносится из заявки
func (r *Repository) Create(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("specialists").
		Columns("user_id", "description", "is_active").
		Values(s.UserID, s.Description, s.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateSpecialist
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByUserID получает профиль специалиста по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Specialist, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(specialistColumns).
		From("specialists").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSpecialist(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSpecialistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan specialist: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает все профили специалистов, опционально только активные
func (r *Repository) List(ctx context.Context, isActive *bool) ([]*domain.Specialist, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(specialistColumns).
		From("specialists").
		OrderBy("user_id ASC")

	if isActive != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": *isActive})
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

	specialists := make([]*domain.Specialist, 0)
	for rows.Next() {
		s, err := scanSpecialist(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		specialists = append(specialists, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return specialists, nil
}

// SetActive выставляет признак активности профиля
// false = административная блокировка, true = разблокировка
func (r *Repository) SetActive(ctx context.Context, userID int64, isActive bool) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("specialists").
		Set("is_active", isActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "SetActive")
}

// UpdateDescription обновляет описание профиля специалиста
func (r *Repository) UpdateDescription(ctx context.Context, userID int64, description string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("specialists").
		Set("description", description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDescription - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDescription - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateDescription")
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrSpecialistNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpecialist(row rowScanner) (*domain.Specialist, error) {
	var s domain.Specialist
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Description,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
