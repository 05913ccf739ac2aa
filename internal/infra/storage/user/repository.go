package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/pkg/psqlbuilder"
	"github.com/vkorolev/CPS-ConsultationService/pkg/txmanager"
)

const userColumns = "id, username, email, is_verified, is_active, is_admin, created_at, updated_at"

// Repository репозиторий для работы с учетными записями
// Регистрация и аутентификация выполняются внешним identity-провайдером,
// здесь только чтение и флаги активности/подтверждения почты
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var u domain.User
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.IsVerified,
		&u.IsActive,
		&u.IsAdmin,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %v", ErrScanRow, err)
	}

	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time

	return &u, nil
}

// SetActive выставляет признак активности учетной записи
func (r *Repository) SetActive(ctx context.Context, id int64, isActive bool) error {
	return r.setFlag(ctx, id, "is_active", isActive, "SetActive")
}

// SetVerified выставляет признак подтвержденной почты
func (r *Repository) SetVerified(ctx context.Context, id int64, isVerified bool) error {
	return r.setFlag(ctx, id, "is_verified", isVerified, "SetVerified")
}

func (r *Repository) setFlag(ctx context.Context, id int64, column string, value bool, op string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set(column, value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
