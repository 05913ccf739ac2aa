package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/pkg/psqlbuilder"
	"github.com/vkorolev/CPS-ConsultationService/pkg/txmanager"
)

const bookingColumns = "id, user_id, consultation_id, status, rejection_reason, description, archived, created_at, updated_at"

// Repository репозиторий для работы с заявками на консультации
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку в статусе pending
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"consultation_id",
			"status",
			"description",
			"archived",
		).
		Values(
			b.UserID,
			b.ConsultationID,
			b.Status,
			b.Description,
			b.Archived,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает заявку по ID
// forUpdate добавляет блокировку строки (только внутри транзакции)
func (r *Repository) GetByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if forUpdate && txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// HasActiveByUserAndConsultation проверяет, есть ли у пользователя
// неотмененная заявка на указанную консультацию
func (r *Repository) HasActiveByUserAndConsultation(ctx context.Context, userID, consultationID int64) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"user_id": userID, "consultation_id": consultationID}).
		Where(squirrel.NotEq{"status": domain.BookingStatusCancelled}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasActiveByUserAndConsultation - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveByUserAndConsultation - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// ListByConsultation получает заявки консультации, опционально только по статусу
// Внутри транзакции строки блокируются (FOR UPDATE) - используется каскадами
// подтверждения и отмены
func (r *Repository) ListByConsultation(ctx context.Context, consultationID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"consultation_id": consultationID}).
		OrderBy("created_at ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByConsultation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByConsultation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetWithFilter получает список заявок с гибкой фильтрацией
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns).
		From("bookings").
		OrderBy("created_at DESC")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.ConsultationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"consultation_id": *filter.ConsultationID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Archived != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"archived": *filter.Archived})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус заявки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateStatus")
}

// Cancel переводит заявку в cancelled с причиной и архивирует её
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.BookingStatusCancelled).
		Set("rejection_reason", reason).
		Set("archived", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Cancel")
}

// Complete переводит заявку в completed и архивирует её
// Вызывается авто-архивацией консультации для подтвержденной заявки
func (r *Repository) Complete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.BookingStatusCompleted).
		Set("archived", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Complete")
}

// UpdateDescription обновляет описание заявки
// Единственное поле, доступное автору заявки для редактирования
func (r *Repository) UpdateDescription(ctx context.Context, id int64, description string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("description", description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
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
		return ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var reason sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ConsultationID,
		&b.Status,
		&reason,
		&b.Description,
		&b.Archived,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reason.Valid {
		b.RejectionReason = &reason.String
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
