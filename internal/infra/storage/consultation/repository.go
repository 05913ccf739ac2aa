package consultation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/pkg/psqlbuilder"
	"github.com/vkorolev/CPS-ConsultationService/pkg/txmanager"
)

const consultationColumns = "id, specialist_id, time_selection, start_time, end_time, booking, price, description, archived, task_id, created_at, updated_at"

// Repository репозиторий для работы с консультациями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория консультаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую консультацию
// Проверка пересечений (ListActiveBySpecialist) и вставка должны выполняться
// в одной транзакции, иначе два конкурирующих запроса могут создать
// пересекающиеся слоты
func (r *Repository) Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("consultations").
		Columns(
			"specialist_id",
			"time_selection",
			"start_time",
			"end_time",
			"booking",
			"price",
			"description",
			"archived",
		).
		Values(
			c.SpecialistID,
			c.TimeSelection,
			c.StartTime,
			c.EndTime,
			c.Booking,
			c.Price,
			c.Description,
			c.Archived,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает консультацию по ID
// forUpdate добавляет блокировку строки (только внутри транзакции)
func (r *Repository) GetByID(ctx context.Context, id int64, forUpdate bool) (*domain.Consultation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(consultationColumns).
		From("consultations").
		Where(squirrel.Eq{"id": id})

	if forUpdate && txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanConsultation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConsultationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan consultation: %v", ErrScanRow, err)
	}

	return c, nil
}

// GetWithFilter получает список консультаций с гибкой фильтрацией
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.ConsultationsFilter) ([]*domain.Consultation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(consultationColumns).
		From("consultations").
		OrderBy("start_time ASC")

	if filter.SpecialistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"specialist_id": *filter.SpecialistID})
	}
	if filter.Archived != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"archived": *filter.Archived})
	}
	if filter.Booking != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking": *filter.Booking})
	}
	if filter.PriceFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"price": *filter.PriceFrom})
	}
	if filter.PriceTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"price": *filter.PriceTo})
	}
	if filter.StartFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.StartFrom})
	}
	if filter.StartTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_time": *filter.StartTo})
	}
	if filter.TimeSelection != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"time_selection": *filter.TimeSelection})
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

	return scanConsultations(rows)
}

// ListActiveBySpecialist получает неархивные консультации специалиста
// Внутри транзакции строки блокируются (FOR UPDATE) - используется каскадом
// блокировки специалиста
func (r *Repository) ListActiveBySpecialist(ctx context.Context, specialistID int64) ([]*domain.Consultation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(consultationColumns).
		From("consultations").
		Where(squirrel.Eq{"specialist_id": specialistID, "archived": false}).
		OrderBy("start_time ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBySpecialist - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBySpecialist - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanConsultations(rows)
}

// Update обновляет изменяемые поля консультации
func (r *Repository) Update(ctx context.Context, c *domain.Consultation) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consultations").
		Set("time_selection", c.TimeSelection).
		Set("start_time", c.StartTime).
		Set("end_time", c.EndTime).
		Set("price", c.Price).
		Set("description", c.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// SetBooking выставляет признак брони консультации
func (r *Repository) SetBooking(ctx context.Context, id int64, booking bool) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consultations").
		Set("booking", booking).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetBooking - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetBooking - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "SetBooking")
}

// SetArchived переводит консультацию в архив. Архивация терминальна
func (r *Repository) SetArchived(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consultations").
		Set("archived", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetArchived - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetArchived - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "SetArchived")
}

// SetTaskID сохраняет handle отложенной задачи авто-архивации (nil очищает)
func (r *Repository) SetTaskID(ctx context.Context, id int64, taskID *uuid.UUID) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consultations").
		Set("task_id", taskID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetTaskID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetTaskID - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "SetTaskID")
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrConsultationNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConsultation(row rowScanner) (*domain.Consultation, error) {
	var c domain.Consultation
	var taskID uuid.NullUUID
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.SpecialistID,
		&c.TimeSelection,
		&c.StartTime,
		&c.EndTime,
		&c.Booking,
		&c.Price,
		&c.Description,
		&c.Archived,
		&taskID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if taskID.Valid {
		c.TaskID = &taskID.UUID
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

func scanConsultations(rows *sql.Rows) ([]*domain.Consultation, error) {
	consultations := make([]*domain.Consultation, 0)

	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanConsultations - scan row: %v", ErrScanRow, err)
		}
		consultations = append(consultations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanConsultations - rows error: %v", ErrScanRow, err)
	}

	return consultations, nil
}
