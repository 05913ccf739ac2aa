package task

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/pkg/psqlbuilder"
	"github.com/vkorolev/CPS-ConsultationService/pkg/txmanager"
)

const taskColumns = "id, consultation_id, run_at, status, created_at, updated_at"

// Repository репозиторий очереди отложенных задач
// Очередь durable: задачи хранятся в БД и переживают рестарт процесса
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория задач
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create ставит задачу авто-архивации в очередь и возвращает её handle
func (r *Repository) Create(ctx context.Context, consultationID int64, runAt time.Time) (uuid.UUID, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	id := uuid.New()

	query, args, err := psqlbuilder.Insert("scheduled_tasks").
		Columns("id", "consultation_id", "run_at", "status").
		Values(id, consultationID, runAt, domain.TaskStatusPending).
		ToSql()

	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return uuid.Nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return id, nil
}

// CancelByID отмечает задачу отмененной
// Best-effort: уже выполненную (done) задачу отмена не трогает
func (r *Repository) CancelByID(ctx context.Context, id uuid.UUID) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("scheduled_tasks").
		Set("status", domain.TaskStatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.TaskStatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelByID - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CancelByID - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// DueTasks забирает пачку задач с наступившим run_at
// FOR UPDATE SKIP LOCKED позволяет нескольким воркерам не мешать друг другу
func (r *Repository) DueTasks(ctx context.Context, now time.Time, limit uint64) ([]*domain.ScheduledTask, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(taskColumns).
		From("scheduled_tasks").
		Where(squirrel.Eq{"status": domain.TaskStatusPending}).
		Where(squirrel.LtOrEq{"run_at": now}).
		OrderBy("run_at ASC").
		Limit(limit).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: DueTasks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: DueTasks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tasks := make([]*domain.ScheduledTask, 0)
	for rows.Next() {
		var t domain.ScheduledTask
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&t.ID,
			&t.ConsultationID,
			&t.RunAt,
			&t.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: DueTasks - scan row: %v", ErrScanRow, err)
		}

		t.CreatedAt = createdAt.Time
		t.UpdatedAt = updatedAt.Time

		tasks = append(tasks, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: DueTasks - rows error: %v", ErrScanRow, err)
	}

	return tasks, nil
}

// MarkDone отмечает задачу выполненной
func (r *Repository) MarkDone(ctx context.Context, id uuid.UUID) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("scheduled_tasks").
		Set("status", domain.TaskStatusDone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkDone - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkDone - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkDone - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}
