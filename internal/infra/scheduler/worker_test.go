package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

type fakeTaskRepo struct {
	due        []*domain.ScheduledTask
	created    []int64
	cancelled  []uuid.UUID
	done       []uuid.UUID
	createErr  error
	dueTaskErr error
}

func (f *fakeTaskRepo) Create(_ context.Context, consultationID int64, _ time.Time) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, consultationID)
	return uuid.New(), nil
}

func (f *fakeTaskRepo) CancelByID(_ context.Context, id uuid.UUID) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeTaskRepo) DueTasks(_ context.Context, _ time.Time, limit uint64) ([]*domain.ScheduledTask, error) {
	if f.dueTaskErr != nil {
		return nil, f.dueTaskErr
	}
	if len(f.due) == 0 {
		return nil, nil
	}
	n := int(limit)
	if n > len(f.due) {
		n = len(f.due)
	}
	batch := f.due[:n]
	f.due = f.due[n:]
	return batch, nil
}

func (f *fakeTaskRepo) MarkDone(_ context.Context, id uuid.UUID) error {
	f.done = append(f.done, id)
	return nil
}

type fakeArchiver struct {
	archived []int64
	errFor   map[int64]error
}

func (f *fakeArchiver) AutoArchive(_ context.Context, consultationID int64) error {
	if err := f.errFor[consultationID]; err != nil {
		return err
	}
	f.archived = append(f.archived, consultationID)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTask(consultationID int64) *domain.ScheduledTask {
	return &domain.ScheduledTask{
		ID:             uuid.New(),
		ConsultationID: consultationID,
		RunAt:          time.Now().Add(-time.Minute),
		Status:         domain.TaskStatusPending,
	}
}

func TestScheduler_Schedule(t *testing.T) {
	repo := &fakeTaskRepo{}
	s := New(repo, noopLogger{})

	taskID, err := s.Schedule(context.Background(), 42, time.Now().Add(time.Hour))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, taskID)
	assert.Equal(t, []int64{42}, repo.created)
}

func TestScheduler_Schedule_RepoError(t *testing.T) {
	repo := &fakeTaskRepo{createErr: errors.New("db down")}
	s := New(repo, noopLogger{})

	_, err := s.Schedule(context.Background(), 42, time.Now().Add(time.Hour))

	require.Error(t, err)
}

func TestScheduler_Cancel(t *testing.T) {
	repo := &fakeTaskRepo{}
	s := New(repo, noopLogger{})
	taskID := uuid.New()

	err := s.Cancel(context.Background(), taskID)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{taskID}, repo.cancelled)
}

func TestWorker_ProcessDueTasks(t *testing.T) {
	first := newTask(1)
	second := newTask(2)
	repo := &fakeTaskRepo{due: []*domain.ScheduledTask{first, second}}
	archiver := &fakeArchiver{}

	w := NewWorker(repo, archiver, fakeTxManager{}, nil, noopLogger{}, time.Second)
	w.processDueTasks(context.Background())

	assert.Equal(t, []int64{1, 2}, archiver.archived)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID}, repo.done)
}

func TestWorker_ProcessDueTasks_ArchiverError(t *testing.T) {
	task := newTask(7)
	repo := &fakeTaskRepo{due: []*domain.ScheduledTask{task}}
	archiver := &fakeArchiver{errFor: map[int64]error{7: errors.New("boom")}}

	w := NewWorker(repo, archiver, fakeTxManager{}, nil, noopLogger{}, time.Second)
	w.processDueTasks(context.Background())

	// задача не отмечена выполненной и будет повторена
	assert.Empty(t, repo.done)
}

func TestWorker_StartStop(t *testing.T) {
	repo := &fakeTaskRepo{}
	archiver := &fakeArchiver{}

	w := NewWorker(repo, archiver, fakeTxManager{}, nil, noopLogger{}, 10*time.Millisecond)
	w.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	w.Stop()
}
