package scheduler

import (
	"context"
	"time"

	"github.com/vkorolev/CPS-ConsultationService/pkg/metrics"
)

const defaultBatchSize = 50

// Worker фоновый обработчик очереди отложенных задач.
// Периодически выбирает созревшие задачи (FOR UPDATE SKIP LOCKED позволяет
// запускать несколько воркеров параллельно) и выполняет авто-архивацию
type Worker struct {
	tasks        TaskRepository
	archiver     Archiver
	txManager    TransactionManager
	metrics      *metrics.Metrics
	logger       Logger
	pollInterval time.Duration
	batchSize    uint64
	stopChan     chan struct{}
	doneChan     chan struct{}
}

func NewWorker(
	tasks TaskRepository,
	archiver Archiver,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
	pollInterval time.Duration,
) *Worker {
	return &Worker{
		tasks:        tasks,
		archiver:     archiver,
		txManager:    txManager,
		metrics:      m,
		logger:       logger,
		pollInterval: pollInterval,
		batchSize:    defaultBatchSize,
		stopChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
	}
}

// Start запускает цикл обработки в отдельной горутине
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
	w.logger.Info("scheduler worker: started, poll interval %s", w.pollInterval)
}

// Stop останавливает воркер и дожидается завершения текущей итерации
func (w *Worker) Stop() {
	close(w.stopChan)
	<-w.doneChan
	w.logger.Info("scheduler worker: stopped")
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.doneChan)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.processDueTasks(ctx)
		}
	}
}

// processDueTasks обрабатывает созревшие задачи по одной, каждую в своей
// транзакции: захват строки, авто-архивация и отметка done фиксируются
// атомарно, поэтому задача либо выполнена ровно один раз, либо останется
// pending и будет повторена на следующей итерации
func (w *Worker) processDueTasks(ctx context.Context) {
	for {
		processed, err := w.processOne(ctx)
		if err != nil {
			w.logger.Error("scheduler worker: process task: %v", err)
			if w.metrics != nil {
				w.metrics.ScheduledTasksFailed.Inc()
			}

			return
		}

		if !processed {
			return
		}

		if w.metrics != nil {
			w.metrics.ScheduledTasksFired.Inc()
		}
	}
}

func (w *Worker) processOne(ctx context.Context) (bool, error) {
	processed := false

	err := w.txManager.Do(ctx, func(ctx context.Context) error {
		tasks, err := w.tasks.DueTasks(ctx, time.Now(), 1)
		if err != nil {
			return err
		}

		if len(tasks) == 0 {
			return nil
		}

		task := tasks[0]

		if err := w.archiver.AutoArchive(ctx, task.ConsultationID); err != nil {
			return err
		}

		if err := w.tasks.MarkDone(ctx, task.ID); err != nil {
			return err
		}

		w.logger.Info("scheduler worker: task %s done, consultation %d archived", task.ID, task.ConsultationID)
		processed = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return processed, nil
}
