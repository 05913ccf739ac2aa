package consultations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	consultationRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/consultation"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/consultations/models"
	"github.com/vkorolev/CPS-ConsultationService/pkg/ptr"
)

type fakeConsultationRepo struct {
	byID     map[int64]*domain.Consultation
	archived []int64
	taskIDs  map[int64]*uuid.UUID
	updated  []*domain.Consultation
}

func newFakeConsultationRepo(list ...*domain.Consultation) *fakeConsultationRepo {
	f := &fakeConsultationRepo{
		byID:    make(map[int64]*domain.Consultation),
		taskIDs: make(map[int64]*uuid.UUID),
	}
	for _, c := range list {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeConsultationRepo) GetByID(_ context.Context, id int64, _ bool) (*domain.Consultation, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, consultationRepo.ErrConsultationNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeConsultationRepo) GetWithFilter(_ context.Context, _ domain.ConsultationsFilter) ([]*domain.Consultation, error) {
	var out []*domain.Consultation
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeConsultationRepo) ListActiveBySpecialist(_ context.Context, specialistID int64) ([]*domain.Consultation, error) {
	var out []*domain.Consultation
	for _, c := range f.byID {
		if c.SpecialistID == specialistID && !c.Archived {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConsultationRepo) Update(_ context.Context, c *domain.Consultation) error {
	f.updated = append(f.updated, c)
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeConsultationRepo) SetArchived(_ context.Context, id int64) error {
	f.archived = append(f.archived, id)
	if c, ok := f.byID[id]; ok {
		c.Archived = true
	}
	return nil
}

func (f *fakeConsultationRepo) SetTaskID(_ context.Context, id int64, taskID *uuid.UUID) error {
	f.taskIDs[id] = taskID
	return nil
}

type fakeBookingRepo struct {
	byConsultation map[int64][]*domain.Booking
	cancelled      map[int64]string
	completed      []int64
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{
		byConsultation: make(map[int64][]*domain.Booking),
		cancelled:      make(map[int64]string),
	}
	for _, b := range bookings {
		f.byConsultation[b.ConsultationID] = append(f.byConsultation[b.ConsultationID], b)
	}
	return f
}

func (f *fakeBookingRepo) ListByConsultation(_ context.Context, consultationID int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.byConsultation[consultationID], nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	f.cancelled[id] = reason
	return nil
}

func (f *fakeBookingRepo) Complete(_ context.Context, id int64) error {
	f.completed = append(f.completed, id)
	return nil
}

type fakeScheduler struct {
	scheduled map[int64]time.Time
	cancelled []uuid.UUID
	nextID    uuid.UUID
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{
		scheduled: make(map[int64]time.Time),
		nextID:    uuid.New(),
	}
}

func (f *fakeScheduler) Schedule(_ context.Context, consultationID int64, runAt time.Time) (uuid.UUID, error) {
	f.scheduled[consultationID] = runAt
	return f.nextID, nil
}

func (f *fakeScheduler) Cancel(_ context.Context, taskID uuid.UUID) error {
	f.cancelled = append(f.cancelled, taskID)
	return nil
}

type fakeInvalidator struct {
	patterns []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, patterns ...string) {
	f.patterns = append(f.patterns, patterns...)
}

type fakeNotifier struct {
	events []notifyservice.Event
	users  []int64
}

func (f *fakeNotifier) NotifyAsync(event notifyservice.Event, userID, _ int64, _ string) {
	f.events = append(f.events, event)
	f.users = append(f.users, userID)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func testConsultation(id, specialistID int64) *domain.Consultation {
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	taskID := uuid.New()
	return &domain.Consultation{
		ID:            id,
		SpecialistID:  specialistID,
		TimeSelection: domain.TimeSelectionOneHour,
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		Price:         1500,
		TaskID:        &taskID,
	}
}

func newService(cr *fakeConsultationRepo, br *fakeBookingRepo, sch *fakeScheduler) (*Service, *fakeInvalidator, *fakeNotifier) {
	inv := &fakeInvalidator{}
	not := &fakeNotifier{}
	svc := NewService(cr, br, sch, inv, not, fakeTxManager{}, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}
	return svc, inv, not
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := newService(newFakeConsultationRepo(), newFakeBookingRepo(), newFakeScheduler())

	_, err := svc.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestService_Update_AccessDenied(t *testing.T) {
	c := testConsultation(1, 10)
	svc, _, _ := newService(newFakeConsultationRepo(c), newFakeBookingRepo(), newFakeScheduler())

	_, err := svc.Update(context.Background(), 1, domain.Identity{UserID: 99}, &models.UpdateConsultationRequest{
		Price: ptr.Ptr(2000.0),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Update_BookedRejected(t *testing.T) {
	c := testConsultation(1, 10)
	c.Booking = true
	svc, _, _ := newService(newFakeConsultationRepo(c), newFakeBookingRepo(), newFakeScheduler())

	_, err := svc.Update(context.Background(), 1, domain.Identity{UserID: 10}, &models.UpdateConsultationRequest{
		Price: ptr.Ptr(2000.0),
	})

	assert.ErrorIs(t, err, ErrCannotUpdate)
}

func TestService_Update_TimeConflict(t *testing.T) {
	c := testConsultation(1, 10)
	other := testConsultation(2, 10)
	other.StartTime = time.Date(2026, 9, 11, 14, 30, 0, 0, time.UTC)
	other.EndTime = other.StartTime.Add(time.Hour)
	repo := newFakeConsultationRepo(c, other)
	svc, _, _ := newService(repo, newFakeBookingRepo(), newFakeScheduler())

	_, err := svc.Update(context.Background(), 1, domain.Identity{UserID: 10}, &models.UpdateConsultationRequest{
		StartTime: ptr.Ptr("2026-09-11 15:00"),
	})

	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Empty(t, repo.updated)
}

func TestService_Update_TouchingIntervalsAllowed(t *testing.T) {
	c := testConsultation(1, 10)
	other := testConsultation(2, 10)
	other.StartTime = time.Date(2026, 9, 11, 14, 0, 0, 0, time.UTC)
	other.EndTime = other.StartTime.Add(time.Hour)
	repo := newFakeConsultationRepo(c, other)
	svc, _, _ := newService(repo, newFakeBookingRepo(), newFakeScheduler())

	// новый интервал [15:00, 16:00) начинается ровно в конце соседнего
	resp, err := svc.Update(context.Background(), 1, domain.Identity{UserID: 10}, &models.UpdateConsultationRequest{
		StartTime: ptr.Ptr("2026-09-11 15:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-09-11 15:00", resp.StartTime)
}

func TestService_Update_PastStartTimeRejected(t *testing.T) {
	c := testConsultation(1, 10)
	repo := newFakeConsultationRepo(c)
	sch := newFakeScheduler()
	svc, _, _ := newService(repo, newFakeBookingRepo(), sch)

	past := testNow.Add(-48 * time.Hour).Format(domain.DateTimeFormat)
	_, err := svc.Update(context.Background(), 1, domain.Identity{UserID: 10}, &models.UpdateConsultationRequest{
		StartTime: ptr.Ptr(past),
	})

	assert.ErrorIs(t, err, ErrStartTimeInPast)
	assert.Empty(t, repo.updated)
	assert.Empty(t, sch.scheduled)
}

func TestService_Update_RescheduleOnTimeChange(t *testing.T) {
	c := testConsultation(1, 10)
	oldTaskID := *c.TaskID
	repo := newFakeConsultationRepo(c)
	sch := newFakeScheduler()
	svc, inv, _ := newService(repo, newFakeBookingRepo(), sch)

	resp, err := svc.Update(context.Background(), 1, domain.Identity{UserID: 10}, &models.UpdateConsultationRequest{
		StartTime:     ptr.Ptr("2026-09-11 15:00"),
		TimeSelection: ptr.Ptr("2"),
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-09-11 15:00", resp.StartTime)
	assert.Equal(t, "2026-09-11 17:00", resp.EndTime)

	// старая задача снята, новая поставлена на новое время начала
	assert.Equal(t, []uuid.UUID{oldTaskID}, sch.cancelled)
	assert.Equal(t, time.Date(2026, 9, 11, 15, 0, 0, 0, time.UTC), sch.scheduled[1])
	assert.NotEmpty(t, inv.patterns)
}

func TestService_Update_PriceOnlyReschedules(t *testing.T) {
	c := testConsultation(1, 10)
	oldTaskID := *c.TaskID
	repo := newFakeConsultationRepo(c)
	sch := newFakeScheduler()
	svc, _, _ := newService(repo, newFakeBookingRepo(), sch)

	resp, err := svc.Update(context.Background(), 1, domain.Identity{UserID: 10}, &models.UpdateConsultationRequest{
		Price: ptr.Ptr(3000.0),
	})

	require.NoError(t, err)
	assert.Equal(t, 3000.0, resp.Price)

	// задача перепланируется при любом обновлении, время начала прежнее
	assert.Equal(t, []uuid.UUID{oldTaskID}, sch.cancelled)
	assert.Equal(t, c.StartTime, sch.scheduled[1])
}

func TestService_Update_RestoresMissingTask(t *testing.T) {
	c := testConsultation(1, 10)
	c.TaskID = nil
	repo := newFakeConsultationRepo(c)
	sch := newFakeScheduler()
	svc, _, _ := newService(repo, newFakeBookingRepo(), sch)

	// слот остался без задачи авто-архивации (сбой планировщика при создании)
	_, err := svc.Update(context.Background(), 1, domain.Identity{UserID: 10}, &models.UpdateConsultationRequest{
		Price: ptr.Ptr(2000.0),
	})

	require.NoError(t, err)
	assert.Empty(t, sch.cancelled)
	assert.Equal(t, c.StartTime, sch.scheduled[1])
	require.NotNil(t, repo.taskIDs[1])
	assert.Equal(t, sch.nextID, *repo.taskIDs[1])
}

func TestService_Cancel_CascadesActiveBookings(t *testing.T) {
	c := testConsultation(1, 10)
	taskID := *c.TaskID
	pending := &domain.Booking{ID: 100, UserID: 31, ConsultationID: 1, Status: domain.BookingStatusPending}
	accepted := &domain.Booking{ID: 101, UserID: 32, ConsultationID: 1, Status: domain.BookingStatusAccepted}
	cancelled := &domain.Booking{ID: 102, UserID: 33, ConsultationID: 1, Status: domain.BookingStatusCancelled}

	repo := newFakeConsultationRepo(c)
	bookings := newFakeBookingRepo(pending, accepted, cancelled)
	sch := newFakeScheduler()
	svc, _, not := newService(repo, bookings, sch)

	err := svc.Cancel(context.Background(), 1, domain.Identity{UserID: 10}, "не смогу провести консультацию")

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.archived)
	assert.Equal(t, "не смогу провести консультацию", bookings.cancelled[100])
	assert.Equal(t, "не смогу провести консультацию", bookings.cancelled[101])
	assert.NotContains(t, bookings.cancelled, int64(102))
	assert.Equal(t, []uuid.UUID{taskID}, sch.cancelled)
	assert.ElementsMatch(t, []int64{31, 32}, not.users)
}

func TestService_Cancel_AccessDenied(t *testing.T) {
	c := testConsultation(1, 10)
	repo := newFakeConsultationRepo(c)
	svc, _, _ := newService(repo, newFakeBookingRepo(), newFakeScheduler())

	err := svc.Cancel(context.Background(), 1, domain.Identity{UserID: 99}, "причина")

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.archived)
}

func TestService_Cancel_EmptyReasonRejected(t *testing.T) {
	c := testConsultation(1, 10)
	repo := newFakeConsultationRepo(c)
	svc, _, _ := newService(repo, newFakeBookingRepo(), newFakeScheduler())

	err := svc.Cancel(context.Background(), 1, domain.Identity{UserID: 10}, "")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.archived)
}

func TestService_Cancel_AdminAllowed(t *testing.T) {
	c := testConsultation(1, 10)
	repo := newFakeConsultationRepo(c)
	svc, _, _ := newService(repo, newFakeBookingRepo(), newFakeScheduler())

	err := svc.Cancel(context.Background(), 1, domain.Identity{UserID: 99, IsAdmin: true}, "нарушение правил площадки")

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.archived)
}

func TestService_AutoArchive_CompletesAcceptedAndCancelsPending(t *testing.T) {
	c := testConsultation(1, 10)
	accepted := &domain.Booking{ID: 200, UserID: 41, ConsultationID: 1, Status: domain.BookingStatusAccepted}
	pending := &domain.Booking{ID: 201, UserID: 42, ConsultationID: 1, Status: domain.BookingStatusPending}

	repo := newFakeConsultationRepo(c)
	bookings := newFakeBookingRepo(accepted, pending)
	svc, _, _ := newService(repo, bookings, newFakeScheduler())

	err := svc.AutoArchive(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []int64{200}, bookings.completed)
	assert.Equal(t, domain.ReasonConsultationStarted, bookings.cancelled[201])
	assert.Equal(t, []int64{1}, repo.archived)
	assert.Nil(t, repo.taskIDs[1])
}

func TestService_AutoArchive_Idempotent(t *testing.T) {
	c := testConsultation(1, 10)
	repo := newFakeConsultationRepo(c)
	bookings := newFakeBookingRepo()
	svc, _, _ := newService(repo, bookings, newFakeScheduler())

	require.NoError(t, svc.AutoArchive(context.Background(), 1))
	require.NoError(t, svc.AutoArchive(context.Background(), 1))

	// повторный вызов ничего не архивирует заново
	assert.Equal(t, []int64{1}, repo.archived)
}

func TestService_AutoArchive_MissingConsultation(t *testing.T) {
	svc, _, _ := newService(newFakeConsultationRepo(), newFakeBookingRepo(), newFakeScheduler())

	assert.NoError(t, svc.AutoArchive(context.Background(), 404))
}
