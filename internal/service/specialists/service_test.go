package specialists

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	specialistRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/specialist"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/specialists/models"
)

type fakeSpecialistRepo struct {
	byUserID     map[int64]*domain.Specialist
	descriptions map[int64]string
}

func newFakeSpecialistRepo(list ...*domain.Specialist) *fakeSpecialistRepo {
	f := &fakeSpecialistRepo{
		byUserID:     make(map[int64]*domain.Specialist),
		descriptions: make(map[int64]string),
	}
	for _, s := range list {
		f.byUserID[s.UserID] = s
	}
	return f
}

func (f *fakeSpecialistRepo) GetByUserID(_ context.Context, userID int64) (*domain.Specialist, error) {
	s, ok := f.byUserID[userID]
	if !ok {
		return nil, specialistRepo.ErrSpecialistNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSpecialistRepo) List(_ context.Context, isActive *bool) ([]*domain.Specialist, error) {
	var out []*domain.Specialist
	for _, s := range f.byUserID {
		if isActive != nil && s.IsActive != *isActive {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSpecialistRepo) SetActive(_ context.Context, userID int64, isActive bool) error {
	f.byUserID[userID].IsActive = isActive
	return nil
}

func (f *fakeSpecialistRepo) UpdateDescription(_ context.Context, userID int64, description string) error {
	if _, ok := f.byUserID[userID]; !ok {
		return specialistRepo.ErrSpecialistNotFound
	}
	f.descriptions[userID] = description
	return nil
}

type fakeConsultationRepo struct {
	active   []*domain.Consultation
	archived []int64
}

func (f *fakeConsultationRepo) ListActiveBySpecialist(_ context.Context, _ int64) ([]*domain.Consultation, error) {
	return f.active, nil
}

func (f *fakeConsultationRepo) SetArchived(_ context.Context, id int64) error {
	f.archived = append(f.archived, id)
	return nil
}

type fakeBookingRepo struct {
	byConsultation map[int64][]*domain.Booking
	cancelled      map[int64]string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byConsultation: make(map[int64][]*domain.Booking),
		cancelled:      make(map[int64]string),
	}
}

func (f *fakeBookingRepo) ListByConsultation(_ context.Context, consultationID int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.byConsultation[consultationID], nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	f.cancelled[id] = reason
	return nil
}

type fakeScheduler struct {
	cancelled []uuid.UUID
}

func (f *fakeScheduler) Cancel(_ context.Context, taskID uuid.UUID) error {
	f.cancelled = append(f.cancelled, taskID)
	return nil
}

type fakeInvalidator struct{}

func (fakeInvalidator) Invalidate(context.Context, ...string) {}

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

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newService(sr *fakeSpecialistRepo, cr *fakeConsultationRepo, br *fakeBookingRepo, sch *fakeScheduler) (*Service, *fakeNotifier) {
	not := &fakeNotifier{}
	svc := NewService(sr, cr, br, sch, fakeInvalidator{}, not, fakeTxManager{}, noopLogger{})
	return svc, not
}

var admin = domain.Identity{UserID: 1, IsAdmin: true}

func TestService_Block_CascadesConsultationsAndBookings(t *testing.T) {
	taskID := uuid.New()
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	consultation := &domain.Consultation{
		ID:           5,
		SpecialistID: 10,
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
		TaskID:       &taskID,
	}

	specialists := newFakeSpecialistRepo(&domain.Specialist{ID: 1, UserID: 10, IsActive: true})
	consultations := &fakeConsultationRepo{active: []*domain.Consultation{consultation}}
	bookings := newFakeBookingRepo()
	bookings.byConsultation[5] = []*domain.Booking{
		{ID: 100, UserID: 31, ConsultationID: 5, Status: domain.BookingStatusPending},
		{ID: 101, UserID: 32, ConsultationID: 5, Status: domain.BookingStatusCancelled},
	}
	sch := &fakeScheduler{}
	svc, not := newService(specialists, consultations, bookings, sch)

	err := svc.Block(context.Background(), admin, 10)

	require.NoError(t, err)
	assert.False(t, specialists.byUserID[10].IsActive)
	assert.Equal(t, []int64{5}, consultations.archived)
	assert.Equal(t, domain.ReasonSpecialistBlocked, bookings.cancelled[100])
	assert.NotContains(t, bookings.cancelled, int64(101))
	assert.Equal(t, []uuid.UUID{taskID}, sch.cancelled)
	assert.Contains(t, not.events, notifyservice.EventSpecialistBlocked)
	assert.Contains(t, not.users, int64(31))
}

func TestService_Block_AlreadyBlocked(t *testing.T) {
	specialists := newFakeSpecialistRepo(&domain.Specialist{ID: 1, UserID: 10, IsActive: false})
	svc, _ := newService(specialists, &fakeConsultationRepo{}, newFakeBookingRepo(), &fakeScheduler{})

	err := svc.Block(context.Background(), admin, 10)

	assert.ErrorIs(t, err, ErrAlreadyBlocked)
}

func TestService_Block_NonAdminDenied(t *testing.T) {
	svc, _ := newService(newFakeSpecialistRepo(), &fakeConsultationRepo{}, newFakeBookingRepo(), &fakeScheduler{})

	err := svc.Block(context.Background(), domain.Identity{UserID: 2}, 10)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Unblock(t *testing.T) {
	specialists := newFakeSpecialistRepo(&domain.Specialist{ID: 1, UserID: 10, IsActive: false})
	svc, _ := newService(specialists, &fakeConsultationRepo{}, newFakeBookingRepo(), &fakeScheduler{})

	err := svc.Unblock(context.Background(), admin, 10)

	require.NoError(t, err)
	assert.True(t, specialists.byUserID[10].IsActive)
}

func TestService_Unblock_ActiveRejected(t *testing.T) {
	specialists := newFakeSpecialistRepo(&domain.Specialist{ID: 1, UserID: 10, IsActive: true})
	svc, _ := newService(specialists, &fakeConsultationRepo{}, newFakeBookingRepo(), &fakeScheduler{})

	err := svc.Unblock(context.Background(), admin, 10)

	assert.ErrorIs(t, err, ErrNotBlocked)
}

func TestService_List_NonAdminSeesOnlyActive(t *testing.T) {
	specialists := newFakeSpecialistRepo(
		&domain.Specialist{ID: 1, UserID: 10, IsActive: true},
		&domain.Specialist{ID: 2, UserID: 11, IsActive: false},
	)
	svc, _ := newService(specialists, &fakeConsultationRepo{}, newFakeBookingRepo(), &fakeScheduler{})

	resp, err := svc.List(context.Background(), domain.Identity{UserID: 2}, &models.ListSpecialistsRequest{})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(10), resp.Specialists[0].UserID)
}

func TestService_UpdateDescription_OwnerAllowed(t *testing.T) {
	specialists := newFakeSpecialistRepo(&domain.Specialist{ID: 1, UserID: 10, IsActive: true})
	svc, _ := newService(specialists, &fakeConsultationRepo{}, newFakeBookingRepo(), &fakeScheduler{})

	err := svc.UpdateDescription(context.Background(), 10, domain.Identity{UserID: 10}, &models.UpdateSpecialistRequest{
		Description: "семейное право",
	})

	require.NoError(t, err)
	assert.Equal(t, "семейное право", specialists.descriptions[10])
}

func TestService_UpdateDescription_StrangerDenied(t *testing.T) {
	svc, _ := newService(newFakeSpecialistRepo(), &fakeConsultationRepo{}, newFakeBookingRepo(), &fakeScheduler{})

	err := svc.UpdateDescription(context.Background(), 10, domain.Identity{UserID: 99}, &models.UpdateSpecialistRequest{})

	assert.ErrorIs(t, err, ErrAccessDenied)
}
