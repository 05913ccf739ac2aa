package create_booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	consultationRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/consultation"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
)

type fakeBookingRepo struct {
	active  map[int64]map[int64]bool // userID -> consultationID -> активная заявка
	created []*domain.Booking
	nextID  int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{active: make(map[int64]map[int64]bool), nextID: 1}
}

func (f *fakeBookingRepo) markActive(userID, consultationID int64) {
	if f.active[userID] == nil {
		f.active[userID] = make(map[int64]bool)
	}
	f.active[userID][consultationID] = true
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = f.nextID
	f.nextID++
	f.created = append(f.created, b)
	f.markActive(b.UserID, b.ConsultationID)
	return b, nil
}

func (f *fakeBookingRepo) HasActiveByUserAndConsultation(_ context.Context, userID, consultationID int64) (bool, error) {
	return f.active[userID][consultationID], nil
}

type fakeConsultationRepo struct {
	byID map[int64]*domain.Consultation
}

func newFakeConsultationRepo(list ...*domain.Consultation) *fakeConsultationRepo {
	f := &fakeConsultationRepo{byID: make(map[int64]*domain.Consultation)}
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
	return c, nil
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

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newUseCase(br *fakeBookingRepo, cr *fakeConsultationRepo) (*UseCase, *fakeNotifier) {
	not := &fakeNotifier{}
	return NewUseCase(br, cr, fakeInvalidator{}, not, fakeTxManager{}, noopLogger{}), not
}

func TestUseCase_Execute(t *testing.T) {
	consultation := &domain.Consultation{ID: 5, SpecialistID: 10}
	repo := newFakeBookingRepo()
	uc, not := newUseCase(repo, newFakeConsultationRepo(consultation))

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:         20,
		ConsultationID: 5,
		Description:    "вопрос по аренде",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusPending), resp.Status)
	require.Len(t, repo.created, 1)
	// специалист уведомлен о новой заявке
	assert.Equal(t, []notifyservice.Event{notifyservice.EventBookingCreated}, not.events)
	assert.Equal(t, []int64{10}, not.users)
}

func TestUseCase_Execute_ConsultationNotFound(t *testing.T) {
	uc, _ := newUseCase(newFakeBookingRepo(), newFakeConsultationRepo())

	_, err := uc.Execute(context.Background(), &Request{UserID: 20, ConsultationID: 404})

	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestUseCase_Execute_ArchivedRejected(t *testing.T) {
	consultation := &domain.Consultation{ID: 5, SpecialistID: 10, Archived: true}
	uc, _ := newUseCase(newFakeBookingRepo(), newFakeConsultationRepo(consultation))

	_, err := uc.Execute(context.Background(), &Request{UserID: 20, ConsultationID: 5})

	assert.ErrorIs(t, err, ErrConsultationArchived)
}

func TestUseCase_Execute_BookedRejected(t *testing.T) {
	consultation := &domain.Consultation{ID: 5, SpecialistID: 10, Booking: true}
	uc, _ := newUseCase(newFakeBookingRepo(), newFakeConsultationRepo(consultation))

	_, err := uc.Execute(context.Background(), &Request{UserID: 20, ConsultationID: 5})

	assert.ErrorIs(t, err, ErrConsultationBooked)
}

func TestUseCase_Execute_OwnConsultationRejected(t *testing.T) {
	consultation := &domain.Consultation{ID: 5, SpecialistID: 10}
	uc, _ := newUseCase(newFakeBookingRepo(), newFakeConsultationRepo(consultation))

	_, err := uc.Execute(context.Background(), &Request{UserID: 10, ConsultationID: 5})

	assert.ErrorIs(t, err, ErrOwnConsultation)
}

func TestUseCase_Execute_DuplicateRejected(t *testing.T) {
	consultation := &domain.Consultation{ID: 5, SpecialistID: 10}
	repo := newFakeBookingRepo()
	repo.markActive(20, 5)
	uc, _ := newUseCase(repo, newFakeConsultationRepo(consultation))

	_, err := uc.Execute(context.Background(), &Request{UserID: 20, ConsultationID: 5})

	assert.ErrorIs(t, err, ErrDuplicateBooking)
	assert.Empty(t, repo.created)
}
