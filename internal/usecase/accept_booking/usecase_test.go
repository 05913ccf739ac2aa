package accept_booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	bookingRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/booking"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
)

type fakeBookingRepo struct {
	byID      map[int64]*domain.Booking
	statuses  map[int64]domain.BookingStatus
	cancelled map[int64]string
}

func newFakeBookingRepo(list ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{
		byID:      make(map[int64]*domain.Booking),
		statuses:  make(map[int64]domain.BookingStatus),
		cancelled: make(map[int64]string),
	}
	for _, b := range list {
		f.byID[b.ID] = b
	}
	return f
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64, _ bool) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) ListByConsultation(_ context.Context, consultationID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.ConsultationID != consultationID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.statuses[id] = status
	f.byID[id].Status = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	f.cancelled[id] = reason
	f.byID[id].Status = domain.BookingStatusCancelled
	return nil
}

type fakeConsultationRepo struct {
	byID       map[int64]*domain.Consultation
	setBooking map[int64]bool
}

func newFakeConsultationRepo(list ...*domain.Consultation) *fakeConsultationRepo {
	f := &fakeConsultationRepo{
		byID:       make(map[int64]*domain.Consultation),
		setBooking: make(map[int64]bool),
	}
	for _, c := range list {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeConsultationRepo) GetByID(_ context.Context, id int64, _ bool) (*domain.Consultation, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, assert.AnError
	}
	cp := *c
	return &cp, nil
}

func (f *fakeConsultationRepo) SetBooking(_ context.Context, id int64, booking bool) error {
	f.setBooking[id] = booking
	f.byID[id].Booking = booking
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

func specialistIdentity() RequestIdentity {
	return RequestIdentity{UserID: 10}
}

func TestUseCase_Execute_AcceptanceCascade(t *testing.T) {
	consultation := &domain.Consultation{ID: 5, SpecialistID: 10}
	target := &domain.Booking{ID: 100, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusPending}
	sibling := &domain.Booking{ID: 101, UserID: 21, ConsultationID: 5, Status: domain.BookingStatusPending}
	other := &domain.Booking{ID: 102, UserID: 22, ConsultationID: 7, Status: domain.BookingStatusPending}

	bookings := newFakeBookingRepo(target, sibling, other)
	consultations := newFakeConsultationRepo(consultation)
	uc, not := newUseCase(bookings, consultations)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 100, Identity: specialistIdentity()})

	require.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusAccepted), resp.Status)
	assert.Equal(t, 1, resp.CancelledSiblings)

	// конкурирующая заявка отменена с системной причиной
	assert.Equal(t, domain.ReasonBookedByAnother, bookings.cancelled[101])
	// заявка на другую консультацию не тронута
	assert.NotContains(t, bookings.cancelled, int64(102))
	// бронь установлена
	assert.True(t, consultations.setBooking[5])

	// автор заявки и отклоненный конкурент уведомлены
	assert.Contains(t, not.events, notifyservice.EventBookingAccepted)
	assert.Contains(t, not.users, int64(20))
	assert.Contains(t, not.users, int64(21))
}

func TestUseCase_Execute_NotPending(t *testing.T) {
	consultation := &domain.Consultation{ID: 5, SpecialistID: 10}
	cancelled := &domain.Booking{ID: 100, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusCancelled}
	uc, _ := newUseCase(newFakeBookingRepo(cancelled), newFakeConsultationRepo(consultation))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 100, Identity: specialistIdentity()})

	assert.ErrorIs(t, err, ErrNotPending)
}

func TestUseCase_Execute_AlreadyBooked(t *testing.T) {
	consultation := &domain.Consultation{ID: 5, SpecialistID: 10, Booking: true}
	pending := &domain.Booking{ID: 100, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusPending}
	uc, _ := newUseCase(newFakeBookingRepo(pending), newFakeConsultationRepo(consultation))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 100, Identity: specialistIdentity()})

	assert.ErrorIs(t, err, ErrConsultationBooked)
}

func TestUseCase_Execute_ArchivedConsultation(t *testing.T) {
	consultation := &domain.Consultation{ID: 5, SpecialistID: 10, Archived: true}
	pending := &domain.Booking{ID: 100, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusPending}
	uc, _ := newUseCase(newFakeBookingRepo(pending), newFakeConsultationRepo(consultation))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 100, Identity: specialistIdentity()})

	assert.ErrorIs(t, err, ErrConsultationArchived)
}

func TestUseCase_Execute_StrangerDenied(t *testing.T) {
	consultation := &domain.Consultation{ID: 5, SpecialistID: 10}
	pending := &domain.Booking{ID: 100, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusPending}
	uc, _ := newUseCase(newFakeBookingRepo(pending), newFakeConsultationRepo(consultation))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 100, Identity: RequestIdentity{UserID: 99}})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUseCase_Execute_AdminAllowed(t *testing.T) {
	consultation := &domain.Consultation{ID: 5, SpecialistID: 10}
	pending := &domain.Booking{ID: 100, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusPending}
	uc, _ := newUseCase(newFakeBookingRepo(pending), newFakeConsultationRepo(consultation))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 100, Identity: RequestIdentity{UserID: 99, IsAdmin: true}})

	require.NoError(t, err)
}

func TestUseCase_Execute_BookingNotFound(t *testing.T) {
	uc, _ := newUseCase(newFakeBookingRepo(), newFakeConsultationRepo())

	_, err := uc.Execute(context.Background(), &Request{BookingID: 404, Identity: specialistIdentity()})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUseCase_Execute_MissingConsultationIsInternal(t *testing.T) {
	// заявка ссылается на несуществующую консультацию
	orphan := &domain.Booking{ID: 100, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusPending}
	uc, _ := newUseCase(newFakeBookingRepo(orphan), newFakeConsultationRepo())

	_, err := uc.Execute(context.Background(), &Request{BookingID: 100, Identity: specialistIdentity()})

	assert.ErrorIs(t, err, ErrInternal)
}
