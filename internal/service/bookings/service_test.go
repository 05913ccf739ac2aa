package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	bookingRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/booking"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	byID        map[int64]*domain.Booking
	cancelled   map[int64]string
	description map[int64]string
}

func newFakeBookingRepo(list ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{
		byID:        make(map[int64]*domain.Booking),
		cancelled:   make(map[int64]string),
		description: make(map[int64]string),
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

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	f.cancelled[id] = reason
	if b, ok := f.byID[id]; ok {
		b.Status = domain.BookingStatusCancelled
	}
	return nil
}

func (f *fakeBookingRepo) UpdateDescription(_ context.Context, id int64, description string) error {
	f.description[id] = description
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

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newService(br *fakeBookingRepo, cr *fakeConsultationRepo) (*Service, *fakeNotifier) {
	not := &fakeNotifier{}
	svc := NewService(br, cr, &fakeInvalidator{}, not, fakeTxManager{}, noopLogger{})
	return svc, not
}

func TestService_GetByID_OwnerAllowed(t *testing.T) {
	b := &domain.Booking{ID: 1, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusPending}
	svc, _ := newService(newFakeBookingRepo(b), newFakeConsultationRepo())

	resp, err := svc.GetByID(context.Background(), 1, domain.Identity{UserID: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestService_GetByID_StrangerDenied(t *testing.T) {
	b := &domain.Booking{ID: 1, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusPending}
	svc, _ := newService(newFakeBookingRepo(b), newFakeConsultationRepo())

	_, err := svc.GetByID(context.Background(), 1, domain.Identity{UserID: 99})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetByID_ConsultationOwnerAllowed(t *testing.T) {
	b := &domain.Booking{ID: 1, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusPending}
	c := &domain.Consultation{ID: 5, SpecialistID: 77}
	svc, _ := newService(newFakeBookingRepo(b), newFakeConsultationRepo(c))

	_, err := svc.GetByID(context.Background(), 1, domain.Identity{UserID: 77, IsSpecialist: true})

	require.NoError(t, err)
}

func TestService_Cancel_PendingBooking(t *testing.T) {
	b := &domain.Booking{ID: 1, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusPending}
	repo := newFakeBookingRepo(b)
	consultations := newFakeConsultationRepo()
	svc, _ := newService(repo, consultations)

	err := svc.Cancel(context.Background(), 1, domain.Identity{UserID: 20}, "передумал")

	require.NoError(t, err)
	assert.Equal(t, "передумал", repo.cancelled[1])
	// pending-заявка не трогает бронь консультации
	assert.Empty(t, consultations.setBooking)
}

func TestService_Cancel_AcceptedReleasesConsultation(t *testing.T) {
	b := &domain.Booking{ID: 1, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusAccepted}
	c := &domain.Consultation{ID: 5, SpecialistID: 77, Booking: true}
	repo := newFakeBookingRepo(b)
	consultations := newFakeConsultationRepo(c)
	svc, not := newService(repo, consultations)

	err := svc.Cancel(context.Background(), 1, domain.Identity{UserID: 20}, "не смогу прийти")

	require.NoError(t, err)
	released, ok := consultations.setBooking[5]
	require.True(t, ok)
	assert.False(t, released)
	assert.Equal(t, []notifyservice.Event{notifyservice.EventBookingCancelled}, not.events)
	assert.Equal(t, []int64{77}, not.users)
}

func TestService_Cancel_CompletedRejected(t *testing.T) {
	b := &domain.Booking{ID: 1, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusCompleted}
	svc, _ := newService(newFakeBookingRepo(b), newFakeConsultationRepo())

	err := svc.Cancel(context.Background(), 1, domain.Identity{UserID: 20}, "поздно отменять")

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestService_Cancel_EmptyReasonRejected(t *testing.T) {
	b := &domain.Booking{ID: 1, UserID: 20, ConsultationID: 5, Status: domain.BookingStatusPending}
	repo := newFakeBookingRepo(b)
	svc, _ := newService(repo, newFakeConsultationRepo())

	err := svc.Cancel(context.Background(), 1, domain.Identity{UserID: 20}, "")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.cancelled)
}

func TestService_List_UserScopedToOwnBookings(t *testing.T) {
	own := &domain.Booking{ID: 1, UserID: 20, Status: domain.BookingStatusPending}
	other := &domain.Booking{ID: 2, UserID: 21, Status: domain.BookingStatusPending}
	svc, _ := newService(newFakeBookingRepo(own, other), newFakeConsultationRepo())

	resp, err := svc.List(context.Background(), domain.Identity{UserID: 20}, &models.ListBookingsRequest{})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
}

func TestService_UpdateDescription(t *testing.T) {
	b := &domain.Booking{ID: 1, UserID: 20, Status: domain.BookingStatusPending}
	repo := newFakeBookingRepo(b)
	svc, _ := newService(repo, newFakeConsultationRepo())

	resp, err := svc.UpdateDescription(context.Background(), 1, domain.Identity{UserID: 20}, &models.UpdateBookingRequest{
		Description: "хочу обсудить налоговый вычет",
	})

	require.NoError(t, err)
	assert.Equal(t, "хочу обсудить налоговый вычет", resp.Description)
	assert.Equal(t, "хочу обсудить налоговый вычет", repo.description[1])
}

func TestService_UpdateDescription_TerminalRejected(t *testing.T) {
	b := &domain.Booking{ID: 1, UserID: 20, Status: domain.BookingStatusCancelled}
	svc, _ := newService(newFakeBookingRepo(b), newFakeConsultationRepo())

	_, err := svc.UpdateDescription(context.Background(), 1, domain.Identity{UserID: 20}, &models.UpdateBookingRequest{
		Description: "поздно",
	})

	assert.ErrorIs(t, err, ErrCannotUpdate)
}
