package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	userRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/user"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
)

type fakeUserRepo struct {
	byID map[int64]*domain.User
}

func newFakeUserRepo(list ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[int64]*domain.User)}
	for _, u := range list {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id int64, isActive bool) error {
	f.byID[id].IsActive = isActive
	return nil
}

func (f *fakeUserRepo) SetVerified(_ context.Context, id int64, isVerified bool) error {
	f.byID[id].IsVerified = isVerified
	return nil
}

type fakeNotifier struct {
	events []notifyservice.Event
}

func (f *fakeNotifier) NotifyAsync(event notifyservice.Event, _, _ int64, _ string) {
	f.events = append(f.events, event)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var admin = domain.Identity{UserID: 1, IsAdmin: true}

func TestService_Block(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: 20, IsActive: true})
	svc := NewService(repo, &fakeNotifier{}, noopLogger{})

	err := svc.Block(context.Background(), admin, 20)

	require.NoError(t, err)
	assert.False(t, repo.byID[20].IsActive)
}

func TestService_Block_AlreadyBlocked(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: 20, IsActive: false})
	svc := NewService(repo, &fakeNotifier{}, noopLogger{})

	err := svc.Block(context.Background(), admin, 20)

	assert.ErrorIs(t, err, ErrAlreadyBlocked)
}

func TestService_Block_NonAdminDenied(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: 20, IsActive: true})
	svc := NewService(repo, &fakeNotifier{}, noopLogger{})

	err := svc.Block(context.Background(), domain.Identity{UserID: 2}, 20)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Unblock(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: 20, IsActive: false})
	svc := NewService(repo, &fakeNotifier{}, noopLogger{})

	err := svc.Unblock(context.Background(), admin, 20)

	require.NoError(t, err)
	assert.True(t, repo.byID[20].IsActive)
}

func TestService_RequestEmailVerification(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: 20, IsActive: true, Email: "user@example.com"})
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier, noopLogger{})

	err := svc.RequestEmailVerification(context.Background(), domain.Identity{UserID: 20})

	require.NoError(t, err)
	assert.Equal(t, []notifyservice.Event{notifyservice.EventEmailVerification}, notifier.events)
}

func TestService_RequestEmailVerification_AlreadyVerified(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: 20, IsActive: true, IsVerified: true})
	svc := NewService(repo, &fakeNotifier{}, noopLogger{})

	err := svc.RequestEmailVerification(context.Background(), domain.Identity{UserID: 20})

	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestService_ConfirmEmail_Idempotent(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: 20, IsActive: true})
	svc := NewService(repo, &fakeNotifier{}, noopLogger{})

	require.NoError(t, svc.ConfirmEmail(context.Background(), 20))
	assert.True(t, repo.byID[20].IsVerified)

	require.NoError(t, svc.ConfirmEmail(context.Background(), 20))
}

func TestService_GetByID_StrangerDenied(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: 20})
	svc := NewService(repo, &fakeNotifier{}, noopLogger{})

	_, err := svc.GetByID(context.Background(), 20, domain.Identity{UserID: 99})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeUserRepo(), &fakeNotifier{}, noopLogger{})

	_, err := svc.GetByID(context.Background(), 404, admin)

	assert.ErrorIs(t, err, ErrUserNotFound)
}
