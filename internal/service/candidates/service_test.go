package candidates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	candidateRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/candidate"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/candidates/models"
	"github.com/vkorolev/CPS-ConsultationService/pkg/ptr"
)

type fakeCandidateRepo struct {
	byUserID map[int64]*domain.Candidate
	nextID   int64
}

func newFakeCandidateRepo(list ...*domain.Candidate) *fakeCandidateRepo {
	f := &fakeCandidateRepo{byUserID: make(map[int64]*domain.Candidate), nextID: 1}
	for _, c := range list {
		f.byUserID[c.UserID] = c
	}
	return f
}

func (f *fakeCandidateRepo) Create(_ context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	if _, ok := f.byUserID[c.UserID]; ok {
		return nil, candidateRepo.ErrDuplicateCandidate
	}
	c.ID = f.nextID
	f.nextID++
	f.byUserID[c.UserID] = c
	return c, nil
}

func (f *fakeCandidateRepo) GetByUserID(_ context.Context, userID int64) (*domain.Candidate, error) {
	c, ok := f.byUserID[userID]
	if !ok {
		return nil, candidateRepo.ErrCandidateNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCandidateRepo) List(_ context.Context, status *domain.CandidateStatus) ([]*domain.Candidate, error) {
	var out []*domain.Candidate
	for _, c := range f.byUserID {
		if status != nil && c.Status != *status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCandidateRepo) Approve(_ context.Context, userID int64) error {
	f.byUserID[userID].Status = domain.CandidateStatusApproved
	return nil
}

func (f *fakeCandidateRepo) Cancel(_ context.Context, userID int64, reason string) error {
	c := f.byUserID[userID]
	c.Status = domain.CandidateStatusCancelled
	c.RejectionReason = &reason
	return nil
}

func (f *fakeCandidateRepo) Reapply(_ context.Context, userID int64, description string) error {
	c := f.byUserID[userID]
	c.Status = domain.CandidateStatusPending
	c.RejectionReason = nil
	c.Description = description
	return nil
}

type fakeSpecialistRepo struct {
	byUserID map[int64]*domain.Specialist
}

func newFakeSpecialistRepo() *fakeSpecialistRepo {
	return &fakeSpecialistRepo{byUserID: make(map[int64]*domain.Specialist)}
}

func (f *fakeSpecialistRepo) Create(_ context.Context, s *domain.Specialist) (*domain.Specialist, error) {
	f.byUserID[s.UserID] = s
	return s, nil
}

func (f *fakeSpecialistRepo) GetByUserID(_ context.Context, userID int64) (*domain.Specialist, error) {
	s, ok := f.byUserID[userID]
	if !ok {
		return nil, assert.AnError
	}
	return s, nil
}

type fakeInvalidator struct{}

func (fakeInvalidator) Invalidate(context.Context, ...string) {}

type fakeNotifier struct {
	events []notifyservice.Event
}

func (f *fakeNotifier) NotifyAsync(event notifyservice.Event, _, _ int64, _ string) {
	f.events = append(f.events, event)
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

func newService(cr *fakeCandidateRepo, sr *fakeSpecialistRepo) (*Service, *fakeNotifier) {
	not := &fakeNotifier{}
	svc := NewService(cr, sr, fakeInvalidator{}, not, fakeTxManager{}, noopLogger{})
	return svc, not
}

var admin = domain.Identity{UserID: 1, IsAdmin: true}

func TestService_Apply(t *testing.T) {
	svc, _ := newService(newFakeCandidateRepo(), newFakeSpecialistRepo())

	resp, err := svc.Apply(context.Background(), domain.Identity{UserID: 20}, &models.ApplyRequest{
		Description: "юрист, 10 лет практики",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.CandidateStatusPending), resp.Status)
}

func TestService_Apply_DuplicateRejected(t *testing.T) {
	existing := &domain.Candidate{ID: 1, UserID: 20, Status: domain.CandidateStatusPending}
	svc, _ := newService(newFakeCandidateRepo(existing), newFakeSpecialistRepo())

	_, err := svc.Apply(context.Background(), domain.Identity{UserID: 20}, &models.ApplyRequest{})

	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestService_Apply_SpecialistRejected(t *testing.T) {
	svc, _ := newService(newFakeCandidateRepo(), newFakeSpecialistRepo())

	_, err := svc.Apply(context.Background(), domain.Identity{UserID: 20, IsSpecialist: true}, &models.ApplyRequest{})

	assert.ErrorIs(t, err, ErrAlreadySpecialist)
}

func TestService_Approve_CreatesSpecialist(t *testing.T) {
	candidate := &domain.Candidate{ID: 1, UserID: 20, Status: domain.CandidateStatusPending, Description: "юрист"}
	repo := newFakeCandidateRepo(candidate)
	specialists := newFakeSpecialistRepo()
	svc, not := newService(repo, specialists)

	err := svc.Approve(context.Background(), admin, 20)

	require.NoError(t, err)
	assert.Equal(t, domain.CandidateStatusApproved, repo.byUserID[20].Status)
	require.Contains(t, specialists.byUserID, int64(20))
	assert.True(t, specialists.byUserID[20].IsActive)
	assert.Equal(t, "юрист", specialists.byUserID[20].Description)
	assert.Equal(t, []notifyservice.Event{notifyservice.EventCandidacyApproved}, not.events)
}

func TestService_Approve_NonAdminDenied(t *testing.T) {
	svc, _ := newService(newFakeCandidateRepo(), newFakeSpecialistRepo())

	err := svc.Approve(context.Background(), domain.Identity{UserID: 2}, 20)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Approve_NotPendingRejected(t *testing.T) {
	candidate := &domain.Candidate{ID: 1, UserID: 20, Status: domain.CandidateStatusApproved}
	svc, _ := newService(newFakeCandidateRepo(candidate), newFakeSpecialistRepo())

	err := svc.Approve(context.Background(), admin, 20)

	assert.ErrorIs(t, err, ErrNotPending)
}

func TestService_Reject_RequiresReason(t *testing.T) {
	candidate := &domain.Candidate{ID: 1, UserID: 20, Status: domain.CandidateStatusPending}
	svc, _ := newService(newFakeCandidateRepo(candidate), newFakeSpecialistRepo())

	err := svc.Reject(context.Background(), admin, 20, &models.RejectRequest{})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Reject(t *testing.T) {
	candidate := &domain.Candidate{ID: 1, UserID: 20, Status: domain.CandidateStatusPending}
	repo := newFakeCandidateRepo(candidate)
	svc, not := newService(repo, newFakeSpecialistRepo())

	err := svc.Reject(context.Background(), admin, 20, &models.RejectRequest{Reason: "недостаточно опыта"})

	require.NoError(t, err)
	assert.Equal(t, domain.CandidateStatusCancelled, repo.byUserID[20].Status)
	require.NotNil(t, repo.byUserID[20].RejectionReason)
	assert.Equal(t, "недостаточно опыта", *repo.byUserID[20].RejectionReason)
	assert.Equal(t, []notifyservice.Event{notifyservice.EventCandidacyRejected}, not.events)
}

func TestService_Reapply_RoundTrip(t *testing.T) {
	candidate := &domain.Candidate{
		ID:              1,
		UserID:          20,
		Status:          domain.CandidateStatusCancelled,
		RejectionReason: ptr.Ptr("недостаточно опыта"),
	}
	repo := newFakeCandidateRepo(candidate)
	svc, _ := newService(repo, newFakeSpecialistRepo())

	resp, err := svc.Reapply(context.Background(), domain.Identity{UserID: 20}, &models.ApplyRequest{
		Description: "прошел стажировку",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.CandidateStatusPending), resp.Status)
	assert.Nil(t, resp.RejectionReason)
	assert.Equal(t, "прошел стажировку", resp.Description)
}

func TestService_Reapply_PendingRejected(t *testing.T) {
	candidate := &domain.Candidate{ID: 1, UserID: 20, Status: domain.CandidateStatusPending}
	svc, _ := newService(newFakeCandidateRepo(candidate), newFakeSpecialistRepo())

	_, err := svc.Reapply(context.Background(), domain.Identity{UserID: 20}, &models.ApplyRequest{})

	assert.ErrorIs(t, err, ErrNotRejected)
}

func TestService_List_NonAdminDenied(t *testing.T) {
	svc, _ := newService(newFakeCandidateRepo(), newFakeSpecialistRepo())

	_, err := svc.List(context.Background(), domain.Identity{UserID: 2}, &models.ListCandidatesRequest{})

	assert.ErrorIs(t, err, ErrAccessDenied)
}
