package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"talent-match/internal/domain/application"
	"talent-match/internal/domain/user"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type fakeApplicationRepo struct {
	apps    map[uuid.UUID]*application.Application
	history map[uuid.UUID][]application.HistoryEntry

	commitErr error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps:    map[uuid.UUID]*application.Application{},
		history: map[uuid.UUID][]application.HistoryEntry{},
	}
}

func (r *fakeApplicationRepo) add(status application.Status, seekerID uuid.UUID) uuid.UUID {
	id := uuid.New()
	r.apps[id] = &application.Application{
		ID:        id,
		JobID:     uuid.New(),
		UserID:    seekerID,
		Status:    status,
		AppliedAt: time.Now().UTC(),
	}
	return id
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (application.Application, error) {
	for _, existing := range r.apps {
		if existing.JobID == app.JobID && existing.UserID == app.UserID {
			return application.Application{}, repository.ErrAlreadyApplied
		}
	}
	stored := app
	r.apps[app.ID] = &stored
	r.history[app.ID] = append(r.history[app.ID], application.HistoryEntry{
		ID:            uuid.New(),
		ApplicationID: app.ID,
		NewStatus:     app.Status,
		CreatedAt:     app.AppliedAt,
	})
	return stored, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	return *app, nil
}

func (r *fakeApplicationRepo) ListByJobID(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	return nil, nil
}

func (r *fakeApplicationRepo) ListAppliedJobIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	out := map[uuid.UUID]struct{}{}
	for _, app := range r.apps {
		if app.UserID == userID {
			out[app.JobID] = struct{}{}
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) CommitStatusTransition(ctx context.Context, id uuid.UUID, from, to application.Status, actorID *uuid.UUID, notes string) error {
	if r.commitErr != nil {
		return r.commitErr
	}
	app, ok := r.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	if err := application.ValidateTransition(from, to); err != nil {
		return err
	}
	if app.Status != from {
		return repository.ErrConcurrentModification
	}
	old := app.Status
	app.Status = to
	app.UpdatedAt = time.Now().UTC()
	r.history[id] = append(r.history[id], application.HistoryEntry{
		ID:            uuid.New(),
		ApplicationID: id,
		OldStatus:     &old,
		NewStatus:     to,
		ActorID:       actorID,
		Notes:         notes,
		CreatedAt:     app.UpdatedAt,
	})
	return nil
}

func (r *fakeApplicationRepo) History(ctx context.Context, applicationID uuid.UUID) ([]application.HistoryEntry, error) {
	return r.history[applicationID], nil
}

type stubJobRepo struct {
	jobs map[uuid.UUID]repository.Job
}

func (r stubJobRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return repository.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (r stubJobRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.jobs[id]
	return ok, nil
}

func (r stubJobRepo) ListActive(ctx context.Context, limit, offset int) ([]repository.Job, error) {
	return nil, nil
}

type recordingNotifier struct {
	events []application.Status
}

func (n *recordingNotifier) NotifyStatusChanged(applicationID uuid.UUID, oldStatus, newStatus application.Status) {
	n.events = append(n.events, newStatus)
}

func companyActor() Actor {
	return Actor{ID: uuid.New(), Role: user.RoleCompany}
}

func TestApply_CreatesPendingWithInitialHistory(t *testing.T) {
	repo := newFakeApplicationRepo()
	jobID := uuid.New()
	jobs := stubJobRepo{jobs: map[uuid.UUID]repository.Job{jobID: {ID: jobID, Active: true}}}
	uc := NewApplicationUsecase(repo, jobs, nil)

	seekerID := uuid.New()
	app, err := uc.Apply(context.Background(), seekerID, jobID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if app.Status != application.StatusPending {
		t.Fatalf("Status = %s, want pending", app.Status)
	}

	entries, err := uc.History(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("history = %d entries, want 1", len(entries))
	}
	if entries[0].OldStatus != nil || entries[0].NewStatus != application.StatusPending {
		t.Fatalf("initial entry = %+v, want nil -> pending", entries[0])
	}
}

func TestApply_InactiveJob(t *testing.T) {
	jobID := uuid.New()
	jobs := stubJobRepo{jobs: map[uuid.UUID]repository.Job{jobID: {ID: jobID, Active: false}}}
	uc := NewApplicationUsecase(newFakeApplicationRepo(), jobs, nil)

	if _, err := uc.Apply(context.Background(), uuid.New(), jobID); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestApply_Duplicate(t *testing.T) {
	repo := newFakeApplicationRepo()
	jobID := uuid.New()
	jobs := stubJobRepo{jobs: map[uuid.UUID]repository.Job{jobID: {ID: jobID, Active: true}}}
	uc := NewApplicationUsecase(repo, jobs, nil)

	seekerID := uuid.New()
	if _, err := uc.Apply(context.Background(), seekerID, jobID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.Apply(context.Background(), seekerID, jobID); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestRequestTransition_AppendsHistoryAndNotifies(t *testing.T) {
	repo := newFakeApplicationRepo()
	id := repo.add(application.StatusPending, uuid.New())
	notifier := &recordingNotifier{}
	uc := NewApplicationUsecase(repo, stubJobRepo{}, notifier)

	actor := companyActor()
	app, err := uc.RequestTransition(context.Background(), id, application.StatusReviewing, actor, "screened")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if app.Status != application.StatusReviewing {
		t.Fatalf("Status = %s, want reviewing", app.Status)
	}

	entries := repo.history[id]
	if len(entries) != 1 {
		t.Fatalf("history = %d entries, want 1", len(entries))
	}
	last := entries[len(entries)-1]
	if last.OldStatus == nil || *last.OldStatus != application.StatusPending || last.NewStatus != application.StatusReviewing {
		t.Fatalf("entry = %+v, want pending -> reviewing", last)
	}
	if last.ActorID == nil || *last.ActorID != actor.ID {
		t.Fatalf("entry actor = %v, want %s", last.ActorID, actor.ID)
	}
	if last.Notes != "screened" {
		t.Fatalf("entry notes = %q", last.Notes)
	}
	if len(notifier.events) != 1 || notifier.events[0] != application.StatusReviewing {
		t.Fatalf("notifier events = %v", notifier.events)
	}
}

func TestRequestTransition_ReturnsCommittedRow(t *testing.T) {
	repo := newFakeApplicationRepo()
	id := repo.add(application.StatusPending, uuid.New())
	uc := NewApplicationUsecase(repo, stubJobRepo{}, nil)

	app, err := uc.RequestTransition(context.Background(), id, application.StatusReviewing, companyActor(), "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	stored := repo.apps[id]
	if stored.UpdatedAt.IsZero() {
		t.Fatalf("commit did not stamp updated_at")
	}
	if !app.UpdatedAt.Equal(stored.UpdatedAt) {
		t.Fatalf("UpdatedAt = %v, want committed %v", app.UpdatedAt, stored.UpdatedAt)
	}
	if app.Status != stored.Status {
		t.Fatalf("Status = %s, want committed %s", app.Status, stored.Status)
	}
}

func TestRequestTransition_InvalidTarget(t *testing.T) {
	repo := newFakeApplicationRepo()
	id := repo.add(application.StatusInterview, uuid.New())
	uc := NewApplicationUsecase(repo, stubJobRepo{}, nil)

	_, err := uc.RequestTransition(context.Background(), id, application.StatusPending, companyActor(), "")
	if !errors.Is(err, application.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if len(repo.history[id]) != 0 {
		t.Fatalf("failed transition must not append history")
	}
}

func TestRequestTransition_TerminalStatus(t *testing.T) {
	repo := newFakeApplicationRepo()
	id := repo.add(application.StatusWithdrawn, uuid.New())
	uc := NewApplicationUsecase(repo, stubJobRepo{}, nil)

	_, err := uc.RequestTransition(context.Background(), id, application.StatusReviewing, companyActor(), "")
	if !errors.Is(err, application.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRequestTransition_ConcurrentModification(t *testing.T) {
	repo := newFakeApplicationRepo()
	id := repo.add(application.StatusPending, uuid.New())
	repo.commitErr = repository.ErrConcurrentModification
	uc := NewApplicationUsecase(repo, stubJobRepo{}, nil)

	_, err := uc.RequestTransition(context.Background(), id, application.StatusReviewing, companyActor(), "")
	if !errors.Is(err, repository.ErrConcurrentModification) {
		t.Fatalf("expected ErrConcurrentModification, got %v", err)
	}
}

func TestRequestTransition_NotFound(t *testing.T) {
	uc := NewApplicationUsecase(newFakeApplicationRepo(), stubJobRepo{}, nil)

	_, err := uc.RequestTransition(context.Background(), uuid.New(), application.StatusReviewing, companyActor(), "")
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestRequestTransition_SeekerMayOnlyWithdrawOwn(t *testing.T) {
	repo := newFakeApplicationRepo()
	seekerID := uuid.New()
	id := repo.add(application.StatusPending, seekerID)
	uc := NewApplicationUsecase(repo, stubJobRepo{}, nil)

	seeker := Actor{ID: seekerID, Role: user.RoleJobSeeker}
	if _, err := uc.RequestTransition(context.Background(), id, application.StatusReviewing, seeker, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("seeker moving to reviewing: expected ErrForbidden, got %v", err)
	}

	other := Actor{ID: uuid.New(), Role: user.RoleJobSeeker}
	if _, err := uc.RequestTransition(context.Background(), id, application.StatusWithdrawn, other, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("seeker withdrawing someone else's application: expected ErrForbidden, got %v", err)
	}

	if _, err := uc.RequestTransition(context.Background(), id, application.StatusWithdrawn, seeker, ""); err != nil {
		t.Fatalf("seeker withdrawing own application: unexpected err %v", err)
	}
}

func TestAdvance(t *testing.T) {
	repo := newFakeApplicationRepo()
	id := repo.add(application.StatusPending, uuid.New())
	uc := NewApplicationUsecase(repo, stubJobRepo{}, nil)
	actor := companyActor()

	want := []application.Status{application.StatusReviewing, application.StatusInterview, application.StatusOffered}
	for _, target := range want {
		app, err := uc.Advance(context.Background(), id, actor)
		if err != nil {
			t.Fatalf("advance to %s: %v", target, err)
		}
		if app.Status != target {
			t.Fatalf("Status = %s, want %s", app.Status, target)
		}
	}

	if _, err := uc.Advance(context.Background(), id, actor); !errors.Is(err, ErrAdvanceUnavailable) {
		t.Fatalf("expected ErrAdvanceUnavailable from offered, got %v", err)
	}
}

func TestBulkTransition_PartialFailure(t *testing.T) {
	repo := newFakeApplicationRepo()
	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		ids = append(ids, repo.add(application.StatusPending, uuid.New()))
	}
	withdrawn := repo.add(application.StatusWithdrawn, uuid.New())
	ids = append(ids, withdrawn)

	uc := NewApplicationUsecase(repo, stubJobRepo{}, nil)
	out := uc.BulkTransition(context.Background(), ids, application.StatusRejected, companyActor(), "position filled")

	if len(out) != 5 {
		t.Fatalf("outcomes = %d, want 5", len(out))
	}
	var okCount int
	for _, o := range out {
		if o.OK {
			okCount++
			continue
		}
		if o.ApplicationID != withdrawn {
			t.Fatalf("unexpected failure for %s: %v", o.ApplicationID, o.Err)
		}
		if !errors.Is(o.Err, application.ErrInvalidTransition) {
			t.Fatalf("withdrawn outcome err = %v, want ErrInvalidTransition", o.Err)
		}
	}
	if okCount != 4 {
		t.Fatalf("ok outcomes = %d, want 4", okCount)
	}
}

func TestBulkTransition_Cancellation(t *testing.T) {
	repo := newFakeApplicationRepo()
	ids := []uuid.UUID{
		repo.add(application.StatusPending, uuid.New()),
		repo.add(application.StatusPending, uuid.New()),
	}
	uc := NewApplicationUsecase(repo, stubJobRepo{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := uc.BulkTransition(ctx, ids, application.StatusRejected, companyActor(), "")
	if len(out) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(out))
	}
	for _, o := range out {
		if o.OK || !errors.Is(o.Err, context.Canceled) {
			t.Fatalf("outcome = %+v, want context.Canceled", o)
		}
	}
}

func TestHistory_OrderedOldestFirst(t *testing.T) {
	repo := newFakeApplicationRepo()
	id := repo.add(application.StatusPending, uuid.New())
	uc := NewApplicationUsecase(repo, stubJobRepo{}, nil)
	actor := companyActor()

	steps := []application.Status{application.StatusReviewing, application.StatusInterview, application.StatusRejected}
	for _, s := range steps {
		if _, err := uc.RequestTransition(context.Background(), id, s, actor, ""); err != nil {
			t.Fatalf("transition to %s: %v", s, err)
		}
	}

	entries, err := uc.History(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("history = %d entries, want 3", len(entries))
	}
	for i, s := range steps {
		if entries[i].NewStatus != s {
			t.Fatalf("entry %d = %s, want %s", i, entries[i].NewStatus, s)
		}
	}
}
