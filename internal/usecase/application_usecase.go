package usecase

import (
	"context"
	"errors"
	"time"

	"talent-match/internal/domain/application"
	"talent-match/internal/domain/user"
	"talent-match/internal/metrics"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrAdvanceUnavailable  = errors.New("no forward transition available")
)

// Actor is the explicit session identity performing a transition. A zero ID
// records the entry as a system action.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

type StatusChangeNotifier interface {
	NotifyStatusChanged(applicationID uuid.UUID, oldStatus, newStatus application.Status)
}

type BulkTransitionOutcome struct {
	ApplicationID uuid.UUID
	OK            bool
	Err           error
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, seekerID, jobID uuid.UUID) (application.Application, error)
	Get(ctx context.Context, id uuid.UUID) (application.Application, error)
	RequestTransition(ctx context.Context, id uuid.UUID, target application.Status, actor Actor, notes string) (application.Application, error)
	Advance(ctx context.Context, id uuid.UUID, actor Actor) (application.Application, error)
	BulkTransition(ctx context.Context, ids []uuid.UUID, target application.Status, actor Actor, notes string) []BulkTransitionOutcome
	History(ctx context.Context, id uuid.UUID) ([]application.HistoryEntry, error)
}

type Applications struct {
	apps     repository.ApplicationRepository
	jobs     repository.JobRepository
	notifier StatusChangeNotifier
}

func NewApplicationUsecase(apps repository.ApplicationRepository, jobs repository.JobRepository, notifier StatusChangeNotifier) *Applications {
	return &Applications{apps: apps, jobs: jobs, notifier: notifier}
}

// Apply creates the application in pending, atomically with its first
// history entry.
func (u *Applications) Apply(ctx context.Context, seekerID, jobID uuid.UUID) (application.Application, error) {
	if seekerID == uuid.Nil {
		return application.Application{}, ErrUnauthorized
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}
	if !j.Active {
		return application.Application{}, ErrJobNotFound
	}

	app, err := u.apps.Create(ctx, application.Application{
		ID:        uuid.New(),
		JobID:     jobID,
		UserID:    seekerID,
		Status:    application.StatusPending,
		AppliedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyApplied) {
			return application.Application{}, ErrAlreadyApplied
		}
		return application.Application{}, ErrInternal
	}
	return app, nil
}

func (u *Applications) Get(ctx context.Context, id uuid.UUID) (application.Application, error) {
	app, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}
	return app, nil
}

// RequestTransition validates the move against the lifecycle table, then
// hands the conditional write to the repository. The repository re-validates
// and refuses the write if the persisted status moved under us.
func (u *Applications) RequestTransition(ctx context.Context, id uuid.UUID, target application.Status, actor Actor, notes string) (application.Application, error) {
	app, err := u.Get(ctx, id)
	if err != nil {
		metrics.RecordTransition(metrics.OutcomeNotFound)
		return application.Application{}, err
	}

	if err := u.authorize(app, target, actor); err != nil {
		return application.Application{}, err
	}

	if err := application.ValidateTransition(app.Status, target); err != nil {
		metrics.RecordTransition(metrics.OutcomeInvalid)
		return application.Application{}, err
	}

	var actorID *uuid.UUID
	if actor.ID != uuid.Nil {
		actorID = &actor.ID
	}

	if err := u.apps.CommitStatusTransition(ctx, id, app.Status, target, actorID, notes); err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidTransition):
			metrics.RecordTransition(metrics.OutcomeInvalid)
		case errors.Is(err, repository.ErrConcurrentModification):
			metrics.RecordTransition(metrics.OutcomeConflict)
		case errors.Is(err, repository.ErrApplicationNotFound):
			metrics.RecordTransition(metrics.OutcomeNotFound)
			return application.Application{}, ErrApplicationNotFound
		default:
			metrics.RecordTransition(metrics.OutcomeError)
			return application.Application{}, ErrInternal
		}
		return application.Application{}, err
	}

	metrics.RecordTransition(metrics.OutcomeSuccess)
	if u.notifier != nil {
		u.notifier.NotifyStatusChanged(id, app.Status, target)
	}

	updated, err := u.apps.GetByID(ctx, id)
	if err != nil {
		// The transition already committed; serve the known end state.
		app.Status = target
		app.UpdatedAt = time.Now().UTC()
		return app, nil
	}
	return updated, nil
}

// Advance moves the application one step forward: the first of reviewing,
// interview, offered reachable from the current status.
func (u *Applications) Advance(ctx context.Context, id uuid.UUID, actor Actor) (application.Application, error) {
	app, err := u.Get(ctx, id)
	if err != nil {
		return application.Application{}, err
	}

	next, ok := app.Status.Next()
	if !ok {
		return application.Application{}, ErrAdvanceUnavailable
	}

	return u.RequestTransition(ctx, id, next, actor, "")
}

// BulkTransition applies the same target independently to each application.
// One member failing never blocks or rolls back the others; outcomes are
// reported per item. Cancellation stops issuing further items; committed
// items stay committed.
func (u *Applications) BulkTransition(ctx context.Context, ids []uuid.UUID, target application.Status, actor Actor, notes string) []BulkTransitionOutcome {
	out := make([]BulkTransitionOutcome, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			out = append(out, BulkTransitionOutcome{ApplicationID: id, OK: false, Err: err})
			continue
		}
		_, err := u.RequestTransition(ctx, id, target, actor, notes)
		out = append(out, BulkTransitionOutcome{ApplicationID: id, OK: err == nil, Err: err})
	}
	return out
}

func (u *Applications) History(ctx context.Context, id uuid.UUID) ([]application.HistoryEntry, error) {
	if _, err := u.Get(ctx, id); err != nil {
		return nil, err
	}
	entries, err := u.apps.History(ctx, id)
	if err != nil {
		return nil, ErrInternal
	}
	return entries, nil
}

// Job seekers may only withdraw their own applications; every other
// transition belongs to the employer or admin side. Role gating at the HTTP
// boundary backs this up, but the rule lives here so no caller can skip it.
func (u *Applications) authorize(app application.Application, target application.Status, actor Actor) error {
	if actor.ID == uuid.Nil {
		return nil // system actor
	}
	if actor.Role == user.RoleJobSeeker {
		if target != application.StatusWithdrawn || app.UserID != actor.ID {
			return ErrForbidden
		}
	}
	return nil
}
