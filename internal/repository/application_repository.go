package repository

import (
	"context"
	"errors"
	"fmt"

	"talent-match/internal/database"
	"talent-match/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied to this job")

	// ErrConcurrentModification means the persisted status changed between
	// the caller's read and this write. Callers should re-fetch and may retry.
	ErrConcurrentModification = errors.New("application status changed concurrently")
)

type ApplicationRepository interface {
	Create(ctx context.Context, app application.Application) (application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	ListByJobID(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	ListAppliedJobIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
	CommitStatusTransition(ctx context.Context, id uuid.UUID, from, to application.Status, actorID *uuid.UUID, notes string) error
	History(ctx context.Context, applicationID uuid.UUID) ([]application.HistoryEntry, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// Create inserts the application in its initial pending status and writes the
// first history entry (old_status NULL) in the same transaction.
func (r *PostgresApplicationRepository) Create(ctx context.Context, app application.Application) (application.Application, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`,
		app.JobID, app.UserID,
	)
	if err := row.Scan(&exists); err != nil {
		return application.Application{}, err
	}
	if exists {
		return application.Application{}, ErrAlreadyApplied
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return application.Application{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO applications (id, job_id, user_id, status)
		 VALUES ($1, $2, $3, $4)`,
		app.ID, app.JobID, app.UserID, string(application.StatusPending),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return application.Application{}, ErrAlreadyApplied
		}
		return application.Application{}, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO status_history (id, application_id, old_status, new_status, actor_id, notes)
		 VALUES ($1, $2, NULL, $3, $4, NULL)`,
		uuid.New(), app.ID, string(application.StatusPending), app.UserID,
	)
	if err != nil {
		return application.Application{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return application.Application{}, err
	}

	return r.GetByID(ctx, app.ID)
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, job_id, user_id, status, applied_at, updated_at
		 FROM applications
		 WHERE id = $1`,
		id,
	)
	return scanApplication(row)
}

// ListByJobID returns applicants oldest first; employer-side ranking relies
// on this order for its tie-break.
func (r *PostgresApplicationRepository) ListByJobID(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, user_id, status, applied_at, updated_at
		 FROM applications
		 WHERE job_id = $1
		 ORDER BY applied_at ASC, id ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var app application.Application
		var status string
		if err := rows.Scan(&app.ID, &app.JobID, &app.UserID, &status, &app.AppliedAt, &app.UpdatedAt); err != nil {
			return nil, err
		}
		app.Status = application.Status(status)
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListAppliedJobIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT job_id FROM applications WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var jobID uuid.UUID
		if err := rows.Scan(&jobID); err != nil {
			return nil, err
		}
		out[jobID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CommitStatusTransition performs the authoritative check-then-write. The
// legality check runs again here because the service-layer check can race:
// the UPDATE is conditional on the status still being the one the caller
// validated against, and zero rows affected on an existing row means another
// writer got there first. Status write and history append share one
// transaction.
func (r *PostgresApplicationRepository) CommitStatusTransition(ctx context.Context, id uuid.UUID, from, to application.Status, actorID *uuid.UUID, notes string) error {
	if err := application.ValidateTransition(from, to); err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	affected, err := tx.Exec(ctx,
		`UPDATE applications
		 SET status = $1, updated_at = now()
		 WHERE id = $2 AND status = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		row := tx.QueryRow(ctx, `SELECT status FROM applications WHERE id = $1`, id)
		var current string
		if scanErr := row.Scan(&current); scanErr != nil {
			if errors.Is(scanErr, pgx.ErrNoRows) {
				return ErrApplicationNotFound
			}
			return scanErr
		}
		return fmt.Errorf("%w: status is now %q", ErrConcurrentModification, current)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO status_history (id, application_id, old_status, new_status, actor_id, notes)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))`,
		uuid.New(), id, string(from), string(to), actorID, notes,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresApplicationRepository) History(ctx context.Context, applicationID uuid.UUID) ([]application.HistoryEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, old_status, new_status, actor_id, COALESCE(notes, ''), created_at
		 FROM status_history
		 WHERE application_id = $1
		 ORDER BY created_at ASC, id ASC`,
		applicationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.HistoryEntry, 0)
	for rows.Next() {
		var e application.HistoryEntry
		var oldStatus *string
		var newStatus string
		if err := rows.Scan(&e.ID, &e.ApplicationID, &oldStatus, &newStatus, &e.ActorID, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		if oldStatus != nil {
			st := application.Status(*oldStatus)
			e.OldStatus = &st
		}
		e.NewStatus = application.Status(newStatus)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505). Two concurrent writers can both pass an EXISTS
// probe; the losing insert surfaces here.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanApplication(row database.Row) (application.Application, error) {
	var app application.Application
	var status string
	if err := row.Scan(&app.ID, &app.JobID, &app.UserID, &status, &app.AppliedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	app.Status = application.Status(status)
	return app, nil
}
