package repository

import (
	"context"
	"errors"
	"testing"

	"talent-match/internal/database"
	"talent-match/internal/domain/application"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// raceDB answers the EXISTS probe with false and then fails every insert,
// the shape a check-then-insert race leaves behind when another writer
// commits first.
type raceDB struct {
	insertErr error
}

func (d raceDB) Ping(ctx context.Context) error { return nil }
func (d raceDB) Close() error                   { return nil }

func (d raceDB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return 0, d.insertErr
}

func (d raceDB) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (d raceDB) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return stubRow{}
}

func (d raceDB) Begin(ctx context.Context) (database.Tx, error) {
	return raceTx{insertErr: d.insertErr}, nil
}

type raceTx struct {
	insertErr error
}

func (t raceTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return 0, t.insertErr
}

func (t raceTx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (t raceTx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return stubRow{}
}

func (t raceTx) Commit(ctx context.Context) error   { return nil }
func (t raceTx) Rollback(ctx context.Context) error { return nil }

// stubRow scans false into a *bool EXISTS target and leaves everything else
// at its zero value.
type stubRow struct{}

func (stubRow) Scan(dest ...any) error {
	for _, d := range dest {
		if b, ok := d.(*bool); ok {
			*b = false
		}
	}
	return nil
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "applications_job_id_user_id_key"}
}

func TestApplicationCreate_LostInsertRaceMapsToAlreadyApplied(t *testing.T) {
	repo := NewPostgresApplicationRepository(raceDB{insertErr: uniqueViolation()})

	_, err := repo.Create(context.Background(), application.Application{
		ID:     uuid.New(),
		JobID:  uuid.New(),
		UserID: uuid.New(),
		Status: application.StatusPending,
	})
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied on unique violation, got %v", err)
	}
}

func TestApplicationCreate_OtherInsertErrorPassesThrough(t *testing.T) {
	boom := errors.New("connection reset")
	repo := NewPostgresApplicationRepository(raceDB{insertErr: boom})

	_, err := repo.Create(context.Background(), application.Application{
		ID:     uuid.New(),
		JobID:  uuid.New(),
		UserID: uuid.New(),
		Status: application.StatusPending,
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected insert error to pass through, got %v", err)
	}
	if errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("non-unique-violation error mapped to ErrAlreadyApplied")
	}
}

func TestCandidateSkillCreate_LostInsertRaceMapsToExists(t *testing.T) {
	repo := NewPostgresCandidateSkillRepository(raceDB{insertErr: uniqueViolation()})

	_, err := repo.Create(context.Background(), CandidateSkill{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		SkillID:     uuid.New(),
		Proficiency: matching.ProficiencyAdvanced,
	})
	if !errors.Is(err, ErrCandidateSkillExists) {
		t.Fatalf("expected ErrCandidateSkillExists on unique violation, got %v", err)
	}
}
