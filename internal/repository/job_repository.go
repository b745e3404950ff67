package repository

import (
	"context"
	"errors"
	"time"

	"talent-match/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type Job struct {
	ID          uuid.UUID
	CompanyID   uuid.UUID
	Title       string
	CompanyName string
	Location    string
	RemoteOK    bool
	Active      bool
	PostedAt    time.Time
}

type JobRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListActive(ctx context.Context, limit, offset int) ([]Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, company_id, title, company_name, location, remote_ok, active, posted_at
		 FROM jobs
		 WHERE id = $1`,
		id,
	)

	var j Job
	if err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.CompanyName, &j.Location, &j.RemoteOK, &j.Active, &j.PostedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListActive returns open postings newest first; recommendation ranking keys
// its tie-break off this order.
func (r *PostgresJobRepository) ListActive(ctx context.Context, limit, offset int) ([]Job, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, company_id, title, company_name, location, remote_ok, active, posted_at
		 FROM jobs
		 WHERE active = true
		 ORDER BY posted_at DESC, id ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Job, 0)
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.CompanyID, &j.Title, &j.CompanyName, &j.Location, &j.RemoteOK, &j.Active, &j.PostedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
