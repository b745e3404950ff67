package repository

import (
	"context"

	"talent-match/internal/database"

	"github.com/google/uuid"
)

type JobSkillRequirement struct {
	SkillID   uuid.UUID
	SkillName string
	Required  bool
}

type JobSkillRepository interface {
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]JobSkillRequirement, error)
	FindByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]JobSkillRequirement, error)
}

type PostgresJobSkillRepository struct {
	db database.DB
}

func NewPostgresJobSkillRepository(db database.DB) *PostgresJobSkillRepository {
	return &PostgresJobSkillRepository{db: db}
}

func (r *PostgresJobSkillRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]JobSkillRequirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT js.skill_id, s.name, js.is_required
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = $1
		 ORDER BY s.name ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobSkillRequirement, 0)
	for rows.Next() {
		var req JobSkillRequirement
		if err := rows.Scan(&req.SkillID, &req.SkillName, &req.Required); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobSkillRepository) FindByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]JobSkillRequirement, error) {
	out := make(map[uuid.UUID][]JobSkillRequirement, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT js.job_id, js.skill_id, s.name, js.is_required
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = ANY($1)
		 ORDER BY s.name ASC`,
		jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var jobID uuid.UUID
		var req JobSkillRequirement
		if err := rows.Scan(&jobID, &req.SkillID, &req.SkillName, &req.Required); err != nil {
			return nil, err
		}
		out[jobID] = append(out[jobID], req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
