package repository

import (
	"context"
	"errors"

	"talent-match/internal/database"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrCandidateSkillNotFound = errors.New("candidate skill not found")
	ErrCandidateSkillExists   = errors.New("candidate skill already exists")
)

type CandidateSkill struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SkillID     uuid.UUID
	SkillName   string
	Proficiency matching.Proficiency
}

type CandidateSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]CandidateSkill, error)
	Create(ctx context.Context, cs CandidateSkill) (CandidateSkill, error)
	UpdateProficiency(ctx context.Context, userID, skillID uuid.UUID, p matching.Proficiency) (CandidateSkill, error)
	Delete(ctx context.Context, userID, skillID uuid.UUID) error
}

type PostgresCandidateSkillRepository struct {
	db database.DB
}

func NewPostgresCandidateSkillRepository(db database.DB) *PostgresCandidateSkillRepository {
	return &PostgresCandidateSkillRepository{db: db}
}

func (r *PostgresCandidateSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]CandidateSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT cs.id, cs.user_id, cs.skill_id, s.name, COALESCE(cs.proficiency, '')
		 FROM candidate_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CandidateSkill, 0)
	for rows.Next() {
		var cs CandidateSkill
		var prof string
		if err := rows.Scan(&cs.ID, &cs.UserID, &cs.SkillID, &cs.SkillName, &prof); err != nil {
			return nil, err
		}
		cs.Proficiency = matching.Proficiency(prof)
		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateSkillRepository) Create(ctx context.Context, cs CandidateSkill) (CandidateSkill, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM candidate_skills WHERE user_id = $1 AND skill_id = $2)`,
		cs.UserID, cs.SkillID,
	)
	if err := row.Scan(&exists); err != nil {
		return CandidateSkill{}, err
	}
	if exists {
		return CandidateSkill{}, ErrCandidateSkillExists
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO candidate_skills (id, user_id, skill_id, proficiency)
		 VALUES ($1, $2, $3, NULLIF($4, ''))`,
		cs.ID, cs.UserID, cs.SkillID, string(cs.Proficiency),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return CandidateSkill{}, ErrCandidateSkillExists
		}
		return CandidateSkill{}, err
	}

	return r.findOne(ctx, cs.UserID, cs.SkillID)
}

func (r *PostgresCandidateSkillRepository) UpdateProficiency(ctx context.Context, userID, skillID uuid.UUID, p matching.Proficiency) (CandidateSkill, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE candidate_skills SET proficiency = NULLIF($1, '') WHERE user_id = $2 AND skill_id = $3`,
		string(p), userID, skillID,
	)
	if err != nil {
		return CandidateSkill{}, err
	}
	if affected == 0 {
		return CandidateSkill{}, ErrCandidateSkillNotFound
	}

	return r.findOne(ctx, userID, skillID)
}

func (r *PostgresCandidateSkillRepository) Delete(ctx context.Context, userID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM candidate_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCandidateSkillNotFound
	}
	return nil
}

func (r *PostgresCandidateSkillRepository) findOne(ctx context.Context, userID, skillID uuid.UUID) (CandidateSkill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT cs.id, cs.user_id, cs.skill_id, s.name, COALESCE(cs.proficiency, '')
		 FROM candidate_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.user_id = $1 AND cs.skill_id = $2`,
		userID, skillID,
	)

	var cs CandidateSkill
	var prof string
	if err := row.Scan(&cs.ID, &cs.UserID, &cs.SkillID, &cs.SkillName, &prof); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CandidateSkill{}, ErrCandidateSkillNotFound
		}
		return CandidateSkill{}, err
	}
	cs.Proficiency = matching.Proficiency(prof)
	return cs, nil
}
