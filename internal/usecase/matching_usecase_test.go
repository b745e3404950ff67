package usecase

import (
	"context"
	"errors"
	"testing"

	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/user"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type stubCandidateSkillRepo struct {
	byUser map[uuid.UUID][]repository.CandidateSkill
	errFor map[uuid.UUID]error
	err    error
}

func (r stubCandidateSkillRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]repository.CandidateSkill, error) {
	if r.err != nil {
		return nil, r.err
	}
	if err, ok := r.errFor[userID]; ok {
		return nil, err
	}
	return r.byUser[userID], nil
}

func (r stubCandidateSkillRepo) Create(ctx context.Context, cs repository.CandidateSkill) (repository.CandidateSkill, error) {
	return cs, nil
}

func (r stubCandidateSkillRepo) UpdateProficiency(ctx context.Context, userID, skillID uuid.UUID, p matching.Proficiency) (repository.CandidateSkill, error) {
	return repository.CandidateSkill{}, nil
}

func (r stubCandidateSkillRepo) Delete(ctx context.Context, userID, skillID uuid.UUID) error {
	return nil
}

type stubJobSkillRepo struct {
	byJob map[uuid.UUID][]repository.JobSkillRequirement
}

func (r stubJobSkillRepo) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]repository.JobSkillRequirement, error) {
	return r.byJob[jobID], nil
}

func (r stubJobSkillRepo) FindByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]repository.JobSkillRequirement, error) {
	out := map[uuid.UUID][]repository.JobSkillRequirement{}
	for _, id := range jobIDs {
		if reqs, ok := r.byJob[id]; ok {
			out[id] = reqs
		}
	}
	return out, nil
}

type stubUserRepo struct {
	users map[uuid.UUID]user.User
}

func (r stubUserRepo) Create(ctx context.Context, u user.User) error { return nil }

func (r stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r stubUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func (r stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func TestCalculateMatch(t *testing.T) {
	seekerID := uuid.New()
	jobID := uuid.New()
	react := uuid.New()
	typescript := uuid.New()
	sql := uuid.New()

	jobs := stubJobRepo{jobs: map[uuid.UUID]repository.Job{
		jobID: {ID: jobID, Location: "Berlin", RemoteOK: true, Active: true},
	}}
	jobSkills := stubJobSkillRepo{byJob: map[uuid.UUID][]repository.JobSkillRequirement{
		jobID: {
			{SkillID: react, SkillName: "React", Required: true},
			{SkillID: typescript, SkillName: "TypeScript", Required: true},
			{SkillID: sql, SkillName: "SQL", Required: false},
		},
	}}
	candidateSkills := stubCandidateSkillRepo{byUser: map[uuid.UUID][]repository.CandidateSkill{
		seekerID: {
			{SkillID: react, SkillName: "React", Proficiency: matching.ProficiencyAdvanced},
			{SkillID: sql, SkillName: "SQL", Proficiency: matching.ProficiencyBeginner},
		},
	}}
	users := stubUserRepo{users: map[uuid.UUID]user.User{
		seekerID: {ID: seekerID, Location: "Berlin", RemoteOK: true},
	}}

	uc := NewMatchingUsecase(jobs, jobSkills, candidateSkills, users)
	view, err := uc.CalculateMatch(context.Background(), seekerID, jobID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if view.Result.Score != 44 {
		t.Fatalf("Score = %d, want 44", view.Result.Score)
	}
	if view.Breakdown.SkillsOnlyScore != 44 {
		t.Fatalf("SkillsOnlyScore = %d, want 44", view.Breakdown.SkillsOnlyScore)
	}
	if !view.Breakdown.LocationMatch || !view.Breakdown.RemoteMatch {
		t.Fatalf("breakdown = %+v, want both factors matched", view.Breakdown)
	}
	// 0.6*44 + 20 + 20 = 66.4 -> 66
	if view.Breakdown.BlendedScore != 66 {
		t.Fatalf("BlendedScore = %d, want 66", view.Breakdown.BlendedScore)
	}
}

func TestCalculateMatch_JobNotFound(t *testing.T) {
	uc := NewMatchingUsecase(stubJobRepo{}, stubJobSkillRepo{}, stubCandidateSkillRepo{}, stubUserRepo{})
	if _, err := uc.CalculateMatch(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestCalculateMatch_EmptyInventory(t *testing.T) {
	jobID := uuid.New()
	jobs := stubJobRepo{jobs: map[uuid.UUID]repository.Job{jobID: {ID: jobID, Active: true}}}
	uc := NewMatchingUsecase(jobs, stubJobSkillRepo{}, stubCandidateSkillRepo{}, stubUserRepo{})

	if _, err := uc.CalculateMatch(context.Background(), uuid.New(), jobID); !errors.Is(err, ErrSkillInventoryEmpty) {
		t.Fatalf("expected ErrSkillInventoryEmpty, got %v", err)
	}
}

func TestCalculateMatch_JobWithoutSkills(t *testing.T) {
	seekerID := uuid.New()
	jobID := uuid.New()
	jobs := stubJobRepo{jobs: map[uuid.UUID]repository.Job{jobID: {ID: jobID, Active: true}}}
	candidateSkills := stubCandidateSkillRepo{byUser: map[uuid.UUID][]repository.CandidateSkill{
		seekerID: {{SkillID: uuid.New(), Proficiency: matching.ProficiencyExpert}},
	}}
	users := stubUserRepo{users: map[uuid.UUID]user.User{seekerID: {ID: seekerID}}}

	uc := NewMatchingUsecase(jobs, stubJobSkillRepo{}, candidateSkills, users)
	view, err := uc.CalculateMatch(context.Background(), seekerID, jobID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if view.Result.Score != 0 || view.Result.SampleSize != 0 {
		t.Fatalf("result = %+v, want zero score with zero sample size", view.Result)
	}
}
