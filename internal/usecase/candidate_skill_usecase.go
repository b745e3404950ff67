package usecase

import (
	"context"
	"errors"

	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound      = errors.New("skill not found")
	ErrSkillAlreadyAdded  = errors.New("skill already in inventory")
	ErrInvalidProficiency = errors.New("invalid proficiency level")
)

type CandidateSkillUsecase interface {
	List(ctx context.Context, seekerID uuid.UUID) ([]repository.CandidateSkill, error)
	Add(ctx context.Context, seekerID, skillID uuid.UUID, p matching.Proficiency) (repository.CandidateSkill, error)
	Update(ctx context.Context, seekerID, skillID uuid.UUID, p matching.Proficiency) (repository.CandidateSkill, error)
	Remove(ctx context.Context, seekerID, skillID uuid.UUID) error
}

type CandidateSkills struct {
	skills          repository.SkillRepository
	candidateSkills repository.CandidateSkillRepository
}

func NewCandidateSkillUsecase(skills repository.SkillRepository, candidateSkills repository.CandidateSkillRepository) *CandidateSkills {
	return &CandidateSkills{skills: skills, candidateSkills: candidateSkills}
}

func (u *CandidateSkills) List(ctx context.Context, seekerID uuid.UUID) ([]repository.CandidateSkill, error) {
	if seekerID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.candidateSkills.FindByUserID(ctx, seekerID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// Add registers a skill in the seeker's inventory. An empty proficiency is
// allowed and scores at the intermediate weight.
func (u *CandidateSkills) Add(ctx context.Context, seekerID, skillID uuid.UUID, p matching.Proficiency) (repository.CandidateSkill, error) {
	if seekerID == uuid.Nil {
		return repository.CandidateSkill{}, ErrUnauthorized
	}
	if p != "" && !p.Valid() {
		return repository.CandidateSkill{}, ErrInvalidProficiency
	}

	exists, err := u.skills.ExistsByID(ctx, skillID)
	if err != nil {
		return repository.CandidateSkill{}, ErrInternal
	}
	if !exists {
		return repository.CandidateSkill{}, ErrSkillNotFound
	}

	cs, err := u.candidateSkills.Create(ctx, repository.CandidateSkill{
		ID:          uuid.New(),
		UserID:      seekerID,
		SkillID:     skillID,
		Proficiency: p,
	})
	if err != nil {
		if errors.Is(err, repository.ErrCandidateSkillExists) {
			return repository.CandidateSkill{}, ErrSkillAlreadyAdded
		}
		return repository.CandidateSkill{}, ErrInternal
	}
	return cs, nil
}

func (u *CandidateSkills) Update(ctx context.Context, seekerID, skillID uuid.UUID, p matching.Proficiency) (repository.CandidateSkill, error) {
	if seekerID == uuid.Nil {
		return repository.CandidateSkill{}, ErrUnauthorized
	}
	if p != "" && !p.Valid() {
		return repository.CandidateSkill{}, ErrInvalidProficiency
	}

	cs, err := u.candidateSkills.UpdateProficiency(ctx, seekerID, skillID, p)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateSkillNotFound) {
			return repository.CandidateSkill{}, ErrSkillNotFound
		}
		return repository.CandidateSkill{}, ErrInternal
	}
	return cs, nil
}

func (u *CandidateSkills) Remove(ctx context.Context, seekerID, skillID uuid.UUID) error {
	if seekerID == uuid.Nil {
		return ErrUnauthorized
	}
	if err := u.candidateSkills.Delete(ctx, seekerID, skillID); err != nil {
		if errors.Is(err, repository.ErrCandidateSkillNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	return nil
}
