package usecase

import (
	"context"

	"talent-match/internal/repository"
)

type SkillUsecase interface {
	List(ctx context.Context, limit, offset int) ([]repository.Skill, error)
}

type Skills struct {
	skills repository.SkillRepository
}

func NewSkillUsecase(skills repository.SkillRepository) *Skills {
	return &Skills{skills: skills}
}

func (u *Skills) List(ctx context.Context, limit, offset int) ([]repository.Skill, error) {
	if limit < 0 || limit > 500 || offset < 0 {
		return nil, ErrInvalidInput
	}
	out, err := u.skills.List(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
