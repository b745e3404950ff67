package usecase

import (
	"context"
	"errors"

	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/user"
	"talent-match/internal/metrics"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrSkillInventoryEmpty = errors.New("skill inventory empty")
)

// MatchView pairs the authoritative skills-only result with the seeker-facing
// blended breakdown. Ranking paths must read Result.Score, never the blend.
type MatchView struct {
	Result    matching.Result
	Breakdown matching.Breakdown
}

type MatchingUsecase interface {
	CalculateMatch(ctx context.Context, seekerID, jobID uuid.UUID) (MatchView, error)
}

type Matching struct {
	jobs            repository.JobRepository
	jobSkills       repository.JobSkillRepository
	candidateSkills repository.CandidateSkillRepository
	users           user.Repository
}

func NewMatchingUsecase(jobs repository.JobRepository, jobSkills repository.JobSkillRepository, candidateSkills repository.CandidateSkillRepository, users user.Repository) *Matching {
	return &Matching{jobs: jobs, jobSkills: jobSkills, candidateSkills: candidateSkills, users: users}
}

func (u *Matching) CalculateMatch(ctx context.Context, seekerID, jobID uuid.UUID) (MatchView, error) {
	if seekerID == uuid.Nil {
		return MatchView{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return MatchView{}, ErrJobNotFound
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return MatchView{}, ErrJobNotFound
		}
		return MatchView{}, ErrInternal
	}

	cs, err := u.candidateSkills.FindByUserID(ctx, seekerID)
	if err != nil {
		return MatchView{}, ErrInternal
	}
	if len(cs) == 0 {
		return MatchView{}, ErrSkillInventoryEmpty
	}

	reqs, err := u.jobSkills.FindByJobID(ctx, jobID)
	if err != nil {
		return MatchView{}, ErrInternal
	}

	seeker, err := u.users.GetByID(ctx, seekerID)
	if err != nil {
		return MatchView{}, ErrInternal
	}

	res := matching.Score(toEngineCandidateSkills(cs), toEngineJobSkills(reqs))
	metrics.RecordMatchScore(res.Score)

	bd := matching.Blend(res, matching.LocationFactors{
		JobLocation:    j.Location,
		JobRemoteOK:    j.RemoteOK,
		SeekerLocation: seeker.Location,
		SeekerRemoteOK: seeker.RemoteOK,
	})

	return MatchView{Result: res, Breakdown: bd}, nil
}

func toEngineCandidateSkills(in []repository.CandidateSkill) []matching.CandidateSkill {
	out := make([]matching.CandidateSkill, 0, len(in))
	for _, it := range in {
		out = append(out, matching.CandidateSkill{
			SkillID:     it.SkillID,
			SkillName:   it.SkillName,
			Proficiency: it.Proficiency,
		})
	}
	return out
}

func toEngineJobSkills(in []repository.JobSkillRequirement) []matching.JobSkill {
	out := make([]matching.JobSkill, 0, len(in))
	for _, r := range in {
		out = append(out, matching.JobSkill{
			SkillID:   r.SkillID,
			SkillName: r.SkillName,
			Required:  r.Required,
		})
	}
	return out
}
