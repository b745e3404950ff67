package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"talent-match/internal/domain/matching"
	"talent-match/internal/metrics"
	"talent-match/internal/repository"
	"talent-match/internal/worker"

	"github.com/google/uuid"
)

// ErrScoreUnavailable marks a ranked entry whose skill inventory could not
// be read. The entry stays in the ranking so the caller sees every applicant.
var ErrScoreUnavailable = errors.New("candidate skill inventory unavailable")

type RankedApplicant struct {
	ApplicationID uuid.UUID
	SeekerID      uuid.UUID
	Status        string
	Result        matching.Result

	// Err is set when this applicant could not be scored; Result is zero then.
	Err error
}

type RankingUsecase interface {
	RankApplicants(ctx context.Context, jobID uuid.UUID) ([]RankedApplicant, error)
}

type Ranking struct {
	jobs            repository.JobRepository
	jobSkills       repository.JobSkillRepository
	candidateSkills repository.CandidateSkillRepository
	applications    repository.ApplicationRepository
	pool            *worker.Pool
}

func NewRankingUsecase(jobs repository.JobRepository, jobSkills repository.JobSkillRepository, candidateSkills repository.CandidateSkillRepository, applications repository.ApplicationRepository, pool *worker.Pool) *Ranking {
	if pool == nil {
		pool = worker.NewPool(worker.DefaultConcurrency)
	}
	return &Ranking{jobs: jobs, jobSkills: jobSkills, candidateSkills: candidateSkills, applications: applications, pool: pool}
}

// RankApplicants scores every applicant of one job independently and returns
// them ordered by descending skills-only score. Each score reads only its own
// applicant's inputs, so the fan-out is safe; results land in a map keyed by
// application ID before any ordering happens. Ties keep application order
// (applied_at ascending). An applicant whose inventory cannot be read is
// reported in place with Err set, after all scored entries; the call as a
// whole fails only when every applicant fails.
func (u *Ranking) RankApplicants(ctx context.Context, jobID uuid.UUID) ([]RankedApplicant, error) {
	if jobID == uuid.Nil {
		return nil, ErrJobNotFound
	}

	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrJobNotFound
	}

	apps, err := u.applications.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(apps) == 0 {
		return []RankedApplicant{}, nil
	}

	reqs, err := u.jobSkills.FindByJobID(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	engineReqs := toEngineJobSkills(reqs)

	var mu sync.Mutex
	results := make(map[uuid.UUID]matching.Result, len(apps))
	failed := make(map[uuid.UUID]error)

	tasks := make([]worker.Task, 0, len(apps))
	for _, app := range apps {
		app := app
		tasks = append(tasks, func(ctx context.Context) {
			cs, err := u.candidateSkills.FindByUserID(ctx, app.UserID)
			if err != nil {
				mu.Lock()
				failed[app.ID] = fmt.Errorf("%w: %v", ErrScoreUnavailable, err)
				mu.Unlock()
				return
			}
			res := matching.Score(toEngineCandidateSkills(cs), engineReqs)
			metrics.RecordMatchScore(res.Score)

			mu.Lock()
			results[app.ID] = res
			mu.Unlock()
		})
	}
	u.pool.Run(ctx, tasks)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(failed) == len(apps) {
		return nil, ErrInternal
	}

	ranked := make([]RankedApplicant, 0, len(apps))
	for _, app := range apps {
		entry := RankedApplicant{
			ApplicationID: app.ID,
			SeekerID:      app.UserID,
			Status:        string(app.Status),
		}
		if res, ok := results[app.ID]; ok {
			entry.Result = res
		} else if err, ok := failed[app.ID]; ok {
			entry.Err = err
		} else {
			continue
		}
		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if (ranked[i].Err == nil) != (ranked[j].Err == nil) {
			return ranked[i].Err == nil
		}
		return ranked[i].Result.Score > ranked[j].Result.Score
	})

	return ranked, nil
}
