package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"talent-match/internal/domain/matching"
	"talent-match/internal/metrics"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	recommendationCacheTTL = 2 * time.Minute
	recommendationPoolSize = 200
)

type RecommendationItem struct {
	JobID         uuid.UUID               `json:"job_id"`
	Title         string                  `json:"title"`
	CompanyName   string                  `json:"company_name"`
	Location      string                  `json:"location"`
	RemoteOK      bool                    `json:"remote_ok"`
	Score         int                     `json:"score"`
	SampleSize    int                     `json:"sample_size"`
	MissingSkills []matching.MissingSkill `json:"missing_skills"`
}

type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, seekerID uuid.UUID, limit int) ([]RecommendationItem, error)
}

type Recommendation struct {
	jobs            repository.JobRepository
	jobSkills       repository.JobSkillRepository
	candidateSkills repository.CandidateSkillRepository
	applications    repository.ApplicationRepository
	cache           RecommendationCache
	logger          *zap.Logger
}

func NewRecommendationUsecase(jobs repository.JobRepository, jobSkills repository.JobSkillRepository, candidateSkills repository.CandidateSkillRepository, applications repository.ApplicationRepository, cache RecommendationCache, logger *zap.Logger) *Recommendation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recommendation{jobs: jobs, jobSkills: jobSkills, candidateSkills: candidateSkills, applications: applications, cache: cache, logger: logger}
}

// GetRecommendations scores every active posting the seeker has not applied
// to and returns the top limit by skills-only score. An empty catalog or an
// empty skill inventory is a valid input and yields an empty list.
func (u *Recommendation) GetRecommendations(ctx context.Context, seekerID uuid.UUID, limit int) ([]RecommendationItem, error) {
	if seekerID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	cacheKey := recommendationCacheKey(seekerID, limit)
	if u.cache != nil {
		var cached []RecommendationItem
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logger.Debug("recommendation cache hit", zap.String("key", cacheKey))
			return cached, nil
		}
	}

	cs, err := u.candidateSkills.FindByUserID(ctx, seekerID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(cs) == 0 {
		return []RecommendationItem{}, nil
	}
	engineSkills := toEngineCandidateSkills(cs)

	jobs, err := u.jobs.ListActive(ctx, recommendationPoolSize, 0)
	if err != nil {
		return nil, ErrInternal
	}
	if len(jobs) == 0 {
		return []RecommendationItem{}, nil
	}

	applied, err := u.applications.ListAppliedJobIDs(ctx, seekerID)
	if err != nil {
		return nil, ErrInternal
	}

	eligible := jobs[:0:0]
	jobIDs := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		if _, ok := applied[j.ID]; ok {
			continue
		}
		eligible = append(eligible, j)
		jobIDs = append(jobIDs, j.ID)
	}
	if len(eligible) == 0 {
		return []RecommendationItem{}, nil
	}

	reqsByJobID, err := u.jobSkills.FindByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]RecommendationItem, 0, len(eligible))
	for _, j := range eligible {
		res := matching.Score(engineSkills, toEngineJobSkills(reqsByJobID[j.ID]))
		metrics.RecordMatchScore(res.Score)
		out = append(out, RecommendationItem{
			JobID:         j.ID,
			Title:         j.Title,
			CompanyName:   j.CompanyName,
			Location:      j.Location,
			RemoteOK:      j.RemoteOK,
			Score:         res.Score,
			SampleSize:    res.SampleSize,
			MissingSkills: res.Missing,
		})
	}

	// Stable: equal scores keep catalog order (posted_at descending).
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, out, recommendationCacheTTL); err != nil {
			u.logger.Debug("recommendation cache store failed", zap.Error(err))
		}
	}

	return out, nil
}

func recommendationCacheKey(seekerID uuid.UUID, limit int) string {
	return fmt.Sprintf("recommendations:%s:%d", seekerID, limit)
}
