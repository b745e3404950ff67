package usecase

import (
	"context"
	"testing"
	"time"

	"talent-match/internal/domain/application"
	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type listingJobRepo struct {
	active []repository.Job
}

func (r listingJobRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Job, error) {
	for _, j := range r.active {
		if j.ID == id {
			return j, nil
		}
	}
	return repository.Job{}, repository.ErrJobNotFound
}

func (r listingJobRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := r.GetByID(ctx, id)
	return err == nil, nil
}

func (r listingJobRepo) ListActive(ctx context.Context, limit, offset int) ([]repository.Job, error) {
	return r.active, nil
}

type memoryCache struct {
	stored map[string]any
	hits   int
}

func (c *memoryCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if c.stored == nil {
		return false, nil
	}
	if _, ok := c.stored[key]; !ok {
		return false, nil
	}
	c.hits++
	return false, nil // decode skipped; the test only observes store/load calls
}

func (c *memoryCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	if c.stored == nil {
		c.stored = map[string]any{}
	}
	c.stored[key] = val
	return nil
}

func recommendationFixture() (uuid.UUID, listingJobRepo, stubJobSkillRepo, stubCandidateSkillRepo, *fakeApplicationRepo) {
	seekerID := uuid.New()
	goSkill := uuid.New()
	rustSkill := uuid.New()

	strongJob := repository.Job{ID: uuid.New(), Title: "Go Backend", Active: true, PostedAt: time.Now().UTC()}
	weakJob := repository.Job{ID: uuid.New(), Title: "Rust Systems", Active: true, PostedAt: time.Now().UTC().Add(-time.Hour)}
	appliedJob := repository.Job{ID: uuid.New(), Title: "Go Platform", Active: true, PostedAt: time.Now().UTC().Add(-2 * time.Hour)}

	jobs := listingJobRepo{active: []repository.Job{strongJob, weakJob, appliedJob}}
	jobSkills := stubJobSkillRepo{byJob: map[uuid.UUID][]repository.JobSkillRequirement{
		strongJob.ID:  {{SkillID: goSkill, SkillName: "Go", Required: true}},
		weakJob.ID:    {{SkillID: rustSkill, SkillName: "Rust", Required: true}},
		appliedJob.ID: {{SkillID: goSkill, SkillName: "Go", Required: true}},
	}}
	candidateSkills := stubCandidateSkillRepo{byUser: map[uuid.UUID][]repository.CandidateSkill{
		seekerID: {{SkillID: goSkill, SkillName: "Go", Proficiency: matching.ProficiencyExpert}},
	}}

	apps := newFakeApplicationRepo()
	appID := uuid.New()
	apps.apps[appID] = &application.Application{
		ID:     appID,
		JobID:  appliedJob.ID,
		UserID: seekerID,
		Status: application.StatusPending,
	}

	return seekerID, jobs, jobSkills, candidateSkills, apps
}

func TestGetRecommendations_ExcludesAppliedAndSortsByScore(t *testing.T) {
	seekerID, jobs, jobSkills, candidateSkills, apps := recommendationFixture()
	uc := NewRecommendationUsecase(jobs, jobSkills, candidateSkills, apps, nil, nil)

	out, err := uc.GetRecommendations(context.Background(), seekerID, 20)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("recommendations = %d, want 2 (applied job excluded)", len(out))
	}
	if out[0].Title != "Go Backend" {
		t.Fatalf("top recommendation = %q, want the full-match job", out[0].Title)
	}
	if out[0].Score != 100 || out[1].Score != 0 {
		t.Fatalf("scores = %d, %d, want 100, 0", out[0].Score, out[1].Score)
	}
	if len(out[1].MissingSkills) != 1 || out[1].MissingSkills[0].SkillName != "Rust" {
		t.Fatalf("missing skills = %+v, want Rust", out[1].MissingSkills)
	}
}

func TestGetRecommendations_LimitTruncates(t *testing.T) {
	seekerID, jobs, jobSkills, candidateSkills, apps := recommendationFixture()
	uc := NewRecommendationUsecase(jobs, jobSkills, candidateSkills, apps, nil, nil)

	out, err := uc.GetRecommendations(context.Background(), seekerID, 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("recommendations = %d, want 1", len(out))
	}
	if out[0].Score != 100 {
		t.Fatalf("truncation must keep the highest score, got %d", out[0].Score)
	}
}

func TestGetRecommendations_EmptyInventory(t *testing.T) {
	_, jobs, jobSkills, _, apps := recommendationFixture()
	uc := NewRecommendationUsecase(jobs, jobSkills, stubCandidateSkillRepo{}, apps, nil, nil)

	out, err := uc.GetRecommendations(context.Background(), uuid.New(), 20)
	if err != nil {
		t.Fatalf("empty inventory is not an error, got %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("recommendations = %d, want empty", len(out))
	}
}

func TestGetRecommendations_EmptyCatalog(t *testing.T) {
	seekerID := uuid.New()
	candidateSkills := stubCandidateSkillRepo{byUser: map[uuid.UUID][]repository.CandidateSkill{
		seekerID: {{SkillID: uuid.New(), Proficiency: matching.ProficiencyExpert}},
	}}
	uc := NewRecommendationUsecase(listingJobRepo{}, stubJobSkillRepo{}, candidateSkills, newFakeApplicationRepo(), nil, nil)

	out, err := uc.GetRecommendations(context.Background(), seekerID, 20)
	if err != nil {
		t.Fatalf("empty catalog is not an error, got %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("recommendations = %d, want empty", len(out))
	}
}

func TestGetRecommendations_StoresInCache(t *testing.T) {
	seekerID, jobs, jobSkills, candidateSkills, apps := recommendationFixture()
	c := &memoryCache{}
	uc := NewRecommendationUsecase(jobs, jobSkills, candidateSkills, apps, c, nil)

	if _, err := uc.GetRecommendations(context.Background(), seekerID, 20); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(c.stored) != 1 {
		t.Fatalf("cache entries = %d, want 1", len(c.stored))
	}
}
