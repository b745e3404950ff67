package dto

import (
	"time"

	"talent-match/internal/domain/application"
	"talent-match/internal/usecase"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	UserID      uuid.UUID `json:"user_id"`
	Status      string    `json:"status"`
	Transitions []string  `json:"allowed_transitions"`
	AppliedAt   time.Time `json:"applied_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewApplicationResponse(app application.Application) ApplicationResponse {
	transitions := app.Status.Transitions()
	allowed := make([]string, 0, len(transitions))
	for _, t := range transitions {
		allowed = append(allowed, string(t))
	}
	return ApplicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		UserID:      app.UserID,
		Status:      string(app.Status),
		Transitions: allowed,
		AppliedAt:   app.AppliedAt,
		UpdatedAt:   app.UpdatedAt,
	}
}

type HistoryEntryResponse struct {
	ID        uuid.UUID  `json:"id"`
	OldStatus *string    `json:"old_status"`
	NewStatus string     `json:"new_status"`
	ActorID   *uuid.UUID `json:"actor_id"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewHistoryResponse(entries []application.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		var oldStatus *string
		if e.OldStatus != nil {
			s := string(*e.OldStatus)
			oldStatus = &s
		}
		out = append(out, HistoryEntryResponse{
			ID:        e.ID,
			OldStatus: oldStatus,
			NewStatus: string(e.NewStatus),
			ActorID:   e.ActorID,
			Notes:     e.Notes,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

type BulkOutcomeResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
	OK            bool      `json:"ok"`
	Error         string    `json:"error,omitempty"`
}

func NewBulkOutcomeResponse(outcomes []usecase.BulkTransitionOutcome) []BulkOutcomeResponse {
	out := make([]BulkOutcomeResponse, 0, len(outcomes))
	for _, o := range outcomes {
		r := BulkOutcomeResponse{ApplicationID: o.ApplicationID, OK: o.OK}
		if o.Err != nil {
			r.Error = o.Err.Error()
		}
		out = append(out, r)
	}
	return out
}

type RankedApplicantResponse struct {
	ApplicationID    uuid.UUID `json:"application_id"`
	SeekerID         uuid.UUID `json:"seeker_id"`
	Status           string    `json:"status"`
	Score            int       `json:"score"`
	SampleSize       int       `json:"sample_size"`
	InsufficientData bool      `json:"insufficient_data"`
	SkillCoverage    int       `json:"skill_coverage_pct"`
	RequiredCoverage int       `json:"required_skills_coverage_pct"`
	Error            string    `json:"error,omitempty"`
}

func NewRankedApplicantsResponse(ranked []usecase.RankedApplicant) []RankedApplicantResponse {
	out := make([]RankedApplicantResponse, 0, len(ranked))
	for _, r := range ranked {
		if r.Err != nil {
			out = append(out, RankedApplicantResponse{
				ApplicationID: r.ApplicationID,
				SeekerID:      r.SeekerID,
				Status:        r.Status,
				Error:         r.Err.Error(),
			})
			continue
		}
		out = append(out, RankedApplicantResponse{
			ApplicationID:    r.ApplicationID,
			SeekerID:         r.SeekerID,
			Status:           r.Status,
			Score:            r.Result.Score,
			SampleSize:       r.Result.SampleSize,
			InsufficientData: r.Result.SampleSize == 0,
			SkillCoverage:    r.Result.SkillCoverage,
			RequiredCoverage: r.Result.RequiredCoverage,
		})
	}
	return out
}
