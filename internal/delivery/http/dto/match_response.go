package dto

import (
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
)

type MatchSkillResponse struct {
	SkillID     uuid.UUID `json:"skill_id"`
	SkillName   string    `json:"skill_name"`
	IsRequired  bool      `json:"is_required"`
	Proficiency string    `json:"proficiency,omitempty"`
	MatchType   string    `json:"match_type,omitempty"`
}

type MatchBreakdownResponse struct {
	SkillsOnlyScore int  `json:"skills_only_score"`
	BlendedScore    int  `json:"blended_score"`
	LocationMatch   bool `json:"location_match"`
	RemoteMatch     bool `json:"remote_match"`
}

// MatchResultResponse exposes sample_size and insufficient_data so a UI can
// tell "no skills listed" apart from "zero compatibility".
type MatchResultResponse struct {
	Score            int                    `json:"score"`
	SampleSize       int                    `json:"sample_size"`
	InsufficientData bool                   `json:"insufficient_data"`
	SkillCoverage    int                    `json:"skill_coverage_pct"`
	RequiredCoverage int                    `json:"required_skills_coverage_pct"`
	MatchedSkills    []MatchSkillResponse   `json:"matched_skills"`
	PartialSkills    []MatchSkillResponse   `json:"partially_matched_skills"`
	MissingSkills    []MatchSkillResponse   `json:"missing_skills"`
	Breakdown        MatchBreakdownResponse `json:"breakdown"`
}

func NewMatchResultResponse(res matching.Result, bd matching.Breakdown) MatchResultResponse {
	out := MatchResultResponse{
		Score:            res.Score,
		SampleSize:       res.SampleSize,
		InsufficientData: res.SampleSize == 0,
		SkillCoverage:    res.SkillCoverage,
		RequiredCoverage: res.RequiredCoverage,
		MatchedSkills:    make([]MatchSkillResponse, 0, len(res.Matched)),
		PartialSkills:    make([]MatchSkillResponse, 0, len(res.Partial)),
		MissingSkills:    make([]MatchSkillResponse, 0, len(res.Missing)),
		Breakdown: MatchBreakdownResponse{
			SkillsOnlyScore: bd.SkillsOnlyScore,
			BlendedScore:    bd.BlendedScore,
			LocationMatch:   bd.LocationMatch,
			RemoteMatch:     bd.RemoteMatch,
		},
	}
	for _, s := range res.Matched {
		out.MatchedSkills = append(out.MatchedSkills, MatchSkillResponse{
			SkillID:     s.SkillID,
			SkillName:   s.SkillName,
			IsRequired:  s.Required,
			Proficiency: string(s.Proficiency),
			MatchType:   string(s.MatchType),
		})
	}
	for _, s := range res.Partial {
		out.PartialSkills = append(out.PartialSkills, MatchSkillResponse{
			SkillID:     s.SkillID,
			SkillName:   s.SkillName,
			IsRequired:  s.Required,
			Proficiency: string(s.Proficiency),
			MatchType:   string(matching.MatchPartial),
		})
	}
	for _, s := range res.Missing {
		out.MissingSkills = append(out.MissingSkills, MatchSkillResponse{
			SkillID:    s.SkillID,
			SkillName:  s.SkillName,
			IsRequired: s.Required,
		})
	}
	return out
}
