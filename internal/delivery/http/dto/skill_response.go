package dto

import (
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
}

func NewSkillListResponse(skills []repository.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category})
	}
	return out
}

type CandidateSkillResponse struct {
	SkillID     uuid.UUID `json:"skill_id"`
	SkillName   string    `json:"skill_name"`
	Proficiency string    `json:"proficiency,omitempty"`
}

func NewCandidateSkillResponse(cs repository.CandidateSkill) CandidateSkillResponse {
	return CandidateSkillResponse{
		SkillID:     cs.SkillID,
		SkillName:   cs.SkillName,
		Proficiency: string(cs.Proficiency),
	}
}

func NewCandidateSkillListResponse(in []repository.CandidateSkill) []CandidateSkillResponse {
	out := make([]CandidateSkillResponse, 0, len(in))
	for _, cs := range in {
		out = append(out, NewCandidateSkillResponse(cs))
	}
	return out
}
