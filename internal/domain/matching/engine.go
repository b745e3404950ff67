package matching

import (
	"math"

	"github.com/google/uuid"
)

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// exactThreshold separates exact from partial matches: a candidate whose
// proficiency weight falls below it still counts the skill, at reduced credit.
const exactThreshold = 0.70

const (
	requiredBaseWeight = 2.0
	optionalBaseWeight = 1.0
)

// Weight maps a proficiency level onto its scoring multiplier. Unset or
// unrecognized levels are treated as intermediate.
func (p Proficiency) Weight() float64 {
	switch p {
	case ProficiencyExpert:
		return 1.00
	case ProficiencyAdvanced:
		return 0.85
	case ProficiencyIntermediate:
		return 0.70
	case ProficiencyBeginner:
		return 0.50
	default:
		return 0.70
	}
}

func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return true
	}
	return false
}

type CandidateSkill struct {
	SkillID     uuid.UUID
	SkillName   string
	Proficiency Proficiency
}

type JobSkill struct {
	SkillID   uuid.UUID
	SkillName string
	Required  bool
}

type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchPartial MatchType = "partial"
)

type MatchedSkill struct {
	SkillID     uuid.UUID
	SkillName   string
	Required    bool
	Proficiency Proficiency
	MatchType   MatchType
}

type PartialSkill struct {
	SkillID     uuid.UUID
	SkillName   string
	Required    bool
	Proficiency Proficiency
}

type MissingSkill struct {
	SkillID   uuid.UUID
	SkillName string
	Required  bool
}

// Result is the skills-only compatibility verdict for one (candidate, job)
// pair. Matched, Partial and Missing partition the job's skill set exactly.
// SampleSize is the number of job skills the score was computed over; a zero
// SampleSize means the job listed no skills and the Score carries no signal.
type Result struct {
	Score            int
	SampleSize       int
	Matched          []MatchedSkill
	Partial          []PartialSkill
	Missing          []MissingSkill
	SkillCoverage    int
	RequiredCoverage int
}

// Score computes the authoritative skills-only match between a candidate's
// skill inventory and a job's skill requirements. Required skills weigh twice
// as much as optional ones; each held skill contributes its base weight scaled
// by the candidate's proficiency weight. Deterministic and side-effect-free.
func Score(candidate []CandidateSkill, jobSkills []JobSkill) Result {
	bySkillID := make(map[uuid.UUID]CandidateSkill, len(candidate))
	for _, cs := range candidate {
		if cs.SkillID == uuid.Nil {
			continue
		}
		bySkillID[cs.SkillID] = cs
	}

	res := Result{
		Matched: make([]MatchedSkill, 0, len(jobSkills)),
		Partial: make([]PartialSkill, 0),
		Missing: make([]MissingSkill, 0),
	}

	var rawScore, maxScore float64
	var requiredTotal, requiredMatched int

	for _, js := range jobSkills {
		if js.SkillID == uuid.Nil {
			continue
		}
		res.SampleSize++

		base := optionalBaseWeight
		if js.Required {
			base = requiredBaseWeight
			requiredTotal++
		}
		maxScore += base

		cs, ok := bySkillID[js.SkillID]
		if !ok {
			res.Missing = append(res.Missing, MissingSkill{
				SkillID:   js.SkillID,
				SkillName: js.SkillName,
				Required:  js.Required,
			})
			continue
		}

		w := cs.Proficiency.Weight()
		rawScore += base * w

		if w >= exactThreshold {
			res.Matched = append(res.Matched, MatchedSkill{
				SkillID:     js.SkillID,
				SkillName:   js.SkillName,
				Required:    js.Required,
				Proficiency: cs.Proficiency,
				MatchType:   MatchExact,
			})
			if js.Required {
				requiredMatched++
			}
		} else {
			res.Partial = append(res.Partial, PartialSkill{
				SkillID:     js.SkillID,
				SkillName:   js.SkillName,
				Required:    js.Required,
				Proficiency: cs.Proficiency,
			})
		}
	}

	if maxScore > 0 {
		res.Score = roundPct(rawScore / maxScore)
	}

	if res.SampleSize > 0 {
		res.SkillCoverage = roundPct(float64(len(res.Matched)+len(res.Partial)) / float64(res.SampleSize))
	}

	// A job with no required skills is fully satisfied on the required axis.
	if requiredTotal == 0 {
		res.RequiredCoverage = 100
	} else {
		res.RequiredCoverage = roundPct(float64(requiredMatched) / float64(requiredTotal))
	}

	return res
}

func roundPct(ratio float64) int {
	p := int(math.Round(ratio * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
