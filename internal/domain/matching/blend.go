package matching

import (
	"math"
	"strings"
)

// Blend weights for the seeker-facing presentation score. The skills-only
// Score stays authoritative for ranking; the blended number only decorates
// the per-seeker explanation view.
const (
	blendSkillsWeight   = 0.60
	blendLocationWeight = 0.20
	blendRemoteWeight   = 0.20
)

type LocationFactors struct {
	JobLocation    string
	JobRemoteOK    bool
	SeekerLocation string
	SeekerRemoteOK bool
}

// Breakdown is the optional seeker-facing layer on top of a Result. It keeps
// the skills-only score and the blended score apart so the two are never
// confused for one another.
type Breakdown struct {
	SkillsOnlyScore int
	BlendedScore    int
	LocationMatch   bool
	RemoteMatch     bool
}

// Blend folds location and remote compatibility into a presentation score:
// 60% skills, 20% location, 20% remote.
func Blend(res Result, f LocationFactors) Breakdown {
	b := Breakdown{
		SkillsOnlyScore: res.Score,
		LocationMatch:   locationMatches(f),
		RemoteMatch:     remoteMatches(f),
	}

	blended := blendSkillsWeight * float64(res.Score)
	if b.LocationMatch {
		blended += blendLocationWeight * 100
	}
	if b.RemoteMatch {
		blended += blendRemoteWeight * 100
	}
	b.BlendedScore = clampPct(int(math.Round(blended)))

	return b
}

// A job with no stated location constrains nobody. Remote-friendly jobs match
// remote-willing seekers regardless of geography.
func locationMatches(f LocationFactors) bool {
	job := strings.TrimSpace(f.JobLocation)
	if job == "" {
		return true
	}
	if strings.EqualFold(job, strings.TrimSpace(f.SeekerLocation)) {
		return true
	}
	return f.JobRemoteOK && f.SeekerRemoteOK
}

func remoteMatches(f LocationFactors) bool {
	if !f.SeekerRemoteOK {
		return true
	}
	return f.JobRemoteOK
}

func clampPct(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
