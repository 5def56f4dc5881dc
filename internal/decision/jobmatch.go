package decision

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hiresift/hiresift-backend/internal/model"
)

// MatchJob compares a candidate's scores and claimed skills against a
// job's requirements. Skill comparison is case-insensitive; a job with
// no required skills counts as a full skill match.
func MatchJob(finalScore, fraudScore int, candidateSkills []string, cfg model.JobConfig) model.JobMatch {
	have := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}

	matched := []string{}
	missing := []string{}
	for _, s := range cfg.Skills {
		if have[strings.ToLower(strings.TrimSpace(s))] {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	skillMatch := 100.0
	if len(cfg.Skills) > 0 {
		skillMatch = float64(len(matched)) / float64(len(cfg.Skills)) * 100
	}

	return model.JobMatch{
		MeetsRequirements: finalScore >= cfg.MinScore &&
			fraudScore <= cfg.RiskTolerance &&
			skillMatch >= 50,
		SkillMatchPercentage: skillMatch,
		MatchedSkills:        matched,
		MissingSkills:        missing,
		ScoreVsMinimum:       fmt.Sprintf("%d/%d", finalScore, cfg.MinScore),
		FraudVsTolerance:     fmt.Sprintf("%d/%d", fraudScore, cfg.RiskTolerance),
	}
}
