package fraud

import (
	"fmt"

	"github.com/hiresift/hiresift-backend/internal/model"
)

const (
	// PlagiarismPenalty is added once when any suspicious check is of
	// kind plagiarism.
	PlagiarismPenalty = 20

	highRiskAbove   = 70
	mediumRiskAbove = 40
)

// Score folds independent fraud checks into a single 0-100 score and
// risk tier. An empty check set yields a zero score at LOW risk.
// Adding a suspicious check never decreases the score.
func Score(checks []model.FraudCheck) model.FraudReport {
	report := model.FraudReport{Checks: checks, RiskLevel: model.RiskLow}
	if len(checks) == 0 {
		report.Summary = summaryLine(0, 0)
		return report
	}

	suspicious := 0
	plagiarized := false
	for _, c := range checks {
		if !c.Suspicious {
			continue
		}
		suspicious++
		if c.Kind == model.CheckPlagiarism {
			plagiarized = true
		}
	}

	score := suspicious * 100 / len(checks)
	if plagiarized {
		score += PlagiarismPenalty
	}
	if score > 100 {
		score = 100
	}

	report.FraudScore = score
	report.RiskLevel = RiskLevelFor(score)
	report.Summary = summaryLine(score, suspicious)
	return report
}

// RiskLevelFor maps a fraud score to its risk tier.
func RiskLevelFor(score int) model.RiskLevel {
	switch {
	case score > highRiskAbove:
		return model.RiskHigh
	case score > mediumRiskAbove:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

func summaryLine(score, suspicious int) string {
	return fmt.Sprintf("Fraud risk: %d/100 - %d suspicious indicators found", score, suspicious)
}
