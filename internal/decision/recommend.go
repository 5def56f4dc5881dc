package decision

import (
	"fmt"

	"github.com/hiresift/hiresift-backend/internal/model"
)

// Recommend derives the decision category and the qualitative
// strengths/weaknesses/reasons from threshold bands on each score,
// plus the fixed next-step actions per category. A fraud score above
// FraudRejectAbove overrides the category to REJECT.
func (e *Engine) Recommend(resumeScore int, codingScore *int, fraudScore, finalScore int) model.Recommendation {
	rec := model.Recommendation{
		FinalScore: finalScore,
		Strengths:  []string{},
		Weaknesses: []string{},
		Reasons:    []string{},
	}

	switch {
	case resumeScore >= 70:
		rec.Strengths = append(rec.Strengths, scoreLine("Strong resume", resumeScore))
	case resumeScore >= 50:
		rec.Reasons = append(rec.Reasons, scoreLine("Decent resume", resumeScore))
	default:
		rec.Weaknesses = append(rec.Weaknesses, scoreLine("Weak resume", resumeScore))
	}

	if codingScore != nil {
		switch {
		case *codingScore >= 70:
			rec.Strengths = append(rec.Strengths, scoreLine("Excellent coding skills", *codingScore))
		case *codingScore >= 50:
			rec.Reasons = append(rec.Reasons, scoreLine("Adequate coding skills", *codingScore))
		default:
			rec.Weaknesses = append(rec.Weaknesses, scoreLine("Poor coding performance", *codingScore))
		}
	}

	switch {
	case fraudScore > FraudRejectAbove:
		rec.Weaknesses = append(rec.Weaknesses, scoreLine("HIGH fraud risk", fraudScore))
	case fraudScore > 40:
		rec.Reasons = append(rec.Reasons, scoreLine("MEDIUM fraud risk", fraudScore))
	default:
		rec.Strengths = append(rec.Strengths, scoreLine("Low fraud risk", fraudScore))
	}

	switch {
	case fraudScore > FraudRejectAbove:
		rec.Decision = model.DecisionReject
		rec.Verdict = "High fraud risk detected"
		rec.NextSteps = []string{
			"Flag for manual review",
			"Do not proceed with interview",
		}
	case finalScore >= strongHireAt:
		rec.Decision = model.DecisionStrongHire
		rec.Verdict = "Excellent candidate - highly recommended"
		rec.NextSteps = []string{
			"Schedule technical interview",
			"Fast-track to hiring manager",
		}
	case finalScore >= cautionAt:
		rec.Decision = model.DecisionWithCaution
		rec.Verdict = "Borderline candidate - requires manual review"
		rec.NextSteps = []string{
			"Manual review by senior engineer",
			"Additional screening may be needed",
		}
	case finalScore >= weakAt:
		rec.Decision = model.DecisionWeak
		rec.Verdict = "Below threshold but not auto-rejected"
		rec.NextSteps = []string{
			"Consider for junior positions",
			"May need additional training",
		}
	default:
		rec.Decision = model.DecisionReject
		rec.Verdict = "Does not meet minimum requirements"
		rec.NextSteps = []string{
			"Send rejection email",
			"Keep in talent pool for future opportunities",
		}
	}

	rec.Summary = fmt.Sprintf("%s: %s (Final Score: %d/100)", rec.Decision, rec.Verdict, finalScore)
	return rec
}
