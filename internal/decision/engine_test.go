package decision

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiresift/hiresift-backend/internal/model"
)

func newEngine() *Engine {
	return NewEngine(DefaultWeights(), zerolog.Nop())
}

func intp(v int) *int { return &v }

func TestFinalScoreWithoutCoding(t *testing.T) {
	e := newEngine()

	// 80*0.7 + 90*0.3 = 83
	assert.Equal(t, 83, e.FinalScore(80, nil, 10))
}

func TestFinalScoreFullBlend(t *testing.T) {
	e := newEngine()

	// 50*0.3 + 65*0.5 + 80*0.2 = 63.5 -> 63
	assert.Equal(t, 63, e.FinalScore(50, intp(65), 20))
}

func TestFinalScoreClamped(t *testing.T) {
	e := newEngine()

	assert.Equal(t, 0, e.FinalScore(0, intp(0), 100))
	assert.Equal(t, 100, e.FinalScore(100, intp(100), 0))
}

func TestFraudOverrideAlwaysRejects(t *testing.T) {
	e := newEngine()

	for _, resume := range []int{0, 50, 100} {
		for _, coding := range []*int{nil, intp(0), intp(100)} {
			rec := e.Decide(model.StageCodingAssessment, resume, coding, 71, nil, nil)
			assert.Equal(t, model.DecisionReject, rec.Recommendation.Decision)
			assert.Equal(t, model.StageRejectedFraud, rec.NextStage)
			assert.True(t, rec.NextStage.Rejected())
		}
	}
}

func TestNextStageResumeScreening(t *testing.T) {
	e := newEngine()

	assert.Equal(t, model.StageRejectedResume, e.NextStage(model.StageResumeScreening, 39, nil, 50, 0))
	assert.Equal(t, model.StageCodingAssessment, e.NextStage(model.StageResumeScreening, 40, nil, 50, 0))
}

func TestNextStageCodingAssessment(t *testing.T) {
	e := newEngine()

	// Coding not yet submitted: stage does not move.
	assert.Equal(t, model.StageCodingAssessment, e.NextStage(model.StageCodingAssessment, 80, nil, 70, 0))

	assert.Equal(t, model.StageRejectedCoding, e.NextStage(model.StageCodingAssessment, 80, intp(29), 70, 0))
	assert.Equal(t, model.StageTechnicalInterview, e.NextStage(model.StageCodingAssessment, 80, intp(90), 80, 0))
	assert.Equal(t, model.StageManualReview, e.NextStage(model.StageCodingAssessment, 60, intp(60), 62, 0))
	assert.Equal(t, model.StageRejectedOverall, e.NextStage(model.StageCodingAssessment, 50, intp(40), 45, 0))
}

func TestNextStageInterviewsAdvance(t *testing.T) {
	e := newEngine()

	assert.Equal(t, model.StageBehavioralInterview, e.NextStage(model.StageTechnicalInterview, 0, nil, 0, 0))
	assert.Equal(t, model.StageFinalDecision, e.NextStage(model.StageBehavioralInterview, 0, nil, 0, 0))
	assert.Equal(t, model.StageUnknown, e.NextStage(model.PipelineStage("nonsense"), 0, nil, 0, 0))
}

func TestRecommendationBands(t *testing.T) {
	e := newEngine()

	t.Run("strong hire scenario", func(t *testing.T) {
		// resume 80, no coding, fraud 10 -> final 83 -> STRONG HIRE.
		rec := e.Decide(model.StageResumeScreening, 80, nil, 10, nil, nil)
		assert.Equal(t, 83, rec.FinalScore)
		assert.Equal(t, model.DecisionStrongHire, rec.Recommendation.Decision)
	})

	t.Run("proceed with caution scenario", func(t *testing.T) {
		// resume 50, coding 65, fraud 20 -> final 63 -> CAUTION.
		rec := e.Decide(model.StageCodingAssessment, 50, intp(65), 20, nil, nil)
		assert.Equal(t, 63, rec.FinalScore)
		assert.Equal(t, model.DecisionWithCaution, rec.Recommendation.Decision)
		assert.Equal(t, model.StageManualReview, rec.NextStage)
	})

	t.Run("weak candidate", func(t *testing.T) {
		rec := e.Recommend(40, intp(45), 10, 45)
		assert.Equal(t, model.DecisionWeak, rec.Decision)
	})

	t.Run("reject", func(t *testing.T) {
		rec := e.Recommend(10, intp(20), 10, 20)
		assert.Equal(t, model.DecisionReject, rec.Decision)
	})
}

func TestRecommendationQualitativeBands(t *testing.T) {
	e := newEngine()

	rec := e.Recommend(80, intp(55), 10, 70)

	require.NotEmpty(t, rec.Strengths)
	assert.Contains(t, rec.Strengths[0], "Strong resume")
	assert.Contains(t, rec.Reasons[0], "Adequate coding skills")
	assert.Contains(t, rec.Strengths[1], "Low fraud risk")
	assert.Contains(t, rec.Summary, "PROCEED WITH CAUTION")
	assert.NotEmpty(t, rec.NextSteps)
}

func TestMatchJob(t *testing.T) {
	cfg := model.JobConfig{
		Skills:        []string{"python", "sql", "docker", "aws"},
		MinScore:      60,
		RiskTolerance: 50,
	}

	t.Run("meets requirements", func(t *testing.T) {
		m := MatchJob(75, 10, []string{"Python", "sql", "docker"}, cfg)
		assert.True(t, m.MeetsRequirements)
		assert.Equal(t, 75.0, m.SkillMatchPercentage)
		assert.Equal(t, []string{"docker", "python", "sql"}, m.MatchedSkills)
		assert.Equal(t, []string{"aws"}, m.MissingSkills)
		assert.Equal(t, "75/60", m.ScoreVsMinimum)
	})

	t.Run("fraud above tolerance", func(t *testing.T) {
		m := MatchJob(75, 60, []string{"python", "sql"}, cfg)
		assert.False(t, m.MeetsRequirements)
	})

	t.Run("no required skills is a full match", func(t *testing.T) {
		m := MatchJob(70, 0, nil, model.JobConfig{MinScore: 60, RiskTolerance: 50})
		assert.True(t, m.MeetsRequirements)
		assert.Equal(t, 100.0, m.SkillMatchPercentage)
	})
}
