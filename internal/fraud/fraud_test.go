package fraud

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiresift/hiresift-backend/internal/model"
)

type fragmentMap map[int][]string

func (m fragmentMap) Fragments(questionID int) []string { return m[questionID] }

var twoSumFragments = fragmentMap{
	1: {
		"def two_sum(nums, target):",
		"seen = {}",
		"for i, num in enumerate(nums):",
	},
}

func TestNormalizeCode(t *testing.T) {
	in := "def f(x):  # the function\n\n    return x  \n# trailing comment\n"
	assert.Equal(t, "def f(x):\nreturn x", NormalizeCode(in))
}

func TestPlagiarismAllFragments(t *testing.T) {
	d := NewPlagiarismDetector(twoSumFragments)

	code := `def two_sum(nums, target):
    seen = {}
    for i, num in enumerate(nums):
        seen[num] = i`

	check := d.Detect(code, 1)

	assert.Equal(t, model.CheckPlagiarism, check.Kind)
	assert.True(t, check.Suspicious)
	assert.Equal(t, 100.0, check.Similarity)
	assert.Contains(t, check.Detail, "3/3")
}

func TestPlagiarismNoFragmentsMatch(t *testing.T) {
	d := NewPlagiarismDetector(twoSumFragments)

	check := d.Detect("def solve(a, b):\n    return a + b", 1)

	assert.False(t, check.Suspicious)
	assert.Equal(t, 0.0, check.Similarity)
	assert.Equal(t, "code appears original", check.Detail)
}

func TestPlagiarismNoReference(t *testing.T) {
	d := NewPlagiarismDetector(twoSumFragments)

	check := d.Detect("def anything(): pass", 99)

	assert.False(t, check.Suspicious)
	assert.Equal(t, "no reference available", check.Detail)
}

func TestTimingSuspicious(t *testing.T) {
	d := NewTimingDetector(DefaultTimingConfig())

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// 2 easy questions: expected minimum 10min, threshold 2min.
	end := start.Add(90 * time.Second)

	check := d.Detect(model.TimingInfo{
		StartedAt:   &start,
		SubmittedAt: &end,
		Difficulty:  model.DifficultyEasy,
		Questions:   2,
	})

	assert.True(t, check.Suspicious)
	assert.Contains(t, check.Detail, "expected minimum: 10min")
}

func TestTimingNormal(t *testing.T) {
	d := NewTimingDetector(DefaultTimingConfig())

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)

	check := d.Detect(model.TimingInfo{
		StartedAt:   &start,
		SubmittedAt: &end,
		Difficulty:  model.DifficultyMedium,
		Questions:   2,
	})

	assert.False(t, check.Suspicious)
	assert.Equal(t, "timing appears normal", check.Detail)
}

func TestTimingMissingData(t *testing.T) {
	d := NewTimingDetector(DefaultTimingConfig())

	check := d.Detect(model.TimingInfo{Difficulty: model.DifficultyHard, Questions: 3})

	assert.False(t, check.Suspicious)
	assert.Equal(t, "timing data not available", check.Detail)
}

func TestTimingUnknownDifficultyUsesDefault(t *testing.T) {
	d := NewTimingDetector(DefaultTimingConfig())

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(1 * time.Minute)

	// Unknown difficulty: 10min/question default, 1 question,
	// threshold 2min, 1min elapsed is suspicious.
	check := d.Detect(model.TimingInfo{
		StartedAt:   &start,
		SubmittedAt: &end,
		Difficulty:  model.Difficulty("brutal"),
		Questions:   1,
	})

	assert.True(t, check.Suspicious)
}

func TestResumeAuthenticity(t *testing.T) {
	c := NewAuthenticityChecker(DefaultAuthenticityConfig())

	t.Run("clean", func(t *testing.T) {
		check := c.Check(model.ResumeClaims{
			Skills:          []string{"go", "sql"},
			ExperienceYears: 4,
			Projects:        3,
		})
		assert.False(t, check.Suspicious)
		assert.Equal(t, "resume appears authentic", check.Detail)
	})

	t.Run("keyword stuffing", func(t *testing.T) {
		skills := make([]string, 16)
		for i := range skills {
			skills[i] = "skill"
		}
		check := c.Check(model.ResumeClaims{Skills: skills, Projects: 5})
		assert.True(t, check.Suspicious)
		assert.Contains(t, check.Detail, "excessive skills listed (16)")
	})

	t.Run("unrealistic experience", func(t *testing.T) {
		check := c.Check(model.ResumeClaims{ExperienceYears: 45, Projects: 9})
		assert.True(t, check.Suspicious)
		assert.Contains(t, check.Detail, "unrealistic experience claim (45 years)")
	})

	t.Run("experience project mismatch", func(t *testing.T) {
		check := c.Check(model.ResumeClaims{ExperienceYears: 8, Projects: 1})
		assert.True(t, check.Suspicious)
		assert.Contains(t, check.Detail, "high experience but few projects")
	})

	t.Run("multiple flags concatenated", func(t *testing.T) {
		check := c.Check(model.ResumeClaims{ExperienceYears: 40, Projects: 0})
		assert.True(t, check.Suspicious)
		assert.Contains(t, check.Detail, "; ")
	})
}

func TestScoreEmptyChecks(t *testing.T) {
	report := Score(nil)

	assert.Equal(t, 0, report.FraudScore)
	assert.Equal(t, model.RiskLow, report.RiskLevel)
}

func TestScoreMonotonicity(t *testing.T) {
	checks := []model.FraudCheck{
		{Kind: model.CheckTiming, Suspicious: false},
		{Kind: model.CheckResumeAuthenticity, Suspicious: false},
	}

	prev := Score(checks).FraudScore
	for i := range checks {
		checks[i].Suspicious = true
		cur := Score(checks).FraudScore
		assert.GreaterOrEqual(t, cur, prev, "adding a suspicious check never lowers the score")
		prev = cur
	}
}

func TestScorePlagiarismPenalty(t *testing.T) {
	base := Score([]model.FraudCheck{
		{Kind: model.CheckTiming, Suspicious: true},
		{Kind: model.CheckResumeAuthenticity, Suspicious: false},
	})
	withPlagiarism := Score([]model.FraudCheck{
		{Kind: model.CheckPlagiarism, Suspicious: true},
		{Kind: model.CheckResumeAuthenticity, Suspicious: false},
	})

	assert.Equal(t, 50, base.FraudScore)
	assert.Equal(t, 70, withPlagiarism.FraudScore)
}

func TestScoreCapsAtHundred(t *testing.T) {
	report := Score([]model.FraudCheck{
		{Kind: model.CheckPlagiarism, Suspicious: true},
		{Kind: model.CheckTiming, Suspicious: true},
	})

	assert.Equal(t, 100, report.FraudScore)
	assert.Equal(t, model.RiskHigh, report.RiskLevel)
}

func TestRiskLevels(t *testing.T) {
	assert.Equal(t, model.RiskLow, RiskLevelFor(40))
	assert.Equal(t, model.RiskMedium, RiskLevelFor(41))
	assert.Equal(t, model.RiskMedium, RiskLevelFor(70))
	assert.Equal(t, model.RiskHigh, RiskLevelFor(71))
}

func TestPipelineRun(t *testing.T) {
	p := NewPipeline(
		NewPlagiarismDetector(twoSumFragments),
		NewTimingDetector(DefaultTimingConfig()),
		NewAuthenticityChecker(DefaultAuthenticityConfig()),
		zerolog.Nop(),
	)

	subs := []model.Submission{
		{QuestionID: 1, SourceCode: "def solve(a):\n    return a"},
		{QuestionID: 2, SourceCode: "def other(b):\n    return b"},
	}
	report := p.Run(subs, model.ResumeClaims{Skills: []string{"go"}, ExperienceYears: 3, Projects: 2}, model.TimingInfo{})

	require.Len(t, report.Checks, 4)
	assert.Equal(t, model.CheckResumeAuthenticity, report.Checks[0].Kind)
	assert.Equal(t, model.CheckPlagiarism, report.Checks[1].Kind)
	assert.Equal(t, model.CheckPlagiarism, report.Checks[2].Kind)
	assert.Equal(t, model.CheckTiming, report.Checks[3].Kind)
	assert.Equal(t, 0, report.FraudScore)
	assert.Equal(t, model.RiskLow, report.RiskLevel)
}
