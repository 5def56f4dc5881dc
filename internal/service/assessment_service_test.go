package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hiresift/hiresift-backend/internal/model"
)

func answer(words int) model.HRAnswer {
	return model.HRAnswer{Answer: strings.Repeat("word ", words)}
}

func TestScoreHRAnswers(t *testing.T) {
	assert.Equal(t, 0, scoreHRAnswers(nil))
	assert.Equal(t, 100, scoreHRAnswers([]model.HRAnswer{answer(50)}))
	assert.Equal(t, 85, scoreHRAnswers([]model.HRAnswer{answer(30)}))
	assert.Equal(t, 70, scoreHRAnswers([]model.HRAnswer{answer(15)}))
	assert.Equal(t, 50, scoreHRAnswers([]model.HRAnswer{answer(5)}))
	assert.Equal(t, 20, scoreHRAnswers([]model.HRAnswer{answer(2)}))

	// Average over answers, integer division.
	got := scoreHRAnswers([]model.HRAnswer{answer(50), answer(2)})
	assert.Equal(t, 60, got)
}

func TestWordScoreBoundaries(t *testing.T) {
	assert.Equal(t, 20, wordScore(4))
	assert.Equal(t, 50, wordScore(5))
	assert.Equal(t, 50, wordScore(14))
	assert.Equal(t, 70, wordScore(15))
	assert.Equal(t, 85, wordScore(49))
	assert.Equal(t, 100, wordScore(50))
}

func TestSummarizePhasesAllPresent(t *testing.T) {
	coding, hr := 90, 80
	overall, verdict := summarizePhases(70, &coding, &hr)

	// 70*0.3 + 90*0.4 + 80*0.3 = 81
	assert.Equal(t, 81, overall)
	assert.Equal(t, "Strong match - highly recommended", verdict)
}

func TestSummarizePhasesSinglePhasePassesThrough(t *testing.T) {
	// Normalizing the weights over completed phases must not shave a
	// point off a lone score (62*0.3/0.3 stays exactly 62).
	for _, resume := range []int{62, 50, 41, 99} {
		overall, _ := summarizePhases(resume, nil, nil)
		assert.Equal(t, resume, overall, "resume=%d", resume)
	}
}

func TestSummarizePhasesVerdictBands(t *testing.T) {
	cases := []struct {
		resume  int
		verdict string
	}{
		{80, "Strong match - highly recommended"},
		{79, "Good match - recommended"},
		{65, "Good match - recommended"},
		{64, "Moderate match - consider"},
		{50, "Moderate match - consider"},
		{49, "Below average - manual review"},
		{40, "Below average - manual review"},
		{39, "Poor match - not recommended"},
	}
	for _, tc := range cases {
		_, verdict := summarizePhases(tc.resume, nil, nil)
		assert.Equal(t, tc.verdict, verdict, "resume=%d", tc.resume)
	}
}

func TestSummarizePhasesResumeAndCoding(t *testing.T) {
	coding := 80
	overall, _ := summarizePhases(60, &coding, nil)

	// Weights renormalize to 3/7 resume + 4/7 coding.
	assert.Equal(t, 71, overall)
}

func TestInterimVerdictIntake(t *testing.T) {
	cases := []struct {
		resume  int
		verdict string
	}{
		{85, "Strong match - highly recommended"},
		{60, "Promising profile"},
		{59, "Borderline - manual review"},
		{40, "Borderline - manual review"},
		{39, "Below threshold"},
	}
	for _, tc := range cases {
		score, verdict := interimVerdict(tc.resume, nil)
		assert.Equal(t, tc.resume, score, "resume=%d", tc.resume)
		assert.Equal(t, tc.verdict, verdict, "resume=%d", tc.resume)
	}
}

func TestInterimVerdictAfterCoding(t *testing.T) {
	coding := 71
	score, verdict := interimVerdict(70, &coding)

	// Integer average of resume and coding.
	assert.Equal(t, 70, score)
	assert.Equal(t, "Promising profile", verdict)
}

func TestParseSkills(t *testing.T) {
	assert.Nil(t, parseSkills(""))
	assert.Equal(t, []string{"python", "sql"}, parseSkills("python, sql"))
	assert.Equal(t, []string{"go"}, parseSkills(" go ,, "))
}
