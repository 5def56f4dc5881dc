package judge

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiresift/hiresift-backend/internal/model"
)

type stubRunner struct {
	fn func(code string, tc model.TestCase) model.ExecutionResult
}

func (s stubRunner) Execute(_ context.Context, code string, tc model.TestCase) model.ExecutionResult {
	return s.fn(code, tc)
}

func passAll() stubRunner {
	return stubRunner{fn: func(_ string, tc model.TestCase) model.ExecutionResult {
		return model.ExecutionResult{Passed: true, Expected: tc.Expected}
	}}
}

func questionWithTests(id, tests int) model.Question {
	q := model.Question{ID: id, Title: fmt.Sprintf("Q%d", id), Difficulty: model.DifficultyEasy}
	for i := 0; i < tests; i++ {
		q.TestCases = append(q.TestCases, model.TestCase{
			Input:    map[string]any{"n": i},
			Expected: i,
		})
	}
	return q
}

func TestGradeNoSubmissions(t *testing.T) {
	g := NewGrader(passAll(), 4, zerolog.Nop())

	report := g.Grade(context.Background(), []model.Question{questionWithTests(1, 3)}, nil)

	assert.Equal(t, 0, report.Score)
	assert.Empty(t, report.PerTest)
	assert.NotNil(t, report.PerTest)
}

func TestGradeSkipsQuestionsWithoutTests(t *testing.T) {
	g := NewGrader(passAll(), 4, zerolog.Nop())

	questions := []model.Question{
		questionWithTests(1, 2),
		{ID: 2, Title: "no tests"},
	}
	subs := []model.Submission{
		{QuestionID: 1, SourceCode: "def f(n): return n"},
		{QuestionID: 2, SourceCode: "def g(n): return n"},
	}

	report := g.Grade(context.Background(), questions, subs)

	assert.Equal(t, 100, report.Score)
	assert.Len(t, report.PerTest, 2)
}

func TestGradeScoreFloors(t *testing.T) {
	runner := stubRunner{fn: func(_ string, tc model.TestCase) model.ExecutionResult {
		// Pass only the test with input n == 0.
		n, _ := tc.Input["n"].(int)
		return model.ExecutionResult{Passed: n == 0}
	}}
	g := NewGrader(runner, 2, zerolog.Nop())

	questions := []model.Question{questionWithTests(1, 3)}
	subs := []model.Submission{{QuestionID: 1, SourceCode: "def f(n): return 0"}}

	report := g.Grade(context.Background(), questions, subs)

	// 1 of 3 passed: floor(100/3) == 33.
	assert.Equal(t, 33, report.Score)
	assert.Len(t, report.PerTest, 3)
}

func TestGradeDeterministicOrdering(t *testing.T) {
	// Results must be ordered by (question order, test index) no
	// matter which worker finishes first.
	runner := stubRunner{fn: func(code string, tc model.TestCase) model.ExecutionResult {
		return model.ExecutionResult{
			Passed: true,
			Output: fmt.Sprintf("%s:%v", strings.TrimSpace(code), tc.Input["n"]),
		}
	}}
	g := NewGrader(runner, 8, zerolog.Nop())

	questions := []model.Question{
		questionWithTests(7, 4),
		questionWithTests(3, 3),
	}
	subs := []model.Submission{
		{QuestionID: 3, SourceCode: "b"},
		{QuestionID: 7, SourceCode: "a"},
	}

	report := g.Grade(context.Background(), questions, subs)
	require.Len(t, report.PerTest, 7)

	want := []string{"a:0", "a:1", "a:2", "a:3", "b:0", "b:1", "b:2"}
	for i, res := range report.PerTest {
		assert.Equal(t, want[i], res.Output)
	}
	for i, res := range report.PerTest {
		if i < 4 {
			assert.Equal(t, 7, res.QuestionID)
		} else {
			assert.Equal(t, 3, res.QuestionID)
		}
	}
}

func TestGradeFailuresDoNotAbortBatch(t *testing.T) {
	calls := 0
	runner := stubRunner{fn: func(_ string, _ model.TestCase) model.ExecutionResult {
		calls++
		return model.ExecutionResult{Passed: false, Error: "boom"}
	}}
	g := NewGrader(runner, 1, zerolog.Nop())

	questions := []model.Question{questionWithTests(1, 5)}
	subs := []model.Submission{{QuestionID: 1, SourceCode: "def f(n): pass"}}

	report := g.Grade(context.Background(), questions, subs)

	assert.Equal(t, 5, calls, "every test case runs despite failures")
	assert.Equal(t, 0, report.Score)
}

func TestGradeProgressCallback(t *testing.T) {
	g := NewGrader(passAll(), 1, zerolog.Nop())

	var seen []Progress
	report := g.GradeWithProgress(
		context.Background(),
		[]model.Question{questionWithTests(1, 3)},
		[]model.Submission{{QuestionID: 1, SourceCode: "def f(n): return n"}},
		func(p Progress) { seen = append(seen, p) },
	)

	assert.Equal(t, 100, report.Score)
	require.Len(t, seen, 3)
	assert.Equal(t, 3, seen[len(seen)-1].Done)
	assert.Equal(t, 3, seen[0].Total)
}
