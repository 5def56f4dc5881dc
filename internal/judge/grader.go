package judge

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hiresift/hiresift-backend/internal/model"
)

// Runner executes one submission against one test case.
type Runner interface {
	Execute(ctx context.Context, sourceCode string, tc model.TestCase) model.ExecutionResult
}

// Progress reports one completed test-case run while grading is in
// flight. done counts completed runs, total is the full task count.
type Progress struct {
	Done   int
	Total  int
	Result model.ExecutionResult
}

// Grader drives the executor across all (question, test case) pairs of
// a coding round and aggregates a 0-100 score.
type Grader struct {
	runner  Runner
	workers int
	log     zerolog.Logger
}

// NewGrader creates a Grader running up to workers test cases in
// parallel. workers defaults to the number of CPUs.
func NewGrader(runner Runner, workers int, log zerolog.Logger) *Grader {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Grader{
		runner:  runner,
		workers: workers,
		log:     log.With().Str("component", "grader").Logger(),
	}
}

type gradeTask struct {
	slot       int
	questionID int
	title      string
	code       string
	testCase   model.TestCase
}

// Grade executes every test case of every question that has a matching
// non-empty submission. Questions without a submission or without test
// cases contribute no tasks. Individual failures never abort the rest
// of the batch; report ordering follows (question order, test-case
// index) regardless of completion order.
func (g *Grader) Grade(ctx context.Context, questions []model.Question, submissions []model.Submission) model.GradingReport {
	return g.GradeWithProgress(ctx, questions, submissions, nil)
}

// GradeWithProgress is Grade with an optional per-test progress
// callback. The callback runs on grader goroutines and must be safe
// for concurrent use.
func (g *Grader) GradeWithProgress(ctx context.Context, questions []model.Question, submissions []model.Submission, onProgress func(Progress)) model.GradingReport {
	codeByQuestion := make(map[int]string, len(submissions))
	for _, s := range submissions {
		codeByQuestion[s.QuestionID] = s.SourceCode
	}

	var tasks []gradeTask
	for _, q := range questions {
		code := codeByQuestion[q.ID]
		if code == "" || len(q.TestCases) == 0 {
			continue
		}
		for _, tc := range q.TestCases {
			tasks = append(tasks, gradeTask{
				slot:       len(tasks),
				questionID: q.ID,
				title:      q.Title,
				code:       code,
				testCase:   tc,
			})
		}
	}

	if len(tasks) == 0 {
		return model.GradingReport{Score: 0, PerTest: []model.ExecutionResult{}}
	}

	results := make([]model.ExecutionResult, len(tasks))
	taskCh := make(chan gradeTask)

	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	workers := g.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range taskCh {
				res := g.runner.Execute(ctx, t.code, t.testCase)
				res.QuestionID = t.questionID
				res.Title = t.title
				results[t.slot] = res

				if onProgress != nil {
					mu.Lock()
					done++
					n := done
					mu.Unlock()
					onProgress(Progress{Done: n, Total: len(tasks), Result: res})
				}
			}
		}()
	}

	for _, t := range tasks {
		taskCh <- t
	}
	close(taskCh)
	wg.Wait()

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}

	score := passed * 100 / len(tasks)
	g.log.Info().
		Int("passed", passed).
		Int("total", len(tasks)).
		Int("score", score).
		Msg("grading complete")

	return model.GradingReport{Score: score, PerTest: results}
}
