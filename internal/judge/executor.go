// Package judge runs candidate submissions against hidden test cases
// and aggregates the results into a grading report. Candidate code is
// executed in a freshly spawned interpreter process per test case,
// communicating only over stdin/stdout/stderr, with a hard wall-clock
// timeout. This is process isolation, not a hardened sandbox.
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hiresift/hiresift-backend/internal/model"
)

const (
	// DefaultTimeout bounds a single test-case execution.
	DefaultTimeout = 5 * time.Second

	errNoFunction = "no function found"
)

// harness is appended to the candidate source. It reads the test-case
// input from stdin as JSON, calls the located function with the input
// applied as named arguments, and prints the return value as a single
// JSON document on stdout. Runtime faults go to stderr with a non-zero
// exit. Aliased imports keep the harness out of the candidate's
// namespace.
const harness = `

# AUTO-GENERATED TEST HARNESS
if __name__ == "__main__":
    import json as _json
    import sys as _sys
    _args = _json.load(_sys.stdin)
    try:
        _result = %s(**_args)
        print(_json.dumps(_result, default=str))
    except Exception as _exc:
        print("ERROR: " + str(_exc), file=_sys.stderr)
        _sys.exit(1)
`

// Executor runs one candidate function against one test case in an
// isolated python subprocess.
type Executor struct {
	python  string
	timeout time.Duration
	log     zerolog.Logger
}

// NewExecutor creates an Executor. python defaults to "python3" and
// timeout to DefaultTimeout when zero-valued.
func NewExecutor(python string, timeout time.Duration, log zerolog.Logger) *Executor {
	if python == "" {
		python = "python3"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{
		python:  python,
		timeout: timeout,
		log:     log.With().Str("component", "executor").Logger(),
	}
}

// Execute runs sourceCode against a single test case and returns the
// execution result. Candidate faults never propagate as errors; every
// failure mode resolves into the result's Error field.
func (e *Executor) Execute(ctx context.Context, sourceCode string, tc model.TestCase) model.ExecutionResult {
	res := model.ExecutionResult{Expected: tc.Expected}

	funcName := findFunction(sourceCode)
	if funcName == "" {
		res.Error = errNoFunction
		return res
	}

	input, err := json.Marshal(tc.Input)
	if err != nil {
		res.Error = fmt.Sprintf("encode test input: %v", err)
		return res
	}

	tmp, err := os.CreateTemp("", "hiresift-subm-*.py")
	if err != nil {
		res.Error = fmt.Sprintf("create scratch file: %v", err)
		return res
	}
	defer os.Remove(tmp.Name())

	script := sourceCode + fmt.Sprintf(harness, funcName)
	if _, err := tmp.WriteString(script); err != nil {
		tmp.Close()
		res.Error = fmt.Sprintf("write scratch file: %v", err)
		return res
	}
	if err := tmp.Close(); err != nil {
		res.Error = fmt.Sprintf("close scratch file: %v", err)
		return res
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, e.python, tmp.Name())
	// Own process group so a timeout kill reaps candidate children too.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		res.Error = fmt.Sprintf("start interpreter: %v", err)
		return res
	}

	waitErr := cmd.Wait()

	if runCtx.Err() == context.DeadlineExceeded {
		if cmd.Process != nil {
			_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		}
		res.Error = fmt.Sprintf("timeout: execution exceeded %s", e.timeout)
		e.log.Debug().Str("func", funcName).Dur("timeout", e.timeout).Msg("submission timed out")
		return res
	}

	res.Output = strings.TrimSpace(stdout.String())
	stderrText := strings.TrimSpace(stderr.String())

	// A fault is a non-zero exit (the entry harness exits 1 on any
	// candidate exception). Stderr alone is not a fault: warnings from
	// an otherwise correct solution must not fail the test.
	if waitErr != nil {
		if stderrText != "" {
			res.Error = stderrText
		} else {
			res.Error = fmt.Sprintf("process exited abnormally: %v", waitErr)
		}
		return res
	}

	if stderrText != "" {
		e.log.Debug().Str("func", funcName).Str("stderr", stderrText).Msg("submission wrote to stderr")
	}

	res.Passed = Compare(res.Output, tc.Expected)
	return res
}

// findFunction returns the name of the first function definition in
// the source, or "" when none exists.
func findFunction(source string) string {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "def ") {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "def "))
		if idx := strings.Index(rest, "("); idx > 0 {
			return strings.TrimSpace(rest[:idx])
		}
	}
	return ""
}
