package judge

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiresift/hiresift-backend/internal/model"
)

func requirePython(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}
}

func TestExecutePassingSubmission(t *testing.T) {
	requirePython(t)

	code := `def two_sum(nums, target):
    seen = {}
    for i, num in enumerate(nums):
        if target - num in seen:
            return [seen[target - num], i]
        seen[num] = i
    return []`

	tc := model.TestCase{
		Input:    map[string]any{"nums": []any{2, 7, 11, 15}, "target": 9},
		Expected: []any{0, 1},
	}

	e := NewExecutor("", 0, zerolog.Nop())
	res := e.Execute(context.Background(), code, tc)

	require.Empty(t, res.Error)
	assert.True(t, res.Passed)
	assert.Equal(t, "[0, 1]", res.Output)
}

func TestExecuteNoFunction(t *testing.T) {
	e := NewExecutor("", 0, zerolog.Nop())
	res := e.Execute(context.Background(), "x = 1 + 1", model.TestCase{})

	assert.False(t, res.Passed)
	assert.Equal(t, "no function found", res.Error)
}

func TestExecuteRuntimeFault(t *testing.T) {
	requirePython(t)

	code := `def boom(n):
    raise ValueError("broken")`

	tc := model.TestCase{Input: map[string]any{"n": 1}, Expected: 0}

	e := NewExecutor("", 0, zerolog.Nop())
	res := e.Execute(context.Background(), code, tc)

	assert.False(t, res.Passed)
	assert.Contains(t, res.Error, "broken")
}

func TestExecuteStderrWarningStillPasses(t *testing.T) {
	requirePython(t)

	// A correct solution that chatters on stderr is still correct;
	// only a non-zero exit is a fault.
	code := `def add(a, b):
    import sys
    print("deprecation warning: use add2", file=sys.stderr)
    return a + b`

	tc := model.TestCase{Input: map[string]any{"a": 2, "b": 3}, Expected: 5}

	e := NewExecutor("", 0, zerolog.Nop())
	res := e.Execute(context.Background(), code, tc)

	require.Empty(t, res.Error)
	assert.True(t, res.Passed)
	assert.Equal(t, "5", res.Output)
}

func TestExecuteTimeout(t *testing.T) {
	requirePython(t)

	code := `def spin(n):
    while True:
        pass`

	tc := model.TestCase{Input: map[string]any{"n": 1}, Expected: 0}

	e := NewExecutor("", time.Second, zerolog.Nop())

	start := time.Now()
	res := e.Execute(context.Background(), code, tc)
	elapsed := time.Since(start)

	assert.False(t, res.Passed)
	assert.Contains(t, res.Error, "timeout")
	assert.Less(t, elapsed, 5*time.Second, "timeout must not block indefinitely")
}

func TestExecuteIdempotent(t *testing.T) {
	requirePython(t)

	code := `def double(n):
    return n * 2`

	tc := model.TestCase{Input: map[string]any{"n": 21}, Expected: 42}

	e := NewExecutor("", 0, zerolog.Nop())
	first := e.Execute(context.Background(), code, tc)
	second := e.Execute(context.Background(), code, tc)

	assert.Equal(t, first, second)
	assert.True(t, first.Passed)
}

func TestFindFunction(t *testing.T) {
	assert.Equal(t, "two_sum", findFunction("def two_sum(nums, target):\n    pass"))
	assert.Equal(t, "f", findFunction("# comment\ndef f():\n    pass"))
	assert.Equal(t, "", findFunction("x = 5"))
	assert.Equal(t, "", findFunction(""))
}
