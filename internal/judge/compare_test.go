package judge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareStructural(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected any
		want     bool
	}{
		{"int array", "[0, 1]", []any{0, 1}, true},
		{"int array compact", "[0,1]", []any{0, 1}, true},
		{"wrong order", "[1, 0]", []any{0, 1}, false},
		{"number", "42", 42, true},
		{"float vs trailing zero", "0.50", 0.5, true},
		{"bool", "true", true, true},
		{"null", "null", nil, true},
		{"object key order", `{"b": 2, "a": 1}`, map[string]any{"a": 1, "b": 2}, true},
		{"nested", `[[1,2],[3]]`, []any{[]any{1, 2}, []any{3}}, true},
		{"mismatch", "[0, 2]", []any{0, 1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compare(tc.raw, tc.expected))
		})
	}
}

func TestCompareStringFallback(t *testing.T) {
	// Raw output that is not valid JSON falls back to string equality.
	assert.True(t, Compare("hello world", "hello world"))
	assert.False(t, Compare("hello", "world"))

	// JSON-decodable output still passes when it matches the string
	// form of the expected value.
	assert.True(t, Compare(`"abc"`, `"abc"`))

	// Whitespace around the output is not significant.
	assert.True(t, Compare("  42\n", 42))
}

func TestCompareEmptyOutput(t *testing.T) {
	assert.False(t, Compare("", []any{1}))
	assert.True(t, Compare("", nil))
}
