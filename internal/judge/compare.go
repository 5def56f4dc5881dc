package judge

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Compare decides whether a raw execution output matches the expected
// value. It first attempts structured comparison: the raw output is
// JSON-decoded and checked against the expected value re-encoded
// through the same codec, so 0.5 matches 0.50 and [0,1] matches
// [0, 1]. When either side does not decode, it falls back to exact
// string equality against the string form of the expected value.
// The fallback is order- and format-sensitive; that looseness is
// inherited behavior, kept deliberately.
func Compare(raw string, expected any) bool {
	raw = strings.TrimSpace(raw)

	var actual any
	if err := json.Unmarshal([]byte(raw), &actual); err == nil {
		if norm, ok := normalize(expected); ok && reflect.DeepEqual(actual, norm) {
			return true
		}
	}

	return raw == stringify(expected)
}

// normalize round-trips a value through JSON so both sides of the
// structural comparison use identical representations (float64
// numbers, map[string]any objects).
func normalize(v any) (any, bool) {
	enc, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	var out any
	if err := json.Unmarshal(enc, &out); err != nil {
		return nil, false
	}
	return out, true
}

// stringify renders the expected value the way the harness would print
// it: JSON for composites, plain formatting for scalars.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]any, []any:
		enc, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(enc)
	default:
		return fmt.Sprint(t)
	}
}
