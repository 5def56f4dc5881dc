// Package fraud scores submissions for suspicious patterns. Each
// detector is an independent heuristic producing a FraudCheck; the
// scorer joins on all checks and folds them into a 0-100 fraud score
// with a risk tier.
package fraud

import (
	"fmt"
	"strings"

	"github.com/hiresift/hiresift-backend/internal/model"
)

// SimilarityThreshold is the percentage of matched reference fragments
// above which a submission is flagged.
const SimilarityThreshold = 80.0

// FragmentSource serves reference-solution fragments per question.
type FragmentSource interface {
	Fragments(questionID int) []string
}

// PlagiarismDetector matches normalized code against a fixed catalog
// of reference-solution fragments. Literal substring matching only;
// no AST analysis.
type PlagiarismDetector struct {
	source FragmentSource
}

// NewPlagiarismDetector creates a detector backed by the given
// fragment catalog.
func NewPlagiarismDetector(source FragmentSource) *PlagiarismDetector {
	return &PlagiarismDetector{source: source}
}

// Detect checks one submission for verbatim reference fragments.
// A missing reference entry degrades to not-suspicious.
func (d *PlagiarismDetector) Detect(code string, questionID int) model.FraudCheck {
	check := model.FraudCheck{Kind: model.CheckPlagiarism}

	fragments := d.source.Fragments(questionID)
	if code == "" || len(fragments) == 0 {
		check.Detail = "no reference available"
		return check
	}

	normalized := NormalizeCode(code)
	matches := 0
	for _, f := range fragments {
		if strings.Contains(normalized, f) {
			matches++
		}
	}

	check.Similarity = float64(matches) / float64(len(fragments)) * 100
	check.Suspicious = check.Similarity > SimilarityThreshold
	if check.Suspicious {
		check.Detail = fmt.Sprintf("code matches %d/%d known reference fragments", matches, len(fragments))
	} else {
		check.Detail = "code appears original"
	}
	return check
}

// NormalizeCode strips comment remainders and blank lines so fragment
// matching ignores formatting noise.
func NormalizeCode(code string) string {
	var lines []string
	for _, line := range strings.Split(code, "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
