package fraud

import (
	"fmt"

	"github.com/hiresift/hiresift-backend/internal/model"
)

// TimingConfig holds the expected minimum minutes per question for
// each difficulty, and the fraction of that minimum below which a
// completion is suspicious.
type TimingConfig struct {
	MinutesPerQuestion map[model.Difficulty]float64
	DefaultMinutes     float64
	SuspicionRatio     float64
}

// DefaultTimingConfig mirrors the historical expectations: easy 5,
// medium 10, hard 20 minutes per question, flag below 20% of the
// expected minimum.
func DefaultTimingConfig() TimingConfig {
	return TimingConfig{
		MinutesPerQuestion: map[model.Difficulty]float64{
			model.DifficultyEasy:   5,
			model.DifficultyMedium: 10,
			model.DifficultyHard:   20,
		},
		DefaultMinutes: 10,
		SuspicionRatio: 0.2,
	}
}

// TimingDetector flags submissions completed faster than a
// difficulty-scaled minimum.
type TimingDetector struct {
	cfg TimingConfig
}

// NewTimingDetector creates a detector; a zero-valued config is
// replaced with DefaultTimingConfig.
func NewTimingDetector(cfg TimingConfig) *TimingDetector {
	if cfg.MinutesPerQuestion == nil {
		cfg = DefaultTimingConfig()
	}
	if cfg.SuspicionRatio <= 0 {
		cfg.SuspicionRatio = 0.2
	}
	return &TimingDetector{cfg: cfg}
}

// Detect evaluates session timing metadata. Missing timestamps yield
// a not-suspicious check rather than an error.
func (d *TimingDetector) Detect(info model.TimingInfo) model.FraudCheck {
	check := model.FraudCheck{Kind: model.CheckTiming}

	if info.StartedAt == nil || info.SubmittedAt == nil {
		check.Detail = "timing data not available"
		return check
	}

	elapsed := info.SubmittedAt.Sub(*info.StartedAt).Minutes()

	perQuestion, ok := d.cfg.MinutesPerQuestion[info.Difficulty]
	if !ok {
		perQuestion = d.cfg.DefaultMinutes
	}
	expectedMin := perQuestion * float64(info.Questions)
	threshold := expectedMin * d.cfg.SuspicionRatio

	check.Suspicious = elapsed < threshold
	if check.Suspicious {
		check.Detail = fmt.Sprintf("completed in %.1fmin (expected minimum: %.0fmin)", elapsed, expectedMin)
	} else {
		check.Detail = "timing appears normal"
	}
	return check
}
