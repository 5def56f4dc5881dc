package fraud

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/hiresift/hiresift-backend/internal/model"
)

// Pipeline runs every fraud check for one assessment. The checks are
// mutually independent and run concurrently; Run joins on all of them
// before scoring, and the check order in the report is fixed
// regardless of completion order: resume authenticity, one plagiarism
// check per submission, then timing.
type Pipeline struct {
	plagiarism *PlagiarismDetector
	timing     *TimingDetector
	resume     *AuthenticityChecker
	log        zerolog.Logger
}

// NewPipeline wires the three detectors together.
func NewPipeline(plagiarism *PlagiarismDetector, timing *TimingDetector, resume *AuthenticityChecker, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		plagiarism: plagiarism,
		timing:     timing,
		resume:     resume,
		log:        log.With().Str("component", "fraud_pipeline").Logger(),
	}
}

// Run produces the full fraud report for one assessment.
func (p *Pipeline) Run(submissions []model.Submission, claims model.ResumeClaims, timing model.TimingInfo) model.FraudReport {
	checks := make([]model.FraudCheck, len(submissions)+2)

	var wg sync.WaitGroup
	wg.Add(2 + len(submissions))

	go func() {
		defer wg.Done()
		checks[0] = p.resume.Check(claims)
	}()

	for i, sub := range submissions {
		go func(slot int, sub model.Submission) {
			defer wg.Done()
			checks[slot] = p.plagiarism.Detect(sub.SourceCode, sub.QuestionID)
		}(1+i, sub)
	}

	go func() {
		defer wg.Done()
		checks[len(checks)-1] = p.timing.Detect(timing)
	}()

	wg.Wait()

	report := Score(checks)
	p.log.Info().
		Int("fraud_score", report.FraudScore).
		Str("risk_level", string(report.RiskLevel)).
		Int("checks", len(checks)).
		Msg("fraud analysis complete")
	return report
}
