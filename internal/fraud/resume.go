package fraud

import (
	"fmt"
	"strings"

	"github.com/hiresift/hiresift-backend/internal/model"
)

// AuthenticityConfig holds the thresholds for implausible resume
// claims.
type AuthenticityConfig struct {
	MaxSkills        int // more listed skills looks like keyword stuffing
	MaxExperience    int // claimed years above this are unrealistic
	MismatchExpYears int // experience above this ...
	MismatchProjects int // ... with fewer than this many projects is inconsistent
}

// DefaultAuthenticityConfig returns the historical thresholds.
func DefaultAuthenticityConfig() AuthenticityConfig {
	return AuthenticityConfig{
		MaxSkills:        15,
		MaxExperience:    30,
		MismatchExpYears: 5,
		MismatchProjects: 2,
	}
}

// AuthenticityChecker flags statistically implausible resume claims.
type AuthenticityChecker struct {
	cfg AuthenticityConfig
}

// NewAuthenticityChecker creates a checker; a zero-valued config is
// replaced with the defaults.
func NewAuthenticityChecker(cfg AuthenticityConfig) *AuthenticityChecker {
	if cfg.MaxSkills == 0 {
		cfg = DefaultAuthenticityConfig()
	}
	return &AuthenticityChecker{cfg: cfg}
}

// Check validates resume claims for internal consistency. The detail
// concatenates every flag that fired.
func (c *AuthenticityChecker) Check(claims model.ResumeClaims) model.FraudCheck {
	check := model.FraudCheck{Kind: model.CheckResumeAuthenticity}

	var issues []string
	if len(claims.Skills) > c.cfg.MaxSkills {
		issues = append(issues, fmt.Sprintf("excessive skills listed (%d)", len(claims.Skills)))
	}
	if claims.ExperienceYears > c.cfg.MaxExperience {
		issues = append(issues, fmt.Sprintf("unrealistic experience claim (%d years)", claims.ExperienceYears))
	}
	if claims.ExperienceYears > c.cfg.MismatchExpYears && claims.Projects < c.cfg.MismatchProjects {
		issues = append(issues, "high experience but few projects mentioned")
	}

	check.Suspicious = len(issues) > 0
	if check.Suspicious {
		check.Detail = strings.Join(issues, "; ")
	} else {
		check.Detail = "resume appears authentic"
	}
	return check
}
