package analyzer

// Score deductions applied to a starting score of 100.
const (
	PenaltyNoManifest   = 25
	PenaltyNoReadme     = 20
	PenaltyNoEnvExample = 15
	PenaltyNoDockerfile = 10
	PenaltyNoTests      = 10

	// PenaltyManyWarnings applies when at least ManyWarningsThreshold
	// warnings were raised, whichever they are.
	PenaltyManyWarnings   = 10
	ManyWarningsThreshold = 5
)

// Score computes the 0-100 health score. Deductions stack and the result is
// clamped.
//
// Scoring breakdown:
//   - no package.json:   -25
//   - no README:         -20
//   - no .env.example:   -15
//   - no Dockerfile:     -10
//   - no tests:          -10
//   - 5+ warnings:       -10
func Score(sig Signals, warningCount int) int {
	score := 100

	if sig.ManifestPath == "" {
		score -= PenaltyNoManifest
	}
	if !sig.HasReadme {
		score -= PenaltyNoReadme
	}
	if !sig.HasEnvExample {
		score -= PenaltyNoEnvExample
	}
	if !sig.HasDockerfile {
		score -= PenaltyNoDockerfile
	}
	if !sig.HasTests {
		score -= PenaltyNoTests
	}
	if warningCount >= ManyWarningsThreshold {
		score -= PenaltyManyWarnings
	}

	return clamp(score, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Grade labels a score the way the report headline does.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "Elite"
	case score >= 75:
		return "Good"
	case score >= 50:
		return "Risky"
	default:
		return "Pain"
	}
}
