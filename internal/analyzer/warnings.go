package analyzer

import "unicode/utf8"

// minReadmeLength is the character count below which a README is "too small".
const minReadmeLength = 200

// Warning texts.
const (
	WarnTreeUnavailable = "Could not fetch repo tree (check token / branch)"
	WarnNoManifest      = "package.json not found (monorepo or non-JS repo)"
	WarnReadmeMissing   = "README is missing"
	WarnReadmeTooSmall  = "README is too small"
	WarnNoEnvExample    = "Missing .env.example"
	WarnNoDockerfile    = "Missing Dockerfile"
	WarnNoDockerCompose = "No docker-compose.yml found"
	WarnNoLicense       = "No LICENSE file found"
	WarnNoTests         = "No tests folder/config found"
)

// warningContext is the input every warning rule sees.
type warningContext struct {
	signals       Signals
	treeAvailable bool
	readme        *string
}

// warningRule returns a warning and whether it fired.
type warningRule func(ctx *warningContext) (string, bool)

// warningRules run in this order; every rule is evaluated.
var warningRules = []warningRule{
	treeUnavailable,
	manifestMissing,
	readmeQuality,
	missingFile(func(s Signals) bool { return s.HasEnvExample }, WarnNoEnvExample),
	missingFile(func(s Signals) bool { return s.HasDockerfile }, WarnNoDockerfile),
	missingFile(func(s Signals) bool { return s.HasDockerCompose }, WarnNoDockerCompose),
	missingFile(func(s Signals) bool { return s.HasLicense }, WarnNoLicense),
	missingFile(func(s Signals) bool { return s.HasTests }, WarnNoTests),
}

// Warnings evaluates every warning rule in order and returns the fired
// messages. treeAvailable is false when the tree is absent or empty.
func Warnings(sig Signals, treeAvailable bool, readme *string) []string {
	ctx := &warningContext{signals: sig, treeAvailable: treeAvailable, readme: readme}

	warnings := make([]string, 0, len(warningRules))
	for _, rule := range warningRules {
		if msg, ok := rule(ctx); ok {
			warnings = append(warnings, msg)
		}
	}
	return warnings
}

func treeUnavailable(ctx *warningContext) (string, bool) {
	return WarnTreeUnavailable, !ctx.treeAvailable
}

func manifestMissing(ctx *warningContext) (string, bool) {
	return WarnNoManifest, ctx.signals.ManifestPath == ""
}

// readmeQuality reports a missing README, or else a short one.
func readmeQuality(ctx *warningContext) (string, bool) {
	if !ctx.signals.HasReadme {
		return WarnReadmeMissing, true
	}
	if ctx.readme != nil && utf8.RuneCountInString(*ctx.readme) < minReadmeLength {
		return WarnReadmeTooSmall, true
	}
	return "", false
}

func missingFile(present func(Signals) bool, msg string) warningRule {
	return func(ctx *warningContext) (string, bool) {
		return msg, !present(ctx.signals)
	}
}
