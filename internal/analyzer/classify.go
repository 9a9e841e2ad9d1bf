package analyzer

import (
	"strings"

	"github.com/blackwell-systems/repolens/internal/manifest"
)

// Classify detects the primary framework and the tool stack from a
// manifest. A nil manifest yields UnknownFramework and an empty stack.
//
// Frameworks are scored by the number of aliases present; the highest
// score wins and ties go to the earlier rule. Tools are included when any
// alias is present, in table order, once per name.
func Classify(m *manifest.Manifest) Classification {
	framework := UnknownFramework
	best := 0
	for _, r := range frameworkRules {
		if s := r.score(m); s > best {
			best = s
			framework = r.Name
		}
	}

	stack := make([]string, 0)
	seen := make(map[string]bool)
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		stack = append(stack, name)
	}

	for _, r := range toolRules {
		if r.matches(m) {
			add(r.Name)
		}
	}

	scripts := m.ScriptText()
	for _, mk := range scriptMarkers {
		if strings.Contains(scripts, mk.substring) {
			add(mk.tool)
		}
	}

	if framework == UnknownFramework {
		for _, fb := range baseLibraryFallbacks {
			if fb.matches(m) {
				framework = fb.Name
				break
			}
		}
	}

	return Classification{
		Framework:    framework,
		Stack:        stack,
		RawDepsCount: m.Len(),
	}
}

// score counts how many of the rule's aliases are dependencies.
func (r Rule) score(m *manifest.Manifest) int {
	n := 0
	for _, alias := range r.Aliases {
		if m.Has(alias) {
			n++
		}
	}
	return n
}

// matches reports whether any alias is a dependency.
func (r Rule) matches(m *manifest.Manifest) bool {
	for _, alias := range r.Aliases {
		if m.Has(alias) {
			return true
		}
	}
	return false
}
